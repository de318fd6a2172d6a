// Package app composes the configured components and runs them.
package app

import (
	"context"
	"fmt"
	"time"

	"vantage/internal/analytics"
	"vantage/internal/config"
	"vantage/internal/gateway/binance"
	"vantage/internal/ingest"
	"vantage/internal/logger"
	"vantage/internal/store/gormstore"
	httptransport "vantage/internal/transport/http"

	"golang.org/x/sync/errgroup"
)

// App owns the long-lived components of a running instance.
type App struct {
	cfg    *config.Config
	store  *gormstore.Store
	server *httptransport.Server
}

// New builds the full component graph from a loaded config: trade store,
// balance source, metrics engine, snapshot cache, importer and HTTP server.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	store, err := gormstore.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open trade store: %w", err)
	}

	balances, err := binance.New(binance.Config{
		APIKey:       cfg.Exchange.APIKey,
		APISecret:    cfg.Exchange.APISecret,
		RESTBaseURL:  cfg.Exchange.RESTBaseURL,
		HTTPTimeout:  time.Duration(cfg.Exchange.TimeoutSeconds) * time.Second,
		ProxyEnabled: cfg.Exchange.ProxyEnabled,
		RESTProxyURL: cfg.Exchange.RESTProxyURL,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init balance source: %w", err)
	}

	hourlyWindow := time.Duration(cfg.Analytics.HourlyWindowDays) * 24 * time.Hour
	engine := analytics.NewEngine(store, balances, cfg.Exchange.Asset, hourlyWindow)
	cache := analytics.NewSnapshotCache(engine, time.Duration(cfg.Analytics.CacheTTLSeconds)*time.Second)

	schemas, err := ingest.NewSchemaRegistry(cfg.Ingest.SchemaPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load trade schema: %w", err)
	}
	importer := ingest.NewImporter(store, schemas)

	server, err := httptransport.NewServer(httptransport.ServerConfig{
		Addr:     cfg.App.HTTPAddr,
		Engine:   engine,
		Cache:    cache,
		Store:    store,
		Importer: importer,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init http server: %w", err)
	}

	return &App{cfg: cfg, store: store, server: server}, nil
}

// Run blocks until ctx is cancelled or a component fails.
func (a *App) Run(ctx context.Context) error {
	logger.Infof("vantage starting env=%s addr=%s db=%s",
		a.cfg.App.Env, a.cfg.App.HTTPAddr, a.cfg.Database.Path)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.server.Start(gctx)
	})

	err := g.Wait()
	a.store.Close()
	logger.Infof("vantage stopped")
	return err
}
