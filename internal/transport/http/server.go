// Package http exposes the analytics engine to the dashboard frontend.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"vantage/internal/analytics"
	"vantage/internal/ingest"
	"vantage/internal/report"
	"vantage/internal/store/gormstore"

	"github.com/gin-gonic/gin"
)

// Server wires the gin router over the engine, snapshot cache, trade store
// and importer.
type Server struct {
	addr     string
	engine   *analytics.Engine
	cache    *analytics.SnapshotCache
	store    *gormstore.Store
	importer *ingest.Importer
	router   *gin.Engine
}

type ServerConfig struct {
	Addr     string
	Engine   *analytics.Engine
	Cache    *analytics.SnapshotCache
	Store    *gormstore.Store
	Importer *ingest.Importer
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Engine == nil || cfg.Cache == nil {
		return nil, errors.New("engine and cache are required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9980"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		addr:     cfg.Addr,
		engine:   cfg.Engine,
		cache:    cfg.Cache,
		store:    cfg.Store,
		importer: cfg.Importer,
		router:   router,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/metrics", s.handleMetrics)
	api.GET("/equity", s.handleEquity)
	api.GET("/breakdown/monthly", s.handleMonthly)
	api.GET("/breakdown/hourly", s.handleHourly)
	api.GET("/breakdown/symbol", s.handleSymbols)
	api.GET("/trades", s.handleTrades)
	api.POST("/trades/import", s.handleImport)
	s.router.GET("/report", s.handleReport)
	s.router.GET("/report.png", s.handleReportPNG)
}

func (s *Server) period(c *gin.Context) (analytics.Period, bool) {
	p, err := analytics.ParsePeriod(c.Query("period"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return analytics.Period{}, false
	}
	return p, true
}

// metricsError maps the resolver's fatal case to 502 (the upstream balance
// source is the thing that failed); everything else is a plain 500.
func metricsError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, analytics.ErrNoBaseline) {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMetrics(c *gin.Context) {
	p, ok := s.period(c)
	if !ok {
		return
	}
	snap, err := s.cache.Metrics(c.Request.Context(), p)
	if err != nil {
		metricsError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": snap})
}

func (s *Server) handleEquity(c *gin.Context) {
	p, ok := s.period(c)
	if !ok {
		return
	}
	curve, err := s.engine.ComputeEquityCurve(c.Request.Context(), p)
	if err != nil {
		metricsError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": p.Label, "points": curve})
}

func (s *Server) handleMonthly(c *gin.Context) {
	p, ok := s.period(c)
	if !ok {
		return
	}
	buckets, err := s.engine.MonthlyBreakdown(c.Request.Context(), p)
	if err != nil {
		metricsError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": p.Label, "buckets": buckets})
}

func (s *Server) handleHourly(c *gin.Context) {
	p, ok := s.period(c)
	if !ok {
		return
	}
	buckets, err := s.engine.HourlyBreakdown(c.Request.Context(), p)
	if err != nil {
		metricsError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": p.Label, "buckets": buckets})
}

func (s *Server) handleSymbols(c *gin.Context) {
	p, ok := s.period(c)
	if !ok {
		return
	}
	buckets, err := s.engine.SymbolBreakdown(c.Request.Context(), p)
	if err != nil {
		metricsError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": p.Label, "buckets": buckets})
}

func (s *Server) handleTrades(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "trade store not enabled"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	trades, err := s.store.ListRecentClosedTrades(c.Request.Context(), c.Query("symbol"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := s.store.CountClosedTrades(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "trades": trades})
}

func (s *Server) handleImport(c *gin.Context) {
	if s.importer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "importer not enabled"})
		return
	}
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.importer.Import(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// New trades change every window; drop memoized snapshots.
	s.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (s *Server) reportArtifacts(c *gin.Context) (*analytics.MetricsSnapshot, []byte, bool) {
	p, ok := s.period(c)
	if !ok {
		return nil, nil, false
	}
	ctx := c.Request.Context()
	snap, err := s.cache.Metrics(ctx, p)
	if err != nil {
		metricsError(c, err)
		return nil, nil, false
	}
	curve, err := s.engine.ComputeEquityCurve(ctx, p)
	if err != nil {
		metricsError(c, err)
		return nil, nil, false
	}
	monthly, err := s.engine.MonthlyBreakdown(ctx, p)
	if err != nil {
		metricsError(c, err)
		return nil, nil, false
	}
	html, err := report.BuildPage(snap, curve, monthly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	return snap, html, true
}

func (s *Server) handleReport(c *gin.Context) {
	_, html, ok := s.reportArtifacts(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleReportPNG(c *gin.Context) {
	_, html, ok := s.reportArtifacts(c)
	if !ok {
		return
	}
	png, err := report.Screenshot(c.Request.Context(), html, 1000, 820)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// Start runs the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
