package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"vantage/internal/app"
	"vantage/internal/config"
	"vantage/internal/logger"
)

func main() {
	configPath := os.Getenv("VANTAGE_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Errorf("load config %s: %v", configPath, err)
		os.Exit(1)
	}

	logger.SetLevel(cfg.App.LogLevel)
	closeLog := setupLogOutput(cfg.App.LogPath)
	defer closeLog()

	instance, err := app.New(cfg)
	if err != nil {
		logger.Errorf("init failed: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := instance.Run(ctx); err != nil {
		logger.Errorf("run failed: %v", err)
		os.Exit(1)
	}
}

// setupLogOutput mirrors logs to a file when configured, keeping stdout as
// the primary destination.
func setupLogOutput(path string) func() {
	if path == "" {
		return func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warnf("create log dir failed, logging to stdout only: %v", err)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warnf("open log file failed, logging to stdout only: %v", err)
		return func() {}
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, f))
	return func() { _ = f.Close() }
}
