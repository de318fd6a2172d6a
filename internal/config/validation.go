package config

import (
	"fmt"
	"strings"
)

func validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Exchange.Name)) {
	case "binance":
	default:
		return fmt.Errorf("unsupported exchange %q", cfg.Exchange.Name)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.App.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q", cfg.App.LogLevel)
	}
	if cfg.Analytics.CacheTTLSeconds > 3600 {
		return fmt.Errorf("cache_ttl_seconds too large (%d), max 3600", cfg.Analytics.CacheTTLSeconds)
	}
	return nil
}
