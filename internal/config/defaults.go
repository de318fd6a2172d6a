package config

import "strings"

func (c *Config) applyDefaults() {
	if c == nil {
		return
	}
	if strings.TrimSpace(c.App.Env) == "" {
		c.App.Env = "dev"
	}
	if strings.TrimSpace(c.App.LogLevel) == "" {
		c.App.LogLevel = "info"
	}
	if strings.TrimSpace(c.App.HTTPAddr) == "" {
		c.App.HTTPAddr = ":9980"
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		c.Database.Path = "data/vantage.db"
	}
	if strings.TrimSpace(c.Exchange.Name) == "" {
		c.Exchange.Name = "binance"
	}
	if strings.TrimSpace(c.Exchange.Asset) == "" {
		c.Exchange.Asset = "USDT"
	}
	if c.Exchange.TimeoutSeconds <= 0 {
		c.Exchange.TimeoutSeconds = 10
	}
	if c.Analytics.CacheTTLSeconds <= 0 {
		c.Analytics.CacheTTLSeconds = 30
	}
	if c.Analytics.HourlyWindowDays <= 0 {
		c.Analytics.HourlyWindowDays = 30
	}
	if strings.TrimSpace(c.Ingest.SchemaPath) == "" {
		c.Ingest.SchemaPath = "configs/trade_schema.yaml"
	}
}
