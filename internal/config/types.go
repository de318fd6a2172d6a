package config

// Config is the main configuration carrier for Vantage.
type Config struct {
	App       AppConfig       `toml:"app"`
	Database  DatabaseConfig  `toml:"database"`
	Exchange  ExchangeConfig  `toml:"exchange"`
	Analytics AnalyticsConfig `toml:"analytics"`
	Ingest    IngestConfig    `toml:"ingest"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ExchangeConfig describes how the account balance is queried.
type ExchangeConfig struct {
	Name           string `toml:"name"` // only "binance" for now
	Asset          string `toml:"asset"`
	APIKey         string `toml:"api_key"`
	APISecret      string `toml:"api_secret"`
	RESTBaseURL    string `toml:"rest_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ProxyEnabled   bool   `toml:"proxy_enabled"`
	RESTProxyURL   string `toml:"rest_proxy_url"`
}

// AnalyticsConfig tunes the metrics pipeline around the fixed formulas.
type AnalyticsConfig struct {
	CacheTTLSeconds  int `toml:"cache_ttl_seconds"`
	HourlyWindowDays int `toml:"hourly_window_days"`
}

// IngestConfig points at the trade-import schema file.
type IngestConfig struct {
	SchemaPath string `toml:"schema_path"`
}
