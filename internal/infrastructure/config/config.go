package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Shopify   ShopifyConfig
	Database  DatabaseConfig
	Sync      SyncConfig
	Log       LogConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// ShopifyConfig holds commerce platform API settings
type ShopifyConfig struct {
	// Domain is the shop domain (e.g. "example.myshopify.com")
	Domain string
	// APIVersion is the admin API version (e.g. "2024-01")
	APIVersion string
	// AccessToken is the admin API access token
	AccessToken string
	// ImportTag marks orders eligible for import
	ImportTag string
	// ProcessedTag replaces ImportTag after a successful import
	ProcessedTag string
	// RetagEnabled disables the retag step for read-only-credential deployments
	RetagEnabled bool
	// Since restricts fetches to orders created at or after this ISO-8601
	// timestamp; empty means no lower bound
	Since string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// SyncConfig holds order sync cycle settings
type SyncConfig struct {
	// Interval between daemon cycles
	Interval time.Duration
	// Concurrency is the worker queue width
	Concurrency int
	// RetryCount is the number of retries after the first attempt
	RetryCount int
	// RetryDelay is the fixed delay between attempts
	RetryDelay time.Duration
	// DedupeEnabled enables the persisted existence check by source order id
	DedupeEnabled bool
	// LogDir is the directory for per-run JSON logs
	LogDir string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ORDERSYNC_ prefix (e.g. ORDERSYNC_SHOPIFY_ACCESS_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ORDERSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Shopify: ShopifyConfig{
			Domain:       v.GetString("shopify.domain"),
			APIVersion:   v.GetString("shopify.api_version"),
			AccessToken:  v.GetString("shopify.access_token"),
			ImportTag:    v.GetString("shopify.import_tag"),
			ProcessedTag: v.GetString("shopify.processed_tag"),
			RetagEnabled: v.GetBool("shopify.retag_enabled"),
			Since:        v.GetString("shopify.since"),
			Timeout:      v.GetDuration("shopify.timeout"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Sync: SyncConfig{
			Interval:      v.GetDuration("sync.interval"),
			Concurrency:   v.GetInt("sync.concurrency"),
			RetryCount:    v.GetInt("sync.retry_count"),
			RetryDelay:    v.GetDuration("sync.retry_delay"),
			DedupeEnabled: v.GetBool("sync.dedupe_enabled"),
			LogDir:        v.GetString("sync.log_dir"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
	}

	// Keys whose zero value is a legitimate setting get their defaults only
	// when the key was never set: retag/dedupe false, zero retries and a
	// zero sampling ratio must all survive an explicit assignment
	if !v.IsSet("shopify.retag_enabled") {
		cfg.Shopify.RetagEnabled = true
	}
	if !v.IsSet("sync.dedupe_enabled") {
		cfg.Sync.DedupeEnabled = true
	}
	if !v.IsSet("sync.retry_count") {
		cfg.Sync.RetryCount = 2
	}
	if !v.IsSet("telemetry.sampling_ratio") {
		cfg.Telemetry.SamplingRatio = 1.0
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ordersync"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Shopify.APIVersion == "" {
		cfg.Shopify.APIVersion = "2024-01"
	}
	if cfg.Shopify.ImportTag == "" {
		cfg.Shopify.ImportTag = "import"
	}
	if cfg.Shopify.ProcessedTag == "" {
		cfg.Shopify.ProcessedTag = "processed"
	}
	if cfg.Shopify.Timeout == 0 {
		cfg.Shopify.Timeout = 30 * time.Second
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "ordersync"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 30 * time.Minute
	}
	if cfg.Sync.Concurrency == 0 {
		cfg.Sync.Concurrency = 3
	}
	if cfg.Sync.LogDir == "" {
		cfg.Sync.LogDir = "logs"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "ordersync"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Shopify.Domain == "" {
		return fmt.Errorf("shopify.domain is required")
	}
	if c.Shopify.AccessToken == "" {
		return fmt.Errorf("shopify.access_token is required")
	}
	if c.Shopify.ImportTag == c.Shopify.ProcessedTag {
		return fmt.Errorf("shopify.import_tag and shopify.processed_tag must differ")
	}
	if c.Sync.Concurrency <= 0 {
		return fmt.Errorf("sync.concurrency must be positive")
	}
	if c.Sync.RetryCount < 0 {
		return fmt.Errorf("sync.retry_count cannot be negative")
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("sync.interval must be positive")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
