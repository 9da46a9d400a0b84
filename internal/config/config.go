// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/vitam-chat/internal/session"
	"github.com/donaldgifford/vitam-chat/pkg/normalize"
)

// EndpointEnvVar supplies upstream.endpoint when the YAML leaves it empty.
const EndpointEnvVar = "UPSTREAM_WEBHOOK_URL"

// Chat copy defaults, matching the storefront widget.
const (
	DefaultWelcomeMessage = session.DefaultWelcomeMessage
	DefaultErrorMessage   = "Une erreur s'est produite. Veuillez réessayer."
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Upstream      UpstreamConfig      `yaml:"upstream"`
	Chat          ChatConfig          `yaml:"chat"`
	Session       SessionConfig       `yaml:"session"`
	Cart          CartConfig          `yaml:"cart"`
	Database      DatabaseConfig      `yaml:"database"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// UpstreamConfig defines the conversational webhook the gateway forwards to.
type UpstreamConfig struct {
	Endpoint  string            `yaml:"endpoint"`
	Timeout   time.Duration     `yaml:"timeout"`
	Headers   map[string]string `yaml:"headers"`
	RateLimit RateLimitConfig   `yaml:"rate_limit"`
}

// RateLimitConfig defines upstream rate limiting settings. Limiting is on
// unless enabled is set to false.
type RateLimitConfig struct {
	Enabled    *bool   `yaml:"enabled"`
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// IsEnabled reports whether upstream calls are rate limited.
func (r RateLimitConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// ChatConfig holds the user-facing copy and product mapping knobs.
type ChatConfig struct {
	WelcomeMessage  string `yaml:"welcome_message"`
	FallbackText    string `yaml:"fallback_text"`
	PlaceholderName string `yaml:"placeholder_name"`
	IDPrefix        string `yaml:"id_prefix"`
	ErrorMessage    string `yaml:"error_message"`
}

// SessionConfig controls in-memory session lifetime.
type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// CartConfig defines cart behavior.
type CartConfig struct {
	OpenOnAdd bool `yaml:"open_on_add"`
}

// DatabaseConfig defines PostgreSQL connection settings for the exchange log.
type DatabaseConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	Name          string        `yaml:"name"`
	User          string        `yaml:"user"`
	Password      string        `yaml:"password"`
	SSLMode       string        `yaml:"sslmode"`
	PoolSize      int           `yaml:"pool_size"`
	Retention     time.Duration `yaml:"retention"`
	PurgeInterval time.Duration `yaml:"purge_interval"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// TracingConfig defines the OTLP trace exporter.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

// LoadEnv loads KEY=value files into the process environment. Missing files
// are skipped and variables already set are never overridden.
func LoadEnv(files ...string) error {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyUpstreamDefaults(&cfg.Upstream)
	applyChatDefaults(&cfg.Chat)
	applySessionDefaults(&cfg.Session)
	applyDatabaseDefaults(&cfg.Database)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
}

func applyUpstreamDefaults(u *UpstreamConfig) {
	if u.Endpoint == "" {
		u.Endpoint = os.Getenv(EndpointEnvVar)
	}
	if u.Timeout == 0 {
		u.Timeout = 45 * time.Second
	}
	applyRateLimitDefaults(&u.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 10000
	}
}

func applyChatDefaults(c *ChatConfig) {
	if c.WelcomeMessage == "" {
		c.WelcomeMessage = DefaultWelcomeMessage
	}
	if c.FallbackText == "" {
		c.FallbackText = normalize.DefaultFallbackText
	}
	if c.PlaceholderName == "" {
		c.PlaceholderName = normalize.DefaultPlaceholderName
	}
	if c.IDPrefix == "" {
		c.IDPrefix = normalize.DefaultIDPrefix
	}
	if c.ErrorMessage == "" {
		c.ErrorMessage = DefaultErrorMessage
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.IdleTTL == 0 {
		s.IdleTTL = 2 * time.Hour
	}
	if s.SweepInterval == 0 {
		s.SweepInterval = 5 * time.Minute
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
	if d.Retention == 0 {
		d.Retention = 30 * 24 * time.Hour
	}
	if d.PurgeInterval == 0 {
		d.PurgeInterval = 6 * time.Hour
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "vitam-chat"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	// An empty endpoint is allowed: sends fail until one is configured.
	if cfg.Upstream.Endpoint != "" {
		u, err := url.Parse(cfg.Upstream.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf(
				"upstream.endpoint must be an http(s) URL (got %q)", cfg.Upstream.Endpoint,
			))
		}
	}
	if cfg.Upstream.RateLimit.PerSecond < 0 || cfg.Upstream.RateLimit.DailyLimit < 0 {
		errs = append(errs, fmt.Errorf("upstream.rate_limit values must not be negative"))
	}

	if cfg.Session.IdleTTL < 0 {
		errs = append(errs, fmt.Errorf("session.idle_ttl must not be negative"))
	}

	if cfg.Database.Enabled {
		if cfg.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required when database is enabled"))
		}
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required when database is enabled"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required when database is enabled"))
		}
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf(
			"notifications.discord.webhook_url is required when discord is enabled",
		))
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, fmt.Errorf("tracing.endpoint is required when tracing is enabled"))
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1"))
	}

	switch cfg.Logging.Format {
	case "text", "json", "pretty":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json, pretty (got %q)", cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}
