package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/kasunkula/middys-assignment/internal/core/aggregation"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const envPrefix = "ORDERSTATS_"

// Config represents the top-level configuration for the order statistics service.
type Config struct {
	Server     ServerConfig     `koanf:"server" yaml:"server"`
	Statistics StatisticsConfig `koanf:"statistics" yaml:"statistics"`
	Log        LogConfig        `koanf:"log" yaml:"log"`
	Journal    JournalConfig    `koanf:"journal" yaml:"journal"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port          int    `koanf:"port" yaml:"port"`
	Host          string `koanf:"host" yaml:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb" yaml:"max_body_size_mb"`
	Mode          string `koanf:"mode" yaml:"mode"` // "debug" or "release"
}

// StatisticsConfig shapes the sliding window.
type StatisticsConfig struct {
	WindowLengthMs   int    `koanf:"window_length_ms" yaml:"window_length_ms"`
	PeriodMs         int32  `koanf:"period_ms" yaml:"period_ms"`
	ConcurrencyModel string `koanf:"concurrency_model" yaml:"concurrency_model"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`   // debug | info | warn | error
	Format string `koanf:"format" yaml:"format"` // text | json
}

// JournalConfig holds the optional PostgreSQL audit journal settings.
type JournalConfig struct {
	Enabled           bool   `koanf:"enabled" yaml:"enabled"`
	DSN               string `koanf:"dsn" yaml:"dsn"`
	MaxOpenConns      int    `koanf:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns      int    `koanf:"max_idle_conns" yaml:"max_idle_conns"`
	AutoMigrate       bool   `koanf:"auto_migrate" yaml:"auto_migrate"`
	BatchSize         int    `koanf:"batch_size" yaml:"batch_size"`
	WorkerCount       int    `koanf:"worker_count" yaml:"worker_count"`
	ChannelBufferSize int    `koanf:"channel_buffer_size" yaml:"channel_buffer_size"`
	FlushInterval     string `koanf:"flush_interval" yaml:"flush_interval"`

	flushInterval time.Duration // set by Validate
}

// FlushIntervalDuration returns the flush interval parsed by Validate.
// It is zero when the journal is disabled.
func (c JournalConfig) FlushIntervalDuration() time.Duration {
	return c.flushInterval
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if c.Statistics.WindowLengthMs <= 0 {
		return fmt.Errorf("statistics.window_length_ms must be > 0")
	}
	if c.Statistics.PeriodMs <= 0 || int(c.Statistics.PeriodMs) > c.Statistics.WindowLengthMs {
		return fmt.Errorf("invalid statistics.period_ms %d (must be 1-%d)", c.Statistics.PeriodMs, c.Statistics.WindowLengthMs)
	}
	if !aggregation.ValidConcurrencyModel(c.Statistics.ConcurrencyModel) {
		return fmt.Errorf("invalid statistics.concurrency_model %q (must be one of %s)",
			c.Statistics.ConcurrencyModel, strings.Join(aggregation.ConcurrencyModels(), ", "))
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q (must be text or json)", c.Log.Format)
	}

	if !c.Journal.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Journal.DSN) == "" {
		return fmt.Errorf("journal.dsn is required when the journal is enabled")
	}
	if c.Journal.MaxOpenConns <= 0 {
		return fmt.Errorf("journal.max_open_conns must be > 0")
	}
	if c.Journal.MaxIdleConns <= 0 {
		return fmt.Errorf("journal.max_idle_conns must be > 0")
	}
	if c.Journal.BatchSize <= 0 {
		return fmt.Errorf("journal.batch_size must be > 0")
	}
	if c.Journal.WorkerCount <= 0 {
		return fmt.Errorf("journal.worker_count must be > 0")
	}
	if c.Journal.ChannelBufferSize <= 0 {
		return fmt.Errorf("journal.channel_buffer_size must be > 0")
	}
	interval, err := time.ParseDuration(c.Journal.FlushInterval)
	if err != nil {
		return fmt.Errorf("invalid journal.flush_interval %q: %w", c.Journal.FlushInterval, err)
	}
	if interval <= 0 {
		return fmt.Errorf("journal.flush_interval must be > 0")
	}
	c.Journal.flushInterval = interval

	return nil
}

// Load parses config from defaults, an optional YAML file and the environment, then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"server.port":                  8080,
		"server.host":                  "0.0.0.0",
		"server.max_body_size_mb":      1,
		"server.mode":                  "release",
		"statistics.window_length_ms":  aggregation.DefaultWindowLengthMs,
		"statistics.period_ms":         aggregation.MaxOrderAgeMs,
		"statistics.concurrency_model": string(aggregation.LockFree),
		"log.level":                    "info",
		"log.format":                   "text",
		"journal.enabled":              false,
		"journal.dsn":                  "",
		"journal.max_open_conns":       10,
		"journal.max_idle_conns":       5,
		"journal.auto_migrate":         true,
		"journal.batch_size":           500,
		"journal.worker_count":         2,
		"journal.channel_buffer_size":  10000,
		"journal.flush_interval":       "1s",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// 2. Load from file
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// 3. Load from environment variables
	// ORDERSTATS_STATISTICS__PERIOD_MS=30000 overrides statistics.period_ms
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dump renders the effective configuration as YAML with credentials redacted.
func (c Config) Dump() (string, error) {
	c.Journal.DSN = redactDSN(c.Journal.DSN)

	out, err := yamlv3.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(out), nil
}

// redactDSN masks the password of a URL-form DSN and hides key=value DSNs entirely.
func redactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "<redacted>"
	}
	return u.Redacted()
}

// NewLogger builds the process logger described by c.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q (must be debug, info, warn or error)", s)
	}
	return level, nil
}
