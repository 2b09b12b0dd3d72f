// Package config loads bylawkit's service configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/i18n"
	"github.com/reoring/bylawkit/store"
)

// Config is the complete service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Parse  ParseConfig  `yaml:"parse"`
	// Language selects the message catalogue ("en", "fr").
	Language string `yaml:"language"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects the record store. DSN is a file path for sqlite.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ParseConfig holds decode limits for request bodies and files.
type ParseConfig struct {
	// OnDuplicateKey is "warn" or "error".
	OnDuplicateKey string `yaml:"on_duplicate_key"`
	MaxDepth       int    `yaml:"max_depth"`
	MaxBytes       int64  `yaml:"max_bytes"`
}

// DefaultConfig returns a Config with defaults
func DefaultConfig() *Config {
	def := bylawkit.DefaultParseOpt()
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Store: StoreConfig{Driver: store.DriverMemory},
		Log:   LogConfig{Level: "info"},
		Parse: ParseConfig{
			OnDuplicateKey: "error",
			MaxDepth:       def.MaxDepth,
			MaxBytes:       def.MaxBytes,
		},
		Language: "en",
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Load reads path (defaults only when empty), applies BYLAWKIT_* overrides
// from the environment and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"BYLAWKIT_ADDR":             &c.Server.Addr,
		"BYLAWKIT_STORE_DRIVER":     &c.Store.Driver,
		"BYLAWKIT_STORE_DSN":        &c.Store.DSN,
		"BYLAWKIT_LOG_LEVEL":        &c.Log.Level,
		"BYLAWKIT_LANGUAGE":         &c.Language,
		"BYLAWKIT_ON_DUPLICATE_KEY": &c.Parse.OnDuplicateKey,
	}
	for k, dst := range str {
		if v, ok := lookup(k); ok {
			*dst = v
		}
	}
	if v, ok := lookup("BYLAWKIT_LOG_DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BYLAWKIT_LOG_DEVELOPMENT: %w", err)
		}
		c.Log.Development = b
	}
	if v, ok := lookup("BYLAWKIT_MAX_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("BYLAWKIT_MAX_BYTES: %w", err)
		}
		c.Parse.MaxBytes = n
	}
	if v, ok := lookup("BYLAWKIT_MAX_DEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BYLAWKIT_MAX_DEPTH: %w", err)
		}
		c.Parse.MaxDepth = n
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Store.Driver {
	case store.DriverMemory:
	case store.DriverSQLite:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q", store.DriverMemory, store.DriverSQLite)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if sev, ok := bylawkit.ParseSeverity(c.Parse.OnDuplicateKey); !ok || sev == bylawkit.Ignore {
		return fmt.Errorf("parse.on_duplicate_key must be warn or error")
	}
	if c.Parse.MaxDepth <= 0 {
		return fmt.Errorf("parse.max_depth must be positive")
	}
	if c.Parse.MaxBytes <= 0 {
		return fmt.Errorf("parse.max_bytes must be positive")
	}
	known := false
	for _, l := range i18n.Languages() {
		known = known || l == c.Language
	}
	if !known {
		return fmt.Errorf("language %q is not supported", c.Language)
	}
	return nil
}

// ParseOpt converts the parse section. Call after Validate.
func (c *Config) ParseOpt() bylawkit.ParseOpt {
	sev, _ := bylawkit.ParseSeverity(c.Parse.OnDuplicateKey)
	return bylawkit.ParseOpt{
		Strictness: bylawkit.Strictness{OnDuplicateKey: sev},
		MaxDepth:   c.Parse.MaxDepth,
		MaxBytes:   c.Parse.MaxBytes,
	}
}
