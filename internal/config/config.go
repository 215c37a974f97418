// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"pricebook/internal/errors"
	"pricebook/internal/logging"
)

// Environment variables that override file configuration
const (
	EnvPricebookPath = "PRICEBOOK_PATH"
	EnvServerAddr    = "PRICEBOOK_ADDR"
	EnvLogLevel      = "PRICEBOOK_LOG_LEVEL"
	EnvCurrency      = "PRICEBOOK_CURRENCY"
	EnvFormat        = "PRICEBOOK_FORMAT"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricebook locates the price table
	Pricebook PricebookConfig `json:"pricebook"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP API configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricebookConfig contains price table settings
type PricebookConfig struct {
	// Path is the price table document (.json, .yaml, .hcl, .csv, .html)
	Path string `json:"path"`

	// DefaultCurrency is shown when a country has no currency
	DefaultCurrency string `json:"default_currency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (text, json, markdown)
	DefaultFormat string `json:"default_format"`

	// NoColor disables ANSI colors in text output
	NoColor bool `json:"no_color"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricebook: PricebookConfig{
			Path:            filepath.Join("data", "pricebook.json"),
			DefaultCurrency: "USD",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
		},
		Server: ServerConfig{
			Addr:                   ":8080",
			ReadTimeoutSeconds:     10,
			ShutdownTimeoutSeconds: 5,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the per-user configuration file path
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pricebook.json"
	}
	return filepath.Join(homeDir, ".pricebook.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.IO(path, err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("invalid config file "+path, err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.IO(dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Internal("failed to encode config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.IO(path, err)
	}
	return nil
}

// LoadEnvFiles loads KEY=VALUE files into the process environment.
// Missing files are skipped; variables already set are not overridden.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(errors.TypeConfig, err, "invalid env file %s", f)
		}
	}
	return nil
}

// ApplyEnv overrides configuration values from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPricebookPath); v != "" {
		c.Pricebook.Path = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		c.Pricebook.DefaultCurrency = strings.ToUpper(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Output.DefaultFormat = v
	}
}

// Validate checks the configuration for unusable values and normalizes
// the output format name.
func (c *Config) Validate() error {
	format := strings.ToLower(strings.TrimSpace(c.Output.DefaultFormat))
	if format == "md" {
		format = "markdown"
	}
	switch format {
	case "text", "json", "markdown":
		c.Output.DefaultFormat = format
	default:
		return errors.Config(fmt.Sprintf("unknown output format %q", c.Output.DefaultFormat), nil)
	}
	if c.Pricebook.Path == "" {
		return errors.Config("pricebook.path is required", nil)
	}
	if c.Server.Addr == "" {
		return errors.Config("server.addr is required", nil)
	}
	if c.Server.ReadTimeoutSeconds < 0 || c.Server.ShutdownTimeoutSeconds < 0 {
		return errors.Config("server timeouts must not be negative", nil)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
