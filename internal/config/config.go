// Package config loads the application configuration from layered
// sources: built-in defaults, an optional YAML file, then environment
// variables, highest priority last. The final configuration is
// validated before use.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration for both brian binaries.
type Config struct {
	// APIURL is the base URL of the brian REST API, without the
	// /api/v1 prefix.
	APIURL string `yaml:"api_url"`

	Web     Web     `yaml:"web"`
	Logging Logging `yaml:"logging"`

	// LoadedFrom records where configuration was loaded from, for
	// startup logging.
	LoadedFrom []string `yaml:"-"`
}

// Web configures the server-rendered web frontend.
type Web struct {
	ListenAddr      string        `yaml:"listen_addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	EnableMetrics   bool          `yaml:"enable_metrics"`
	GraphWidth      int           `yaml:"graph_width"`
	GraphHeight     int           `yaml:"graph_height"`
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration the application starts from before
// any file or environment overlay.
func Default() *Config {
	return &Config{
		APIURL: "http://localhost:8000",
		Web: Web{
			ListenAddr:      ":3000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
			EnableMetrics:   true,
			GraphWidth:      960,
			GraphHeight:     700,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty or the file does not exist), and
// environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.LoadedFrom = []string{"defaults"}

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		} else {
			cfg.LoadedFrom = append(cfg.LoadedFrom, path)
		}
	}

	applyEnv(cfg)
	cfg.LoadedFrom = append(cfg.LoadedFrom, "environment")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if val := os.Getenv("BRIAN_API_URL"); val != "" {
		cfg.APIURL = val
	}
	if val := os.Getenv("BRIAN_LISTEN_ADDR"); val != "" {
		cfg.Web.ListenAddr = val
	}
	if val := os.Getenv("BRIAN_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("BRIAN_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}

// Validate checks the configuration for values the application cannot
// run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url must be http or https, got %q", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url has no host: %q", c.APIURL)
	}
	if c.Web.ListenAddr == "" {
		return fmt.Errorf("web.listen_addr must not be empty")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console; got %q", c.Logging.Format)
	}
	return nil
}
