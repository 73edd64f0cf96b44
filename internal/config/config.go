// Package config loads swimlog settings from a YAML file, then the
// environment. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the resolved runtime configuration.
type Config struct {
	Storage StorageConfig
	HTTP    HTTPConfig
	Log     LogConfig
}

type StorageConfig struct {
	Driver      string
	Path        string
	PostgresURL string
}

type HTTPConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigin   string
}

type LogConfig struct {
	Level  string
	Format string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   defaultDBPath(),
		},
		HTTP: HTTPConfig{
			Address:      ":2022",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			CORSOrigin:   "*",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/swimlog/config.yaml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "swimlog", "config.yaml")
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "swimlog.db"
	}
	return filepath.Join(dir, "swimlog", "swimlog.db")
}

type yamlConfig struct {
	Storage struct {
		Driver      string `yaml:"driver"`
		Path        string `yaml:"path"`
		PostgresURL string `yaml:"postgres_url"`
	} `yaml:"storage"`
	HTTP struct {
		Address      string `yaml:"address"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
		IdleTimeout  string `yaml:"idle_timeout"`
		CORSOrigin   string `yaml:"cors_origin"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// is not an error. Environment overrides are not applied; see Load.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	setString(&cfg.Storage.Driver, yc.Storage.Driver)
	setString(&cfg.Storage.Path, expandHome(yc.Storage.Path))
	setString(&cfg.Storage.PostgresURL, yc.Storage.PostgresURL)
	setString(&cfg.HTTP.Address, yc.HTTP.Address)
	setString(&cfg.HTTP.CORSOrigin, yc.HTTP.CORSOrigin)
	setString(&cfg.Log.Level, yc.Log.Level)
	setString(&cfg.Log.Format, yc.Log.Format)

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"read_timeout", yc.HTTP.ReadTimeout, &cfg.HTTP.ReadTimeout},
		{"write_timeout", yc.HTTP.WriteTimeout, &cfg.HTTP.WriteTimeout},
		{"idle_timeout", yc.HTTP.IdleTimeout, &cfg.HTTP.IdleTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s format %q: %w", d.name, d.value, err)
		}
		*d.dst = parsed
	}

	return cfg, nil
}

// Load reads the file at path, applies SWIMLOG_* environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SWIMLOG_* environment variables.
func (c *Config) ApplyEnv() {
	c.Storage.Driver = getEnv("SWIMLOG_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.Path = expandHome(getEnv("SWIMLOG_DB_PATH", c.Storage.Path))
	c.Storage.PostgresURL = getEnv("SWIMLOG_POSTGRES_URL", c.Storage.PostgresURL)
	c.HTTP.Address = getEnv("SWIMLOG_HTTP_ADDRESS", c.HTTP.Address)
	c.HTTP.ReadTimeout = getDurationEnv("SWIMLOG_HTTP_READ_TIMEOUT", c.HTTP.ReadTimeout)
	c.HTTP.WriteTimeout = getDurationEnv("SWIMLOG_HTTP_WRITE_TIMEOUT", c.HTTP.WriteTimeout)
	c.HTTP.IdleTimeout = getDurationEnv("SWIMLOG_HTTP_IDLE_TIMEOUT", c.HTTP.IdleTimeout)
	c.HTTP.CORSOrigin = getEnv("SWIMLOG_CORS_ORIGIN", c.HTTP.CORSOrigin)
	c.Log.Level = getEnv("SWIMLOG_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("SWIMLOG_LOG_FORMAT", c.Log.Format)
}

// Validate checks the resolved configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.PostgresURL == "" {
			return errors.New("storage.postgres_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q (want %s or %s)", c.Storage.Driver, DriverSQLite, DriverPostgres)
	}
	if c.HTTP.Address == "" {
		return errors.New("http.address must not be empty")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
