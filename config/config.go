// Package config loads the process-wide settings once at startup. The
// resulting Config is read-only and passed explicitly to every component.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything the service reads from its environment.
type Config struct {
	Env      string         `yaml:"env"`
	Port     string         `yaml:"port"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Weather  WeatherConfig  `yaml:"weather"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	URL           string `yaml:"url"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	Issuer    string        `yaml:"issuer"`
}

type WeatherConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the settings used when neither a file nor the environment
// says otherwise.
func Default() *Config {
	return &Config{
		Env:  EnvProduction,
		Port: "3000",
		Database: DatabaseConfig{
			Driver:        "sqlite3",
			URL:           "./tasknest.db",
			MigrationsDir: "./database/migrations",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
			Issuer:   "tasknest",
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.weatherapi.com/v1",
			Timeout: 10 * time.Second,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from the environment. lookup is os.LookupEnv
// outside of tests.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("APP_ENV", &c.Env)
	str("PORT", &c.Port)
	str("DB_DRIVER", &c.Database.Driver)
	str("DBURL", &c.Database.URL)
	str("MIGRATIONS_DIR", &c.Database.MigrationsDir)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("API_KEY", &c.Weather.APIKey)
	str("WEATHER_URL", &c.Weather.BaseURL)

	if v, ok := lookup("WEATHER_TIMEOUT"); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("WEATHER_TIMEOUT: %w", err)
		}
		c.Weather.Timeout = d
	}
	return nil
}

// parseDuration accepts a Go duration string or a bare number of seconds.
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate reports the first missing or inconsistent setting.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required (DBURL)")
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required (JWT_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	if c.Weather.Timeout <= 0 {
		return fmt.Errorf("weather timeout must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}
