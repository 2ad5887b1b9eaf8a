package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/tffedibot/fedibot/internal/notify"
)

// Default values for configuration fields.
const (
	DefaultDatabasePath     = "data.db"
	DefaultMigrationsPrefix = "fedibot.store.Migrations"
	DefaultBusyTimeout      = 5 * time.Second
	DefaultLogLevel         = "info"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FEDIBOT_"

// ErrInvalidConfig indicates a configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration loaded from file, environment, and flags.
type Config struct {
	DatabasePath     string
	MigrationsPrefix string
	BusyTimeout      time.Duration
	LogLevel         string
	SteamUsername    string
	SteamPassword    string
	FediURL          string
	FediAccessToken  string
	ContentFilter    map[string][]string // Category name to case-insensitive regexes
}

// yamlConfig is the raw YAML file representation with string durations.
type yamlConfig struct {
	DatabasePath     string              `yaml:"database_path"`
	MigrationsPrefix string              `yaml:"migrations_prefix"`
	BusyTimeout      string              `yaml:"busy_timeout"`
	LogLevel         string              `yaml:"log_level"`
	SteamUsername    string              `yaml:"steam_username"`
	SteamPassword    string              `yaml:"steam_password"`
	FediURL          string              `yaml:"fedi_url"`
	FediAccessToken  string              `yaml:"fedi_access_token"`
	ContentFilter    map[string][]string `yaml:"content_filter"`
}

// New returns a Config populated with default values.
func New() *Config {
	return &Config{
		DatabasePath:     DefaultDatabasePath,
		MigrationsPrefix: DefaultMigrationsPrefix,
		BusyTimeout:      DefaultBusyTimeout,
		LogLevel:         DefaultLogLevel,
	}
}

// Load reads a YAML configuration file and returns a Config.
// If allowMissing is true and the file does not exist, defaults are returned.
func Load(path string, allowMissing bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return New(), nil
		}

		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return fromYAML(&raw)
}

// fromYAML converts the raw YAML representation to a Config with defaults applied.
func fromYAML(raw *yamlConfig) (*Config, error) {
	cfg := New()

	if raw.DatabasePath != "" {
		cfg.DatabasePath = raw.DatabasePath
	}

	if raw.MigrationsPrefix != "" {
		cfg.MigrationsPrefix = raw.MigrationsPrefix
	}

	if raw.BusyTimeout != "" {
		d, err := time.ParseDuration(raw.BusyTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing busy_timeout %q: %w", raw.BusyTimeout, err)
		}

		cfg.BusyTimeout = d
	}

	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}

	cfg.SteamUsername = raw.SteamUsername
	cfg.SteamPassword = raw.SteamPassword
	cfg.FediURL = raw.FediURL
	cfg.FediAccessToken = raw.FediAccessToken
	cfg.ContentFilter = raw.ContentFilter

	return cfg, nil
}

// MergeEnv overrides config fields from FEDIBOT_* environment variables.
func MergeEnv(cfg *Config) {
	strs := map[string]*string{
		"DATABASE_PATH":     &cfg.DatabasePath,
		"MIGRATIONS_PREFIX": &cfg.MigrationsPrefix,
		"LOG_LEVEL":         &cfg.LogLevel,
		"STEAM_USERNAME":    &cfg.SteamUsername,
		"STEAM_PASSWORD":    &cfg.SteamPassword,
		"FEDI_URL":          &cfg.FediURL,
		"FEDI_ACCESS_TOKEN": &cfg.FediAccessToken,
	}

	for name, field := range strs {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*field = v
		}
	}

	if v := os.Getenv(EnvPrefix + "BUSY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.BusyTimeout = d
		}
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs error

	if strings.TrimSpace(c.DatabasePath) == "" {
		errs = multierr.Append(errs, errors.New("database_path is empty"))
	}

	if c.MigrationsPrefix == "" {
		errs = multierr.Append(errs, errors.New("migrations_prefix is empty"))
	}

	if c.BusyTimeout < 0 {
		errs = multierr.Append(errs, fmt.Errorf("busy_timeout %s is negative", c.BusyTimeout))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("log_level: %w", err))
	}

	if c.FediURL != "" {
		if u, err := url.Parse(c.FediURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = multierr.Append(errs, fmt.Errorf("fedi_url %q is not an absolute URL", c.FediURL))
		}
	}

	if _, err := notify.NewFilter(c.ContentFilter); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("content_filter: %w", err))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}

	return nil
}
