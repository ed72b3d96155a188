package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Overseerr OverseerrConfig `mapstructure:"overseerr"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Account   AccountConfig   `mapstructure:"account"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// OverseerrConfig holds the media-request service connection settings.
// URL and APIKey may be left empty here, in which case they are resolved
// from the persisted settings store at startup.
type OverseerrConfig struct {
	URL           string `mapstructure:"url"`
	APIKey        string `mapstructure:"api_key"`
	Timeout       int    `mapstructure:"timeout"` // seconds
	VerboseErrors bool   `mapstructure:"verbose_errors"`
	HealthCron    string `mapstructure:"health_cron"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// AccountConfig identifies the account whose credentials are looked up in
// the fallback settings store.
type AccountConfig struct {
	ID string `mapstructure:"id"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8484,
		},
		Overseerr: OverseerrConfig{
			Timeout:    10,
			HealthCron: "*/15 * * * *",
		},
		Database: DatabaseConfig{
			Path: "./data/askarr.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Account: AccountConfig{
			ID: "default",
		},
	}
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.askarr")
	}

	// Environment variable settings
	v.SetEnvPrefix("ASKARR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults + env vars
	}

	// Unmarshal into struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8484)

	// Overseerr defaults
	v.SetDefault("overseerr.url", "")
	v.SetDefault("overseerr.api_key", "")
	v.SetDefault("overseerr.timeout", 10)
	v.SetDefault("overseerr.verbose_errors", false)
	v.SetDefault("overseerr.health_cron", "*/15 * * * *")

	// Database defaults
	v.SetDefault("database.path", "./data/askarr.db")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.path", "")

	// Account defaults
	v.SetDefault("account.id", "default")
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
