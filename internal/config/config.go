// Package config loads the service configuration from resourceapi.yaml
// and environment variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full service configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Descriptors DescriptorsConfig `mapstructure:"descriptors"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address in host:port form
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the storage backend
type DatabaseConfig struct {
	// Driver is "sqlite3" or "pgx"
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig enables the read cache when Addr is set
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

// AuthConfig enables JWT bearer authentication when Secret is set
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
}

// DescriptorsConfig points at the type descriptor definitions file
type DescriptorsConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads resourceapi.yaml from the working directory, applying
// defaults and environment variable overrides
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads configuration from an explicit file path; an empty path
// falls back to resourceapi.yaml in the working directory
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "resources.db")
	v.SetDefault("descriptors.path", "descriptors.yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("resourceapi")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RESOURCEAPI")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file present - defaults and environment apply
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks the configuration for unusable values
func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "sqlite3", "pgx":
	default:
		return fmt.Errorf("database.driver must be sqlite3 or pgx, got %q", cfg.Database.Driver)
	}

	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}
	if cfg.Descriptors.Path == "" {
		return fmt.Errorf("descriptors.path must not be empty")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	return nil
}
