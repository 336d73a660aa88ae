package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pulsewatch-systems/pulsewatch/internal/models"
)

// Config holds all configuration for the pulsewatch service
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration for API mode
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// MonitorConfig holds the default detection parameters. CLI flags and API
// query parameters override these per invocation.
type MonitorConfig struct {
	ExpectedInterval time.Duration `mapstructure:"expected_interval"`
	AllowedMisses    int           `mapstructure:"allowed_misses"`
	Tolerance        time.Duration `mapstructure:"tolerance"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Detection converts the configured defaults into core run parameters
func (c MonitorConfig) Detection() models.MonitorConfig {
	return models.MonitorConfig{
		ExpectedInterval: c.ExpectedInterval,
		AllowedMisses:    c.AllowedMisses,
		Tolerance:        c.Tolerance,
	}
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8086)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("monitor.expected_interval", "60s")
	v.SetDefault("monitor.allowed_misses", 3)
	v.SetDefault("monitor.tolerance", "0s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read from config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override file config
	v.SetEnvPrefix("PULSEWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
