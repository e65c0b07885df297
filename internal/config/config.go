package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/launchkit/launchkit/internal/logger"
	"github.com/launchkit/launchkit/internal/supervisor"
)

// Config is the launchkit.toml file. Every knob has a default that
// reproduces the stock supervision timings, so no file is required.
type Config struct {
	LogLevel   string          `mapstructure:"log_level"`
	UserStacks string          `mapstructure:"user_stacks"` // optional stacks.yaml path
	HistoryDSN string          `mapstructure:"history_dsn"` // optional run-history sink
	Readiness  ReadinessConfig `mapstructure:"readiness"`
	Stop       StopConfig      `mapstructure:"stop"`
	Log        logger.Config   `mapstructure:"log"`
	Server     ServerConfig    `mapstructure:"server"`
	Metrics    MetricsConfig   `mapstructure:"metrics"`
}

type ReadinessConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type StopConfig struct {
	Grace         time.Duration `mapstructure:"grace"`
	CleanupGrace  time.Duration `mapstructure:"cleanup_grace"`
	RestartSettle time.Duration `mapstructure:"restart_settle"`
}

// ServerConfig controls the optional local status API.
type ServerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Listen   string `mapstructure:"listen"`
	BasePath string `mapstructure:"base_path"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("readiness.attempts", 30)
	v.SetDefault("readiness.interval", "500ms")
	v.SetDefault("readiness.timeout", "1s")
	v.SetDefault("stop.grace", "5s")
	v.SetDefault("stop.cleanup_grace", "3s")
	v.SetDefault("stop.restart_settle", "2s")
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.listen", "127.0.0.1:7070")
	v.SetDefault("server.base_path", "/api")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", "127.0.0.1:9090")
}

// Load reads configuration from path, or searches the working directory
// and ~/.launchkit when path is empty. A missing file yields defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("launchkit")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".launchkit"))
		}
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// SupervisorConfig maps the file settings onto the supervision timings.
func (c *Config) SupervisorConfig() supervisor.Config {
	return supervisor.Config{
		ReadinessAttempts: c.Readiness.Attempts,
		ReadinessInterval: c.Readiness.Interval,
		ProbeTimeout:      c.Readiness.Timeout,
		StopGrace:         c.Stop.Grace,
		CleanupGrace:      c.Stop.CleanupGrace,
		RestartSettle:     c.Stop.RestartSettle,
	}
}
