package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/valorisation/coherence/internal/domain"
)

// EnvPrefix prefixes the environment variables read by LoadServerConfig,
// e.g. COHERENCE_ADDR.
const EnvPrefix = "COHERENCE"

// LoadServerConfig reads the HTTP server settings from an optional file and
// COHERENCE_* environment variables. Environment values win over the file.
func LoadServerConfig(path string) (domain.ServerConfig, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("log_level", "info")
	v.SetDefault("batch_concurrency", 8)
	v.SetDefault("config_path", ".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return domain.ServerConfig{}, fmt.Errorf("failed to read server config: %w", err)
		}
	}

	var cfg domain.ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.ServerConfig{}, fmt.Errorf("failed to parse server config: %w", err)
	}

	if _, err := ShutdownTimeout(cfg); err != nil {
		return domain.ServerConfig{}, err
	}
	if cfg.BatchConcurrency < 1 {
		return domain.ServerConfig{}, fmt.Errorf("batch_concurrency must be > 0 (got %d)", cfg.BatchConcurrency)
	}
	return cfg, nil
}

// ShutdownTimeout parses the configured graceful shutdown delay.
func ShutdownTimeout(cfg domain.ServerConfig) (time.Duration, error) {
	d, err := time.ParseDuration(cfg.ShutdownTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid shutdown_timeout %q: %w", cfg.ShutdownTimeout, err)
	}
	return d, nil
}
