package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Package-level validator instance for config validation.
var validate = validator.New()

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files and use
// the TASKBOARD_ prefix with underscores for nesting, e.g. TASKBOARD_SERVER_PORT
// maps to server.port.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults that are safe everywhere. Database URL has no default on
	// purpose: a missing value must be a fatal startup error.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("webui.listen_addr", ":8081")
	v.SetDefault("webui.api_base_url", "http://localhost:8080")

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables may cover everything.
	}

	// Environment variables override file values.
	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper only picks up env-only keys it has seen; bind them explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"webui.listen_addr",
		"webui.api_base_url",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
