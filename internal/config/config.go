package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	WebUI    WebUIConfig    `mapstructure:"webui"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// WebUIConfig contains settings for the web GUI process.
// It is only validated by cmd/webui; the API server ignores it.
type WebUIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	APIBaseURL string `mapstructure:"api_base_url"`
}
