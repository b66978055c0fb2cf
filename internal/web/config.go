package web

import (
	"encoding/json"
	"os"

	"github.com/mailtrace/internal/config"
)

// Config represents the web server configuration
type Config struct {
	Server   ServerConfig  `json:"server"`
	Features FeatureConfig `json:"features"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// FeatureConfig contains feature toggles
type FeatureConfig struct {
	// PersistenceEnabled turns on Postgres-backed run history.
	PersistenceEnabled bool `json:"persistence_enabled"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a default configuration, with environment
// overrides applied.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: config.GetEnvInt("MAILTRACE_PORT", 8080),
			Host: config.GetEnv("MAILTRACE_HOST", "0.0.0.0"),
		},
		Features: FeatureConfig{
			PersistenceEnabled: config.GetEnvBool("MAILTRACE_PERSISTENCE", false),
		},
	}
}
