// Package config provides application configuration.
package config

import (
	"os"
	"path/filepath"
)

// Config holds the application configuration.
type Config struct {
	// Server settings
	Port string
	Host string

	// Database settings
	DBPath string

	// Demo mode seeds deterministic fixture data at startup.
	DemoMode bool

	// Plaid settings for the optional linked-balance feed. When ClientID is
	// empty the deterministic mock provider is used instead.
	PlaidClientID    string
	PlaidSecret      string
	PlaidEnvironment string
	PlaidAccessToken string

	// Environment
	IsDevelopment bool
}

// New creates a new Config with values from environment variables or defaults.
func New() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Host:             getEnv("HOST", "localhost"),
		DBPath:           getEnv("DB_PATH", filepath.Join("data", "networth.db")),
		DemoMode:         getEnv("DEMO_MODE", "true") == "true",
		PlaidClientID:    getEnv("PLAID_CLIENT_ID", ""),
		PlaidSecret:      getEnv("PLAID_SECRET", ""),
		PlaidEnvironment: getEnv("PLAID_ENV", "sandbox"),
		PlaidAccessToken: getEnv("PLAID_ACCESS_TOKEN", ""),
		IsDevelopment:    getEnv("ENV", "development") == "development",
	}
}

// Address returns the full address to bind the server to.
func (c *Config) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
