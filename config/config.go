/*
Package config loads server configuration from the environment, with an
optional .env file for local development.
*/
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the server runtime configuration.
type Config struct {
	Port           int
	DBPath         string
	AdminToken     string
	Environment    string
	AllowedOrigins []string
}

// Load reads configuration from the environment. A missing .env is fine;
// every value has a default suitable for local development.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        8080,
		DBPath:      "rates.db",
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		Environment: "development",
		AllowedOrigins: []string{
			"http://localhost:5173", "http://localhost:8080",
		},
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.AllowedOrigins = origins
	}
	return cfg
}
