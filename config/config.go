package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultEnvironment   = "development"
	defaultAdminUsername = "adminTax"
	defaultAdminPassword = "admin!"
)

type Config struct {
	DatabaseURL   string
	Port          string
	Environment   string
	AdminUsername string
	AdminPassword string
}

func (c Config) Production() bool {
	return c.Environment == "production"
}

// ValidationError lists required variables that are missing.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing fields [%s]", strings.Join(e.fields, ", "))
}

// Load reads envFile into the process environment when it exists, then
// builds the Config. Variables already set in the environment win over the
// file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:          getenv("PORT", defaultPort),
		Environment:   getenv("APP_ENV", defaultEnvironment),
		AdminUsername: getenv("ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword: getenv("ADMIN_PASSWORD", defaultAdminPassword),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, &ValidationError{fields: missing}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
