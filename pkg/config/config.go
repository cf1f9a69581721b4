package config

import "os"

// AppConfig carries everything read from the process environment at startup.
// Each field falls back to the documented default when the variable is unset.
type AppConfig struct {
	// Port the HTTP server listens on. PORT, default "8080".
	Port string

	// DatabaseURL selects the postgres store when non-empty. DATABASE_URL,
	// default "" (sqlite is used instead).
	DatabaseURL string

	// DatabasePath is the sqlite file. DATABASE_PATH, default "database.db".
	DatabasePath string

	// MigrationsPath overrides where golang-migrate looks for SQL files.
	// MIGRATIONS_PATH, default "" (each store adapter picks its own dir).
	MigrationsPath string

	// CORSOrigin is the single front-end origin allowed to make credentialed
	// requests. CORS_ORIGIN, default "http://localhost:3000".
	CORSOrigin string

	// MetricsPort serves the prometheus endpoint. METRICS_PORT, default "9091".
	MetricsPort string

	// OTLPEndpoint receives trace exports. OTLP_ENDPOINT, default "localhost:4317".
	OTLPEndpoint string

	Environment string
}

func Load() *AppConfig {
	cfg := &AppConfig{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabasePath:   getenv("DATABASE_PATH", "database.db"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		CORSOrigin:     getenv("CORS_ORIGIN", "http://localhost:3000"),
		MetricsPort:    getenv("METRICS_PORT", "9091"),
		OTLPEndpoint:   getenv("OTLP_ENDPOINT", "localhost:4317"),
		Environment:    "development",
	}

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
	}

	return cfg
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
