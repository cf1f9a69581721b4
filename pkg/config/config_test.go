package config_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"todoapi/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("METRICS_PORT", "")
	t.Setenv("OTLP_ENDPOINT", "")
	t.Setenv("GIN_MODE", "")

	cfg := config.Load()

	Expect(cfg.Port).To(Equal("8080"))
	Expect(cfg.DatabaseURL).To(BeEmpty())
	Expect(cfg.DatabasePath).To(Equal("database.db"))
	Expect(cfg.CORSOrigin).To(Equal("http://localhost:3000"))
	Expect(cfg.MetricsPort).To(Equal("9091"))
	Expect(cfg.OTLPEndpoint).To(Equal("localhost:4317"))
	Expect(cfg.Environment).To(Equal("development"))
}

func TestLoadFromEnvironment(t *testing.T) {
	RegisterTestingT(t)

	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/todos")
	t.Setenv("CORS_ORIGIN", "https://app.example.com")
	t.Setenv("GIN_MODE", "release")

	cfg := config.Load()

	Expect(cfg.Port).To(Equal("9000"))
	Expect(cfg.DatabaseURL).To(Equal("postgres://localhost/todos"))
	Expect(cfg.CORSOrigin).To(Equal("https://app.example.com"))
	Expect(cfg.Environment).To(Equal("production"))
}
