package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"todoapi/internal/adapter/database/postgres"
	postgresrepo "todoapi/internal/adapter/database/postgres/repository"
	"todoapi/internal/adapter/database/sqlite"
	sqliterepo "todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/core/port"
	"todoapi/internal/shared"
	"todoapi/pkg/config"
)

// StartServer opens the store, wires the container and serves until the
// listener fails. Postgres is chosen when DATABASE_URL is set, otherwise the
// embedded sqlite file.
func StartServer(ctx context.Context, cfg *config.AppConfig, metrics *shared.AppMetrics, logger *shared.Logger) error {
	repo, err := openRepository(ctx, cfg)

	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	container := NewContainer(repo, metrics)
	router := routes.SetupRouter(container.TodoHandler, container.HealthHandler, metrics, logger, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

func openRepository(ctx context.Context, cfg *config.AppConfig) (port.TodoRepository, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(ctx, cfg)

		if err != nil {
			return nil, err
		}

		return postgresrepo.NewTodoRepository(db), nil
	}

	db, err := sqlite.NewDB(cfg)

	if err != nil {
		return nil, err
	}

	return sqliterepo.NewTodoRepository(db), nil
}
