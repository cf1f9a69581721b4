package http

import (
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/internal/shared"
)

// Container holds the handlers the router needs, built from a repository.
type Container struct {
	TodoHandler   *handler.TodoHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(repo port.TodoRepository, metrics *shared.AppMetrics) *Container {
	svc := service.NewTodoService(repo, metrics)

	return &Container{
		TodoHandler:   handler.NewTodoHandler(svc),
		HealthHandler: handler.NewHealthHandler(svc),
	}
}
