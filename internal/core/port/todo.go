package port

import (
	"context"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
)

// TodoRepository owns all access to the todos table. Every method is a single
// store round trip; expected absence surfaces as domain.ErrTodoNotFound.
type TodoRepository interface {
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	GetByID(ctx context.Context, id int) (domain.Todo, error)
	List(ctx context.Context, skip, limit int) ([]domain.Todo, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Todo, error)
	Search(ctx context.Context, term string) ([]domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
	Ping(ctx context.Context) error
}

type TodoService interface {
	Create(ctx context.Context, params request.CreateTodoRequest) (domain.Todo, error)
	GetByID(ctx context.Context, id int) (domain.Todo, error)
	List(ctx context.Context, skip, limit int) ([]domain.Todo, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Todo, error)
	Search(ctx context.Context, term string) ([]domain.Todo, error)
	Update(ctx context.Context, id int, params request.UpdateTodoRequest) (domain.Todo, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (response.StatsResponse, error)
	Ping(ctx context.Context) error
}
