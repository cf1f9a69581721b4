package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/internal/shared"
)

type TodoService struct {
	repo    port.TodoRepository
	metrics *shared.AppMetrics
}

// NewTodoService wires the business layer. metrics may be nil (tests).
func NewTodoService(repo port.TodoRepository, metrics *shared.AppMetrics) *TodoService {
	return &TodoService{repo: repo, metrics: metrics}
}

// Create trims the title, defaults the status to pending and stamps both
// timestamps with the same instant, so created_at == updated_at on creation.
func (ts *TodoService) Create(ctx context.Context, params request.CreateTodoRequest) (domain.Todo, error) {
	status := domain.StatusPending

	if params.Status != "" {
		parsed, err := domain.ParseStatus(params.Status)

		if err != nil {
			return domain.Todo{}, err
		}

		status = parsed
	}

	now := time.Now().UTC()

	todo := domain.Todo{
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := ts.repo.Create(ctx, todo)

	if err != nil {
		slog.Error("Repository create failed", "error", err, "title", todo.Title)
		return domain.Todo{}, err
	}

	ts.recordOperation(ctx, "create")

	return created, nil
}

func (ts *TodoService) GetByID(ctx context.Context, id int) (domain.Todo, error) {
	return ts.repo.GetByID(ctx, id)
}

func (ts *TodoService) List(ctx context.Context, skip, limit int) ([]domain.Todo, error) {
	return ts.repo.List(ctx, skip, limit)
}

func (ts *TodoService) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Todo, error) {
	return ts.repo.ListByStatus(ctx, status)
}

func (ts *TodoService) Search(ctx context.Context, term string) ([]domain.Todo, error) {
	return ts.repo.Search(ctx, term)
}

// Update applies only the fields supplied in the payload. Keys absent from
// the request keep their stored values; an explicit null clears the
// description. Returns domain.ErrTodoNotFound without side effects when the
// id does not exist.
func (ts *TodoService) Update(ctx context.Context, id int, params request.UpdateTodoRequest) (domain.Todo, error) {
	todo, err := ts.repo.GetByID(ctx, id)

	if err != nil {
		return domain.Todo{}, err
	}

	if params.Has("title") && params.Title != nil {
		todo.Title = strings.TrimSpace(*params.Title)
	}

	if params.Has("description") {
		todo.Description = params.Description
	}

	if params.Has("status") && params.Status != nil {
		status, err := domain.ParseStatus(*params.Status)

		if err != nil {
			return domain.Todo{}, err
		}

		todo.Status = status
	}

	todo.UpdatedAt = time.Now().UTC()

	updated, err := ts.repo.Update(ctx, todo)

	if err != nil {
		return domain.Todo{}, err
	}

	ts.recordOperation(ctx, "update")

	return updated, nil
}

func (ts *TodoService) Delete(ctx context.Context, id int) error {
	if err := ts.repo.Delete(ctx, id); err != nil {
		return err
	}

	ts.recordOperation(ctx, "delete")

	return nil
}

func (ts *TodoService) Stats(ctx context.Context) (response.StatsResponse, error) {
	total, err := ts.repo.Count(ctx)

	if err != nil {
		return response.StatsResponse{}, err
	}

	grouped, err := ts.repo.CountByStatus(ctx)

	if err != nil {
		return response.StatsResponse{}, err
	}

	byStatus := make(map[string]int, len(grouped))

	for status, count := range grouped {
		byStatus[status.String()] = count
	}

	return response.StatsResponse{Total: total, ByStatus: byStatus}, nil
}

func (ts *TodoService) Ping(ctx context.Context) error {
	return ts.repo.Ping(ctx)
}

func (ts *TodoService) recordOperation(ctx context.Context, operation string) {
	if ts.metrics != nil {
		ts.metrics.RecordTodoOperation(ctx, operation)
	}
}
