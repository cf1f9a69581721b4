package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/tracing"
)

var todoColumns = []string{"id", "title", "description", "status", "created_at", "updated_at"}

type TodoRepository struct {
	db *sqlite.DB
}

func NewTodoRepository(db *sqlite.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var todo domain.Todo
	var description sql.NullString
	var status string

	err := row.Scan(&todo.ID, &todo.Title, &description, &status, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return domain.Todo{}, err
	}

	if description.Valid {
		todo.Description = &description.String
	}

	todo.Status = domain.Status(status)

	return todo, nil
}

func (tr *TodoRepository) collect(ctx context.Context, query sq.SelectBuilder) ([]domain.Todo, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.todos.Create", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("todo.title", todo.Title),
	})

	defer span.End()

	stmt, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("title", "description", "status", "created_at", "updated_at").
		Values(todo.Title, todo.Description, todo.Status.String(), todo.CreatedAt, todo.UpdatedAt).
		ToSql()

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Insert failed", "error", err, "title", todo.Title)
		return domain.Todo{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.Todo{}, err
	}

	span.SetAttributes(attribute.Int64("todo.id", id))

	return tr.GetByID(ctx, int(id))
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	todo, err := scanTodo(tr.db.QueryRowContext(ctx, stmt, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		slog.Error("Error getting todo by id", "error", err, "id", id)
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) List(ctx context.Context, skip, limit int) ([]domain.Todo, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.todos.List", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("todo.skip", skip),
		attribute.Int("todo.limit", limit),
	})

	defer span.End()

	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(skip))

	todos, err := tr.collect(ctx, query)

	if err != nil {
		tracing.AddSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(todos)))

	return todos, nil
}

func (tr *TodoRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"status": status.String()}).
		OrderBy("id ASC")

	return tr.collect(ctx, query)
}

// Search matches term as a case-insensitive substring of title or
// description. The policy is fixed here rather than left to collation.
func (tr *TodoRepository) Search(ctx context.Context, term string) ([]domain.Todo, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Or{
			sq.Like{"LOWER(title)": pattern},
			sq.Like{"LOWER(description)": pattern},
		}).
		OrderBy("id ASC")

	return tr.collect(ctx, query)
}

func (tr *TodoRepository) Update(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Update("todos").
		Set("title", todo.Title).
		Set("description", todo.Description).
		Set("status", todo.Status.String()).
		Set("updated_at", todo.UpdatedAt).
		Where(sq.Eq{"id": todo.ID}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating todo", "error", err, "id", todo.ID)
		return domain.Todo{}, err
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return domain.Todo{}, err
	}

	if rowsAffected == 0 {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	return tr.GetByID(ctx, todo.ID)
}

func (tr *TodoRepository) Delete(ctx context.Context, id int) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrTodoNotFound
	}

	return nil
}

func (tr *TodoRepository) Count(ctx context.Context) (int, error) {
	stmt, args, err := tr.db.QueryBuilder.Select("COUNT(*)").From("todos").ToSql()

	if err != nil {
		return 0, err
	}

	var count int

	if err := tr.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (tr *TodoRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	stmt, args, err := tr.db.QueryBuilder.Select("status", "COUNT(*)").
		From("todos").
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	counts := map[domain.Status]int{}

	for rows.Next() {
		var status string
		var count int

		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}

		counts[domain.Status(status)] = count
	}

	return counts, rows.Err()
}

// Ping runs a trivial round-trip query so the health check exercises the
// full driver path, not just the pool.
func (tr *TodoRepository) Ping(ctx context.Context) error {
	var one int

	return tr.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}
