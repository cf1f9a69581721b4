package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

var todoColumns = []string{"id", "title", "description", "status", "created_at", "updated_at"}

type TodoRepository struct {
	db *postgres.DB
}

func NewTodoRepository(db *postgres.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

func scanTodo(row pgx.Row) (domain.Todo, error) {
	var todo domain.Todo
	var status string

	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &status, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return domain.Todo{}, err
	}

	todo.Status = domain.Status(status)

	return todo, nil
}

func (tr *TodoRepository) collect(ctx context.Context, query sq.SelectBuilder) ([]domain.Todo, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

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
	stmt, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns("title", "description", "status", "created_at", "updated_at").
		Values(todo.Title, todo.Description, todo.Status.String(), todo.CreatedAt, todo.UpdatedAt).
		Suffix("RETURNING " + strings.Join(todoColumns, ", ")).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	created, err := scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("Error creating todo", "error", err, "title", todo.Title)
		return domain.Todo{}, err
	}

	return created, nil
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int) (domain.Todo, error) {
	stmt, args, err := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	todo, err := scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) List(ctx context.Context, skip, limit int) ([]domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(skip))

	return tr.collect(ctx, query)
}

func (tr *TodoRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"status": status.String()}).
		OrderBy("id ASC")

	return tr.collect(ctx, query)
}

// Search matches term as a case-insensitive substring of title or
// description, via ILIKE.
func (tr *TodoRepository) Search(ctx context.Context, term string) ([]domain.Todo, error) {
	pattern := "%" + term + "%"

	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
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
		Suffix("RETURNING " + strings.Join(todoColumns, ", ")).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	updated, err := scanTodo(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Todo{}, domain.ErrTodoNotFound
	}

	if err != nil {
		slog.Error("Error updating todo", "error", err, "id", todo.ID)
		return domain.Todo{}, err
	}

	return updated, nil
}

func (tr *TodoRepository) Delete(ctx context.Context, id int) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	tag, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
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

	if err := tr.db.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
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

	rows, err := tr.db.Query(ctx, stmt, args...)

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

func (tr *TodoRepository) Ping(ctx context.Context) error {
	var one int

	return tr.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}
