package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"todoapi/internal/adapter/http/helper"
	"todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/pkg/tracing"
)

const defaultListLimit = 100

type TodoHandler struct {
	svc port.TodoService
}

func NewTodoHandler(svc port.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.CreateTodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendUnprocessableError(c, "request", "invalid request body")
		return
	}

	params.Title = strings.TrimSpace(params.Title)

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Create(ctx, params)

	if err != nil {
		slog.Error("Error creating todo", "error", err)
		helper.SendInternalError(c, "Error creating todo")
		return
	}

	c.JSON(http.StatusCreated, response.NewTodoResponse(todo))
}

func (t *TodoHandler) GetAllTodos(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.todo.GetAllTodos", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	skip, ok := queryInt(c, "skip", 0)

	if !ok {
		return
	}

	limit, ok := queryInt(c, "limit", defaultListLimit)

	if !ok {
		return
	}

	span.SetAttributes(
		attribute.Int("todo.skip", skip),
		attribute.Int("todo.limit", limit),
	)

	todos, err := t.svc.List(ctx, skip, limit)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error listing todos", "error", err)
		helper.SendInternalError(c, "Error listing todos")
		return
	}

	c.JSON(http.StatusOK, response.NewTodoListResponse(todos))
}

func (t *TodoHandler) GetTodoByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c)

	if !ok {
		return
	}

	todo, err := t.svc.GetByID(ctx, id)

	if errors.Is(err, domain.ErrTodoNotFound) {
		helper.SendNotFoundError(c, notFoundMessage(id))
		return
	}

	if err != nil {
		slog.Error("Error getting todo", "error", err, "id", id)
		helper.SendInternalError(c, "Error getting todo")
		return
	}

	c.JSON(http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c)

	if !ok {
		return
	}

	var params request.UpdateTodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendUnprocessableError(c, "request", "invalid request body")
		return
	}

	// Title and status columns are not nullable; an explicit null is a
	// validation failure rather than a clear.
	if params.Has("title") && params.Title == nil {
		helper.SendUnprocessableError(c, "title", "title must not be null")
		return
	}

	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		helper.SendUnprocessableError(c, "title", "title must not be blank")
		return
	}

	if params.Has("status") && params.Status == nil {
		helper.SendUnprocessableError(c, "status", "status must not be null")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Update(ctx, id, params)

	if errors.Is(err, domain.ErrTodoNotFound) {
		helper.SendNotFoundError(c, notFoundMessage(id))
		return
	}

	if err != nil {
		slog.Error("Error updating todo", "error", err, "id", id)
		helper.SendInternalError(c, "Error updating todo")
		return
	}

	c.JSON(http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := pathID(c)

	if !ok {
		return
	}

	err := t.svc.Delete(ctx, id)

	if errors.Is(err, domain.ErrTodoNotFound) {
		helper.SendNotFoundError(c, notFoundMessage(id))
		return
	}

	if err != nil {
		slog.Error("Error deleting todo", "error", err, "id", id)
		helper.SendInternalError(c, "Error deleting todo")
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Message: "Todo deleted successfully"})
}

func (t *TodoHandler) GetTodosByStatus(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := domain.ParseStatus(c.Param("status"))

	if err != nil {
		helper.SendUnprocessableError(c, "status", err.Error())
		return
	}

	todos, err := t.svc.ListByStatus(ctx, status)

	if err != nil {
		slog.Error("Error listing todos by status", "error", err, "status", status)
		helper.SendInternalError(c, "Error listing todos")
		return
	}

	c.JSON(http.StatusOK, response.NewTodoListResponse(todos))
}

func (t *TodoHandler) SearchTodos(c *gin.Context) {
	ctx := c.Request.Context()

	todos, err := t.svc.Search(ctx, c.Param("term"))

	if err != nil {
		slog.Error("Error searching todos", "error", err)
		helper.SendInternalError(c, "Error searching todos")
		return
	}

	c.JSON(http.StatusOK, response.NewTodoListResponse(todos))
}

func (t *TodoHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := t.svc.Stats(ctx)

	if err != nil {
		slog.Error("Error computing stats", "error", err)
		helper.SendInternalError(c, "Error computing stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func notFoundMessage(id int) string {
	return "Todo with id " + strconv.Itoa(id) + " not found"
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))

	if err != nil {
		helper.SendUnprocessableError(c, "id", "id must be an integer")
		return 0, false
	}

	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)

	if raw == "" {
		return fallback, true
	}

	value, err := strconv.Atoi(raw)

	if err != nil || value < 0 {
		helper.SendUnprocessableError(c, name, name+" must be a non-negative integer")
		return 0, false
	}

	return value, true
}
