package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
)

type HealthHandler struct {
	svc port.TodoService
}

func NewHealthHandler(svc port.TodoService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Health reports whether the database answers a round trip.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, response.HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}
