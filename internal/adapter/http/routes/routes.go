package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/core/model/response"
	"todoapi/internal/shared"
	"todoapi/pkg/config"
)

// SetupRouter builds the full middleware chain plus every route the API
// serves. The /api/todos group mixes static and parameterized siblings, so
// the static segments (status, search, stats) must stay distinct from :id.
func SetupRouter(todoHandler *handler.TodoHandler, healthHandler *handler.HealthHandler, metrics *shared.AppMetrics, logger *shared.Logger, cfg *config.AppConfig) *gin.Engine {
	router := gin.New()

	shared.SetupGinMiddleware(router, "todoapi", metrics, logger)
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	registerRoutes(router, todoHandler, healthHandler)

	return router
}

// SetupRouterForTests wires only the routes, skipping telemetry and CORS.
func SetupRouterForTests(todoHandler *handler.TodoHandler, healthHandler *handler.HealthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	registerRoutes(router, todoHandler, healthHandler)

	return router
}

func registerRoutes(router *gin.Engine, todoHandler *handler.TodoHandler, healthHandler *handler.HealthHandler) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.MessageResponse{Message: "Todo API is running"})
	})

	api := router.Group("/api")
	api.GET("/health", healthHandler.Health)

	todos := api.Group("/todos")
	{
		todos.POST("/", todoHandler.CreateTodo)
		todos.GET("/", todoHandler.GetAllTodos)
		todos.GET("/:id", todoHandler.GetTodoByID)
		todos.PUT("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
		todos.GET("/status/:status", todoHandler.GetTodosByStatus)
		todos.GET("/search/:term", todoHandler.SearchTodos)
		todos.GET("/stats/count", todoHandler.GetStats)
	}
}
