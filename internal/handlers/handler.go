package handlers

import (
	"net/http"

	"task_tracker/internal/logger"
	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints (no token required)
	router.POST("/register", h.register)
	router.POST("/login", h.login)

	// Live activity feed (HTTP upgrade) — same port; token via query
	router.GET("/ws", h.wsFeed)

	h.registerTodoRoutes(router)

	return router
}

// registerTodoRoutes mounts the token-protected endpoints. The todo
// collection lives at the root path, mirroring the public API contract.
func (h *Handler) registerTodoRoutes(r *gin.Engine) {
	protected := r.Group("/", h.userIdMiddleware)
	{
		protected.POST("", h.createTodo)
		protected.GET("", h.listTodos)
		protected.PUT("/:id", h.updateTodo)
		protected.DELETE("/:id", h.deleteTodo)
		protected.GET("/activity", h.getActivity)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
