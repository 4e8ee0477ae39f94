package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"task_tracker/internal/models"
	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgMissingTodoFields = "title and description are required"
	msgTodoNotFound      = "todo not found"
)

type createTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// updateTodoRequest carries a partial update; absent fields keep their
// previous values.
type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"` // ACTIVE | COMPLETED
}

// respondTodoError translates service errors for the single-todo routes.
// Ownership failures return 401 (not 403) to match the public contract.
func (h *Handler) respondTodoError(c *gin.Context, err error, logKey string) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": msgTodoNotFound})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": service.ErrForbidden.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgInternal})
	}
}

// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body  createTodoRequest  true  "Todo payload"
// @Success      201  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       / [post]
// @Security     BearerAuth
func (h *Handler) createTodo(c *gin.Context) {
	var input createTodoRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": msgMissingTodoFields})
		return
	}

	todo, err := h.services.Todos.Create(c.Request.Context(), userID(c), input.Title, input.Description)
	if err != nil {
		h.respondTodoError(c, err, "todo_create_failed")
		return
	}

	c.JSON(http.StatusCreated, todo)
}

// @Summary      List todos
// @Description  Owner-scoped, paginated (1-indexed), optional substring search over title and description (case-insensitive).
// @Tags         todos
// @Produce      json
// @Param        page    query  int     false  "Page number (default 1)"
// @Param        limit   query  int     false  "Page size (default 10, max 100)"
// @Param        search  query  string  false  "Substring filter"
// @Success      200  {object}  map[string]interface{}  "todos, total, pages, current_page"
// @Failure      401  {object}  map[string]string
// @Router       / [get]
// @Security     BearerAuth
func (h *Handler) listTodos(c *gin.Context) {
	params := parseListQuery(c.Query("page"), c.Query("limit"), c.Query("search"))

	page, err := h.services.Todos.List(c.Request.Context(), userID(c), params)
	if err != nil {
		h.respondTodoError(c, err, "todo_list_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"todos":        page.Items,
		"total":        page.Total,
		"pages":        page.Pages,
		"current_page": page.CurrentPage,
	})
}

// @Summary      Update a todo
// @Description  Partial update; absent fields retain previous values. Only the owner may update.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Todo id"
// @Param        body  body  updateTodoRequest  true  "Fields to change"
// @Success      200  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTodo(c *gin.Context) {
	var input updateTodoRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid body: " + err.Error()})
		return
	}

	params := service.UpdateParams{
		Title:       input.Title,
		Description: input.Description,
	}
	if input.Status != nil {
		status := models.TodoStatus(strings.ToUpper(strings.TrimSpace(*input.Status)))
		params.Status = &status
	}

	todo, err := h.services.Todos.Update(c.Request.Context(), c.Param("id"), userID(c), params)
	if err != nil {
		h.respondTodoError(c, err, "todo_update_failed")
		return
	}

	c.JSON(http.StatusOK, todo)
}

// @Summary      Delete a todo
// @Description  Permanent removal; only the owner may delete.
// @Tags         todos
// @Param        id  path  string  true  "Todo id"
// @Success      204  "no content"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTodo(c *gin.Context) {
	if err := h.services.Todos.Delete(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		h.respondTodoError(c, err, "todo_delete_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// parseListQuery clamps raw pagination input; bad values fall back to
// defaults rather than erroring.
func parseListQuery(rawPage, rawLimit, rawSearch string) service.ListParams {
	page := 1
	if v, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && v > 0 {
		page = v
	}

	limit := 0 // service applies the default
	if v, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && v > 0 {
		limit = v
	}

	return service.ListParams{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(rawSearch),
	}
}
