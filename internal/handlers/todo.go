package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkoga/todo-api/internal/dto"
	apperrors "github.com/mkoga/todo-api/internal/errors"
	"github.com/mkoga/todo-api/internal/services"
	"github.com/mkoga/todo-api/internal/utils"
)

type TodoHandler struct {
	todoService *services.TodoService
}

func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// ListTodos returns a filtered, paginated page of todos
func (h *TodoHandler) ListTodos(c *gin.Context) {
	input := services.ListTodosInput{}

	if v := c.Query("userId"); v != "" {
		userID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apperrors.Respond(c, apperrors.NewValidation("userId must be a positive integer", nil))
			return
		}
		input.UserID = &userID
	}
	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			apperrors.Respond(c, apperrors.NewValidation("completed must be a boolean", nil))
			return
		}
		input.Completed = &completed
	}
	if v := c.Query("isExpired"); v != "" {
		expired, err := strconv.ParseBool(v)
		if err != nil {
			apperrors.Respond(c, apperrors.NewValidation("isExpired must be a boolean", nil))
			return
		}
		input.IsExpired = &expired
	}
	if v := c.Query("tag"); v != "" {
		input.Tag = &v
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	todos, total, err := h.todoService.List(input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	resp := dto.ToTodoListResponse(todos, params.Page, params.Limit, total)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       resp.Data,
		"pagination": resp.Pagination,
	})
}

// GetTodo returns a single todo with freshly evaluated expiration
func (h *TodoHandler) GetTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	todo, err := h.todoService.Get(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Success(c, http.StatusOK, dto.ToTodoResponse(*todo))
}

// CreateTodo creates a new todo
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidation("Invalid request body", err.Error()))
		return
	}

	req.Normalize()
	if req.Title == "" {
		apperrors.Respond(c, apperrors.NewValidation("title must not be empty", nil))
		return
	}

	input := services.CreateTodoInput{
		Title:       req.Title,
		UserID:      req.UserID,
		StartedTime: req.StartedTime,
		Duration:    req.Duration,
		Tags:        req.Tags,
	}
	if req.Completed != nil {
		input.Completed = *req.Completed
	}

	todo, err := h.todoService.Create(input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, dto.ToTodoResponse(*todo))
}

// UpdateTodo applies a partial update to a todo
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidation("Invalid request body", err.Error()))
		return
	}

	req.Normalize()
	if !req.HasFields() {
		apperrors.Respond(c, apperrors.NewValidation("At least one field is required", nil))
		return
	}
	if req.Title != nil && *req.Title == "" {
		apperrors.Respond(c, apperrors.NewValidation("title must not be empty", nil))
		return
	}

	todo, err := h.todoService.Update(id, services.UpdateTodoInput{
		Title:       req.Title,
		Completed:   req.Completed,
		UserID:      req.UserID,
		StartedTime: req.StartedTime,
		Duration:    req.Duration,
		Tags:        req.Tags,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Success(c, http.StatusOK, dto.ToTodoResponse(*todo))
}

// DeleteTodo removes a todo
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.todoService.Delete(id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
