package dto

import (
	"strings"
	"time"

	"github.com/mkoga/todo-api/internal/models"
	"github.com/mkoga/todo-api/internal/utils"
)

// CreateTodoRequest is the body of POST /todos. StartedTime binds from an
// ISO 8601 datetime string.
type CreateTodoRequest struct {
	Title       string     `json:"title" binding:"required,max=500"`
	Completed   *bool      `json:"completed"`
	UserID      *uint64    `json:"userId"`
	StartedTime *time.Time `json:"startedTime"`
	Duration    *int       `json:"duration" binding:"omitempty,gt=0"`
	Tags        []string   `json:"tags" binding:"omitempty,dive,min=1,max=50"`
}

// Normalize trims the title.
func (r *CreateTodoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

// UpdateTodoRequest is the body of PATCH /todos/:id. Nil fields were not
// supplied and must be left unchanged.
type UpdateTodoRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=500"`
	Completed   *bool      `json:"completed"`
	UserID      *uint64    `json:"userId"`
	StartedTime *time.Time `json:"startedTime"`
	Duration    *int       `json:"duration" binding:"omitempty,gt=0"`
	Tags        []string   `json:"tags" binding:"omitempty,dive,min=1,max=50"`
}

// Normalize trims a supplied title.
func (r *UpdateTodoRequest) Normalize() {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
	}
}

// HasFields reports whether at least one updatable field was supplied.
func (r *UpdateTodoRequest) HasFields() bool {
	return r.Title != nil || r.Completed != nil || r.UserID != nil ||
		r.StartedTime != nil || r.Duration != nil || r.Tags != nil
}

// UserSummary is the owner excerpt embedded in todo responses
type UserSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TodoResponse represents a todo in API responses
type TodoResponse struct {
	ID          uint64       `json:"id"`
	Title       string       `json:"title"`
	Completed   bool         `json:"completed"`
	UserID      *uint64      `json:"userId"`
	StartedTime *time.Time   `json:"startedTime"`
	Duration    *int         `json:"duration"`
	Tags        []string     `json:"tags"`
	IsExpired   bool         `json:"isExpired"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	User        *UserSummary `json:"user,omitempty"`
}

// TodoListResponse is the payload of GET /todos
type TodoListResponse struct {
	Data       []TodoResponse           `json:"data"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTodoResponse converts a Todo model to TodoResponse
func ToTodoResponse(todo models.Todo) TodoResponse {
	resp := TodoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Completed:   todo.Completed,
		UserID:      todo.UserID,
		StartedTime: todo.StartedTime,
		Duration:    todo.Duration,
		Tags:        todo.Tags,
		IsExpired:   todo.IsExpired,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	// Include owner if preloaded
	if todo.User != nil {
		resp.User = &UserSummary{
			ID:    todo.User.ID,
			Name:  todo.User.Name,
			Email: todo.User.Email,
		}
	}

	return resp
}

// ToTodoListResponse converts a page of todos plus pagination metadata
func ToTodoListResponse(todos []models.Todo, page, limit int, total int64) TodoListResponse {
	items := make([]TodoResponse, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoResponse(todo)
	}

	return TodoListResponse{
		Data:       items,
		Pagination: utils.NewPaginationResponse(page, limit, total),
	}
}
