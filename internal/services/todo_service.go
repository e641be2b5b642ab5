package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/mkoga/todo-api/internal/errors"
	"github.com/mkoga/todo-api/internal/logger"
	"github.com/mkoga/todo-api/internal/models"
	"github.com/mkoga/todo-api/internal/repository"
	"gorm.io/gorm"
)

// TodoService handles todo business logic
type TodoService struct {
	todoRepo repository.TodoRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewTodoService creates a new TodoService. now may be nil, in which case
// time.Now is used; injecting a clock keeps expiration deterministic for
// callers that control time.
func NewTodoService(todoRepo repository.TodoRepository, userRepo repository.UserRepository, now func() time.Time) *TodoService {
	if now == nil {
		now = time.Now
	}
	return &TodoService{
		todoRepo: todoRepo,
		userRepo: userRepo,
		now:      now,
	}
}

// ListTodosInput represents filters for listing todos
type ListTodosInput struct {
	UserID    *uint64
	Completed *bool
	Tag       *string
	IsExpired *bool
	Page      int
	PageSize  int
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	Title       string
	Completed   bool
	UserID      *uint64
	StartedTime *time.Time
	Duration    *int
	Tags        []string
}

// UpdateTodoInput represents a partial update; nil fields are left unchanged
type UpdateTodoInput struct {
	Title       *string
	Completed   *bool
	UserID      *uint64
	StartedTime *time.Time
	Duration    *int
	Tags        []string
}

// List returns a page of todos with their expiration freshly evaluated.
// The userId/completed/tag filters are pushed into the store query; the
// isExpired filter is applied in memory to the already-fetched page, and the
// returned total then reflects only the filtered page contents. This mirrors
// the long-standing API behavior; pushing the derived filter into the query
// would change reported totals for existing clients.
func (s *TodoService) List(input ListTodosInput) ([]models.Todo, int64, error) {
	filter := repository.TodoFilter{
		UserID:    input.UserID,
		Completed: input.Completed,
		Tag:       input.Tag,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	todos, total, err := s.todoRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}

	now := s.now()
	for i := range todos {
		s.refreshExpiration(&todos[i], now)
	}

	if input.IsExpired != nil {
		filtered := make([]models.Todo, 0, len(todos))
		for _, todo := range todos {
			if todo.IsExpired == *input.IsExpired {
				filtered = append(filtered, todo)
			}
		}
		todos = filtered
		total = int64(len(filtered))
	}

	return todos, total, nil
}

// Get returns a single todo with its expiration freshly evaluated
func (s *TodoService) Get(id uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(id, "User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Todo", id)
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	s.refreshExpiration(todo, s.now())
	return todo, nil
}

// Create creates a todo, verifying the referenced user exists first so a
// dangling userId never reaches the store. Expiration is computed once from
// the provided start time and duration.
func (s *TodoService) Create(input CreateTodoInput) (*models.Todo, error) {
	if input.UserID != nil {
		if _, err := s.userRepo.FindByID(*input.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewNotFound("User", *input.UserID)
			}
			return nil, fmt.Errorf("failed to verify user: %w", err)
		}
	}

	todo := &models.Todo{
		Title:       input.Title,
		Completed:   input.Completed,
		UserID:      input.UserID,
		StartedTime: input.StartedTime,
		Duration:    input.Duration,
		Tags:        input.Tags,
		IsExpired:   Expired(input.StartedTime, input.Duration, s.now()),
	}
	if todo.Tags == nil {
		todo.Tags = []string{}
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return s.todoRepo.FindByID(todo.ID, "User")
}

// Update applies a partial update. When the start time or duration changes,
// expiration is recomputed from the merged record and persisted in the same
// write.
func (s *TodoService) Update(id uint64, input UpdateTodoInput) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Todo", id)
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if input.UserID != nil {
		if _, err := s.userRepo.FindByID(*input.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewNotFound("User", *input.UserID)
			}
			return nil, fmt.Errorf("failed to verify user: %w", err)
		}
		todo.UserID = input.UserID
	}

	if input.Title != nil {
		todo.Title = *input.Title
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.Tags != nil {
		todo.Tags = input.Tags
	}

	if input.StartedTime != nil || input.Duration != nil {
		if input.StartedTime != nil {
			todo.StartedTime = input.StartedTime
		}
		if input.Duration != nil {
			todo.Duration = input.Duration
		}
		todo.IsExpired = Expired(todo.StartedTime, todo.Duration, s.now())
	}

	if err := s.todoRepo.Update(todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return s.todoRepo.FindByID(todo.ID, "User")
}

// Delete removes a todo after an existence check
func (s *TodoService) Delete(id uint64) error {
	if _, err := s.todoRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("Todo", id)
		}
		return fmt.Errorf("failed to find todo: %w", err)
	}

	if err := s.todoRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return nil
}

// refreshExpiration recomputes the cached expiration flag on a loaded record.
// When the stored flag is stale and the inputs are still present, the
// correction is written back without blocking the caller; a failed correction
// is only logged since the flag is recomputed on every read anyway.
func (s *TodoService) refreshExpiration(todo *models.Todo, now time.Time) {
	current := Expired(todo.StartedTime, todo.Duration, now)
	if current == todo.IsExpired {
		return
	}

	todo.IsExpired = current

	if todo.StartedTime == nil || todo.Duration == nil {
		return
	}

	id := todo.ID
	go func() {
		if err := s.todoRepo.SetExpired(id, current); err != nil {
			logger.Warn("failed to persist expiration correction", "todo_id", id, "error", err)
		}
	}()
}
