package repository

import (
	"github.com/mkoga/todo-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindAll returns all users with their todos preloaded
	FindAll() ([]models.User, error)

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete removes a user and all of their todos
	Delete(id uint64) error
}

// TodoFilter holds store-side filtering and pagination options for listing todos
type TodoFilter struct {
	UserID    *uint64
	Completed *bool
	Tag       *string
	Page      int
	PageSize  int
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByID finds a todo by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Todo, error)

	// List retrieves todos matching the filter, newest first, with the total
	// count of matching rows before pagination
	List(filter TodoFilter) ([]models.Todo, int64, error)

	// Update persists changes to a todo
	Update(todo *models.Todo) error

	// SetExpired corrects the cached expiration flag without touching
	// any other column or the update timestamp
	SetExpired(id uint64, expired bool) error

	// Delete removes a todo
	Delete(id uint64) error
}
