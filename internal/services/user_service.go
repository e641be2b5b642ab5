package services

import (
	"errors"
	"fmt"

	apperrors "github.com/mkoga/todo-api/internal/errors"
	"github.com/mkoga/todo-api/internal/models"
	"github.com/mkoga/todo-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Name   string
	Email  string
	Config *models.UserConfig
}

// UpdateUserInput represents a partial update; nil fields are left unchanged
type UpdateUserInput struct {
	Name   *string
	Email  *string
	Config *models.UserConfig
}

// List returns all users with their todos
func (s *UserService) List() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns a user with their todos
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Todos")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Create creates a user, rejecting emails that are already taken
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	if err := s.ensureEmailAvailable(input.Email, 0); err != nil {
		return nil, err
	}

	user := &models.User{
		Name:   input.Name,
		Email:  input.Email,
		Config: input.Config,
	}

	if err := s.userRepo.Create(user); err != nil {
		// A concurrent create can still hit the unique index after the
		// availability check passed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict(fmt.Sprintf("User with email %s already exists", input.Email))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update applies a partial update, enforcing email uniqueness when the email
// changes. Updating a user to their own current email is not a conflict.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email != nil && *input.Email != user.Email {
		if err := s.ensureEmailAvailable(*input.Email, id); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Config != nil {
		user.Config = input.Config
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict(fmt.Sprintf("User with email %s already exists", user.Email))
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes a user and cascades to their todos
func (s *UserService) Delete(id uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("User", id)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// ensureEmailAvailable fails with a conflict if the email belongs to a user
// other than excludeID.
func (s *UserService) ensureEmailAvailable(email string, excludeID uint64) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != excludeID {
		return apperrors.NewConflict(fmt.Sprintf("User with email %s already exists", email))
	}
	return nil
}
