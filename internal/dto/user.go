package dto

import (
	"strings"

	"github.com/mkoga/todo-api/internal/models"
)

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Name   string             `json:"name" binding:"required,max=255"`
	Email  string             `json:"email" binding:"required,email"`
	Config *models.UserConfig `json:"config"`
}

// Normalize trims the name and lowercases the email before validation
// against the service layer.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateUserRequest is the body of PATCH /users/:id. Nil fields were not
// supplied and must be left unchanged.
type UpdateUserRequest struct {
	Name   *string            `json:"name" binding:"omitempty,max=255"`
	Email  *string            `json:"email" binding:"omitempty,email"`
	Config *models.UserConfig `json:"config"`
}

// Normalize trims and lowercases supplied fields.
func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	if r.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &normalized
	}
}

// HasFields reports whether at least one updatable field was supplied.
func (r *UpdateUserRequest) HasFields() bool {
	return r.Name != nil || r.Email != nil || r.Config != nil
}
