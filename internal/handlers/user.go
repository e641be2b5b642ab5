package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkoga/todo-api/internal/dto"
	apperrors "github.com/mkoga/todo-api/internal/errors"
	"github.com/mkoga/todo-api/internal/services"
	"github.com/mkoga/todo-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns all users with their todos
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Success(c, http.StatusOK, users)
}

// GetUser returns a single user with their todos
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Success(c, http.StatusOK, user)
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidation("Invalid request body", err.Error()))
		return
	}

	req.Normalize()
	if req.Name == "" {
		apperrors.Respond(c, apperrors.NewValidation("name must not be empty", nil))
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Config: req.Config,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, user)
}

// UpdateUser applies a partial update to a user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidation("Invalid request body", err.Error()))
		return
	}

	req.Normalize()
	if !req.HasFields() {
		apperrors.Respond(c, apperrors.NewValidation("At least one field is required", nil))
		return
	}
	if req.Name != nil && *req.Name == "" {
		apperrors.Respond(c, apperrors.NewValidation("name must not be empty", nil))
		return
	}

	user, err := h.userService.Update(id, services.UpdateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Config: req.Config,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	utils.Success(c, http.StatusOK, user)
}

// DeleteUser removes a user and all of their todos
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
