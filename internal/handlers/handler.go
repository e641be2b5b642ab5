package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mkoga/todo-api/internal/errors"
)

// parseID parses the :id path parameter. Anything but an unsigned decimal
// integer is rejected with a validation error.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidation("id must be a positive integer", nil))
		return 0, false
	}
	return id, true
}
