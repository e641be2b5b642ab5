package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkoga/todo-api/internal/database"
	"github.com/mkoga/todo-api/internal/utils"
	"gorm.io/gorm"
)

// HealthHandler reports process and database health
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check pings the database and reports overall service health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"data": gin.H{
				"status": "unhealthy",
				"services": gin.H{
					"database": "disconnected",
				},
			},
		})
		return
	}

	utils.Success(c, http.StatusOK, gin.H{
		"status": "healthy",
		"services": gin.H{
			"database": "connected",
		},
	})
}
