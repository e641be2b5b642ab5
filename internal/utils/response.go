package utils

import (
	"github.com/gin-gonic/gin"
)

// Success writes the standard success envelope
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}
