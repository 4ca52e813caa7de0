package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness along with the number of live sessions.
func Health(sessions interface{ Len() int }) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sessions.Len()})
	}
}
