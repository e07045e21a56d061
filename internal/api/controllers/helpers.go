package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID reads the authenticated user set by the JWT middleware.
// A missing or malformed value aborts the request with 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		c.Abort()
		return uuid.Nil, false
	}
	return id, true
}
