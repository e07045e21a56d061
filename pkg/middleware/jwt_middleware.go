package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"artify/pkg/utils"
)

// JWTAuthMiddleware accepts the session token either as a bearer header or
// as the access_token cookie set at login.
func JWTAuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("access_token"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := issuer.Validate(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
