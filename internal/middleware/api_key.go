package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "finhealth/internal/errors"
)

// APIKeyAuth validates the X-API-Key header against apiKey. An empty apiKey
// disables the check.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode,
				gin.H{"error": gin.H{"code": "INVALID_API_KEY", "message": "Invalid or missing API key"}})
			return
		}
		c.Next()
	}
}
