package middleware

import (
	"github.com/gin-gonic/gin"

	"movie-reviews-backend/internal/services"
	"movie-reviews-backend/internal/utils"
	"movie-reviews-backend/pkg/logger"
)

// SessionAuth gates the mutating review routes. It reads the session cookie,
// asks the verifier whether the token is currently valid, and either stashes
// the principal on the request context or ends the request with a 401 before
// any store access happens.
func SessionAuth(cookieName string, verifier services.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			utils.SendUnauthorized(c)
			c.Abort()
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debug("token verification failed: ", err)
			utils.SendUnauthorized(c)
			c.Abort()
			return
		}

		c.Set("principal", principal)
		c.Next()
	}
}
