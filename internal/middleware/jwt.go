package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brightminds-api/internal/models"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
	"github.com/noah-isme/brightminds-api/pkg/response"
)

// ContextUserKey is the gin context key storing the caller's models.Identity.
const ContextUserKey = "currentUser"

// TokenValidator verifies a session token.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid bearer token.
func JWT(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "No token provided"))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			_ = c.Error(err)
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims.User)
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by JWT.
func IdentityFromContext(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
