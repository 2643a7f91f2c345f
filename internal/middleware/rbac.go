package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brightminds-api/internal/policy"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
	"github.com/noah-isme/brightminds-api/pkg/response"
)

// Authorize rejects callers the policy denies for a collection-level action
// before the handler runs. Ownership checks stay in the services because
// they need the stored document.
func Authorize(kind policy.Kind, action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if err := policy.Evaluate(identity, policy.Collection(kind), action).Err(); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
