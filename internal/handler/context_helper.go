package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/brightminds-api/internal/middleware"
	"github.com/noah-isme/brightminds-api/internal/models"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
	"github.com/noah-isme/brightminds-api/pkg/response"
)

// currentIdentity returns the authenticated caller or writes a 401.
func currentIdentity(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Identity{}, false
	}
	return identity, true
}

// bindJSON decodes the request body into dst or writes a 400.
func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message))
		return false
	}
	return true
}
