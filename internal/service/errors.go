package service

import (
	"errors"
	"strings"

	"github.com/noah-isme/brightminds-api/internal/repository"
	appErrors "github.com/noah-isme/brightminds-api/pkg/errors"
)

// lookupError maps a repository lookup failure to NOT_FOUND or INTERNAL_ERROR.
func lookupError(err error, notFoundMessage, internalMessage string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMessage)
	}
	return appErrors.Internal(err, internalMessage)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// trimmed returns a trimmed copy of *value. The caller's string is untouched.
func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

// rejectBlank fails with VALIDATION_ERROR when a supplied field holds only
// whitespace.
func rejectBlank(field string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return appErrors.Clone(appErrors.ErrValidation, field+" cannot be blank")
	}
	return nil
}
