package schema

import (
	"errors"
	"fmt"

	"github.com/okian/meritsim/internal/domain/model"
)

// Sentinel error kinds for this package.
var (
	ErrMissingCategoryConfig = errors.New("missing category config")
	ErrInvalidSchema         = errors.New("invalid form config")
	ErrLoadSchema            = errors.New("load form config failed")
)

// MissingCategoryConfigError is returned when no form exists for a category.
// Callers fall back to the static rule table.
type MissingCategoryConfigError struct {
	Category model.Category
}

func (e *MissingCategoryConfigError) Error() string {
	return fmt.Sprintf("no form config for category %q", e.Category)
}

// Is matches ErrMissingCategoryConfig.
func (e *MissingCategoryConfigError) Is(target error) bool {
	return target == ErrMissingCategoryConfig
}
