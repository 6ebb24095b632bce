package rules

import (
	"errors"
	"fmt"

	"github.com/okian/meritsim/internal/domain/model"
)

// Sentinel error kinds for this package.
var (
	ErrUnknownOption = errors.New("unknown option")
	ErrInvalidTable  = errors.New("invalid rule table")
	ErrLoadRules     = errors.New("load rules failed")
)

// UnknownOptionError names the lookup that failed. Empty Dimension means the
// category itself is unknown; empty Option means the dimension is unknown.
// Missing is set when a declared dimension had no selection at all.
type UnknownOptionError struct {
	Category  model.Category
	Dimension string
	Option    string
	Missing   bool
}

func (e *UnknownOptionError) Error() string {
	switch {
	case e.Missing:
		return fmt.Sprintf("no option selected for %s/%s", e.Category, e.Dimension)
	case e.Dimension == "":
		return fmt.Sprintf("unknown category %q", e.Category)
	case e.Option == "":
		return fmt.Sprintf("unknown dimension %q in category %q", e.Dimension, e.Category)
	default:
		return fmt.Sprintf("unknown option %q for %s/%s", e.Option, e.Category, e.Dimension)
	}
}

// Is matches ErrUnknownOption.
func (e *UnknownOptionError) Is(target error) bool {
	return target == ErrUnknownOption
}
