package handybars

import (
	"errors"
	"fmt"

	"github.com/chrsoo/handybars/path"
)

var (
	// ErrMissingVariable is matched by *MissingVariableError.
	ErrMissingVariable = errors.New("missing variable in template")
	// ErrTriedToExpandObject is matched by
	// *ObjectExpansionError.
	ErrTriedToExpandObject = errors.New("attempted to expand a non-leaf value")
)

// MissingVariableError reports a placeholder whose path
// has no value in the context.
type MissingVariableError struct {
	Variable path.Variable
	Location path.Location
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf(
		"%s: '%s' at %s", ErrMissingVariable, e.Variable, e.Location,
	)
}

func (e *MissingVariableError) Unwrap() error { return ErrMissingVariable }

// ObjectExpansionError reports a placeholder whose path
// resolves to an object instead of a leaf.
type ObjectExpansionError struct {
	Variable path.Variable
	Location path.Location
}

func (e *ObjectExpansionError) Error() string {
	return fmt.Sprintf(
		"%s: '%s' at %s", ErrTriedToExpandObject, e.Variable, e.Location,
	)
}

func (e *ObjectExpansionError) Unwrap() error { return ErrTriedToExpandObject }
