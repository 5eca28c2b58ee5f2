package service

import (
	"fmt"
	"strings"

	"github.com/dividircuenta/backend/internal/validate"
)

// ValidationError reports that a mutation's preconditions failed.
// The mutation was rejected with no state change; the caller is expected
// to fix the listed fields and retry.
type ValidationError struct {
	Fields []validate.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports a stale reference: the identified record does
// not exist. The caller should re-synchronize its view.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
