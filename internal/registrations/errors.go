package registrations

import (
	"errors"
	"fmt"
	"strings"
)

// Duplicate-key errors surfaced by the store's unique indexes. These are
// authoritative: the Exists pre-check is only a fast-path UX
// optimization and may race with a concurrent insert.
var (
	ErrDuplicateEmail   = errors.New("this email is already registered")
	ErrDuplicateContact = errors.New("this phone number is already registered")
	ErrDuplicateID      = errors.New("registration id collision")
)

// FieldError is a single validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects all field violations for one submission.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, format string, args ...interface{}) {
	e.Violations = append(e.Violations, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}
