package domain

import (
	"errors"
	"fmt"
	"strings"

	shareddomain "prospectar-server/internal/shared_kernel/domain"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrOptionsRequired  = errors.New("options are required for select fields")
	ErrOptionsForbidden = errors.New("text fields do not accept options")
	ErrDuplicateOption  = errors.New("options must be unique")
	ErrEmptyOption      = errors.New("options must not be empty strings")
	ErrUnknownFieldType = errors.New("unknown field type")
	ErrInvalidRule      = errors.New("invalid validation rule")
	ErrInvalidValue     = errors.New("invalid value")
	ErrRequired         = errors.New("value is required")
	ErrUnknownOption    = errors.New("value is not one of the field options")
	ErrShapeMismatch    = errors.New("value shape does not match field type")
	ErrRuleViolation    = errors.New("value violates a validation rule")
	ErrUnknownField     = errors.New("unknown field")
)

// ValidationError rejects the input of a single field. It is never retried.
type ValidationError struct {
	FieldID shareddomain.ID
	Reason  string
	Err     error
}

func NewValidationError(fieldID shareddomain.ID, err error) ValidationError {
	return ValidationError{FieldID: fieldID, Reason: err.Error(), Err: err}
}

func (e ValidationError) Error() string {
	if e.FieldID == "" {
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
	return fmt.Sprintf("validation error on field %s: %s", e.FieldID, e.Reason)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors aggregates the per-field failures of a batch.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	reasons := make([]string, len(e))
	for i, err := range e {
		reasons[i] = err.Error()
	}
	return strings.Join(reasons, "; ")
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// ByField indexes the failures by field id, keeping the first per field.
func (e ValidationErrors) ByField() map[shareddomain.ID]ValidationError {
	result := make(map[shareddomain.ID]ValidationError, len(e))
	for _, err := range e {
		if _, found := result[err.FieldID]; !found {
			result[err.FieldID] = err
		}
	}
	return result
}

// NetworkError is a transient transport failure; callers may retry.
type NetworkError struct {
	Op  string
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

func (e NetworkError) Retryable() bool {
	return true
}

// NotFoundError reports an entity or field definition that no longer exists.
type NotFoundError struct {
	Resource string
	ID       shareddomain.ID
	Err      error
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e NotFoundError) Unwrap() error {
	return e.Err
}

// WriteError fails a whole batch; it does not tell which pairs were stored.
type WriteError struct {
	EntityID shareddomain.ID
	Err      error
}

func (e WriteError) Error() string {
	return fmt.Sprintf("writing values for entity %s: %v", e.EntityID, e.Err)
}

func (e WriteError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err carries a NetworkError.
func IsRetryable(err error) bool {
	var networkErr NetworkError
	return errors.As(err, &networkErr)
}
