package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the row a lookup, update or delete targeted is absent.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate means an insert collided with an existing key.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when the database rejects a row because it
	// breaks a CHECK or NOT NULL constraint, or when an entity fails domain
	// validation before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed wraps begin and commit failures from RunInTransaction.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrTaskNotFound is ErrNotFound specialised to tasks.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
)

// IsNotFoundError reports whether err wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError records which store operation failed and on what entity. Err is
// normally the result of sqlstore.MapError, so errors.Is still sees the
// store sentinels through it.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the underlying driver or sentinel error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
