package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a payload or entity fails validation.
	// ValidationErrors matches it with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task ID is malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")
)

// Rule names a validation rule that a field violated.
type Rule string

// Validation rules reported in FieldError.Rule.
const (
	RuleRequired    Rule = "Required"
	RuleMaxLength   Rule = "MaxLength"
	RuleInvalidEnum Rule = "InvalidEnum"
	RulePastDate    Rule = "PastDate"
)

// FieldError is a single violation of a validation rule.
type FieldError struct {
	Property string
	Rule     Rule
	Message  string
}

// Error implements the error interface for FieldError.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Property, e.Message)
}

// ValidationErrors is the ordered list of every violation found in a payload.
type ValidationErrors []FieldError

// Error implements the error interface for ValidationErrors.
func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationErrors.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Properties returns the names of the violating properties, in order.
func (v ValidationErrors) Properties() []string {
	props := make([]string, 0, len(v))
	for _, fe := range v {
		props = append(props, fe.Property)
	}
	return props
}
