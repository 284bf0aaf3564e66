package validation

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/phrazzld/task-manager-api/internal/domain"
)

// Property names reported in field errors.
const (
	PropertyTitle       = "Title"
	PropertyDescription = "Description"
	PropertyIsCompleted = "IsCompleted"
	PropertyPriority    = "Priority"
	PropertyDueDate     = "DueDate"
)

// Custom validator tags.
const (
	tagPriority = "priority"
	tagNotPast  = "notpast"
	tagNotBlank = "notblank"
)

// check pairs a validator tag with the field error reported when it fails.
type check struct {
	tag     string
	rule    domain.Rule
	message string
}

var (
	titleCreateChecks = []check{
		{tagNotBlank, domain.RuleRequired, "Title is required"},
		{fmt.Sprintf("max=%d", domain.TitleMaxLength), domain.RuleMaxLength,
			fmt.Sprintf("Title cannot exceed %d characters", domain.TitleMaxLength)},
	}
	titleUpdateChecks = []check{
		{tagNotBlank, domain.RuleRequired, "Title cannot be empty"},
		titleCreateChecks[1],
	}
	descriptionChecks = []check{
		{fmt.Sprintf("max=%d", domain.DescriptionMaxLength), domain.RuleMaxLength,
			fmt.Sprintf("Description cannot exceed %d characters", domain.DescriptionMaxLength)},
	}
	priorityChecks = []check{
		{tagPriority, domain.RuleInvalidEnum, "Invalid priority value"},
	}
	dueDateChecks = []check{
		{tagNotPast, domain.RulePastDate, "Due date cannot be in the past"},
	}
)

// Validator validates task payloads. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock used to decide whether a due date is in the past.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a Validator with the task rules registered.
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation(tagPriority, validatePriority)
	_ = v.validate.RegisterValidation(tagNotPast, v.validateNotPast)
	_ = v.validate.RegisterValidation(tagNotBlank, validators.NotBlank)

	return v
}

// ValidateCreate checks a create payload. It returns nil or a
// domain.ValidationErrors listing every violation.
func (v *Validator) ValidateCreate(p domain.CreateTaskParams) error {
	var errs domain.ValidationErrors

	errs = v.run(errs, PropertyTitle, p.Title, titleCreateChecks)
	if p.Description != nil {
		errs = v.run(errs, PropertyDescription, *p.Description, descriptionChecks)
	}
	errs = v.run(errs, PropertyPriority, p.Priority, priorityChecks)
	if p.DueDate != nil {
		errs = v.run(errs, PropertyDueDate, *p.DueDate, dueDateChecks)
	}

	return result(errs)
}

// ValidateUpdate checks a partial update. Only fields present in the payload
// are checked. A null description or due date is valid and clears the field;
// null is rejected for every other field.
func (v *Validator) ValidateUpdate(p domain.UpdateTaskParams) error {
	var errs domain.ValidationErrors

	switch {
	case p.Title.Null:
		errs = appendViolation(errs, PropertyTitle, titleUpdateChecks[0])
	case p.Title.Set:
		errs = v.run(errs, PropertyTitle, p.Title.Value, titleUpdateChecks)
	}

	if p.Description.HasValue() {
		errs = v.run(errs, PropertyDescription, p.Description.Value, descriptionChecks)
	}

	if p.IsCompleted.Null {
		errs = append(errs, domain.FieldError{
			Property: PropertyIsCompleted,
			Rule:     domain.RuleRequired,
			Message:  "IsCompleted cannot be null",
		})
	}

	switch {
	case p.Priority.Null:
		errs = appendViolation(errs, PropertyPriority, priorityChecks[0])
	case p.Priority.Set:
		errs = v.run(errs, PropertyPriority, p.Priority.Value, priorityChecks)
	}

	if p.DueDate.HasValue() {
		errs = v.run(errs, PropertyDueDate, p.DueDate.Value, dueDateChecks)
	}

	return result(errs)
}

// run applies checks in order and records the first one that fails.
func (v *Validator) run(errs domain.ValidationErrors, property string, value any, checks []check) domain.ValidationErrors {
	for _, c := range checks {
		if err := v.validate.Var(value, c.tag); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				// An unusable tag is a programming error, not a client error.
				panic(fmt.Sprintf("validation: tag %q on %s: %v", c.tag, property, err))
			}
			return appendViolation(errs, property, c)
		}
	}
	return errs
}

func appendViolation(errs domain.ValidationErrors, property string, c check) domain.ValidationErrors {
	return append(errs, domain.FieldError{Property: property, Rule: c.rule, Message: c.message})
}

func result(errs domain.ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validatePriority(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.Priority(field.Int()).IsValid()
	default:
		return false
	}
}

// validateNotPast compares calendar dates in UTC, so any time on today's date
// passes.
func (v *Validator) validateNotPast(fl validator.FieldLevel) bool {
	due, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !truncateToDay(due).Before(truncateToDay(v.now()))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
