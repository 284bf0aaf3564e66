package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Priority ranks a task. It is a closed enumeration: only the four declared
// values are valid, and it is stored by ordinal and rendered by name.
type Priority int

// Possible priority values. The ordinals are part of the storage format.
const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// priorityInvalid is what an unrecognised wire value decodes to, so that the
// validator can report it as a field error instead of a malformed body.
const priorityInvalid Priority = -1

// ErrInvalidPriority is returned when a priority name or ordinal is not recognised.
var ErrInvalidPriority = errors.New("invalid priority")

var priorityNames = [...]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
	PriorityUrgent: "Urgent",
}

// Priorities returns every valid priority in ordinal order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// IsValid reports whether p is one of the declared priorities.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// String returns the priority name, or a placeholder for invalid values.
func (p Priority) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// ParsePriority accepts a priority name (case-insensitive) or its ordinal.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities() {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Priority(n).IsValid() {
		return Priority(n), nil
	}
	return priorityInvalid, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// MarshalJSON renders the priority by name.
func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return json.Marshal(priorityNames[p])
}

// UnmarshalJSON accepts either a name or an ordinal. Unknown values do not fail
// decoding; they leave the priority invalid for the validator to report.
func (p *Priority) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParsePriority(s)
		if err != nil {
			parsed = priorityInvalid
		}
		*p = parsed
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("priority must be a string or a number: %w", err)
	}
	v, err := n.Int64()
	if err != nil || !Priority(v).IsValid() {
		*p = priorityInvalid
		return nil
	}
	*p = Priority(v)
	return nil
}
