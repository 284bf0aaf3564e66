package domain

import (
	"bytes"
	"encoding/json"
)

// Optional carries a field of a partial update. It tells apart a field that
// was not sent (Set is false), one sent as null (Set and Null), and one sent
// with a value.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional that was explicitly sent as null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// HasValue reports whether the field was sent with a non-null value.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.HasValue() {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// which is what marks the field as set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON renders absent and null fields as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
