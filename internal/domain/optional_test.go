package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshal(t *testing.T) {
	t.Parallel()

	var payload struct {
		Title       Optional[string] `json:"title"`
		Description Optional[string] `json:"description"`
		Done        Optional[bool]   `json:"done"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"","description":null}`), &payload))

	assert.True(t, payload.Title.Set, "empty string is still present")
	assert.True(t, payload.Title.HasValue())
	assert.Equal(t, "", payload.Title.Value)

	assert.True(t, payload.Description.Set)
	assert.True(t, payload.Description.Null)
	assert.Nil(t, payload.Description.Ptr())

	assert.False(t, payload.Done.Set, "absent keys are not set")
	assert.False(t, payload.Done.HasValue())
}

func TestOptionalMarshal(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(struct {
		A Optional[int] `json:"a"`
		B Optional[int] `json:"b"`
		C Optional[int] `json:"c"`
	}{A: Some(3), B: Null[int]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null,"c":null}`, string(data))
}
