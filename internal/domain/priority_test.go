package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{input: "Low", want: PriorityLow},
		{input: "medium", want: PriorityMedium},
		{input: " HIGH ", want: PriorityHigh},
		{input: "Urgent", want: PriorityUrgent},
		{input: "0", want: PriorityLow},
		{input: "3", want: PriorityUrgent},
		{input: "4", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "Critical", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParsePriority(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPriority)
				assert.False(t, got.IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPriorityJSON(t *testing.T) {
	t.Parallel()

	t.Run("marshals by name", func(t *testing.T) {
		data, err := json.Marshal(PriorityHigh)
		require.NoError(t, err)
		assert.JSONEq(t, `"High"`, string(data))
	})

	t.Run("refuses to marshal invalid values", func(t *testing.T) {
		_, err := json.Marshal(Priority(9))
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})

	t.Run("unmarshals names and ordinals", func(t *testing.T) {
		var byName, byOrdinal Priority
		require.NoError(t, json.Unmarshal([]byte(`"urgent"`), &byName))
		require.NoError(t, json.Unmarshal([]byte(`2`), &byOrdinal))
		assert.Equal(t, PriorityUrgent, byName)
		assert.Equal(t, PriorityHigh, byOrdinal)
	})

	t.Run("unknown values decode as invalid", func(t *testing.T) {
		for _, raw := range []string{`"Critical"`, `7`, `1.5`} {
			var p Priority
			require.NoError(t, json.Unmarshal([]byte(raw), &p), raw)
			assert.False(t, p.IsValid(), raw)
		}
	})

	t.Run("non scalar values fail decoding", func(t *testing.T) {
		var p Priority
		assert.Error(t, json.Unmarshal([]byte(`true`), &p))
	})
}

func TestPriorityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Medium", PriorityMedium.String())
	assert.Equal(t, "Priority(-1)", priorityInvalid.String())
	assert.Len(t, Priorities(), 4)
}

func TestParsePriorityAcceptsEveryName(t *testing.T) {
	t.Parallel()

	for _, p := range Priorities() {
		got, err := ParsePriority(strings.ToUpper(p.String()))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}
