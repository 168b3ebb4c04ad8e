package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_MarshalKeepsExtrasAfterKnownFields(t *testing.T) {
	task := Task{
		ID:    4,
		Title: "write docs",
		Extra: map[string]json.RawMessage{
			"zeta":     json.RawMessage(`true`),
			"priority": json.RawMessage(`2`),
		},
	}

	b, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":4,"title":"write docs","done":false,"created_at":null,"completed_at":null,"priority":2,"zeta":true}`,
		string(b))
}

func TestTask_UnmarshalSplitsExtras(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":2,"title":"x","done":true,"owner":{"name":"me"}}`), &task)
	require.NoError(t, err)

	assert.Equal(t, 2, task.ID)
	assert.True(t, task.Done)
	assert.Nil(t, task.CreatedAt)
	require.Len(t, task.Extra, 1)
	assert.JSONEq(t, `{"name":"me"}`, string(task.Extra["owner"]))
}

func TestTask_UnmarshalNoExtras(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"a","done":false}`), &task))
	assert.Nil(t, task.Extra)
}

func TestTimestamp_Layouts(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		valid bool
	}{
		{name: "rfc3339", in: `"2026-01-02T03:04:05Z"`, valid: true},
		{name: "offset", in: `"2026-01-02T03:04:05+02:00"`, valid: true},
		{name: "naive", in: `"2026-01-02T03:04:05"`, valid: true},
		{name: "free text", in: `"last tuesday"`, valid: false},
		{name: "number", in: `1700000000`, valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.Equal(t, tt.valid, ts.Valid())

			out, err := json.Marshal(ts)
			require.NoError(t, err)
			if !tt.valid {
				assert.Equal(t, tt.in, string(out), "unparseable values are written back verbatim")
			}
		})
	}
}

func TestTimestamp_LoadedValueWrittenBackUnchanged(t *testing.T) {
	for _, in := range []string{
		`"2025-01-01T10:00:00.75+02:00"`,
		`"2024-05-01T10:00:00"`,
		`"2026-01-02T03:04:05Z"`,
	} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts))
		require.True(t, ts.Valid(), in)

		out, err := json.Marshal(ts)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	}

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-01T10:00:00.75+02:00"`), &ts))
	assert.True(t, ts.Time().Equal(time.Date(2025, 1, 1, 8, 0, 0, 750_000_000, time.UTC)))
	assert.Equal(t, "2025-01-01T10:00:00.75+02:00", ts.String())
}

func TestTask_UnmarshalIgnoresCaseFoldedKeys(t *testing.T) {
	in := `{"id":1,"title":"a","done":false,"ID":7,"Done":true,"Title":"b"}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(in), &task))
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, "a", task.Title)
	assert.False(t, task.Done)
	require.Len(t, task.Extra, 3)
	assert.JSONEq(t, `7`, string(task.Extra["ID"]))

	b, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":1,"title":"a","done":false,"created_at":null,"completed_at":null,"Done":true,"ID":7,"Title":"b"}`,
		string(b))

	var again Task
	require.NoError(t, json.Unmarshal(b, &again))
	assert.Equal(t, task, again)
}

func TestTask_UnmarshalWrongTypeForKnownField(t *testing.T) {
	var task Task
	err := json.Unmarshal([]byte(`{"id":"one","title":"a","done":false}`), &task)
	assert.ErrorContains(t, err, "id")
}

func TestNewTimestamp_TruncatesToSeconds(t *testing.T) {
	ts := NewTimestamp(time.Date(2026, 5, 6, 7, 8, 9, 999, time.UTC))
	assert.Equal(t, "2026-05-06T07:08:09Z", ts.String())

	var nilTS *Timestamp
	assert.Equal(t, "", nilTS.String())
	assert.True(t, nilTS.Time().IsZero())
	assert.False(t, nilTS.Valid())
}
