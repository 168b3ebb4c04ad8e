package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Task is the domain model for a tracked unit of work.
// Extra holds members of the on-disk record we don't know about; they are
// written back untouched.
type Task struct {
	ID          int
	Title       string
	Done        bool
	CreatedAt   *Timestamp
	CompletedAt *Timestamp
	Extra       map[string]json.RawMessage
}

// Field order on disk.
type taskJSON struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Done        bool       `json:"done"`
	CreatedAt   *Timestamp `json:"created_at"`
	CompletedAt *Timestamp `json:"completed_at"`
}

var knownFields = map[string]bool{
	"id":           true,
	"title":        true,
	"done":         true,
	"created_at":   true,
	"completed_at": true,
}

func (t Task) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Done:        t.Done,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	})
	if err != nil {
		return nil, err
	}
	if len(t.Extra) == 0 {
		return b, nil
	}

	keys := make([]string, 0, len(t.Extra))
	for k := range t.Extra {
		if !knownFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(b[:len(b)-1]) // drop closing brace
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(t.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the known members by exact key. encoding/json would
// also match "ID" or "Done" against the struct tags; those stay in Extra.
func (t *Task) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	var out Task
	fields := []struct {
		key string
		dst any
	}{
		{"id", &out.ID},
		{"title", &out.Title},
		{"done", &out.Done},
		{"created_at", &out.CreatedAt},
		{"completed_at", &out.CompletedAt},
	}
	for _, f := range fields {
		raw, ok := all[f.key]
		if !ok {
			continue
		}
		delete(all, f.key)
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
	}
	if len(all) > 0 {
		out.Extra = all
	}
	*t = out
	return nil
}

func (t Task) String() string {
	return fmt.Sprintf("[%d] %s", t.ID, t.Title)
}

// naiveLayout is a local timestamp without zone, as older files carry.
const naiveLayout = "2006-01-02T15:04:05"

// Timestamp is an instant read from or written to the file. A value loaded
// from disk is written back with its original bytes; only new timestamps are
// formatted, as RFC 3339 UTC to the second. Values that don't parse as a time
// are kept the same way but report !Valid.
type Timestamp struct {
	t      time.Time
	raw    json.RawMessage
	parsed bool
}

// NewTimestamp truncates to seconds in UTC.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{t: t.UTC().Truncate(time.Second), parsed: true}
}

// Time returns the parsed instant, zero when the stored value was unparseable.
func (ts *Timestamp) Time() time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.t
}

// Valid reports whether the stored value parsed as a time.
func (ts *Timestamp) Valid() bool {
	return ts != nil && ts.parsed
}

func (ts *Timestamp) String() string {
	switch {
	case ts == nil:
		return ""
	case ts.raw != nil:
		var s string
		if err := json.Unmarshal(ts.raw, &s); err == nil {
			return s
		}
		return string(ts.raw)
	default:
		return ts.t.Format(time.RFC3339)
	}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.raw != nil {
		return ts.raw, nil
	}
	return json.Marshal(ts.t.Format(time.RFC3339))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{raw: append(json.RawMessage(nil), data...)}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, naiveLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			ts.t, ts.parsed = t, true
			return nil
		}
	}
	return nil
}
