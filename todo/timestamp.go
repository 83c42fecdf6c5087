package todo

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampKey is the discriminator key marking a serialized timestamp.
// Only fields declared as Timestamp in the envelope structs are decoded
// through this codec, so plain string data can never collide with it;
// the key is reserved all the same.
const timestampKey = "$date"

// Timestamp is a time.Time that serializes as a one-field wrapper
// object, {"$date": "<RFC3339Nano>"}, so date fields round-trip through
// the JSON envelope unambiguously.
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp{time.Now()}
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t}
}

// TimestampPtr returns a pointer to a Timestamp wrapping t.
func TimestampPtr(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

// MarshalJSON encodes the timestamp as its tagged wrapper object.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		timestampKey: t.UTC().Format(time.RFC3339Nano),
	})
}

// UnmarshalJSON decodes the tagged wrapper produced by MarshalJSON.
// Anything else, including a bare time string, is rejected.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var wrapper map[string]string
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return fmt.Errorf("timestamp must be a %q wrapper object: %w", timestampKey, err)
	}

	value, ok := wrapper[timestampKey]
	if !ok || len(wrapper) != 1 {
		return fmt.Errorf("timestamp wrapper must contain exactly one %q key", timestampKey)
	}

	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}

	t.Time = parsed
	return nil
}
