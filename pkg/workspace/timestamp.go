package workspace

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the local ISO-8601 form written to project files.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Timestamp is a creation or modification time.
type Timestamp struct {
	time.Time
}

// Now returns the current local time.
func Now() Timestamp {
	return Timestamp{time.Now()}
}

// ParseTimestamp reads the project file layout, with or without fractional
// seconds, or RFC 3339.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return Timestamp{t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	return Timestamp{t}, nil
}

func (t Timestamp) String() string {
	return t.Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
