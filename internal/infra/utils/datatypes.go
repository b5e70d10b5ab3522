package utils

import (
	"encoding/json"
	"time"
)

const _timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Time serializes with millisecond precision in UTC.
type Time struct {
	time.Time
}

func Now() Time {
	return Time{Time: time.Now().UTC()}
}

func (t Time) MarshalJSON() ([]byte, error) {
	formatted := t.UTC().Format(_timeLayout)
	return []byte(`"` + formatted + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
