package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Timestamp is the single representation of an instant across the API,
// the database and the mirror. JSON carries epoch milliseconds; ISO-8601
// strings are still accepted on input.
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return NewTimestamp(time.Now())
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func FromMillis(ms int64) Timestamp {
	return NewTimestamp(time.UnixMilli(ms))
}

func (t Timestamp) Millis() int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if data[0] == '"' {
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
	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	*t = FromMillis(int64(ms))
	return nil
}

// ParseTimestamp reads an ISO-8601 string or a decimal epoch-millis string.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z07:00", "2006-01-02"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(parsed), nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromMillis(ms), nil
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}

func (t *Timestamp) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = Timestamp{}
	case time.Time:
		*t = NewTimestamp(v)
	case string:
		parsed, err := parseStoredTime(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := parseStoredTime(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case int64:
		*t = FromMillis(v)
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", value)
	}
	return nil
}

// parseStoredTime also covers the layout SQLite drivers use for DATETIME.
func parseStoredTime(s string) (Timestamp, error) {
	if parsed, err := time.Parse("2006-01-02 15:04:05.999999999-07:00", s); err == nil {
		return NewTimestamp(parsed), nil
	}
	return ParseTimestamp(s)
}

// GormDataType keeps the column a real timestamp in every dialect.
func (Timestamp) GormDataType() string {
	return "time"
}
