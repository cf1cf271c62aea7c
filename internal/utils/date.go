package utils

import (
	"errors"
	"time"
)

// ErrInvalidTimeFormat is returned when time parsing fails
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ParseTime parses a time string in RFC3339 or other common formats
func ParseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}

// epochMillisCutoff separates second-precision epochs from
// millisecond-precision ones (anything past the year 5138 in seconds
// is read as milliseconds instead).
const epochMillisCutoff = int64(1e11)

// ParseDate converts the timestamp shapes the document store's clients
// hand back (native time, serialized timestamp map, epoch number,
// string) into a time.Time. The second return is false when the value
// is absent or unparseable; this function never panics.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		if t == "" {
			return time.Time{}, false
		}
		parsed, err := ParseTime(t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	case int:
		return fromEpoch(int64(t))
	case int64:
		return fromEpoch(t)
	case float64:
		return fromEpoch(int64(t))
	case map[string]interface{}:
		// Serialized Timestamp: {"seconds": ..., "nanos": ...}
		secs, ok := asInt64(t["seconds"])
		if !ok {
			return time.Time{}, false
		}
		nanos, _ := asInt64(t["nanos"])
		return time.Unix(secs, nanos).UTC(), true
	}

	// Resolved server-timestamp wrappers expose a conversion method.
	if conv, ok := v.(interface{ AsTime() time.Time }); ok {
		ts := conv.AsTime()
		if ts.IsZero() {
			return time.Time{}, false
		}
		return ts, true
	}

	return time.Time{}, false
}

func fromEpoch(n int64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n > epochMillisCutoff {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
