package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2026-03-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC), got)

	got, err = ParseTime("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseTime("not a date")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

type fakeTimestamp struct{ t time.Time }

func (f fakeTimestamp) AsTime() time.Time { return f.t }

func TestParseDate(t *testing.T) {
	want := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  time.Time
		ok    bool
	}{
		{"nil", nil, time.Time{}, false},
		{"native time", want, want, true},
		{"zero time", time.Time{}, time.Time{}, false},
		{"pointer", &want, want, true},
		{"nil pointer", (*time.Time)(nil), time.Time{}, false},
		{"rfc3339 string", "2026-03-15T10:30:00Z", want, true},
		{"date-only string", "2026-03-15", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"empty string", "", time.Time{}, false},
		{"garbage string", "tomorrow", time.Time{}, false},
		{"epoch seconds", int64(1773570600), time.Unix(1773570600, 0).UTC(), true},
		{"epoch millis", int64(1773570600000), time.UnixMilli(1773570600000).UTC(), true},
		{"epoch float", float64(1773570600), time.Unix(1773570600, 0).UTC(), true},
		{"negative epoch", int64(-5), time.Time{}, false},
		{"timestamp map", map[string]interface{}{"seconds": int64(1773570600), "nanos": int64(0)}, time.Unix(1773570600, 0).UTC(), true},
		{"timestamp map float fields", map[string]interface{}{"seconds": float64(1773570600)}, time.Unix(1773570600, 0).UTC(), true},
		{"malformed map", map[string]interface{}{"sec": 12}, time.Time{}, false},
		{"astime wrapper", fakeTimestamp{t: want}, want, true},
		{"unsupported type", struct{}{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}
