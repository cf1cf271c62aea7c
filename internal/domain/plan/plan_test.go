package plan

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpiryCalendarMonths(t *testing.T) {
	tests := []struct {
		name     string
		enrolled time.Time
		months   int
		want     time.Time
	}{
		{"one month", date(2026, time.March, 15), 1, date(2026, time.April, 15)},
		{"quarterly", date(2026, time.January, 10), 3, date(2026, time.April, 10)},
		{"semi annual", date(2026, time.February, 1), 6, date(2026, time.August, 1)},
		{"annual", date(2026, time.May, 20), 12, date(2027, time.May, 20)},
		// Month-end overflow rolls into the following month.
		{"jan 31 plus one month", date(2026, time.January, 31), 1, date(2026, time.March, 3)},
		{"jan 31 plus one month leap year", date(2024, time.January, 31), 1, date(2024, time.March, 2)},
		{"aug 31 plus one month", date(2026, time.August, 31), 1, date(2026, time.October, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expiry(tt.enrolled, tt.months))
		})
	}
}

func TestClassify(t *testing.T) {
	now := date(2026, time.June, 15)

	t.Run("not approved is never expired", func(t *testing.T) {
		got := Classify(date(2020, time.January, 1), 1, false, now)
		assert.Equal(t, StatusNotApplicable, got)
	})

	t.Run("no anchor is never expired", func(t *testing.T) {
		got := Classify(time.Time{}, 1, true, now)
		assert.Equal(t, StatusNotApplicable, got)
	})

	t.Run("well within plan is active", func(t *testing.T) {
		got := Classify(date(2026, time.June, 1), 3, true, now)
		assert.Equal(t, StatusActive, got)
	})

	t.Run("inside the window is expiring soon", func(t *testing.T) {
		// Expiry on June 18, three days out.
		got := Classify(date(2026, time.May, 18), 1, true, now)
		assert.Equal(t, StatusExpiringSoon, got)
	})

	t.Run("past expiry is expired", func(t *testing.T) {
		got := Classify(date(2026, time.January, 1), 1, true, now)
		assert.Equal(t, StatusExpired, got)
	})

	t.Run("expiry instant itself is expiring soon", func(t *testing.T) {
		got := Classify(date(2026, time.May, 15), 1, true, now)
		assert.Equal(t, StatusExpiringSoon, got)
	})
}

func TestClassifyMutualExclusion(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	durations := []int{DurationMonthly, DurationQuarterly, DurationSemiAnnual, DurationAnnual}

	properties.Property("classification lands in exactly one bucket", prop.ForAll(
		func(enrolledOffsetDays int, nowOffsetHours int, durIdx int) bool {
			base := date(2026, time.January, 1)
			enrolled := base.AddDate(0, 0, enrolledOffsetDays)
			now := base.Add(time.Duration(nowOffsetHours) * time.Hour)
			months := durations[durIdx]

			got := Classify(enrolled, months, true, now)
			switch got {
			case StatusActive, StatusExpiringSoon, StatusExpired:
			default:
				return false
			}

			expiry := Expiry(enrolled, months)
			remaining := expiry.Sub(now)
			switch {
			case remaining < 0:
				return got == StatusExpired
			case remaining <= ExpiringSoonWindow:
				return got == StatusExpiringSoon
			default:
				return got == StatusActive
			}
		},
		gen.IntRange(-400, 400),
		gen.IntRange(-24*400, 24*400),
		gen.IntRange(0, len(durations)-1),
	))

	properties.TestingRun(t)
}

func TestDurationFromLegacy(t *testing.T) {
	assert.Equal(t, DurationQuarterly, DurationFromLegacy("Quarterly"))
	assert.Equal(t, DurationSemiAnnual, DurationFromLegacy("6-Month"))
	assert.Equal(t, DurationMonthly, DurationFromLegacy("UPI"))
	assert.Equal(t, DurationMonthly, DurationFromLegacy(""))
}

func TestIsValidDuration(t *testing.T) {
	for _, months := range []int{1, 3, 6, 12} {
		require.True(t, IsValidDuration(months), "months=%d", months)
	}
	for _, months := range []int{0, 2, 4, 5, 7, 24, -1} {
		require.False(t, IsValidDuration(months), "months=%d", months)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "1 Month", Label(1))
	assert.Equal(t, "3 Months", Label(3))
	assert.Equal(t, "6 Months", Label(6))
	assert.Equal(t, "12 Months", Label(12))
	assert.Equal(t, "1 Month", Label(99))
}
