package plan

import "time"

// Membership plan durations, in calendar months.
const (
	DurationMonthly    = 1
	DurationQuarterly  = 3
	DurationSemiAnnual = 6
	DurationAnnual     = 12
)

// ExpiringSoonWindow is how close to expiry a membership is surfaced
// as "expiring soon" in the admin views.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// Status classifies a membership against its expiry date.
type Status string

const (
	// StatusNotApplicable: no approved membership or no anchor date,
	// so there is nothing to expire.
	StatusNotApplicable Status = "notApplicable"
	StatusActive        Status = "active"
	StatusExpiringSoon  Status = "expiringSoon"
	StatusExpired       Status = "expired"
)

func IsValidDuration(months int) bool {
	switch months {
	case DurationMonthly, DurationQuarterly, DurationSemiAnnual, DurationAnnual:
		return true
	}
	return false
}

// DurationFromLegacy maps the legacy paymentMethod values that older
// profiles stored in place of an explicit plan duration. Anything
// unrecognized is a monthly plan.
func DurationFromLegacy(paymentMethod string) int {
	switch paymentMethod {
	case "Quarterly":
		return DurationQuarterly
	case "6-Month":
		return DurationSemiAnnual
	}
	return DurationMonthly
}

// Expiry computes the plan expiry by calendar-month addition.
//
// Month-end overflow follows time.Time.AddDate normalization: the
// overflowing days roll into the following month (Jan 31 + 1 month is
// Mar 2 or Mar 3 depending on February's length), matching the
// behavior of the runtime the member-facing app computes against.
func Expiry(enrolledAt time.Time, durationMonths int) time.Time {
	return enrolledAt.AddDate(0, durationMonths, 0)
}

// Classify buckets an approved membership into exactly one of
// expired / expiringSoon / active relative to now. Memberships without
// an anchor date or not approved are not applicable, never expired.
func Classify(enrolledAt time.Time, durationMonths int, approved bool, now time.Time) Status {
	if !approved || enrolledAt.IsZero() {
		return StatusNotApplicable
	}

	expiry := Expiry(enrolledAt, durationMonths)
	remaining := expiry.Sub(now)
	switch {
	case remaining < 0:
		return StatusExpired
	case remaining <= ExpiringSoonWindow:
		return StatusExpiringSoon
	default:
		return StatusActive
	}
}

// Label renders a duration for operator-facing views.
func Label(durationMonths int) string {
	switch durationMonths {
	case DurationMonthly:
		return "1 Month"
	case DurationQuarterly:
		return "3 Months"
	case DurationSemiAnnual:
		return "6 Months"
	case DurationAnnual:
		return "12 Months"
	}
	return "1 Month"
}
