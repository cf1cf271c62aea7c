package enrollment

import (
	"time"

	"gym-console/backend/internal/domain/user"
)

// The membership lifecycle: pending -> approved | rejected, plus an
// administrative reset back to pending. Each transition touches two
// documents (the enrollment request and the member profile); the
// functions below produce the field updates for each side so the
// pairing stays inspectable and testable away from the store.

// CanApprove / CanReject gate the normal adjudication transitions.
func CanApprove(profileStatus string) bool { return profileStatus == user.EnrollmentPending }
func CanReject(profileStatus string) bool  { return profileStatus == user.EnrollmentPending }

// CanReset gates the administrative "set back to pending" override.
// It applies to any adjudicated profile, approved or rejected.
func CanReset(profileStatus string) bool {
	return profileStatus == user.EnrollmentApproved || profileStatus == user.EnrollmentRejected
}

// ApproveProfileUpdates: approval is the event that starts the expiry
// clock: enrolledAt anchors the plan from this moment.
func ApproveProfileUpdates(gymID string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"enrollmentStatus": user.EnrollmentApproved,
		"enrolledAt":       now,
		"gymId":            gymID,
	}
}

func ApproveEnrollmentUpdates(verifiedBy string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"status":     StatusApproved,
		"verifiedAt": now,
		"verifiedBy": verifiedBy,
	}
}

// RejectProfileUpdates severs the gym association.
func RejectProfileUpdates() map[string]interface{} {
	return map[string]interface{}{
		"enrollmentStatus": user.EnrollmentRejected,
		"gymId":            nil,
	}
}

func RejectEnrollmentUpdates(verifiedBy string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"status":     StatusRejected,
		"verifiedAt": now,
		"verifiedBy": verifiedBy,
	}
}

// ResetProfileUpdates clears the expiry anchor; a later re-approval
// restarts the clock at the new approval time.
func ResetProfileUpdates() map[string]interface{} {
	return map[string]interface{}{
		"enrollmentStatus": user.EnrollmentPending,
		"enrolledAt":       nil,
	}
}

func ResetEnrollmentUpdates() map[string]interface{} {
	return map[string]interface{}{
		"status":     StatusPending,
		"verifiedAt": nil,
		"verifiedBy": nil,
	}
}

// MostRecent picks the enrollment record a transition should act on
// when several exist for the same user+gym. Historical records can
// accumulate across renewal cycles; the newest createdAt wins.
func MostRecent(candidates []Enrollment) *Enrollment {
	if len(candidates) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].CreatedAt.After(candidates[best].CreatedAt) {
			best = i
		}
	}
	return &candidates[best]
}
