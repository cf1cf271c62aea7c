package user

import (
	"time"

	"gym-console/backend/internal/domain/plan"
)

// Platform roles.
const (
	RoleSuperAdmin = "superAdmin"
	RoleGymAdmin   = "gymAdmin"
	RoleMember     = "member"
)

// Enrollment statuses on the profile record.
const (
	EnrollmentNone     = "none"
	EnrollmentPending  = "pending"
	EnrollmentApproved = "approved"
	EnrollmentRejected = "rejected"
)

// Time slots a member can train in.
const (
	SlotMorning = "Morning"
	SlotEvening = "Evening"
	SlotNight   = "Night"
)

// Profile is the canonical account record for any platform user.
// GymID is empty unless the user is a gym admin or a member with a
// pending/approved enrollment; rejection clears it.
type Profile struct {
	UID         string `firestore:"uid" json:"uid"`
	Email       string `firestore:"email,omitempty" json:"email,omitempty"`
	DisplayName string `firestore:"displayName,omitempty" json:"displayName,omitempty"`
	PhoneNumber string `firestore:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`

	Role             string `firestore:"role" json:"role"`
	GymID            string `firestore:"gymId,omitempty" json:"gymId,omitempty"`
	EnrollmentStatus string `firestore:"enrollmentStatus,omitempty" json:"enrollmentStatus,omitempty"`

	PlanDuration  int    `firestore:"planDuration,omitempty" json:"planDuration,omitempty"`
	TimeSlot      string `firestore:"timeSlot,omitempty" json:"timeSlot,omitempty"`
	PaymentMethod string `firestore:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	TransactionID string `firestore:"transactionId,omitempty" json:"transactionId,omitempty"`

	EnrolledAt *time.Time `firestore:"enrolledAt,omitempty" json:"enrolledAt,omitempty"`
	CreatedAt  time.Time  `firestore:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt  time.Time  `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// EffectivePlanDuration resolves the plan length in months, falling
// back to the legacy paymentMethod encoding for older profiles.
func (p Profile) EffectivePlanDuration() int {
	if plan.IsValidDuration(p.PlanDuration) {
		return p.PlanDuration
	}
	return plan.DurationFromLegacy(p.PaymentMethod)
}

// MembershipStatus classifies the profile's plan against now.
func (p Profile) MembershipStatus(now time.Time) plan.Status {
	var anchor time.Time
	if p.EnrolledAt != nil {
		anchor = *p.EnrolledAt
	}
	return plan.Classify(anchor, p.EffectivePlanDuration(), p.EnrollmentStatus == EnrollmentApproved, now)
}

func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleGymAdmin, RoleMember:
		return true
	}
	return false
}

func IsValidEnrollmentStatus(status string) bool {
	switch status {
	case EnrollmentNone, EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return true
	}
	return false
}

func IsValidTimeSlot(slot string) bool {
	switch slot {
	case SlotMorning, SlotEvening, SlotNight:
		return true
	}
	return false
}

// MemberView is a profile decorated with the computed membership
// classification for list/detail screens.
type MemberView struct {
	Profile
	Membership plan.Status `json:"membershipStatus"`
}
