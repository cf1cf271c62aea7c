package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gym-console/backend/internal/domain/plan"
)

func TestEffectivePlanDuration(t *testing.T) {
	t.Run("explicit duration wins", func(t *testing.T) {
		p := Profile{PlanDuration: 6, PaymentMethod: "Quarterly"}
		assert.Equal(t, 6, p.EffectivePlanDuration())
	})

	t.Run("legacy paymentMethod fallback", func(t *testing.T) {
		assert.Equal(t, 3, Profile{PaymentMethod: "Quarterly"}.EffectivePlanDuration())
		assert.Equal(t, 6, Profile{PaymentMethod: "6-Month"}.EffectivePlanDuration())
	})

	t.Run("unknown defaults to monthly", func(t *testing.T) {
		assert.Equal(t, 1, Profile{PaymentMethod: "UPI"}.EffectivePlanDuration())
		assert.Equal(t, 1, Profile{}.EffectivePlanDuration())
	})

	t.Run("invalid stored duration falls back", func(t *testing.T) {
		p := Profile{PlanDuration: 5, PaymentMethod: "Quarterly"}
		assert.Equal(t, 3, p.EffectivePlanDuration())
	})
}

func TestMembershipStatus(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	enrolled := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("pending profile is not applicable", func(t *testing.T) {
		p := Profile{EnrollmentStatus: EnrollmentPending, EnrolledAt: &enrolled, PlanDuration: 1}
		assert.Equal(t, plan.StatusNotApplicable, p.MembershipStatus(now))
	})

	t.Run("approved without anchor is not applicable", func(t *testing.T) {
		p := Profile{EnrollmentStatus: EnrollmentApproved, PlanDuration: 1}
		assert.Equal(t, plan.StatusNotApplicable, p.MembershipStatus(now))
	})

	t.Run("approved with recent anchor is active", func(t *testing.T) {
		p := Profile{EnrollmentStatus: EnrollmentApproved, EnrolledAt: &enrolled, PlanDuration: 3}
		assert.Equal(t, plan.StatusActive, p.MembershipStatus(now))
	})

	t.Run("approved past expiry is expired", func(t *testing.T) {
		old := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
		p := Profile{EnrollmentStatus: EnrollmentApproved, EnrolledAt: &old, PlanDuration: 1}
		assert.Equal(t, plan.StatusExpired, p.MembershipStatus(now))
	})
}

func TestMatchesSearch(t *testing.T) {
	p := Profile{
		DisplayName: "Asha Verma",
		Email:       "asha.verma@example.com",
		PhoneNumber: "+91 98765 43210",
	}

	assert.True(t, MatchesSearch(p, ""))
	assert.True(t, MatchesSearch(p, "  "))
	assert.True(t, MatchesSearch(p, "asha"))
	assert.True(t, MatchesSearch(p, "VERMA"))
	assert.True(t, MatchesSearch(p, "example.com"))
	assert.True(t, MatchesSearch(p, "98765"))
	assert.False(t, MatchesSearch(p, "rohan"))
}

func TestValidators(t *testing.T) {
	assert.True(t, IsValidRole(RoleSuperAdmin))
	assert.True(t, IsValidRole(RoleGymAdmin))
	assert.True(t, IsValidRole(RoleMember))
	assert.False(t, IsValidRole("owner"))

	assert.True(t, IsValidEnrollmentStatus(EnrollmentNone))
	assert.False(t, IsValidEnrollmentStatus("archived"))

	assert.True(t, IsValidTimeSlot(SlotMorning))
	assert.False(t, IsValidTimeSlot("Afternoon"))
}
