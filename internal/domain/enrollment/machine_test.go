package enrollment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-console/backend/internal/domain/user"
)

func TestTransitionGates(t *testing.T) {
	assert.True(t, CanApprove(user.EnrollmentPending))
	assert.False(t, CanApprove(user.EnrollmentApproved))
	assert.False(t, CanApprove(user.EnrollmentRejected))
	assert.False(t, CanApprove(user.EnrollmentNone))

	assert.True(t, CanReject(user.EnrollmentPending))
	assert.False(t, CanReject(user.EnrollmentApproved))

	assert.True(t, CanReset(user.EnrollmentApproved))
	assert.True(t, CanReset(user.EnrollmentRejected))
	assert.False(t, CanReset(user.EnrollmentPending))
	assert.False(t, CanReset(user.EnrollmentNone))
}

func TestApproveUpdates(t *testing.T) {
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)

	profile := ApproveProfileUpdates("gym-1", now)
	assert.Equal(t, user.EnrollmentApproved, profile["enrollmentStatus"])
	assert.Equal(t, now, profile["enrolledAt"])
	assert.Equal(t, "gym-1", profile["gymId"])

	record := ApproveEnrollmentUpdates("admin-1", now)
	assert.Equal(t, StatusApproved, record["status"])
	assert.Equal(t, now, record["verifiedAt"])
	assert.Equal(t, "admin-1", record["verifiedBy"])
}

func TestRejectUpdatesSeverGymAssociation(t *testing.T) {
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)

	profile := RejectProfileUpdates()
	assert.Equal(t, user.EnrollmentRejected, profile["enrollmentStatus"])
	require.Contains(t, profile, "gymId")
	assert.Nil(t, profile["gymId"])

	record := RejectEnrollmentUpdates("admin-1", now)
	assert.Equal(t, StatusRejected, record["status"])
	assert.Equal(t, "admin-1", record["verifiedBy"])
}

func TestResetUpdatesClearAnchorAndAudit(t *testing.T) {
	profile := ResetProfileUpdates()
	assert.Equal(t, user.EnrollmentPending, profile["enrollmentStatus"])
	require.Contains(t, profile, "enrolledAt")
	assert.Nil(t, profile["enrolledAt"])

	record := ResetEnrollmentUpdates()
	assert.Equal(t, StatusPending, record["status"])
	require.Contains(t, record, "verifiedAt")
	assert.Nil(t, record["verifiedAt"])
	require.Contains(t, record, "verifiedBy")
	assert.Nil(t, record["verifiedBy"])
}

// A reset followed by re-approval restarts the expiry clock at the new
// approval time rather than resurrecting the first anchor.
func TestResetThenApproveRestartsClock(t *testing.T) {
	firstApproval := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	secondApproval := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	first := ApproveProfileUpdates("gym-1", firstApproval)
	assert.Equal(t, firstApproval, first["enrolledAt"])

	reset := ResetProfileUpdates()
	assert.Nil(t, reset["enrolledAt"])

	second := ApproveProfileUpdates("gym-1", secondApproval)
	assert.Equal(t, secondApproval, second["enrolledAt"])
}

func TestMostRecent(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, MostRecent(nil))
		assert.Nil(t, MostRecent([]Enrollment{}))
	})

	t.Run("newest createdAt wins regardless of order", func(t *testing.T) {
		old := Enrollment{ID: "old", CreatedAt: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)}
		mid := Enrollment{ID: "mid", CreatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)}
		newest := Enrollment{ID: "new", CreatedAt: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)}

		got := MostRecent([]Enrollment{mid, newest, old})
		require.NotNil(t, got)
		assert.Equal(t, "new", got.ID)

		got = MostRecent([]Enrollment{newest, old, mid})
		require.NotNil(t, got)
		assert.Equal(t, "new", got.ID)
	})

	t.Run("single candidate", func(t *testing.T) {
		only := Enrollment{ID: "only"}
		got := MostRecent([]Enrollment{only})
		require.NotNil(t, got)
		assert.Equal(t, "only", got.ID)
	})
}
