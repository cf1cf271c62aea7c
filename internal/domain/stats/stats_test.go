package stats

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-console/backend/internal/domain/enrollment"
	"gym-console/backend/internal/domain/user"
)

func TestSummarize(t *testing.T) {
	enrollments := []enrollment.Enrollment{
		{Status: enrollment.StatusApproved, Amount: 1500},
		{Status: enrollment.StatusApproved, Amount: 4000},
		{Status: enrollment.StatusPending, Amount: 1500},
		{Status: enrollment.StatusRejected, Amount: 1500},
	}
	members := []user.Profile{
		{UID: "m1", EnrollmentStatus: user.EnrollmentApproved},
		{UID: "m2", EnrollmentStatus: user.EnrollmentApproved},
		{UID: "m3", EnrollmentStatus: user.EnrollmentPending},
	}

	st := Summarize("gym-1", enrollments, members)

	assert.Equal(t, "gym-1", st.GymID)
	assert.Equal(t, 3, st.TotalMembers)
	assert.Equal(t, 2, st.ApprovedMembers)
	assert.Equal(t, 4, st.TotalEnrollments)
	assert.Equal(t, 1, st.PendingEnrollments)
	assert.Equal(t, 2, st.ApprovedEnrollments)
	assert.Equal(t, 1, st.RejectedEnrollments)
	// Revenue counts approved amounts only.
	assert.Equal(t, 5500.0, st.TotalRevenue)
}

func TestSummarizeEmpty(t *testing.T) {
	st := Summarize("gym-1", nil, nil)
	assert.Equal(t, 0, st.TotalMembers)
	assert.Equal(t, 0, st.TotalEnrollments)
	assert.Equal(t, 0.0, st.TotalRevenue)
}

func TestWritePaymentsCSV(t *testing.T) {
	enrollments := []enrollment.Enrollment{
		{
			UserName:      "Asha Verma",
			UserEmail:     "asha@example.com",
			Amount:        1500,
			PaymentMethod: "UPI",
			Status:        enrollment.StatusApproved,
			CreatedAt:     time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			UserName:      "Rohan Iyer",
			UserEmail:     "rohan@example.com",
			Amount:        4000.5,
			PaymentMethod: "Quarterly",
			Status:        enrollment.StatusPending,
			CreatedAt:     time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePaymentsCSV(&buf, enrollments))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Date", "Member", "Email", "Amount", "Payment Method", "Status"}, rows[0])
	assert.Equal(t, []string{"2026-03-01T09:30:00Z", "Asha Verma", "asha@example.com", "1500.00", "UPI", "approved"}, rows[1])
	assert.Equal(t, []string{"2026-03-02T18:00:00Z", "Rohan Iyer", "rohan@example.com", "4000.50", "Quarterly", "pending"}, rows[2])
}

func TestWritePaymentsCSVEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePaymentsCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
