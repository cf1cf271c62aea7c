package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportAt(gymID, status string, day int, issues ...string) Report {
	return Report{
		GymID:      gymID,
		GymName:    gymID + " name",
		Status:     status,
		IssueTypes: issues,
		CreatedAt:  time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestAggregateBelowThresholdNotFlagged(t *testing.T) {
	reports := []Report{
		reportAt("gymA", StatusPending, 1, IssueEquipment),
		reportAt("gymA", StatusPending, 2, IssueCleanliness),
	}

	got := Aggregate(reports, FlagThreshold)
	assert.Empty(t, got)
}

func TestAggregateReviewedCountsTowardThreshold(t *testing.T) {
	reports := []Report{
		reportAt("gymA", StatusPending, 1, IssueEquipment),
		reportAt("gymA", StatusPending, 2, IssueCleanliness),
		reportAt("gymA", StatusReviewed, 3, IssueEquipment),
	}

	got := Aggregate(reports, FlagThreshold)
	require.Len(t, got, 1)

	fg := got[0]
	assert.Equal(t, "gymA", fg.GymID)
	assert.Equal(t, 3, fg.TotalReports)
	assert.Equal(t, 2, fg.PendingReports)
	assert.Equal(t, map[string]int{IssueEquipment: 2, IssueCleanliness: 1}, fg.IssueBreakdown)
}

func TestAggregateIgnoresTerminalStatuses(t *testing.T) {
	reports := []Report{
		reportAt("gymA", StatusPending, 1, IssueEquipment),
		reportAt("gymA", StatusPending, 2, IssueEquipment),
		reportAt("gymA", StatusResolved, 3, IssueEquipment),
		reportAt("gymA", StatusRejected, 4, IssueEquipment),
	}

	got := Aggregate(reports, FlagThreshold)
	assert.Empty(t, got)
}

func TestAggregateMultiTypeReportCountsOncePerType(t *testing.T) {
	reports := []Report{
		reportAt("gymA", StatusPending, 1, IssueEquipment, IssueSafety),
		reportAt("gymA", StatusPending, 2, IssueSafety),
		reportAt("gymA", StatusReviewed, 3),
	}

	got := Aggregate(reports, FlagThreshold)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]int{IssueEquipment: 1, IssueSafety: 2}, got[0].IssueBreakdown)
}

func TestAggregateOrdering(t *testing.T) {
	reports := []Report{
		reportAt("quiet", StatusPending, 1, IssueOther),
		reportAt("busy", StatusPending, 2, IssueStaff),
		reportAt("busy", StatusPending, 5, IssueStaff),
		reportAt("busy", StatusReviewed, 3, IssueStaff),
		reportAt("busy", StatusPending, 4, IssueStaff),
		reportAt("loud", StatusPending, 1, IssueOther),
		reportAt("loud", StatusReviewed, 2, IssueOther),
		reportAt("loud", StatusPending, 3, IssueOther),
	}

	got := Aggregate(reports, FlagThreshold)
	require.Len(t, got, 2)

	assert.Equal(t, "busy", got[0].GymID)
	assert.Equal(t, 4, got[0].TotalReports)
	assert.Equal(t, "loud", got[1].GymID)
	assert.Equal(t, 3, got[1].TotalReports)

	// Each gym's reports come back newest-first.
	days := []int{}
	for _, r := range got[0].Reports {
		days = append(days, r.CreatedAt.Day())
	}
	assert.Equal(t, []int{5, 4, 3, 2}, days)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil, FlagThreshold))
	assert.Empty(t, Aggregate([]Report{}, FlagThreshold))
}

func TestIsActive(t *testing.T) {
	assert.True(t, Report{Status: StatusPending}.IsActive())
	assert.True(t, Report{Status: StatusReviewed}.IsActive())
	assert.False(t, Report{Status: StatusResolved}.IsActive())
	assert.False(t, Report{Status: StatusRejected}.IsActive())
}
