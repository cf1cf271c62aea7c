package report

import "sort"

// FlagThreshold is the active-report count at which a gym is surfaced
// to the platform operators.
const FlagThreshold = 3

// FlaggedGym summarizes a gym whose active (pending or reviewed)
// report count reached the threshold.
type FlaggedGym struct {
	GymID          string         `json:"gymId"`
	GymName        string         `json:"gymName,omitempty"`
	TotalReports   int            `json:"totalReports"`
	PendingReports int            `json:"pendingReports"`
	IssueBreakdown map[string]int `json:"issueBreakdown"`
	Reports        []Report       `json:"reports"`
}

// Aggregate groups reports by gym, drops terminal (resolved/rejected)
// records from the counts, and flags gyms at or past the threshold.
// Flagged gyms come back ordered by active-report count descending;
// each gym's reports are newest-first. A report tagged with several
// issue types contributes once to each type's count.
func Aggregate(reports []Report, threshold int) []FlaggedGym {
	byGym := map[string]*FlaggedGym{}
	order := []string{}

	for _, r := range reports {
		if !r.IsActive() {
			continue
		}
		fg, ok := byGym[r.GymID]
		if !ok {
			fg = &FlaggedGym{GymID: r.GymID, IssueBreakdown: map[string]int{}}
			byGym[r.GymID] = fg
			order = append(order, r.GymID)
		}
		if fg.GymName == "" {
			fg.GymName = r.GymName
		}
		fg.TotalReports++
		if r.Status == StatusPending {
			fg.PendingReports++
		}
		for _, issue := range r.IssueTypes {
			fg.IssueBreakdown[issue]++
		}
		fg.Reports = append(fg.Reports, r)
	}

	out := []FlaggedGym{}
	for _, gymID := range order {
		fg := byGym[gymID]
		if fg.TotalReports < threshold {
			continue
		}
		sort.SliceStable(fg.Reports, func(i, j int) bool {
			return fg.Reports[i].CreatedAt.After(fg.Reports[j].CreatedAt)
		})
		out = append(out, *fg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalReports > out[j].TotalReports
	})
	return out
}
