package report

import "time"

// Report statuses. Pending and reviewed are "active": they count
// toward a gym's flagging; resolved and rejected are terminal.
const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

// Issue types a member can tag on a report.
const (
	IssueEquipment   = "Equipment"
	IssueCleanliness = "Cleanliness"
	IssueStaff       = "Staff"
	IssueSafety      = "Safety"
	IssueOther       = "Other"
)

// Report is a member-submitted issue against a gym.
type Report struct {
	ID      string `firestore:"-" json:"id"`
	GymID   string `firestore:"gymId" json:"gymId"`
	GymName string `firestore:"gymName,omitempty" json:"gymName,omitempty"`

	UserID    string `firestore:"userId" json:"userId"`
	UserName  string `firestore:"userName,omitempty" json:"userName,omitempty"`
	UserEmail string `firestore:"userEmail,omitempty" json:"userEmail,omitempty"`

	IssueTypes  []string `firestore:"issueTypes,omitempty" json:"issueTypes,omitempty"`
	Description string   `firestore:"description,omitempty" json:"description,omitempty"`

	Status     string `firestore:"status" json:"status"`
	AdminNotes string `firestore:"adminNotes,omitempty" json:"adminNotes,omitempty"`

	CreatedAt  time.Time  `firestore:"createdAt" json:"createdAt"`
	ReviewedAt *time.Time `firestore:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy string     `firestore:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
}

// IsActive reports whether the record still counts toward flagging.
func (r Report) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusReviewed
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusReviewed, StatusResolved, StatusRejected:
		return true
	}
	return false
}
