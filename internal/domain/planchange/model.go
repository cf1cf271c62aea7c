package planchange

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a member's ask to move to a different plan duration.
// Created by the member-facing app; approval overwrites the member's
// planDuration and restarts the expiry clock.
type Request struct {
	ID     string `firestore:"-" json:"id"`
	UserID string `firestore:"userId" json:"userId"`
	GymID  string `firestore:"gymId,omitempty" json:"gymId,omitempty"`

	CurrentDuration   int `firestore:"currentDuration" json:"currentDuration"`
	RequestedDuration int `firestore:"requestedDuration" json:"requestedDuration"`

	Status string `firestore:"status" json:"status"`

	UserName  string `firestore:"userName,omitempty" json:"userName,omitempty"`
	UserEmail string `firestore:"userEmail,omitempty" json:"userEmail,omitempty"`
	GymName   string `firestore:"gymName,omitempty" json:"gymName,omitempty"`

	CreatedAt  time.Time  `firestore:"createdAt" json:"createdAt"`
	ReviewedAt *time.Time `firestore:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy string     `firestore:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
}

// Less orders the admin's queue: pending requests first, then newest
// first within each group.
func Less(a, b Request) bool {
	if a.Status == StatusPending && b.Status != StatusPending {
		return true
	}
	if b.Status == StatusPending && a.Status != StatusPending {
		return false
	}
	return a.CreatedAt.After(b.CreatedAt)
}
