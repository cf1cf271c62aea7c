package enrollment

import "time"

// Enrollment statuses. The request record mirrors (but is stored
// separately from) the profile's enrollmentStatus.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Enrollment is a payment/verification request tracking a member's
// attempt to join or renew at a gym. Created by the member-facing app;
// this console only adjudicates it.
type Enrollment struct {
	ID        string `firestore:"-" json:"id"`
	UserID    string `firestore:"userId" json:"userId"`
	UserName  string `firestore:"userName,omitempty" json:"userName,omitempty"`
	UserEmail string `firestore:"userEmail,omitempty" json:"userEmail,omitempty"`
	GymID     string `firestore:"gymId" json:"gymId"`
	GymName   string `firestore:"gymName,omitempty" json:"gymName,omitempty"`

	Amount        float64 `firestore:"amount" json:"amount"`
	PaymentMethod string  `firestore:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	TransactionID string  `firestore:"transactionId,omitempty" json:"transactionId,omitempty"`

	Status string `firestore:"status" json:"status"`

	CreatedAt  time.Time  `firestore:"createdAt" json:"createdAt"`
	VerifiedAt *time.Time `firestore:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	VerifiedBy string     `firestore:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
