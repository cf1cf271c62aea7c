package review

import "time"

// Review is a member's star rating of a gym. Append-only, submitted
// by the member-facing app, read here.
type Review struct {
	ID    string `firestore:"-" json:"id"`
	GymID string `firestore:"gymId" json:"gymId"`

	UserID    string `firestore:"userId" json:"userId"`
	UserName  string `firestore:"userName,omitempty" json:"userName,omitempty"`
	UserEmail string `firestore:"userEmail,omitempty" json:"userEmail,omitempty"`

	Rating  int    `firestore:"rating" json:"rating"`
	Comment string `firestore:"comment,omitempty" json:"comment,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Summary aggregates a gym's review list for the admin view.
type Summary struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

func Summarize(reviews []Review) Summary {
	s := Summary{Count: len(reviews)}
	if s.Count == 0 {
		return s
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	s.AverageRating = float64(total) / float64(s.Count)
	return s
}
