package checkin

import "time"

// ActiveCheckIn is a "currently present" record. The member-facing app
// creates it at check-in and replaces it with a CheckInHistory entry at
// checkout; the console only lists them.
type ActiveCheckIn struct {
	ID       string `firestore:"-" json:"id"`
	UserID   string `firestore:"userId" json:"userId"`
	UserName string `firestore:"userName,omitempty" json:"userName,omitempty"`
	GymID    string `firestore:"gymId" json:"gymId"`

	TimeSlot  string    `firestore:"timeSlot,omitempty" json:"timeSlot,omitempty"`
	CheckedIn time.Time `firestore:"checkedInAt" json:"checkedInAt"`
}

// HistoryEntry is a completed visit. Duration is seconds between
// check-in and checkout; Date is the visit's day key (YYYY-MM-DD).
type HistoryEntry struct {
	ID       string `firestore:"-" json:"id"`
	UserID   string `firestore:"userId" json:"userId"`
	UserName string `firestore:"userName,omitempty" json:"userName,omitempty"`
	GymID    string `firestore:"gymId" json:"gymId"`

	Date       string    `firestore:"date" json:"date"`
	CheckedIn  time.Time `firestore:"checkedInAt" json:"checkedInAt"`
	CheckedOut time.Time `firestore:"checkedOutAt" json:"checkedOutAt"`
	Duration   int64     `firestore:"duration" json:"duration"`
}
