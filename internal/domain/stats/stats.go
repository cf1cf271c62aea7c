// Package stats builds the payments and membership summary for a gym
// from its enrollment ledger, plus a CSV export of the same ledger.
package stats

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gym-console/backend/internal/domain/enrollment"
	"gym-console/backend/internal/domain/user"
)

// GymStats is the admin dashboard summary for one gym.
type GymStats struct {
	GymID string `json:"gymId"`

	TotalMembers    int `json:"totalMembers"`
	ApprovedMembers int `json:"approvedMembers"`

	TotalEnrollments    int `json:"totalEnrollments"`
	PendingEnrollments  int `json:"pendingEnrollments"`
	ApprovedEnrollments int `json:"approvedEnrollments"`
	RejectedEnrollments int `json:"rejectedEnrollments"`

	// TotalRevenue sums the amounts of approved enrollments only.
	TotalRevenue float64 `json:"totalRevenue"`
}

type Service struct {
	enrollments *enrollment.Repo
	users       *user.Repo
}

func NewService(enrollments *enrollment.Repo, users *user.Repo) *Service {
	return &Service{enrollments: enrollments, users: users}
}

func (s *Service) GymStats(ctx context.Context, gymID string) (*GymStats, error) {
	enrollments, err := s.enrollments.ListByGym(ctx, gymID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}
	members, err := s.users.ListMembers(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	st := Summarize(gymID, enrollments, members)
	return &st, nil
}

// Summarize folds the ledger and member list into counters.
func Summarize(gymID string, enrollments []enrollment.Enrollment, members []user.Profile) GymStats {
	st := GymStats{GymID: gymID, TotalMembers: len(members)}
	for _, m := range members {
		if m.EnrollmentStatus == user.EnrollmentApproved {
			st.ApprovedMembers++
		}
	}
	st.TotalEnrollments = len(enrollments)
	for _, e := range enrollments {
		switch e.Status {
		case enrollment.StatusPending:
			st.PendingEnrollments++
		case enrollment.StatusApproved:
			st.ApprovedEnrollments++
			st.TotalRevenue += e.Amount
		case enrollment.StatusRejected:
			st.RejectedEnrollments++
		}
	}
	return st
}

// WritePaymentsCSV streams the gym's payment ledger as CSV.
func (s *Service) WritePaymentsCSV(ctx context.Context, w io.Writer, gymID string) error {
	enrollments, err := s.enrollments.ListByGym(ctx, gymID, 0)
	if err != nil {
		return fmt.Errorf("failed to load enrollments: %w", err)
	}
	return WritePaymentsCSV(w, enrollments)
}

// WritePaymentsCSV writes the ledger rows with a fixed header. Dates
// use RFC 3339 so spreadsheets and scripts parse them alike.
func WritePaymentsCSV(w io.Writer, enrollments []enrollment.Enrollment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Member", "Email", "Amount", "Payment Method", "Status"}); err != nil {
		return err
	}
	for _, e := range enrollments {
		row := []string{
			e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			e.UserName,
			e.UserEmail,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.PaymentMethod,
			e.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
