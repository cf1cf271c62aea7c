package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"gym-console/backend/internal/store"
	"gym-console/backend/internal/utils"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) users() *firestore.CollectionRef {
	return r.fs.Collection("users")
}

func (r *Repo) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := r.users().Doc(uid).Get(ctx)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return nil, err
	}
	p, err := decodeProfile(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if p.UID == "" {
		p.UID = uid
	}
	return p, nil
}

// decodeProfile tolerates legacy documents whose date fields were
// written as strings or epoch numbers by older clients. The typed
// decode is tried first; on failure the time fields are re-read
// individually through the tolerant parser.
func decodeProfile(doc *firestore.DocumentSnapshot) (*Profile, error) {
	var p Profile
	if err := doc.DataTo(&p); err == nil {
		return &p, nil
	}

	raw := doc.Data()
	p = Profile{
		UID:              asString(raw["uid"]),
		Email:            asString(raw["email"]),
		DisplayName:      asString(raw["displayName"]),
		PhoneNumber:      asString(raw["phoneNumber"]),
		Role:             asString(raw["role"]),
		GymID:            asString(raw["gymId"]),
		EnrollmentStatus: asString(raw["enrollmentStatus"]),
		TimeSlot:         asString(raw["timeSlot"]),
		PaymentMethod:    asString(raw["paymentMethod"]),
		TransactionID:    asString(raw["transactionId"]),
	}
	switch n := raw["planDuration"].(type) {
	case int64:
		p.PlanDuration = int(n)
	case float64:
		p.PlanDuration = int(n)
	}
	if t, ok := utils.ParseDate(raw["enrolledAt"]); ok {
		p.EnrolledAt = &t
	}
	if t, ok := utils.ParseDate(raw["createdAt"]); ok {
		p.CreatedAt = t
	}
	if t, ok := utils.ParseDate(raw["updatedAt"]); ok {
		p.UpdatedAt = t
	}
	if p.Role == "" {
		return nil, fmt.Errorf("document has no role field")
	}
	return &p, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// Create writes a full profile document keyed by uid.
func (r *Repo) Create(ctx context.Context, p Profile) error {
	if p.UID == "" {
		return fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	_, err := r.users().Doc(p.UID).Create(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// Update applies a partial merge to the profile document.
func (r *Repo) Update(ctx context.Context, uid string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now().UTC()
	_, err := r.users().Doc(uid).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// Delete removes the profile document entirely.
func (r *Repo) Delete(ctx context.Context, uid string) error {
	_, err := r.users().Doc(uid).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// ListMembers returns the member profiles attached to a gym.
func (r *Repo) ListMembers(ctx context.Context, gymID string) ([]Profile, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}

	iter := r.users().
		Where("gymId", "==", gymID).
		Where("role", "==", RoleMember).
		Documents(ctx)

	var out []Profile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list members: %w", err)
		}
		p, err := decodeProfile(doc)
		if err != nil {
			continue
		}
		if p.UID == "" {
			p.UID = doc.Ref.ID
		}
		out = append(out, *p)
	}
	return out, nil
}

// CountApprovedMembers counts a gym's approved members.
func (r *Repo) CountApprovedMembers(ctx context.Context, gymID string) (int, error) {
	iter := r.users().
		Where("gymId", "==", gymID).
		Where("role", "==", RoleMember).
		Where("enrollmentStatus", "==", EnrollmentApproved).
		Documents(ctx)

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count members: %w", err)
		}
		count++
	}
	return count, nil
}

// MatchesSearch reports whether a profile matches a free-text search
// over name, email and phone.
func MatchesSearch(p Profile, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.DisplayName), q) ||
		strings.Contains(strings.ToLower(p.Email), q) ||
		strings.Contains(strings.ToLower(p.PhoneNumber), q)
}
