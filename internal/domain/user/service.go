package user

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"gym-console/backend/internal/domain/plan"
)

type Service struct {
	repo   *Repo
	logger *zap.Logger
}

func NewService(repo *Repo, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// MemberFilter narrows the member list. Status matches the profile's
// enrollmentStatus; Membership matches the computed plan classification
// (active, expiringSoon, expired); Search is free text over name,
// email and phone.
type MemberFilter struct {
	Status     string
	Membership plan.Status
	Search     string
}

// ListMembers returns a gym's members decorated with their membership
// classification, newest profile first. Filtering happens client-side:
// the status/search combinations would otherwise each need their own
// composite index.
func (s *Service) ListMembers(ctx context.Context, gymID string, f MemberFilter) ([]MemberView, error) {
	profiles, err := s.repo.ListMembers(ctx, gymID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]MemberView, 0, len(profiles))
	for _, p := range profiles {
		if f.Status != "" && p.EnrollmentStatus != f.Status {
			continue
		}
		if !MatchesSearch(p, f.Search) {
			continue
		}
		mv := MemberView{Profile: p, Membership: p.MembershipStatus(now)}
		if f.Membership != "" && mv.Membership != f.Membership {
			continue
		}
		out = append(out, mv)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetMember returns one member of the gym with classification attached.
func (s *Service) GetMember(ctx context.Context, gymID, uid string) (*MemberView, error) {
	p, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p.Role != RoleMember || p.GymID != gymID {
		return nil, fmt.Errorf("%w: member %s", ErrNotFound, uid)
	}
	return &MemberView{Profile: *p, Membership: p.MembershipStatus(time.Now().UTC())}, nil
}

// RemoveMember hard-deletes a member's profile document. Their auth
// account and enrollment history are left alone.
func (s *Service) RemoveMember(ctx context.Context, adminUID, gymID, uid string) error {
	p, err := s.repo.Get(ctx, uid)
	if err != nil {
		return err
	}
	if p.Role != RoleMember || p.GymID != gymID {
		return fmt.Errorf("%w: member %s", ErrNotFound, uid)
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}
	s.logger.Info("member removed",
		zap.String("uid", uid),
		zap.String("gymId", gymID),
		zap.String("by", adminUID))
	return nil
}
