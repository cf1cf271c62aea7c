package enrollment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"gym-console/backend/internal/domain/user"
)

// Service runs the membership lifecycle. Each transition updates the
// enrollment request and the member profile together inside one
// Firestore transaction, so a failure leaves neither document half
// updated. (The consoles this replaces issued the two writes
// sequentially with no rollback; success-path behavior is identical.)
type Service struct {
	fs       *firestore.Client
	repo     *Repo
	userRepo *user.Repo
	logger   *zap.Logger
}

func NewService(fs *firestore.Client, repo *Repo, userRepo *user.Repo, logger *zap.Logger) *Service {
	return &Service{fs: fs, repo: repo, userRepo: userRepo, logger: logger}
}

// errAlreadyApproved signals the idempotent no-op path out of a transaction.
var errAlreadyApproved = errors.New("already approved")

func (s *Service) userDoc(uid string) *firestore.DocumentRef {
	return s.fs.Collection("users").Doc(uid)
}

// ListByGym is the gym admin's payment/verification ledger.
func (s *Service) ListByGym(ctx context.Context, gymID string, limit int) ([]Enrollment, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	return s.repo.ListByGym(ctx, gymID, limit)
}

// Approve moves a pending membership to approved: the profile gains
// the gym association and the expiry anchor, the newest pending
// enrollment record gains the audit fields. Re-approving an
// already-approved member is a no-op; the expiry clock is not
// restarted by an operator double-click.
func (s *Service) Approve(ctx context.Context, adminUID, gymID, memberUID string) (*user.Profile, error) {
	if err := validateTarget(gymID, memberUID); err != nil {
		return nil, err
	}

	profile, err := s.userRepo.Get(ctx, memberUID)
	if err != nil {
		return nil, err
	}
	if profile.Role != user.RoleMember {
		return nil, fmt.Errorf("%w: %s is not a member account", ErrBadRequest, memberUID)
	}
	if profile.EnrollmentStatus == user.EnrollmentApproved {
		return profile, nil
	}
	if !CanApprove(profile.EnrollmentStatus) {
		return nil, fmt.Errorf("%w: cannot approve from status %q", ErrConflict, profile.EnrollmentStatus)
	}

	candidates, err := s.repo.FindCandidates(ctx, memberUID, gymID, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to find enrollment request: %w", err)
	}
	target := MostRecent(candidates)

	now := time.Now().UTC()
	err = s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(s.userDoc(memberUID))
		if err != nil {
			return err
		}
		status, _ := snap.DataAt("enrollmentStatus")
		if status == user.EnrollmentApproved {
			return errAlreadyApproved
		}
		if status != user.EnrollmentPending {
			return fmt.Errorf("%w: profile left pending state", ErrConflict)
		}

		if err := tx.Set(s.userDoc(memberUID), ApproveProfileUpdates(gymID, now), firestore.MergeAll); err != nil {
			return err
		}
		if target != nil {
			return tx.Set(s.repo.Doc(target.ID), ApproveEnrollmentUpdates(adminUID, now), firestore.MergeAll)
		}
		return nil
	})
	if err != nil && !errors.Is(err, errAlreadyApproved) {
		return nil, fmt.Errorf("failed to approve member: %w", err)
	}

	s.logger.Info("member approved",
		zap.String("memberUid", memberUID),
		zap.String("gymId", gymID),
		zap.String("verifiedBy", adminUID))

	return s.userRepo.Get(ctx, memberUID)
}

// Reject adjudicates a pending membership negatively: the enrollment
// record is marked rejected with audit fields and the profile's gym
// association is severed.
func (s *Service) Reject(ctx context.Context, adminUID, gymID, memberUID string) (*user.Profile, error) {
	if err := validateTarget(gymID, memberUID); err != nil {
		return nil, err
	}

	profile, err := s.userRepo.Get(ctx, memberUID)
	if err != nil {
		return nil, err
	}
	if !CanReject(profile.EnrollmentStatus) {
		return nil, fmt.Errorf("%w: cannot reject from status %q", ErrConflict, profile.EnrollmentStatus)
	}

	candidates, err := s.repo.FindCandidates(ctx, memberUID, gymID, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to find enrollment request: %w", err)
	}
	target := MostRecent(candidates)

	now := time.Now().UTC()
	err = s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(s.userDoc(memberUID), RejectProfileUpdates(), firestore.MergeAll); err != nil {
			return err
		}
		if target != nil {
			return tx.Set(s.repo.Doc(target.ID), RejectEnrollmentUpdates(adminUID, now), firestore.MergeAll)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reject member: %w", err)
	}

	s.logger.Info("member rejected",
		zap.String("memberUid", memberUID),
		zap.String("gymId", gymID),
		zap.String("verifiedBy", adminUID))

	return s.userRepo.Get(ctx, memberUID)
}

// SetPending is the administrative undo: the profile drops back to
// pending with its expiry anchor cleared, and the newest enrollment
// record for the user+gym (any status) has its audit fields cleared.
func (s *Service) SetPending(ctx context.Context, adminUID, gymID, memberUID string) (*user.Profile, error) {
	if err := validateTarget(gymID, memberUID); err != nil {
		return nil, err
	}

	profile, err := s.userRepo.Get(ctx, memberUID)
	if err != nil {
		return nil, err
	}
	if !CanReset(profile.EnrollmentStatus) {
		return nil, fmt.Errorf("%w: cannot reset from status %q", ErrConflict, profile.EnrollmentStatus)
	}

	candidates, err := s.repo.FindCandidates(ctx, memberUID, gymID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to find enrollment request: %w", err)
	}
	target := MostRecent(candidates)

	err = s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(s.userDoc(memberUID), ResetProfileUpdates(), firestore.MergeAll); err != nil {
			return err
		}
		if target != nil {
			return tx.Set(s.repo.Doc(target.ID), ResetEnrollmentUpdates(), firestore.MergeAll)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set member pending: %w", err)
	}

	s.logger.Info("member reset to pending",
		zap.String("memberUid", memberUID),
		zap.String("gymId", gymID),
		zap.String("resetBy", adminUID))

	return s.userRepo.Get(ctx, memberUID)
}

func validateTarget(gymID, memberUID string) error {
	if gymID == "" || memberUID == "" {
		return fmt.Errorf("%w: gymId and memberUid are required", ErrBadRequest)
	}
	return nil
}
