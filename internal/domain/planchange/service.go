package planchange

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"gym-console/backend/internal/domain/plan"
)

type Service struct {
	fs     *firestore.Client
	repo   *Repo
	logger *zap.Logger
}

func NewService(fs *firestore.Client, repo *Repo, logger *zap.Logger) *Service {
	return &Service{fs: fs, repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, gymID string, limit int) ([]Request, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	return s.repo.ListByGym(ctx, gymID, limit)
}

// Approve grants the plan change: the request gains its audit fields
// and the member's profile takes the requested duration with a fresh
// enrolledAt; the new plan cycle starts now rather than extending the
// old one. Both writes go through one transaction.
func (s *Service) Approve(ctx context.Context, adminUID, gymID, requestID string) (*Request, error) {
	req, err := s.loadFor(ctx, gymID, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: request already %s", ErrConflict, req.Status)
	}
	if !plan.IsValidDuration(req.RequestedDuration) {
		return nil, fmt.Errorf("%w: requested duration %d is not a valid plan", ErrBadRequest, req.RequestedDuration)
	}

	now := time.Now().UTC()
	userDoc := s.fs.Collection("users").Doc(req.UserID)

	err = s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(s.repo.Doc(requestID), map[string]interface{}{
			"status":     StatusApproved,
			"reviewedAt": now,
			"reviewedBy": adminUID,
		}, firestore.MergeAll); err != nil {
			return err
		}
		return tx.Set(userDoc, map[string]interface{}{
			"planDuration": req.RequestedDuration,
			"enrolledAt":   now,
		}, firestore.MergeAll)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve plan change: %w", err)
	}

	s.logger.Info("plan change approved",
		zap.String("requestId", requestID),
		zap.String("userId", req.UserID),
		zap.Int("from", req.CurrentDuration),
		zap.Int("to", req.RequestedDuration))

	return s.repo.Get(ctx, requestID)
}

// Reject only touches the request's own audit fields; the member's
// profile keeps its current plan.
func (s *Service) Reject(ctx context.Context, adminUID, gymID, requestID string) (*Request, error) {
	req, err := s.loadFor(ctx, gymID, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, fmt.Errorf("%w: request already %s", ErrConflict, req.Status)
	}

	now := time.Now().UTC()
	if _, err := s.repo.Doc(requestID).Set(ctx, map[string]interface{}{
		"status":     StatusRejected,
		"reviewedAt": now,
		"reviewedBy": adminUID,
	}, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to reject plan change: %w", err)
	}

	s.logger.Info("plan change rejected",
		zap.String("requestId", requestID),
		zap.String("userId", req.UserID))

	return s.repo.Get(ctx, requestID)
}

func (s *Service) loadFor(ctx context.Context, gymID, requestID string) (*Request, error) {
	if gymID == "" || requestID == "" {
		return nil, fmt.Errorf("%w: gymId and requestId are required", ErrBadRequest)
	}
	req, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.GymID != gymID {
		return nil, fmt.Errorf("%w: request belongs to another gym", ErrNotFound)
	}
	return req, nil
}
