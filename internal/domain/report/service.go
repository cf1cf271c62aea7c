package report

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gym-console/backend/internal/utils"
)

type Service struct {
	repo   *Repo
	logger *zap.Logger
}

func NewService(repo *Repo, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListByGym(ctx context.Context, gymID string, limit int) ([]Report, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	return s.repo.ListByGym(ctx, gymID, limit)
}

// Adjudicate moves a report to reviewed or rejected with audit fields
// and optional admin notes. Resolving is different: the record is
// deleted entirely; resolved reports do not exist.
func (s *Service) Adjudicate(ctx context.Context, adminUID, gymID, reportID, status, adminNotes string) error {
	if reportID == "" {
		return fmt.Errorf("%w: reportId is required", ErrBadRequest)
	}
	if !IsValidStatus(status) || status == StatusPending {
		return fmt.Errorf("%w: status must be reviewed, resolved or rejected", ErrBadRequest)
	}

	rep, err := s.repo.Get(ctx, reportID)
	if err != nil {
		return err
	}
	if gymID != "" && rep.GymID != gymID {
		return fmt.Errorf("%w: report belongs to another gym", ErrNotFound)
	}

	if status == StatusResolved {
		if err := s.repo.Delete(ctx, reportID); err != nil {
			return err
		}
		s.logger.Info("report resolved and deleted",
			zap.String("reportId", reportID),
			zap.String("gymId", rep.GymID),
			zap.String("by", adminUID))
		return nil
	}

	notes := utils.TrimMax(strings.TrimSpace(adminNotes), 1000)
	if err := s.repo.UpdateStatus(ctx, reportID, status, adminUID, notes); err != nil {
		return err
	}
	s.logger.Info("report adjudicated",
		zap.String("reportId", reportID),
		zap.String("gymId", rep.GymID),
		zap.String("status", status),
		zap.String("by", adminUID))
	return nil
}

// FlaggedGyms runs the platform-wide flagging aggregation.
func (s *Service) FlaggedGyms(ctx context.Context) ([]FlaggedGym, error) {
	reports, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	return Aggregate(reports, FlagThreshold), nil
}
