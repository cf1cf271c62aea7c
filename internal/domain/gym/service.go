package gym

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"gym-console/backend/internal/domain/user"
	"gym-console/backend/internal/utils"
)

type Service struct {
	repo       *Repo
	userRepo   *user.Repo
	authClient *auth.Client
	logger     *zap.Logger
}

func NewService(repo *Repo, userRepo *user.Repo, authClient *auth.Client, logger *zap.Logger) *Service {
	return &Service{repo: repo, userRepo: userRepo, authClient: authClient, logger: logger}
}

func (s *Service) Get(ctx context.Context, gymID string) (*Gym, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}
	return s.repo.Get(ctx, gymID)
}

func (s *Service) List(ctx context.Context, limit int) ([]Gym, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.repo.List(ctx, limit)
}

// Provision creates the gym admin's auth account, the gym document and
// the admin's profile document, in that order. The auth account is
// created first so a failed gym write never leaves a gym without a
// sign-in.
func (s *Service) Provision(ctx context.Context, creatorUID string, in ProvisionInput) (*ProvisionResult, error) {
	in.Trim()

	if in.Name == "" || in.UPIID == "" || in.MonthlyFee <= 0 {
		return nil, fmt.Errorf("%w: name, upiId and a positive monthlyFee are required", ErrBadRequest)
	}
	if in.AdminName == "" || in.AdminEmail == "" {
		return nil, fmt.Errorf("%w: adminName and adminEmail are required", ErrBadRequest)
	}
	if len(in.AdminPassword) < 6 {
		return nil, fmt.Errorf("%w: admin password must be at least 6 characters", ErrBadRequest)
	}

	params := (&auth.UserToCreate{}).
		Email(in.AdminEmail).
		Password(in.AdminPassword).
		DisplayName(in.AdminName)

	adminUser, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, fmt.Errorf("%w: %s", ErrEmailInUse, in.AdminEmail)
		}
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}

	now := time.Now().UTC()
	g := Gym{
		Name:          in.Name,
		Slug:          utils.Slugify(in.Name),
		Address:       in.Address,
		Phone:         in.Phone,
		Email:         in.Email,
		UPIID:         in.UPIID,
		MonthlyFee:    in.MonthlyFee,
		QuarterlyFee:  in.QuarterlyFee,
		SemiAnnualFee: in.SemiAnnualFee,
		Description:   in.Description,
		Amenities:     in.Amenities,
		Capacity:      in.Capacity,
		AdminID:       adminUser.UID,
		CreatedBy:     creatorUID,
		IsActive:      true,
		SearchTokens:  utils.SearchTokens(in.Name, in.Address),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, g)
	if err != nil {
		return nil, err
	}

	adminProfile := user.Profile{
		UID:              adminUser.UID,
		Email:            in.AdminEmail,
		DisplayName:      in.AdminName,
		Role:             user.RoleGymAdmin,
		GymID:            created.ID,
		EnrollmentStatus: user.EnrollmentNone,
		CreatedAt:        now,
	}
	if err := s.userRepo.Create(ctx, adminProfile); err != nil {
		return nil, err
	}

	// Role claim lets the token itself carry authorization; profile
	// remains the source of truth for gym association.
	claims := map[string]interface{}{"role": user.RoleGymAdmin, "gymId": created.ID}
	if err := s.authClient.SetCustomUserClaims(ctx, adminUser.UID, claims); err != nil {
		s.logger.Warn("failed to set role claims for gym admin",
			zap.String("uid", adminUser.UID), zap.Error(err))
	}

	s.logger.Info("gym provisioned",
		zap.String("gymId", created.ID),
		zap.String("adminUid", adminUser.UID),
		zap.String("createdBy", creatorUID))

	return &ProvisionResult{Gym: created, AdminUID: adminUser.UID, AdminEmail: in.AdminEmail}, nil
}

// SetActive flips the soft-delete flag. Gyms are never hard-deleted.
func (s *Service) SetActive(ctx context.Context, gymID string, active bool) (*Gym, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}
	if _, err := s.repo.Get(ctx, gymID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, gymID, map[string]interface{}{"isActive": active}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, gymID)
}

// UpdateSettings applies the gym admin's settings form to their own gym.
func (s *Service) UpdateSettings(ctx context.Context, gymID string, in UpdateSettingsInput) (*Gym, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrBadRequest)
		}
		updates["name"] = name
		updates["slug"] = utils.Slugify(name)
		updates["searchTokens"] = utils.SearchTokens(name)
	}
	if in.Address != nil {
		updates["address"] = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		updates["phone"] = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		updates["email"] = strings.TrimSpace(*in.Email)
	}
	if in.UPIID != nil {
		upi := strings.TrimSpace(*in.UPIID)
		if upi == "" {
			return nil, fmt.Errorf("%w: upiId cannot be empty", ErrBadRequest)
		}
		updates["upiId"] = upi
	}
	if in.MonthlyFee != nil {
		if *in.MonthlyFee <= 0 {
			return nil, fmt.Errorf("%w: monthlyFee must be positive", ErrBadRequest)
		}
		updates["monthlyFee"] = *in.MonthlyFee
	}
	if in.QuarterlyFee != nil {
		updates["quarterlyFee"] = *in.QuarterlyFee
	}
	if in.SemiAnnualFee != nil {
		updates["semiAnnualFee"] = *in.SemiAnnualFee
	}
	if in.Description != nil {
		updates["description"] = utils.TrimMax(*in.Description, 2000)
	}
	if in.Amenities != nil {
		updates["amenities"] = *in.Amenities
	}
	if in.OpeningHours != nil {
		updates["openingHours"] = strings.TrimSpace(*in.OpeningHours)
	}
	if in.Capacity != nil {
		updates["capacity"] = *in.Capacity
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrBadRequest)
	}

	if err := s.repo.Update(ctx, gymID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, gymID)
}

// AppendImage records an uploaded gym image object path.
func (s *Service) AppendImage(ctx context.Context, gymID, objectPath string) error {
	if gymID == "" || objectPath == "" {
		return fmt.Errorf("%w: gymId and objectPath are required", ErrBadRequest)
	}
	return s.repo.Update(ctx, gymID, map[string]interface{}{
		"images": firestore.ArrayUnion(objectPath),
	})
}

// PlatformStats summarizes the platform for the super-admin dashboard.
type PlatformStats struct {
	TotalGyms       int     `json:"totalGyms"`
	ActiveGyms      int     `json:"activeGyms"`
	MonthlyFeeTotal float64 `json:"monthlyFeeTotal"`
}

func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	gyms, err := s.repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	out := &PlatformStats{TotalGyms: len(gyms)}
	for _, g := range gyms {
		if g.IsActive {
			out.ActiveGyms++
		}
		out.MonthlyFeeTotal += g.MonthlyFee
	}
	return out, nil
}
