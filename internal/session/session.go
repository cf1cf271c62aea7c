// Package session resolves a verified token into the caller's profile
// and gym once per request. Handlers pass the session to services
// explicitly instead of re-reading identity out of the context.
package session

import (
	"context"
	"errors"
	"fmt"

	"gym-console/backend/internal/domain/gym"
	"gym-console/backend/internal/domain/user"
	"gym-console/backend/internal/middleware"
)

var ErrForbidden = errors.New("forbidden")

// Session is the request-scoped view of the caller. Gym is non-nil
// only for gym admins whose profile carries a gymId.
type Session struct {
	UID     string
	Email   string
	Profile *user.Profile
	Gym     *gym.Gym
}

type Loader struct {
	users *user.Repo
	gyms  *gym.Repo
}

func NewLoader(users *user.Repo, gyms *gym.Repo) *Loader {
	return &Loader{users: users, gyms: gyms}
}

// Load builds the session for an authenticated caller. A missing
// profile is a forbidden condition, not a 404: the token is valid but
// the account has no standing on the platform.
func (l *Loader) Load(ctx context.Context, au *middleware.AuthUser) (*Session, error) {
	p, err := l.users.Get(ctx, au.UID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: no profile for caller", ErrForbidden)
		}
		return nil, err
	}

	s := &Session{UID: au.UID, Email: au.Email, Profile: p}
	if p.Email == "" {
		p.Email = au.Email
	}

	if p.Role == user.RoleGymAdmin && p.GymID != "" {
		g, err := l.gyms.Get(ctx, p.GymID)
		if err != nil {
			if errors.Is(err, gym.ErrNotFound) {
				return nil, fmt.Errorf("%w: gym %s no longer exists", ErrForbidden, p.GymID)
			}
			return nil, err
		}
		s.Gym = g
	}

	return s, nil
}

func (s *Session) IsSuperAdmin() bool {
	return s.Profile != nil && s.Profile.Role == user.RoleSuperAdmin
}

func (s *Session) IsGymAdmin() bool {
	return s.Profile != nil && s.Profile.Role == user.RoleGymAdmin && s.Gym != nil
}

// GymID is the gym the caller administers, empty otherwise.
func (s *Session) GymID() string {
	if s.Gym == nil {
		return ""
	}
	return s.Gym.ID
}

// RequireSuperAdmin gates platform-level operations.
func (s *Session) RequireSuperAdmin() error {
	if !s.IsSuperAdmin() {
		return fmt.Errorf("%w: super admin access required", ErrForbidden)
	}
	return nil
}

// RequireGymAdmin gates gym-scoped operations and returns the gym id
// the caller may act on.
func (s *Session) RequireGymAdmin() (string, error) {
	if !s.IsGymAdmin() {
		return "", fmt.Errorf("%w: gym admin access required", ErrForbidden)
	}
	if !s.Gym.IsActive {
		return "", fmt.Errorf("%w: gym is deactivated", ErrForbidden)
	}
	return s.Gym.ID, nil
}
