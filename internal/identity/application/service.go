package application

import (
	"context"
	"time"

	"github.com/lumacart/storefront/internal/identity/domain"
	"github.com/lumacart/storefront/internal/identity/session"
	"github.com/lumacart/storefront/pkg/logger"
)

// Service resolves session tokens into users and syncs user rows on login.
type Service struct {
	users       domain.UserRepository
	sessions    *session.Manager
	ownerOpenID string
}

// NewService builds the identity service. ownerOpenID names the login
// identity promoted to admin on sign-in; empty disables promotion.
func NewService(users domain.UserRepository, sessions *session.Manager, ownerOpenID string) *Service {
	return &Service{users: users, sessions: sessions, ownerOpenID: ownerOpenID}
}

// Sessions exposes the token manager for the composition root.
func (s *Service) Sessions() *session.Manager { return s.sessions }

// ResolveSession turns a raw cookie token into a user. Unresolvable tokens
// yield a nil user and no error: the call simply stays unauthenticated.
// Tokens for a subject we have never seen create the user row (first login).
func (s *Service) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := s.sessions.Parse(token)
	if err != nil {
		logger.Debug(ctx, "session token rejected", "error", err)
		return nil, nil
	}

	user, err := s.users.GetByOpenID(ctx, claims.OpenID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	// First request for this subject: sync the row from the token profile.
	if err := s.SyncUser(ctx, domain.UpsertUser{
		OpenID:      claims.OpenID,
		Name:        claims.Name,
		Email:       claims.Email,
		LoginMethod: claims.LoginMethod,
	}); err != nil {
		return nil, err
	}
	return s.users.GetByOpenID(ctx, claims.OpenID)
}

// SyncUser upserts a user on login, promoting the configured owner identity
// to admin.
func (s *Service) SyncUser(ctx context.Context, u domain.UpsertUser) error {
	if u.Role == "" && s.ownerOpenID != "" && u.OpenID == s.ownerOpenID {
		u.Role = domain.RoleAdmin
	}
	if u.LastSignedIn.IsZero() {
		u.LastSignedIn = time.Now()
	}
	return s.users.Upsert(ctx, u)
}

// GetUser returns a user by id, nil when absent.
func (s *Service) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
