package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/repository"
	apperrors "github.com/DakshSitapara/wishlist/pkg/errors"
)

// AuthService manages accounts and the single active session. Credentials are
// stored and compared in plaintext; this is a personal tool with no security
// hardening, matching the storage layout it persists to.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	logger   *slog.Logger
}

// NewAuthService creates an auth service backed by the given repositories.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, logger: logger}
}

// Signup registers a new account and logs it in. Registering a taken
// username fails with apperrors.ErrAlreadyExists.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	user := domain.User{Username: username, Password: password}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.setCurrent(ctx, username)
	s.logger.InfoContext(ctx, "user signed up", slog.String("user", username))
	return &user, nil
}

// Login verifies the credentials and marks the user as logged in. An unknown
// username fails with apperrors.ErrNotFound so the caller can suggest signing
// up; a wrong password fails with apperrors.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "failed to load account",
			slog.String("user", username),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.Internal(err)
	}

	if user.Password != password {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	s.setCurrent(ctx, username)
	s.logger.InfoContext(ctx, "user logged in", slog.String("user", username))
	return user, nil
}

// Logout clears the active session. Logging out with nobody logged in is a
// no-op reported as success.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear session",
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// CurrentUser returns the logged-in username, or "" when nobody is logged
// in. A session that cannot be read is logged and treated as logged out.
func (s *AuthService) CurrentUser(ctx context.Context) string {
	username, err := s.sessions.Current(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read session, treating as logged out",
			slog.String("error", err.Error()),
		)
		return ""
	}
	return username
}

// setCurrent records the session. A failed write is logged and does not fail
// the signup or login that triggered it.
func (s *AuthService) setCurrent(ctx context.Context, username string) {
	if err := s.sessions.SetCurrent(ctx, username); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist session",
			slog.String("user", username),
			slog.String("error", err.Error()),
		)
	}
}
