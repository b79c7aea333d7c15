package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"courtlistener.app/cl/common/id"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionExpired     = errors.New("session expired")
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, *model.Session, error)
	StartSession(ctx context.Context, userID int64) (*model.Session, error)
	ValidateSession(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
}

func NewAuthService(userStore store.UserStore, sessionStore store.SessionStore) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, *model.Session, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}

	if !user.IsActive || !CheckPassword(user.PasswordHash, password) {
		slog.InfoContext(ctx, "login rejected", "user_id", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.StartSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID, "session_id", session.ID)
	return user, session, nil
}

func (s *authService) StartSession(ctx context.Context, userID int64) (*model.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(model.SessionTTL),
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", userID,
		)
		return nil, fmt.Errorf("creating session: %w", err)
	}

	if err := s.userStore.TouchLastLogin(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to record last login", "error", err, "user_id", userID)
	}

	return session, nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	session, err := s.sessionStore.GetValidByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrSessionExpired
	}

	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessionStore.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *authService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessionStore.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired sessions removed", "count", n)
	}
	return n, nil
}
