package service

import (
	"context"
	"log/slog"

	"cloudstream/internal/domain"
)

// SessionService manages the auth session lifecycle: establishing it via an
// auth flow, persisting it locally, and tearing it down at logout.
type SessionService struct {
	store  domain.Store
	logger *slog.Logger

	// revoke best-effort invalidates a token at the provider on logout.
	revoke func(ctx context.Context, accessToken string) error
}

// NewSessionService creates a new session service
func NewSessionService(store domain.Store, revoke func(ctx context.Context, accessToken string) error, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:  store,
		logger: logger,
		revoke: revoke,
	}
}

// Current returns the persisted session when it is still valid.
func (s *SessionService) Current() (domain.Session, bool) {
	sess, ok := s.store.LoadSession()
	if !ok || !sess.Valid() {
		return domain.Session{}, false
	}
	return sess, true
}

// Login runs the auth flow and persists the resulting session.
func (s *SessionService) Login(ctx context.Context, flow domain.AuthFlow) (domain.Session, error) {
	sess, err := flow.Run(ctx)
	if err != nil {
		s.logger.Error("authentication failed", "error", err)
		return domain.Session{}, err
	}

	if err := s.store.SaveSession(sess); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}

	if sess.User != nil {
		s.logger.Info("signed in", "email", sess.User.Email)
	}
	return sess, nil
}

// Logout revokes the token best-effort and clears the persisted session.
// Watch history survives logout.
func (s *SessionService) Logout(ctx context.Context) error {
	if sess, ok := s.store.LoadSession(); ok && s.revoke != nil {
		if err := s.revoke(ctx, sess.AccessToken); err != nil {
			s.logger.Warn("token revocation failed", "error", err)
		}
	}
	return s.store.ClearSession()
}
