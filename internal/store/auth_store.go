package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront-client/internal/api"
	"storefront-client/internal/model"
	"storefront-client/internal/session"

	"github.com/rs/zerolog"
)

// Access is a guard level for store actions and CLI commands.
type Access int

const (
	// Authenticated requires a logged-in user.
	Authenticated Access = iota
	// AdminOnly requires a logged-in admin.
	AdminOnly
	// CustomerOnly requires a logged-in non-admin. Admins manage products, they don't shop.
	CustomerOnly
)

// AuthState is a snapshot of the auth store.
type AuthState struct {
	User            *model.User
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
}

// AuthStore holds the authenticated session and keeps it persisted.
type AuthStore struct {
	api      api.AuthAPI
	sessions session.Store
	flight   inflight
	now      func() time.Time
	logger   zerolog.Logger

	mu      sync.RWMutex
	current session.State
	err     string
}

// NewAuthStore creates an auth store backed by the given session storage.
// Call Restore to load a previously persisted session.
func NewAuthStore(authAPI api.AuthAPI, sessions session.Store, logger zerolog.Logger) *AuthStore {
	return &AuthStore{
		api:      authAPI,
		sessions: sessions,
		now:      time.Now,
		logger:   logger.With().Str("store", "auth").Logger(),
	}
}

// Restore loads the persisted session. An expired token is discarded and
// the stored session cleared.
func (s *AuthStore) Restore(ctx context.Context) error {
	state, err := s.sessions.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load session")
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if state.Anonymous() {
		s.logger.Debug().Msg("no stored session")
		s.mu.Lock()
		s.current = session.State{}
		s.mu.Unlock()
		return nil
	}

	if state.Token != "" && session.Expired(state.Token, s.now()) {
		s.logger.Info().Msg("stored token expired, discarding session")
		if err := s.sessions.Clear(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to clear expired session")
		}
		state = session.State{}
	}

	// A token is required for the authenticated flag to hold
	if state.Token == "" {
		state.IsAuthenticated = false
	}

	s.mu.Lock()
	s.current = state
	s.mu.Unlock()

	s.logger.Debug().Bool("authenticated", state.IsAuthenticated).Msg("session restored")
	return nil
}

// Login exchanges credentials for a session. On failure the current
// session is left untouched and the error message is recorded.
func (s *AuthStore) Login(ctx context.Context, creds model.Credentials) (*model.AuthResult, error) {
	key := flightKey("login", strings.ToLower(creds.Email), digest(creds))
	return do(&s.flight, key, func() (*model.AuthResult, error) {
		s.setError("")

		result, err := s.api.Login(ctx, creds)
		if err != nil {
			s.logger.Warn().Err(err).Str("email", creds.Email).Msg("login failed")
			s.setError(api.Message(err, "Login failed"))
			return nil, err
		}

		if err := s.establish(ctx, result); err != nil {
			s.setError("Login failed")
			return nil, err
		}

		s.logger.Info().Str("user_id", result.User.ID).Msg("logged in")
		return result, nil
	})
}

// Register creates an account and starts a session for it.
func (s *AuthStore) Register(ctx context.Context, reg model.Registration) (*model.AuthResult, error) {
	key := flightKey("register", strings.ToLower(reg.Email), digest(reg))
	return do(&s.flight, key, func() (*model.AuthResult, error) {
		s.setError("")

		result, err := s.api.Register(ctx, reg)
		if err != nil {
			s.logger.Warn().Err(err).Str("email", reg.Email).Msg("registration failed")
			s.setError(api.Message(err, "Registration failed"))
			return nil, err
		}

		if err := s.establish(ctx, result); err != nil {
			s.setError("Registration failed")
			return nil, err
		}

		s.logger.Info().Str("user_id", result.User.ID).Msg("registered")
		return result, nil
	})
}

// establish persists a fresh session and then swaps it in.
func (s *AuthStore) establish(ctx context.Context, result *model.AuthResult) error {
	if result.User == nil {
		return errors.New("auth response carries no user")
	}

	next := session.State{
		User:            result.User,
		Token:           result.Token,
		IsAuthenticated: true,
	}

	if err := s.sessions.Save(ctx, next); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist session")
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return nil
}

// Logout clears persisted storage and resets to anonymous. The in-memory
// session is reset even when clearing storage fails.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.reset()

	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear session")
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Info().Msg("logged out")
	return nil
}

// Expire forces re-authentication after the server rejected the session.
func (s *AuthStore) Expire(ctx context.Context) {
	s.reset()

	if err := s.sessions.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear expired session")
	}

	s.logger.Warn().Msg("session expired, please login again")
}

func (s *AuthStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session.State{}
}

// Authorize checks the current session against an access level.
func (s *AuthStore) Authorize(access Access) error {
	s.mu.RLock()
	state := s.current
	s.mu.RUnlock()

	if !state.IsAuthenticated {
		return model.ErrNotAuthenticated
	}

	switch access {
	case AdminOnly:
		if !state.User.IsAdmin() {
			return model.ErrAdminOnly
		}
	case CustomerOnly:
		if state.User.IsAdmin() {
			return model.ErrAdminRestricted
		}
	}

	return nil
}

// Token returns the current bearer token, or "" when anonymous.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// ClearError resets the recorded error message.
func (s *AuthStore) ClearError() {
	s.setError("")
}

// State returns a snapshot of the store.
func (s *AuthStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return AuthState{
		User:            s.current.User,
		Token:           s.current.Token,
		IsAuthenticated: s.current.IsAuthenticated,
		Loading:         s.flight.busy(),
		Error:           s.err,
	}
}

func (s *AuthStore) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}
