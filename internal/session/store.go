package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/PhucLe22/lms-client/internal/models"
)

type profileFetcher interface {
	Me(ctx context.Context) (*models.User, error)
}

// Store holds the current user and token. It implements the API client's
// TokenSource so a 401 and an explicit logout clear the same storage.
type Store struct {
	mu      sync.RWMutex
	storage TokenStorage
	logger  *zap.Logger

	user    *models.User
	token   string
	loading bool

	hydrateOnce sync.Once
	hydrated    chan struct{}
}

// NewStore loads any persisted token. When one exists the store starts in
// the loading state until Hydrate resolves the profile.
func NewStore(storage TokenStorage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{storage: storage, logger: logger, hydrated: make(chan struct{})}
	token, err := storage.Load()
	if err != nil {
		logger.Warn("token storage unreadable", zap.Error(err))
	}
	s.token = token
	s.loading = token != ""
	if token == "" {
		s.hydrateOnce.Do(func() { close(s.hydrated) })
	}
	return s
}

// Hydrate resolves the persisted token into a user profile. On failure the
// token is discarded. Safe to call once per process, typically right after
// the API client is constructed.
func (s *Store) Hydrate(ctx context.Context, auth profileFetcher) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return
	}

	user, err := auth.Me(ctx)

	s.mu.Lock()
	if err != nil {
		s.logger.Debug("session hydration failed", zap.Error(err))
		s.token = ""
		s.user = nil
		_ = s.storage.Clear()
	} else {
		s.user = user
	}
	s.loading = false
	s.mu.Unlock()

	s.hydrateOnce.Do(func() { close(s.hydrated) })
}

// AwaitHydration blocks until hydration finished or ctx expires.
func (s *Store) AwaitHydration(ctx context.Context) error {
	select {
	case <-s.hydrated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login persists the token and synthesizes a user from the auth response.
// The response carries no user id, so it stays empty until the next
// hydration.
func (s *Store) Login(auth *models.AuthResponse) error {
	if err := s.storage.Save(auth.Token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = auth.Token
	s.user = &models.User{
		FullName: auth.FullName,
		Email:    auth.Email,
		Role:     auth.Role,
	}
	s.loading = false
	s.mu.Unlock()
	s.hydrateOnce.Do(func() { close(s.hydrated) })
	return nil
}

// Logout clears token and user synchronously. No network call.
func (s *Store) Logout() {
	s.Clear()
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear implements api.TokenSource. Called by the transport on 401.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.loading = false
	s.mu.Unlock()
	_ = s.storage.Clear()
}

// User returns the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether hydration is still in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsAuthenticated reports whether a user is resolved.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// IsAdmin is derived from the user role.
func (s *Store) IsAdmin() bool {
	u := s.User()
	return u != nil && u.Role == models.RoleAdmin
}

// IsStudent is derived from the user role.
func (s *Store) IsStudent() bool {
	u := s.User()
	return u != nil && u.Role == models.RoleStudent
}

// TokenExpiry peeks at the token's exp claim without verifying the
// signature. Verification is the server's job; this is display-only.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
