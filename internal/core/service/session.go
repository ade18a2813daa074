package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/worksync/session-agent/internal/api/metrics"
	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

// SessionState is what consumers may observe about the session.
type SessionState struct {
	CurrentUser         *domain.UserProfile
	BootstrapInProgress bool
}

// SessionObserver is told about every change of the current user. A nil
// user means the session ended.
type SessionObserver func(user *domain.UserProfile)

// SessionManager is the single writer of the current-user state.
type SessionManager struct {
	store        ports.CredentialStore
	auth         ports.AuthAPI
	bootstrapper *Bootstrapper
	log          zerolog.Logger

	mu        sync.RWMutex
	user      *domain.UserProfile
	observers []SessionObserver

	// notifyMu keeps observer deliveries in the same order as the writes.
	notifyMu sync.Mutex

	once   sync.Once
	ready  chan struct{}
	result BootstrapResult
}

// NewSessionManager returns a manager whose bootstrap has not run yet.
func NewSessionManager(store ports.CredentialStore, auth ports.AuthAPI, bootstrapper *Bootstrapper, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:        store,
		auth:         auth,
		bootstrapper: bootstrapper,
		log:          log,
		ready:        make(chan struct{}),
	}
}

// Bootstrap runs the bootstrapper exactly once. Concurrent and later callers
// block until the first run finishes and receive its result.
func (m *SessionManager) Bootstrap(ctx context.Context) BootstrapResult {
	m.once.Do(func() {
		res := m.bootstrapper.Run(ctx)
		m.result = res
		metrics.BootstrapTotal.WithLabelValues(string(res.Outcome)).Inc()
		m.setUser(res.User)
		close(m.ready)
	})
	<-m.ready
	return m.result
}

// Ready is closed once bootstrap has completed.
func (m *SessionManager) Ready() <-chan struct{} {
	return m.ready
}

// BootstrapInProgress reports whether protected surfaces must still wait.
func (m *SessionManager) BootstrapInProgress() bool {
	select {
	case <-m.ready:
		return false
	default:
		return true
	}
}

// Login records a session already validated by the backend.
func (m *SessionManager) Login(ctx context.Context, token string, user domain.UserProfile, remember bool) error {
	if token == "" {
		return fmt.Errorf("login: %w: empty token", domain.ErrInvalidInput)
	}
	if err := m.store.Save(ctx, token, user, remember); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	m.setUser(&user)
	m.log.Info().Str("user_id", user.ID).Bool("remember", remember).Msg("session started")
	return nil
}

// Authenticate exchanges email and password for a token and starts a
// session with it.
func (m *SessionManager) Authenticate(ctx context.Context, email, password string, remember bool) (*domain.UserProfile, error) {
	res, err := m.auth.Login(ctx, email, password, remember)
	if err != nil {
		m.log.Warn().Err(err).Str("email", email).Msg("login rejected")
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := m.Login(ctx, res.Token, res.User, remember); err != nil {
		return nil, err
	}
	return res.User.Clone(), nil
}

// Logout drops the stored credential and the current user. Calling it with
// no session is a no-op apart from the storage clear.
func (m *SessionManager) Logout(ctx context.Context) error {
	err := m.store.Clear(ctx)
	m.setUser(nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	m.log.Info().Msg("session ended")
	return nil
}

// CurrentUser returns a copy of the signed-in profile, or nil.
func (m *SessionManager) CurrentUser() *domain.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// State returns a consistent snapshot for consumers.
func (m *SessionManager) State() SessionState {
	return SessionState{
		CurrentUser:         m.CurrentUser(),
		BootstrapInProgress: m.BootstrapInProgress(),
	}
}

// Subscribe registers fn for user changes. fn is invoked immediately with
// the current user so late subscribers do not miss an established session.
// That first call is ordered with later changes like any other delivery.
func (m *SessionManager) Subscribe(fn SessionObserver) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	m.observers = append(m.observers, fn)
	current := m.user.Clone()
	m.mu.Unlock()
	fn(current)
}

// TokenExpiry returns the exp claim of the stored token when it is a JWT.
// The signature is not checked; the backend stays the authority.
func (m *SessionManager) TokenExpiry(ctx context.Context) (time.Time, bool) {
	token, err := m.store.Token(ctx)
	if err != nil || token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (m *SessionManager) setUser(user *domain.UserProfile) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	m.user = user.Clone()
	observers := append([]SessionObserver(nil), m.observers...)
	m.mu.Unlock()

	// Observers run outside the lock so they may read the session back.
	for _, fn := range observers {
		fn(user.Clone())
	}
}
