package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

// CredentialStore keeps the token and profile snapshot in one of two scopes.
// Every write clears both scopes first, so at most one is ever populated.
type CredentialStore struct {
	durable ports.ScopeStorage
	session ports.ScopeStorage
	log     zerolog.Logger

	// mu orders clear-before-write sequences against concurrent readers.
	mu sync.Mutex
}

// NewCredentialStore wires the two scope backends.
func NewCredentialStore(durable, session ports.ScopeStorage, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{durable: durable, session: session, log: log}
}

// Save replaces any stored credential with token and user, in the durable
// scope when remember is set and in the session scope otherwise.
func (s *CredentialStore) Save(ctx context.Context, token string, user domain.UserProfile, remember bool) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("save credential: encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clearLocked(ctx); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}

	target, scope := s.session, domain.ScopeSession
	if remember {
		target, scope = s.durable, domain.ScopeDurable
	}
	if err := target.Set(ctx, domain.KeyToken, token); err != nil {
		return fmt.Errorf("save credential: %s token: %w", scope, err)
	}
	if err := target.Set(ctx, domain.KeyUser, string(payload)); err != nil {
		return fmt.Errorf("save credential: %s user: %w", scope, err)
	}

	s.log.Debug().Str("scope", scope.String()).Str("user_id", user.ID).Msg("credential saved")
	return nil
}

// Load returns the stored credential, preferring the durable scope.
func (s *CredentialStore) Load(ctx context.Context) (domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Clear removes token and profile from both scopes.
func (s *CredentialStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.clearLocked(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// UpdateUser rewrites the cached profile without moving the token to
// another scope.
func (s *CredentialStore) UpdateUser(ctx context.Context, user domain.UserProfile) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("update user: encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cred, err := s.loadLocked(ctx)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	target := s.storageFor(cred.Scope)
	if target == nil {
		return nil
	}
	if err := target.Set(ctx, domain.KeyUser, string(payload)); err != nil {
		return fmt.Errorf("update user: %s: %w", cred.Scope, err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when there is none.
func (s *CredentialStore) Token(ctx context.Context) (string, error) {
	cred, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}

func (s *CredentialStore) loadLocked(ctx context.Context) (domain.Credential, error) {
	for _, scope := range []domain.Scope{domain.ScopeDurable, domain.ScopeSession} {
		storage := s.storageFor(scope)
		token, err := storage.Get(ctx, domain.KeyToken)
		if errors.Is(err, ports.ErrKeyNotFound) || (err == nil && token == "") {
			continue
		}
		if err != nil {
			return domain.None(), fmt.Errorf("load credential: %s token: %w", scope, err)
		}

		cred := domain.Credential{Scope: scope, Token: token}
		raw, err := storage.Get(ctx, domain.KeyUser)
		switch {
		case err == nil:
			if uerr := json.Unmarshal([]byte(raw), &cred.User); uerr != nil {
				// A damaged snapshot is not fatal: bootstrap refetches the profile.
				s.log.Warn().Err(uerr).Str("scope", scope.String()).Msg("cached user snapshot unreadable")
				cred.User = domain.UserProfile{}
			}
		case errors.Is(err, ports.ErrKeyNotFound):
		default:
			return domain.None(), fmt.Errorf("load credential: %s user: %w", scope, err)
		}
		return cred, nil
	}
	return domain.None(), nil
}

func (s *CredentialStore) clearLocked(ctx context.Context) error {
	var errs []error
	if err := s.durable.Delete(ctx, domain.KeyToken, domain.KeyUser); err != nil {
		errs = append(errs, fmt.Errorf("durable: %w", err))
	}
	if err := s.session.Delete(ctx, domain.KeyToken, domain.KeyUser); err != nil {
		errs = append(errs, fmt.Errorf("session: %w", err))
	}
	return errors.Join(errs...)
}

func (s *CredentialStore) storageFor(scope domain.Scope) ports.ScopeStorage {
	switch scope {
	case domain.ScopeDurable:
		return s.durable
	case domain.ScopeSession:
		return s.session
	default:
		return nil
	}
}
