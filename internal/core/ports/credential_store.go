package ports

import (
	"context"

	"github.com/worksync/session-agent/internal/core/domain"
)

// CredentialStore persists the bearer token and cached profile in exactly
// one retention scope.
type CredentialStore interface {
	Save(ctx context.Context, token string, user domain.UserProfile, remember bool) error
	Load(ctx context.Context) (domain.Credential, error)
	Clear(ctx context.Context) error
	// UpdateUser rewrites the cached profile in whichever scope holds the token.
	UpdateUser(ctx context.Context, user domain.UserProfile) error
	TokenSource
}

// TokenSource yields the bearer token for authenticated backend calls.
// An empty token means there is no session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
