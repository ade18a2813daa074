package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

const defaultBootstrapTimeout = 10 * time.Second

// BootstrapOutcome names how a bootstrap run resolved.
type BootstrapOutcome string

const (
	OutcomeAnonymous     BootstrapOutcome = "anonymous"
	OutcomeAuthenticated BootstrapOutcome = "authenticated"
	OutcomeRejected      BootstrapOutcome = "rejected"
)

// BootstrapResult is the definite state a bootstrap run resolves to.
type BootstrapResult struct {
	Outcome BootstrapOutcome
	User    *domain.UserProfile
	Scope   domain.Scope
}

// Bootstrapper validates a previously stored token against the backend.
type Bootstrapper struct {
	store   ports.CredentialStore
	auth    ports.AuthAPI
	timeout time.Duration
	log     zerolog.Logger
}

// NewBootstrapper returns a Bootstrapper. A non-positive timeout falls back
// to 10 seconds.
func NewBootstrapper(store ports.CredentialStore, auth ports.AuthAPI, timeout time.Duration, log zerolog.Logger) *Bootstrapper {
	if timeout <= 0 {
		timeout = defaultBootstrapTimeout
	}
	return &Bootstrapper{store: store, auth: auth, timeout: timeout, log: log}
}

// Run resolves the stored credential to an authenticated or anonymous state.
// It never returns an error: every failure degrades to anonymous.
func (b *Bootstrapper) Run(ctx context.Context) BootstrapResult {
	cred, err := b.store.Load(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("bootstrap: credential load failed")
		b.clear(ctx)
		return BootstrapResult{Outcome: OutcomeRejected}
	}
	if !cred.Present() {
		b.log.Info().Msg("bootstrap: no stored token")
		return BootstrapResult{Outcome: OutcomeAnonymous}
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	user, err := b.auth.CurrentUser(callCtx, cred.Token)
	if err != nil {
		ev := b.log.Warn().Err(err).Str("scope", cred.Scope.String())
		if errors.Is(err, context.DeadlineExceeded) {
			ev = ev.Bool("timeout", true)
		}
		ev.Msg("bootstrap: stored token rejected, clearing credentials")
		b.clear(ctx)
		return BootstrapResult{Outcome: OutcomeRejected}
	}

	if err := b.store.UpdateUser(ctx, *user); err != nil {
		// The session is still valid; only the cached snapshot is stale.
		b.log.Warn().Err(err).Msg("bootstrap: refreshing cached profile failed")
	}

	b.log.Info().Str("user_id", user.ID).Str("scope", cred.Scope.String()).Msg("bootstrap: session restored")
	return BootstrapResult{Outcome: OutcomeAuthenticated, User: user.Clone(), Scope: cred.Scope}
}

func (b *Bootstrapper) clear(ctx context.Context) {
	if err := b.store.Clear(ctx); err != nil {
		b.log.Error().Err(err).Msg("bootstrap: clearing credentials failed")
	}
}
