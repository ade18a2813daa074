// Command worksync-agent keeps a WorkSync session alive on this machine and
// serves it to the local UI over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/worksync/session-agent/internal/api"
	"github.com/worksync/session-agent/internal/api/docs"
	"github.com/worksync/session-agent/internal/core/service"
	"github.com/worksync/session-agent/internal/infrastructure/worksync"
	"github.com/worksync/session-agent/internal/pkg/config"
	"github.com/worksync/session-agent/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "worksync-agent",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("agent stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	creds := service.NewCredentialStore(st.durable, st.session, logger.Component("credentials"))
	client := worksync.NewClient(cfg.APIURL, creds, cfg.RequestTimeout, logger.Component("worksync"))

	bootstrapper := service.NewBootstrapper(creds, client, cfg.BootstrapTimeout, logger.Component("bootstrap"))
	sessions := service.NewSessionManager(creds, client, bootstrapper, logger.Component("session"))

	// A token the backend stops accepting ends the session everywhere.
	client.OnUnauthorized(func(rejected string) {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
		defer cancel()
		if current, err := creds.Token(ctx); err != nil || current != rejected {
			return
		}
		if err := sessions.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("logout after rejected token failed")
		}
	})

	notifications := service.NewNotificationSynchronizer(client, cfg.PollInterval, cfg.RefreshPerMinute, logger.Component("notifications"))
	sessions.Subscribe(notifications.OnSessionChange)
	defer notifications.Stop()

	workforce := service.NewWorkforceService(client, sessions, logger.Component("workforce"))

	docs.SwaggerInfo.Host = cfg.AgentAddr
	e := api.NewRouter(api.Dependencies{
		Sessions:      sessions,
		Notifications: notifications,
		Workforce:     workforce,
		Checks:        st.checks,
		Log:           logger.Component("http"),
	})

	go func() {
		res := sessions.Bootstrap(ctx)
		log.Info().Str("outcome", string(res.Outcome)).Msg("bootstrap finished")
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.AgentAddr).Str("env", cfg.Env).Msg("agent listening")
		if err := e.Start(cfg.AgentAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("agent stopped gracefully")
	return nil
}
