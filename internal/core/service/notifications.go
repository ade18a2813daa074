package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/worksync/session-agent/internal/api/metrics"
	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

const (
	defaultPollInterval     = 60 * time.Second
	defaultRefreshPerMinute = 6

	ClearAllPrompt  = "Are you sure you want to clear all notifications?"
	ClearAllFailure = "Failed to clear notifications. Please try again or check the console."
)

// NotificationSnapshot is a consistent copy of the synchronizer state.
type NotificationSnapshot struct {
	Items   []domain.NotificationItem `json:"items"`
	Unread  int                       `json:"unread"`
	Polling bool                      `json:"polling"`
}

// NotificationSynchronizer keeps the signed-in user's notifications in step
// with the backend. It polls while a user is present and is idle otherwise.
type NotificationSynchronizer struct {
	api      ports.NotificationAPI
	interval time.Duration
	limiter  *rate.Limiter
	log      zerolog.Logger

	mu      sync.Mutex
	items   []domain.NotificationItem
	userID  string
	polling bool
	stopped bool

	// seq is the last sequence number handed to a fetch; applied is the last
	// one whose response was accepted or that a confirmed write superseded. A
	// response tagged <= applied is stale.
	seq     uint64
	applied uint64

	cancel context.CancelFunc
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewNotificationSynchronizer returns an idle synchronizer. A non-positive
// interval falls back to 60 seconds and a non-positive refresh budget to six
// on-demand refreshes per minute.
func NewNotificationSynchronizer(api ports.NotificationAPI, interval time.Duration, refreshPerMinute int, log zerolog.Logger) *NotificationSynchronizer {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if refreshPerMinute <= 0 {
		refreshPerMinute = defaultRefreshPerMinute
	}
	return &NotificationSynchronizer{
		api:      api,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(refreshPerMinute)), 1),
		log:      log,
	}
}

// OnSessionChange drives the Idle/Polling state machine. It is meant to be
// registered with SessionManager.Subscribe.
func (s *NotificationSynchronizer) OnSessionChange(user *domain.UserProfile) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	switch {
	case user == nil && !s.polling:
		s.mu.Unlock()
		return
	case user != nil && s.polling && user.ID == s.userID:
		s.mu.Unlock()
		return
	}
	// Logout or a different user: leave Polling first.
	wait := s.leaveLocked()
	if user != nil {
		s.enterLocked(user.ID)
	}
	s.mu.Unlock()
	wait()
}

// Stop leaves Polling for good and waits for the worker to exit. Later
// session changes are ignored.
func (s *NotificationSynchronizer) Stop() {
	s.mu.Lock()
	s.stopped = true
	wait := s.leaveLocked()
	s.mu.Unlock()
	wait()
}

// Snapshot returns the current collection with its unread count.
func (s *NotificationSynchronizer) Snapshot() NotificationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.NotificationItem, len(s.items))
	copy(items, s.items)
	return NotificationSnapshot{Items: items, Unread: domain.UnreadCount(s.items), Polling: s.polling}
}

// UnreadCount is derived from the collection on every call.
func (s *NotificationSynchronizer) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.UnreadCount(s.items)
}

// Refresh fetches out of schedule on behalf of the user. Unlike background
// polls its failure is returned.
func (s *NotificationSynchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	polling := s.polling
	s.mu.Unlock()
	if !polling {
		return fmt.Errorf("refresh notifications: %w", domain.ErrNoSession)
	}
	if !s.limiter.Allow() {
		return fmt.Errorf("refresh notifications: %w", domain.ErrRateLimited)
	}
	if err := s.fetch(ctx); err != nil {
		return fmt.Errorf("refresh notifications: %w", err)
	}
	return nil
}

// MarkRead marks one notification read. Local state changes only after the
// backend confirms. When link is set and the call succeeds the host is sent
// to link and asked to close the panel.
func (s *NotificationSynchronizer) MarkRead(ctx context.Context, id, link string, host ports.Host) error {
	if id == "" {
		return fmt.Errorf("mark read: %w: empty id", domain.ErrInvalidInput)
	}
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		metrics.ObserveAction("mark_read", err)
		s.log.Error().Err(err).Str("notification_id", id).Msg("mark read failed")
		return fmt.Errorf("mark read: %w", err)
	}
	metrics.ObserveAction("mark_read", nil)

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsRead = true
		}
	}
	s.supersedeLocked()
	s.publishLocked()
	s.mu.Unlock()

	if link != "" && host != nil {
		host.Navigate(link)
		host.Close()
	}
	return nil
}

// MarkAllRead marks the whole collection read once the backend confirms.
// A failure leaves state untouched; callers treat the error as a warning.
func (s *NotificationSynchronizer) MarkAllRead(ctx context.Context) error {
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		metrics.ObserveAction("mark_all_read", err)
		s.log.Warn().Err(err).Msg("mark all read failed")
		return fmt.Errorf("mark all read: %w", err)
	}
	metrics.ObserveAction("mark_all_read", nil)

	s.mu.Lock()
	for i := range s.items {
		s.items[i].IsRead = true
	}
	s.supersedeLocked()
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// ClearAll deletes every notification after the host confirms. A declined
// prompt sends nothing and returns domain.ErrNotConfirmed.
func (s *NotificationSynchronizer) ClearAll(ctx context.Context, host ports.Host) error {
	if host == nil || !host.Confirm(ClearAllPrompt) {
		metrics.ActionsTotal.WithLabelValues("clear_all", "declined").Inc()
		return fmt.Errorf("clear notifications: %w", domain.ErrNotConfirmed)
	}
	if err := s.api.ClearNotifications(ctx); err != nil {
		metrics.ObserveAction("clear_all", err)
		s.log.Error().Err(err).Msg("clear notifications failed")
		host.Alert(ClearAllFailure)
		return fmt.Errorf("clear notifications: %w", err)
	}
	metrics.ObserveAction("clear_all", nil)

	s.mu.Lock()
	s.items = nil
	s.supersedeLocked()
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

func (s *NotificationSynchronizer) enterLocked(userID string) {
	ctx, cancel := context.WithCancel(context.Background())
	s.userID = userID
	s.polling = true
	s.cancel = cancel
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run(ctx, s.stopCh, s.doneCh)
	s.log.Info().Str("user_id", userID).Dur("interval", s.interval).Msg("notification polling started")
}

// leaveLocked moves to Idle and returns a func that waits for the worker.
// The wait must run after mu is released since the worker takes mu to apply
// a response.
func (s *NotificationSynchronizer) leaveLocked() func() {
	if !s.polling {
		return func() {}
	}
	s.polling = false
	s.userID = ""
	s.items = nil
	s.supersedeLocked()
	s.publishLocked()

	cancel, stopCh, doneCh := s.cancel, s.stopCh, s.doneCh
	s.cancel, s.stopCh, s.doneCh = nil, nil, nil
	cancel()
	close(stopCh)
	s.log.Info().Msg("notification polling stopped")
	return func() { <-doneCh }
}

func (s *NotificationSynchronizer) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.poll(ctx)

	for {
		select {
		case <-ticker.C:
			s.poll(ctx)
		case <-stopCh:
			return
		}
	}
}

// poll is a background fetch: failures are logged and swallowed.
func (s *NotificationSynchronizer) poll(ctx context.Context) {
	if err := s.fetch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn().Err(err).Msg("notification poll failed, keeping previous state")
	}
}

func (s *NotificationSynchronizer) fetch(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	tag := s.seq
	s.mu.Unlock()

	start := time.Now()
	items, err := s.api.ListNotifications(ctx)
	metrics.PollDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PollCyclesTotal.WithLabelValues("error").Inc()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tag <= s.applied {
		metrics.PollCyclesTotal.WithLabelValues("stale").Inc()
		s.log.Debug().Uint64("seq", tag).Uint64("applied", s.applied).Msg("discarding stale notification response")
		return nil
	}
	s.applied = tag
	s.items = items
	s.publishLocked()
	metrics.PollCyclesTotal.WithLabelValues("ok").Inc()
	return nil
}

// supersedeLocked marks every fetch issued so far as stale. It runs after
// each confirmed local change so an older response cannot undo it.
func (s *NotificationSynchronizer) supersedeLocked() {
	s.applied = s.seq
}

func (s *NotificationSynchronizer) publishLocked() {
	metrics.UnreadNotifications.Set(float64(domain.UnreadCount(s.items)))
}
