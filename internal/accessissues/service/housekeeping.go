package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shanco/accessissues/internal/accessissues/store"
)

// HousekeepingService periodically clears login challenges that can no
// longer be redeemed so stale hashes do not linger on user rows.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// MaxAge is the login token lifetime; challenges older than it are
	// cleared.
	MaxAge time.Duration
	Now    func() time.Time

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour, a non-positive maxAge to
// DefaultLoginMaxAge.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, maxAge time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if maxAge <= 0 {
		maxAge = DefaultLoginMaxAge
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		MaxAge:   maxAge,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the cleanup loop in the background. Call Stop to shut it down.
// Starting twice, or after Stop, does nothing.
func (s *HousekeepingService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true

	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress cleanup has finished. It is safe to call
// more than once and on a service that was never started.
func (s *HousekeepingService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	close(s.stopCh)
	s.mu.Unlock()

	if started {
		<-s.doneCh
	}
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup clears every challenge issued more than MaxAge ago and returns how
// many were cleared.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	cutoff := s.Now().Add(-s.MaxAge)

	n, err := s.Store.Users().ClearExpiredChallenges(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to clear expired login challenges", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "cleared_challenges", n)
	return n
}
