package service

import (
	"context"
	"sync"
	"time"

	"github.com/bigredconnect/sessiond/internal/repository"
	"github.com/rs/zerolog/log"
)

// LogoutService runs the ordered termination sequence. Every step is
// individually fault-tolerant: once termination is decided, the state
// clears and the entry-URL handoff happen no matter what the push
// provider does.
type LogoutService struct {
	sessions  repository.SessionStateRepository
	profiles  repository.ProfileRepository
	transient repository.TransientRepository
	notifier  NotificationProvider

	entryURL      string
	notifyTimeout time.Duration

	// in-flight deregistrations, so shutdown and tests can drain them
	inflight sync.WaitGroup
}

var _ LogoutSequencer = (*LogoutService)(nil)

func NewLogoutService(
	sessions repository.SessionStateRepository,
	profiles repository.ProfileRepository,
	transient repository.TransientRepository,
	notifier NotificationProvider,
	entryURL string,
	notifyTimeout time.Duration,
) *LogoutService {
	return &LogoutService{
		sessions:      sessions,
		profiles:      profiles,
		transient:     transient,
		notifier:      notifier,
		entryURL:      entryURL,
		notifyTimeout: notifyTimeout,
	}
}

// ForceLogout tears the session down and returns the unauthenticated
// entry URL. Push-identity deregistration is detached: it runs on its own
// deadline and its outcome is only logged, never allowed to delay or
// abort the clears.
func (s *LogoutService) ForceLogout(ctx context.Context, reason string) string {
	log.Warn().Str("reason", reason).Msg("forcing rider logout")

	// Grab the rider id before the profile is wiped; without it there is
	// no push identity to deregister.
	externalID := ""
	if profile, err := s.profiles.Get(ctx); err == nil {
		externalID = profile.RiderID
	}

	if s.notifier != nil && externalID != "" {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			nctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
			defer cancel()
			if err := s.notifier.Logout(nctx, externalID); err != nil {
				log.Debug().Err(err).Msg("push identity deregistration failed, continuing logout")
			}
		}()
	}

	if err := s.profiles.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear rider profile")
	}
	if err := s.sessions.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear session window")
	}
	if err := s.transient.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear transient storage")
	}

	return s.entryURL
}

// Wait blocks until all detached deregistration calls have finished.
func (s *LogoutService) Wait() {
	s.inflight.Wait()
}
