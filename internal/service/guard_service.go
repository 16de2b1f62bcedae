package service

import (
	"context"
	"errors"
	"time"

	"github.com/bigredconnect/sessiond/internal/config"
	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/bigredconnect/sessiond/internal/repository"
	"github.com/rs/zerolog/log"
)

// GuardService owns the session-window state transitions: activity
// touches, lazy window creation, and policy evaluation against the stored
// record.
type GuardService struct {
	sessions repository.SessionStateRepository
	profiles repository.ProfileRepository
	clock    Clock
	cfg      config.GuardConfig
}

var _ SessionGuard = (*GuardService)(nil)

func NewGuardService(sessions repository.SessionStateRepository, profiles repository.ProfileRepository, clock Clock, cfg config.GuardConfig) *GuardService {
	return &GuardService{sessions: sessions, profiles: profiles, clock: clock, cfg: cfg}
}

// RecordActivity touches last-active and establishes the session window if
// none exists. Storage failures are logged and swallowed: durability is
// best-effort, and the guard recomputes a fresh window once the store is
// writable again.
func (s *GuardService) RecordActivity(ctx context.Context) {
	now := s.clock.Now()

	if err := s.sessions.Touch(ctx, now); err != nil {
		log.Debug().Err(err).Msg("activity touch not persisted")
	}

	expiresAt := minTime(now.Add(s.cfg.HardCap), s.clock.EndOfDay(now))
	if err := s.sessions.CreateWindow(ctx, now, expiresAt); err != nil {
		log.Debug().Err(err).Msg("session window not persisted")
	}
}

// Evaluate reads the stored record and runs the expiry policy. An
// unreadable store degrades to an empty record, which always continues;
// the window is re-established by the next successful touch.
func (s *GuardService) Evaluate(ctx context.Context, hasActiveBooking bool) models.Decision {
	rec := s.readRecord(ctx)
	return EvaluatePolicy(s.clock.Now(), rec, hasActiveBooking, s.cfg.IdleLogout)
}

// IsLoggedIn reports whether a recognized login identity is present. Any
// failure reads as "not logged in" so the guard stays dormant rather than
// guessing.
func (s *GuardService) IsLoggedIn(ctx context.Context) bool {
	_, err := s.profiles.Get(ctx)
	if err == nil {
		return true
	}
	if !errors.Is(err, repository.ErrNoProfile) {
		log.Warn().Err(err).Msg("profile store unreadable, treating as logged out")
	}
	return false
}

// Snapshot returns the inspection view without touching anything.
func (s *GuardService) Snapshot(ctx context.Context, hasActiveBooking bool) *models.SessionSnapshot {
	rec := s.readRecord(ctx)
	return &models.SessionSnapshot{
		Armed:    s.IsLoggedIn(ctx),
		Record:   *rec,
		Decision: EvaluatePolicy(s.clock.Now(), rec, hasActiveBooking, s.cfg.IdleLogout),
	}
}

func (s *GuardService) readRecord(ctx context.Context) *models.SessionRecord {
	rec, err := s.sessions.Read(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("session record unreadable, treating as empty")
		return &models.SessionRecord{}
	}
	return rec
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
