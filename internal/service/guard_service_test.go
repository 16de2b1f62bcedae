package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigredconnect/sessiond/internal/config"
	"github.com/bigredconnect/sessiond/internal/mocks"
	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/bigredconnect/sessiond/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testGuardConfig() config.GuardConfig {
	return config.GuardConfig{
		IdleLogout:           config.DefaultIdleLogout,
		HardCap:              config.DefaultHardCap,
		ReservationLookahead: config.DefaultReservationLookahead,
		Tick:                 config.DefaultTick,
		EntryURL:             "/index.html",
		Location:             time.UTC,
	}
}

type guardTestDeps struct {
	sessions *mocks.MockSessionStateRepository
	profiles *mocks.MockProfileRepository
	clock    *mocks.FixedClock
	guard    *GuardService
}

func setupGuardTest(t *testing.T, now time.Time) guardTestDeps {
	t.Helper()

	deps := guardTestDeps{
		sessions: new(mocks.MockSessionStateRepository),
		profiles: new(mocks.MockProfileRepository),
		clock:    mocks.NewFixedClock(now),
	}
	deps.guard = NewGuardService(deps.sessions, deps.profiles, deps.clock, testGuardConfig())
	return deps
}

func TestGuardService_RecordActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("HardCapWinsEarlyInDay", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		deps := setupGuardTest(t, now)

		// 09:00 + 12h = 21:00, comfortably before end of day.
		deps.sessions.On("Touch", ctx, now).Return(nil).Once()
		deps.sessions.On("CreateWindow", ctx, now, now.Add(12*time.Hour)).Return(nil).Once()

		deps.guard.RecordActivity(ctx)
		deps.sessions.AssertExpectations(t)
	})

	t.Run("EndOfDayWinsLateInDay", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
		deps := setupGuardTest(t, now)

		eod := time.Date(2025, 3, 10, 23, 59, 59, 999*int(time.Millisecond), time.UTC)
		deps.sessions.On("Touch", ctx, now).Return(nil).Once()
		deps.sessions.On("CreateWindow", ctx, now, eod).Return(nil).Once()

		deps.guard.RecordActivity(ctx)
		deps.sessions.AssertExpectations(t)
	})

	t.Run("StorageFailuresAreSwallowed", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		deps := setupGuardTest(t, now)

		deps.sessions.On("Touch", ctx, now).Return(errors.New("storage unavailable")).Once()
		deps.sessions.On("CreateWindow", ctx, mock.Anything, mock.Anything).Return(errors.New("storage unavailable")).Once()

		assert.NotPanics(t, func() { deps.guard.RecordActivity(ctx) })
		deps.sessions.AssertExpectations(t)
	})
}

func TestGuardService_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("TerminatesIdleSession", func(t *testing.T) {
		lastActive := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		now := lastActive.Add(config.DefaultIdleLogout + time.Millisecond)
		deps := setupGuardTest(t, now)

		deps.sessions.On("Read", ctx).Return(&models.SessionRecord{
			LastActiveAt: lastActive.UnixMilli(),
			CreatedAt:    lastActive.UnixMilli(),
			ExpiresAt:    lastActive.Add(12 * time.Hour).UnixMilli(),
		}, nil).Once()

		d := deps.guard.Evaluate(ctx, false)
		assert.True(t, d.Terminate)
		assert.Equal(t, models.ReasonIdleTimeout, d.Reason)
	})

	t.Run("UnreadableStoreContinues", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		deps := setupGuardTest(t, now)

		deps.sessions.On("Read", ctx).Return(nil, errors.New("storage unavailable")).Once()

		d := deps.guard.Evaluate(ctx, false)
		assert.False(t, d.Terminate)
	})
}

func TestGuardService_IsLoggedIn(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("ProfilePresent", func(t *testing.T) {
		deps := setupGuardTest(t, now)
		deps.profiles.On("Get", ctx).Return(&models.RiderProfile{RiderID: "rider-1"}, nil).Once()
		assert.True(t, deps.guard.IsLoggedIn(ctx))
	})

	t.Run("NoProfile", func(t *testing.T) {
		deps := setupGuardTest(t, now)
		deps.profiles.On("Get", ctx).Return(nil, repository.ErrNoProfile).Once()
		assert.False(t, deps.guard.IsLoggedIn(ctx))
	})

	t.Run("StoreFailureReadsAsLoggedOut", func(t *testing.T) {
		deps := setupGuardTest(t, now)
		deps.profiles.On("Get", ctx).Return(nil, errors.New("storage unavailable")).Once()
		assert.False(t, deps.guard.IsLoggedIn(ctx))
	})
}

func TestGuardService_Snapshot(t *testing.T) {
	ctx := context.Background()
	lastActive := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := lastActive.Add(10 * time.Minute)
	deps := setupGuardTest(t, now)

	rec := &models.SessionRecord{
		LastActiveAt: lastActive.UnixMilli(),
		CreatedAt:    lastActive.UnixMilli(),
		ExpiresAt:    lastActive.Add(12 * time.Hour).UnixMilli(),
	}
	deps.sessions.On("Read", ctx).Return(rec, nil).Once()
	deps.profiles.On("Get", ctx).Return(&models.RiderProfile{RiderID: "rider-1"}, nil).Once()

	snap := deps.guard.Snapshot(ctx, false)

	assert.True(t, snap.Armed)
	assert.Equal(t, *rec, snap.Record)
	assert.False(t, snap.Decision.Terminate)

	// Snapshot is read-only: no touches, no window writes.
	deps.sessions.AssertNotCalled(t, "Touch", mock.Anything, mock.Anything)
	deps.sessions.AssertNotCalled(t, "CreateWindow", mock.Anything, mock.Anything, mock.Anything)
}
