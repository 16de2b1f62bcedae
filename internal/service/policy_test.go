package service

import (
	"testing"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/stretchr/testify/assert"
)

const (
	testIdleLogout = 90 * time.Minute
	testLookahead  = 6 * time.Hour
)

func msOf(t time.Time) int64 { return t.UnixMilli() }

func TestEvaluatePolicy_HardCap(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	expiresAt := createdAt.Add(12 * time.Hour)

	rec := &models.SessionRecord{
		LastActiveAt: msOf(expiresAt), // active right up to the ceiling
		CreatedAt:    msOf(createdAt),
		ExpiresAt:    msOf(expiresAt),
	}

	t.Run("TerminatesPastCeiling", func(t *testing.T) {
		d := EvaluatePolicy(expiresAt.Add(time.Millisecond), rec, false, testIdleLogout)
		assert.True(t, d.Terminate)
		assert.Equal(t, models.ReasonHardCapOrEOD, d.Reason)
	})

	t.Run("ActiveBookingDoesNotSuppressCeiling", func(t *testing.T) {
		d := EvaluatePolicy(expiresAt.Add(time.Millisecond), rec, true, testIdleLogout)
		assert.True(t, d.Terminate)
		assert.Equal(t, models.ReasonHardCapOrEOD, d.Reason)
	})

	t.Run("ContinuesAtExactCeiling", func(t *testing.T) {
		d := EvaluatePolicy(expiresAt, rec, false, testIdleLogout)
		assert.False(t, d.Terminate)
	})

	t.Run("NoWindowNeverHitsCeiling", func(t *testing.T) {
		fresh := &models.SessionRecord{LastActiveAt: msOf(createdAt)}
		d := EvaluatePolicy(createdAt.Add(24*time.Hour), fresh, true, testIdleLogout)
		assert.False(t, d.Terminate)
	})
}

func TestEvaluatePolicy_IdleTimeout(t *testing.T) {
	lastActive := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	rec := &models.SessionRecord{
		LastActiveAt: msOf(lastActive),
		CreatedAt:    msOf(lastActive),
		ExpiresAt:    msOf(lastActive.Add(12 * time.Hour)), // far in the future
	}

	t.Run("TerminatesJustPastIdleLimit", func(t *testing.T) {
		d := EvaluatePolicy(lastActive.Add(testIdleLogout+time.Millisecond), rec, false, testIdleLogout)
		assert.True(t, d.Terminate)
		assert.Equal(t, models.ReasonIdleTimeout, d.Reason)
	})

	t.Run("ContinuesJustUnderIdleLimit", func(t *testing.T) {
		d := EvaluatePolicy(lastActive.Add(testIdleLogout-time.Millisecond), rec, false, testIdleLogout)
		assert.False(t, d.Terminate)
	})

	t.Run("ContinuesAtExactIdleLimit", func(t *testing.T) {
		d := EvaluatePolicy(lastActive.Add(testIdleLogout), rec, false, testIdleLogout)
		assert.False(t, d.Terminate)
	})

	t.Run("ActiveBookingSuppressesIdleLogout", func(t *testing.T) {
		d := EvaluatePolicy(lastActive.Add(testIdleLogout+time.Millisecond), rec, true, testIdleLogout)
		assert.False(t, d.Terminate)
	})

	t.Run("NoRecordedActivityNeverIdlesOut", func(t *testing.T) {
		noActivity := &models.SessionRecord{
			CreatedAt: rec.CreatedAt,
			ExpiresAt: rec.ExpiresAt,
		}
		d := EvaluatePolicy(lastActive.Add(5*time.Hour), noActivity, false, testIdleLogout)
		assert.False(t, d.Terminate)
	})
}

func TestEvaluatePolicy_EmptyRecordContinues(t *testing.T) {
	// An unreadable store degrades to an all-zero record, which must never
	// terminate: the guard re-establishes a window instead.
	d := EvaluatePolicy(time.Now(), &models.SessionRecord{}, false, testIdleLogout)
	assert.False(t, d.Terminate)
}

func TestBookingActiveForSession(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	sched := func(d time.Duration) string {
		return now.Add(d).Format(time.RFC3339)
	}

	tests := []struct {
		name    string
		booking models.Booking
		want    bool
	}{
		{"EnrouteAlwaysActive", models.Booking{Status: "ENROUTE"}, true},
		{"ArrivedAlwaysActive", models.Booking{Status: "ARRIVED", Type: "RESERVATION"}, true},
		{"PickedUpAlwaysActive", models.Booking{Status: "PICKED_UP", Type: "INSTANT"}, true},
		{"InstantRequested", models.Booking{Status: "REQUESTED", Type: "INSTANT"}, true},
		{"UntypedAccepted", models.Booking{Status: "ACCEPTED"}, true},
		{"LowercaseStatusNormalized", models.Booking{Status: "enroute"}, true},
		{"ReservationWithinLookahead", models.Booking{Status: "REQUESTED", Type: "RESERVATION", ScheduledFor: sched(5 * time.Hour)}, true},
		{"ReservationAtExactLookahead", models.Booking{Status: "ACCEPTED", Type: "RESERVATION", ScheduledFor: sched(6 * time.Hour)}, true},
		{"ReservationBeyondLookahead", models.Booking{Status: "REQUESTED", Type: "RESERVATION", ScheduledFor: sched(7 * time.Hour)}, false},
		{"ReservationMissingScheduleFailsClosed", models.Booking{Status: "REQUESTED", Type: "RESERVATION"}, false},
		{"ReservationGarbageScheduleFailsClosed", models.Booking{Status: "ACCEPTED", Type: "RESERVATION", ScheduledFor: "not-a-time"}, false},
		{"CompletedNotActive", models.Booking{Status: "COMPLETED", Type: "INSTANT"}, false},
		{"CancelledNotActive", models.Booking{Status: "CANCELLED"}, false},
		{"UnknownTypePendingNotActive", models.Booking{Status: "REQUESTED", Type: "POOL"}, false},
		{"EmptyBookingNotActive", models.Booking{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BookingActiveForSession(tt.booking, now, testLookahead))
		})
	}
}

func TestAnyBookingActiveForSession(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("EmptyBatch", func(t *testing.T) {
		assert.False(t, AnyBookingActiveForSession(nil, now, testLookahead))
	})

	t.Run("OneQualifyingBookingIsEnough", func(t *testing.T) {
		batch := []models.Booking{
			{Status: "COMPLETED"},
			{Status: "ENROUTE"},
		}
		assert.True(t, AnyBookingActiveForSession(batch, now, testLookahead))
	})

	t.Run("AllInertBookings", func(t *testing.T) {
		batch := []models.Booking{
			{Status: "COMPLETED"},
			{Status: "REQUESTED", Type: "RESERVATION", ScheduledFor: now.Add(8 * time.Hour).Format(time.RFC3339)},
		}
		assert.False(t, AnyBookingActiveForSession(batch, now, testLookahead))
	})
}
