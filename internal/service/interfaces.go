package service

import (
	"context"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
)

// Clock supplies the guard's notion of time. EndOfDay returns the last
// millisecond of t's calendar day in the guard's configured location.
type Clock interface {
	Now() time.Time
	EndOfDay(t time.Time) time.Time
}

// SessionGuard is the activity-and-policy surface the transport layer and
// the enforcement loop drive.
type SessionGuard interface {
	// RecordActivity registers a user interaction: touch last-active and
	// lazily establish the session window. Persistence is best-effort and
	// never fails the caller.
	RecordActivity(ctx context.Context)
	// Evaluate runs the expiry policy against the stored record.
	Evaluate(ctx context.Context, hasActiveBooking bool) models.Decision
	// IsLoggedIn reports whether a recognized login identity is stored.
	IsLoggedIn(ctx context.Context) bool
	// Snapshot is the read-only inspection view; it performs no writes.
	Snapshot(ctx context.Context, hasActiveBooking bool) *models.SessionSnapshot
}

// LogoutSequencer runs the ordered termination side effects and returns
// the unauthenticated entry URL the client should navigate to.
type LogoutSequencer interface {
	ForceLogout(ctx context.Context, reason string) string
}

// NotificationProvider deregisters the push-notification identity for a
// rider. Implementations are best-effort collaborators; the sequencer
// never lets their failures block a logout.
type NotificationProvider interface {
	Logout(ctx context.Context, externalID string) error
}

// Stopper is the cancel handle the forced-logout handler uses to halt the
// enforcement loop once a session is torn down.
type Stopper interface {
	Stop()
}
