package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
)

// ErrNoProfile is returned when no rider profile is stored or the stored
// value cannot be parsed.
var ErrNoProfile = errors.New("no rider profile stored")

// SessionStateRepository persists the three session-window timestamps.
// All implementations treat missing or unparseable values as zero; callers
// decide whether a write failure matters (activity writes are best-effort).
type SessionStateRepository interface {
	// Touch records at as the most recent user activity. The stored value
	// never decreases: a touch older than the current one is a no-op.
	Touch(ctx context.Context, at time.Time) error
	// CreateWindow persists createdAt/expiresAt together, only if no window
	// exists yet. Calling it while a window exists is a cheap no-op, so the
	// caller may invoke it on every activity event.
	CreateWindow(ctx context.Context, createdAt, expiresAt time.Time) error
	// Read returns the current record with zeroes for anything missing.
	Read(ctx context.Context) (*models.SessionRecord, error)
	// Clear removes all three timestamps.
	Clear(ctx context.Context) error
}

// ProfileRepository reads and clears the persisted login identity. The
// guard never writes a profile; the login flow owns that.
type ProfileRepository interface {
	// Get returns the stored rider profile, or ErrNoProfile if absent or
	// malformed.
	Get(ctx context.Context) (*models.RiderProfile, error)
	// Clear removes the profile plus the legacy convenience keys written
	// alongside it (rider id/name, last known ride).
	Clear(ctx context.Context) error
}

// TransientRepository is the tab-scoped scratch namespace. It only needs
// to be wiped as part of the logout sequence.
type TransientRepository interface {
	// Put stores a scratch value.
	Put(ctx context.Context, key, value string) error
	// Clear wipes the entire scratch namespace.
	Clear(ctx context.Context) error
}
