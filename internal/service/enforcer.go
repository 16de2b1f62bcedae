package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Enforcer is the recurring evaluation loop. It arms only when a login
// identity is present at start; without one it stays dormant for the
// process lifetime and performs no storage writes at all.
//
// Each tick is a single short pass (touch, evaluate, maybe terminate) on
// one goroutine, so evaluations never overlap.
type Enforcer struct {
	guard    SessionGuard
	logout   LogoutSequencer
	bookings *BookingState
	tick     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

var _ Stopper = (*Enforcer)(nil)

func NewEnforcer(guard SessionGuard, logout LogoutSequencer, bookings *BookingState, tick time.Duration) *Enforcer {
	return &Enforcer{
		guard:    guard,
		logout:   logout,
		bookings: bookings,
		tick:     tick,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start arms the loop. Returns false (and schedules nothing) when no
// login identity is stored. When armed, one pass runs immediately and the
// loop continues at the configured tick until termination, Stop, or ctx
// cancellation.
func (e *Enforcer) Start(ctx context.Context) bool {
	if !e.guard.IsLoggedIn(ctx) {
		log.Info().Msg("no rider profile stored, session guard dormant")
		close(e.done)
		return false
	}

	log.Info().Dur("tick", e.tick).Msg("session guard armed")
	go e.run(ctx)
	return true
}

func (e *Enforcer) run(ctx context.Context) {
	defer close(e.done)

	if e.pass(ctx) {
		return
	}

	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if e.pass(ctx) {
				return
			}
		case <-e.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// pass runs one evaluation and reports whether the session terminated.
func (e *Enforcer) pass(ctx context.Context) bool {
	e.guard.RecordActivity(ctx)

	decision := e.guard.Evaluate(ctx, e.bookings.Active())
	if !decision.Terminate {
		return false
	}

	e.logout.ForceLogout(ctx, decision.Reason)
	return true
}

// Stop halts the loop. Safe to call more than once and before Start.
func (e *Enforcer) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// Done is closed once the loop has fully exited (or was never armed).
func (e *Enforcer) Done() <-chan struct{} {
	return e.done
}
