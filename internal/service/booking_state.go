package service

import (
	"sync/atomic"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
)

// BookingState holds the booking-activity flag the hosting page refreshes
// between policy ticks. It replaces the ambient page-global flag of the
// original client with explicit shared state owned by the bootstrap.
type BookingState struct {
	active atomic.Bool
}

func NewBookingState() *BookingState {
	return &BookingState{}
}

// Active returns the current idle-suppression flag. Defaults to false,
// which is the safe direction: idle logout stays armed.
func (s *BookingState) Active() bool {
	return s.active.Load()
}

// Set overrides the flag directly.
func (s *BookingState) Set(v bool) {
	s.active.Store(v)
}

// UpdateFromBookings reclassifies the flag from a fresh booking batch and
// returns the new value.
func (s *BookingState) UpdateFromBookings(bookings []models.Booking, now time.Time, lookahead time.Duration) bool {
	v := AnyBookingActiveForSession(bookings, now, lookahead)
	s.active.Store(v)
	return v
}
