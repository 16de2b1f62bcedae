package service

import (
	"strings"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
)

// EvaluatePolicy decides whether the session must terminate. First match
// wins:
//
//  1. The frozen window ceiling (hard cap or end-of-day, whichever was
//     lower at creation) has passed. Unconditional: an active booking
//     never extends the ceiling.
//  2. No active booking, and the idle gap since the last recorded
//     activity exceeds idleLogout.
//
// Anything else continues. A record with no window and no activity is a
// fresh session and always continues.
func EvaluatePolicy(now time.Time, rec *models.SessionRecord, hasActiveBooking bool, idleLogout time.Duration) models.Decision {
	nowMs := now.UnixMilli()

	if rec.WindowExpired(nowMs) {
		return models.Decision{Terminate: true, Reason: models.ReasonHardCapOrEOD}
	}

	if !hasActiveBooking && rec.LastActiveAt != 0 && nowMs-rec.LastActiveAt > idleLogout.Milliseconds() {
		return models.Decision{Terminate: true, Reason: models.ReasonIdleTimeout}
	}

	return models.Decision{}
}

// BookingActiveForSession classifies a single booking as idle-suppressing:
//
//   - an in-progress booking (enroute/arrived/picked up) always counts;
//   - an instant (or untyped) request counts while requested/accepted;
//   - a reservation counts while requested/accepted only if it is
//     scheduled within lookahead of now. A reservation with no parseable
//     scheduled time fails closed.
func BookingActiveForSession(b models.Booking, now time.Time, lookahead time.Duration) bool {
	status := strings.ToUpper(strings.TrimSpace(b.Status))
	typ := strings.ToUpper(strings.TrimSpace(b.Type))

	if activeNowStatus(status) {
		return true
	}
	if !activeSoonStatus(status) {
		return false
	}

	switch typ {
	case models.BookingTypeInstant, "":
		return true
	case models.BookingTypeReservation:
		schedMs := parseISOMs(b.ScheduledFor)
		if schedMs == 0 {
			return false
		}
		return schedMs-now.UnixMilli() <= lookahead.Milliseconds()
	default:
		return false
	}
}

// AnyBookingActiveForSession reports whether any booking in the batch
// qualifies.
func AnyBookingActiveForSession(bookings []models.Booking, now time.Time, lookahead time.Duration) bool {
	for _, b := range bookings {
		if BookingActiveForSession(b, now, lookahead) {
			return true
		}
	}
	return false
}

func activeNowStatus(status string) bool {
	switch status {
	case models.BookingStatusEnroute, models.BookingStatusArrived, models.BookingStatusPickedUp:
		return true
	}
	return false
}

func activeSoonStatus(status string) bool {
	return status == models.BookingStatusRequested || status == models.BookingStatusAccepted
}

// parseISOMs converts an RFC3339 timestamp to ms since epoch, or 0 when
// absent or unparseable.
func parseISOMs(iso string) int64 {
	if iso == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}
