package handlers

import (
	"net/http"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/bigredconnect/sessiond/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// GuardHandler exposes the guard to the hosting page: activity touches,
// booking-flag refreshes, the read-only snapshot, and the forced-logout
// entry point any page component may call.
type GuardHandler struct {
	Guard     service.SessionGuard
	Logout    service.LogoutSequencer
	Bookings  *service.BookingState
	Clock     service.Clock
	Lookahead time.Duration
	Loop      service.Stopper
}

func NewGuardHandler(
	guard service.SessionGuard,
	logout service.LogoutSequencer,
	bookings *service.BookingState,
	clock service.Clock,
	lookahead time.Duration,
	loop service.Stopper,
) *GuardHandler {
	return &GuardHandler{
		Guard:     guard,
		Logout:    logout,
		Bookings:  bookings,
		Clock:     clock,
		Lookahead: lookahead,
		Loop:      loop,
	}
}

// RecordActivity registers one user interaction. Always 202: persistence
// is best-effort and the page must never care whether the write landed.
func (h *GuardHandler) RecordActivity(c echo.Context) error {
	h.Guard.RecordActivity(c.Request().Context())
	return c.NoContent(http.StatusAccepted)
}

// GetSession returns the current record, armed state, and the decision
// the next tick would take. Read-only.
func (h *GuardHandler) GetSession(c echo.Context) error {
	snap := h.Guard.Snapshot(c.Request().Context(), h.Bookings.Active())
	return c.JSON(http.StatusOK, snap)
}

// UpdateBookings reclassifies the idle-suppression flag from the page's
// latest booking fetch.
func (h *GuardHandler) UpdateBookings(c echo.Context) error {
	var req models.UpdateBookingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bookings payload")
	}

	active := h.Bookings.UpdateFromBookings(req.Bookings, h.Clock.Now(), h.Lookahead)
	return c.JSON(http.StatusOK, models.UpdateBookingsResponse{ActiveForSession: active})
}

// ForceLogout runs the termination sequence on demand, e.g. when the
// server rejects the session. The loop, if armed, is stopped so it does
// not keep evaluating a torn-down session.
func (h *GuardHandler) ForceLogout(c echo.Context) error {
	var req models.ForceLogoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid logout payload")
	}
	if req.Reason == "" {
		req.Reason = "manual"
	}

	redirect := h.Logout.ForceLogout(c.Request().Context(), req.Reason)
	if h.Loop != nil {
		h.Loop.Stop()
	}

	log.Info().Str("reason", req.Reason).Msg("forced logout completed")
	return c.JSON(http.StatusOK, models.ForceLogoutResponse{Redirect: redirect})
}
