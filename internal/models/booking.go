package models

// Booking statuses as reported by the ride backend. The "active now" set
// always suppresses idle logout; the "active soon" set does so only for
// instant requests or near-term reservations.
const (
	BookingStatusRequested = "REQUESTED"
	BookingStatusAccepted  = "ACCEPTED"
	BookingStatusEnroute   = "ENROUTE"
	BookingStatusArrived   = "ARRIVED"
	BookingStatusPickedUp  = "PICKED_UP"
)

// Booking types. An empty type is treated as an instant request.
const (
	BookingTypeInstant     = "INSTANT"
	BookingTypeReservation = "RESERVATION"
)

// Booking is the subset of a ride booking the guard needs to classify it.
// ScheduledFor is an RFC3339/ISO timestamp; it may be empty for instant
// requests.
type Booking struct {
	Status       string `json:"status"`
	Type         string `json:"type"`
	ScheduledFor string `json:"scheduledFor,omitempty"`
}

// UpdateBookingsRequest is posted by the hosting page after each booking
// fetch so the guard can refresh its idle-suppression flag.
type UpdateBookingsRequest struct {
	Bookings []Booking `json:"bookings"`
}

// UpdateBookingsResponse echoes the classification result back to the page.
type UpdateBookingsResponse struct {
	ActiveForSession bool `json:"activeForSession"`
}
