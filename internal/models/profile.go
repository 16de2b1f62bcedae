package models

// RiderProfile is the persisted login identity. The guard only ever checks
// it for presence of a non-empty RiderID and clears it on logout; it is
// written by the login flow, which is outside the guard.
type RiderProfile struct {
	RiderID string `json:"riderId"`
	Name    string `json:"name,omitempty"`
}

// IsLoggedIn reports whether the profile represents a recognized login.
func (p *RiderProfile) IsLoggedIn() bool {
	return p != nil && p.RiderID != ""
}
