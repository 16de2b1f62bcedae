package models

// SessionRecord holds the three persisted session-window timestamps, in
// milliseconds since the Unix epoch. A zero value means the timestamp is
// unset (missing or unreadable in the store).
type SessionRecord struct {
	LastActiveAt int64 `json:"lastActiveAt"` // most recent recognized user activity
	CreatedAt    int64 `json:"createdAt"`    // when the current session window began
	ExpiresAt    int64 `json:"expiresAt"`    // hard ceiling, frozen at window creation
}

// HasWindow reports whether a session window exists. CreatedAt and
// ExpiresAt are written together, so either both are set or neither is.
func (r *SessionRecord) HasWindow() bool {
	return r.CreatedAt != 0 && r.ExpiresAt != 0
}

// WindowExpired reports whether nowMs is past the frozen window ceiling.
// Records without a window never expire by this rule.
func (r *SessionRecord) WindowExpired(nowMs int64) bool {
	return r.ExpiresAt != 0 && nowMs > r.ExpiresAt
}

// Termination reasons reported by the policy engine.
const (
	ReasonHardCapOrEOD = "hard_cap_or_eod"
	ReasonIdleTimeout  = "idle_timeout"
)

// Decision is the outcome of a single policy evaluation.
type Decision struct {
	Terminate bool   `json:"terminate"`
	Reason    string `json:"reason,omitempty"`
}

// SessionSnapshot is the read-only view returned by the inspection endpoint.
type SessionSnapshot struct {
	Armed    bool          `json:"armed"`
	Record   SessionRecord `json:"record"`
	Decision Decision      `json:"decision"`
}

// ForceLogoutRequest is the payload of the forced-logout entry point.
type ForceLogoutRequest struct {
	Reason string `json:"reason"`
}

// ForceLogoutResponse carries the unauthenticated entry URL the client
// must navigate to once termination completes.
type ForceLogoutResponse struct {
	Redirect string `json:"redirect"`
}
