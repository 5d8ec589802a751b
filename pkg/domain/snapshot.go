package domain

import "time"

// AuthFlowSnapshot captures a paused authentication sub-flow so a persisted
// conversation can resume exactly where it stopped.
type AuthFlowSnapshot struct {
	State    string `json:"state"`
	Action   string `json:"action"` // "login" or "register"
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Snapshot is the serializable state of one conversation: which transaction
// variant is active, where its state machine stands, what it has collected so
// far, and whether an authentication sub-flow currently owns turn dispatch.
//
// A nil active transaction is represented by Intent == IntentUnknown.
type Snapshot struct {
	// Intent identifies the active transaction variant.
	Intent Intent `json:"intent"`

	// State is the variant-specific state machine position.
	State string `json:"state,omitempty"`

	// Context holds the fields collected turn by turn. Values are restored
	// into the variant's typed context on load.
	Context map[string]any `json:"context,omitempty"`

	// Auth is non-nil only while an authentication sub-flow is pending.
	Auth *AuthFlowSnapshot `json:"auth,omitempty"`

	// UserID is set once the conversation has authenticated.
	UserID *int `json:"user_id,omitempty"`

	// UpdatedAt records the last processed turn.
	UpdatedAt time.Time `json:"updated_at"`
}

// Empty reports whether the snapshot carries no active transaction.
func (s *Snapshot) Empty() bool {
	return s == nil || s.Intent == "" || s.Intent == IntentUnknown
}
