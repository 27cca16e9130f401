package state

import "time"

// State represents a finite-state machine state.
//
// Two flows share the state space: onboarding (terms -> link -> name -> phone)
// and admin (password -> search / broadcast). A user is in at most one flow at
// a time; StateIdle means no flow owns the next inbound event.
type State string

const (
	// StateIdle indicates that no flow currently owns the user's session.
	StateIdle State = "idle"

	// StateAwaitingTerms indicates the user has been shown the terms and the
	// bot is waiting for the accept button.
	StateAwaitingTerms State = "awaiting_terms"
	// StateAwaitingLink indicates the bot is waiting for an Instagram content link.
	StateAwaitingLink State = "awaiting_link"
	// StateAwaitingName indicates the bot is waiting for the user's real name.
	StateAwaitingName State = "awaiting_name"
	// StateAwaitingPhone indicates the bot is waiting for a shared contact.
	StateAwaitingPhone State = "awaiting_phone"

	// StateAwaitingPassword indicates the admin flow is waiting for the secret.
	StateAwaitingPassword State = "awaiting_password"
	// StateAwaitingSearchID indicates the admin flow is waiting for a numeric user id.
	StateAwaitingSearchID State = "awaiting_search_id"
	// StateAwaitingBroadcast indicates the admin flow is waiting for broadcast content.
	StateAwaitingBroadcast State = "awaiting_broadcast"

	// StateError indicates that the bot is in an error state and requires recovery.
	StateError State = "error"
)

// All lists every state, used for metrics gauges.
var All = []State{
	StateIdle,
	StateAwaitingTerms,
	StateAwaitingLink,
	StateAwaitingName,
	StateAwaitingPhone,
	StateAwaitingPassword,
	StateAwaitingSearchID,
	StateAwaitingBroadcast,
	StateError,
}

// UserState captures the current FSM state for a Telegram user.
//
// Sessions live only in process memory: a restart drops every in-flight
// conversation, which is an accepted limitation of the deployment.
type UserState struct {
	UserID       int64     `json:"user_id"`
	CurrentState State     `json:"current_state"`
	UpdatedAt    time.Time `json:"updated_at"`
}
