package state

// validTransitions contains the permitted forward transitions in both flows.
// Moving to StateIdle (flow finished or cancelled) or StateError is always
// allowed. There is deliberately no edge skipping a step of the onboarding
// form: awaiting_phone is only reachable through awaiting_name, which is only
// reachable through awaiting_link.
var validTransitions = map[State][]State{
	StateIdle: {
		StateAwaitingTerms,
		StateAwaitingPassword,
		StateAwaitingSearchID,
		StateAwaitingBroadcast,
	},
	StateAwaitingTerms: {
		StateAwaitingLink,
	},
	StateAwaitingLink: {
		StateAwaitingName,
	},
	StateAwaitingName: {
		StateAwaitingPhone,
	},
	StateAwaitingPhone:     {},
	StateAwaitingPassword:  {},
	StateAwaitingSearchID:  {},
	StateAwaitingBroadcast: {},
}

// IsTransitionAllowed reports whether moving from one state to another is valid.
func IsTransitionAllowed(from, to State) bool {
	if to == StateError || to == StateIdle {
		return true
	}

	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}

	for _, state := range allowed {
		if state == to {
			return true
		}
	}

	return false
}
