package state

import "testing"

func TestIsTransitionAllowed(t *testing.T) {
	testCases := []struct {
		name    string
		from    State
		to      State
		allowed bool
	}{
		{"start onboarding", StateIdle, StateAwaitingTerms, true},
		{"accept terms", StateAwaitingTerms, StateAwaitingLink, true},
		{"link to name", StateAwaitingLink, StateAwaitingName, true},
		{"name to phone", StateAwaitingName, StateAwaitingPhone, true},
		{"finish onboarding", StateAwaitingPhone, StateIdle, true},
		{"enter admin flow", StateIdle, StateAwaitingPassword, true},
		{"menu to search", StateIdle, StateAwaitingSearchID, true},
		{"menu to broadcast", StateIdle, StateAwaitingBroadcast, true},
		{"cancel is always allowed", StateAwaitingName, StateIdle, true},
		{"error is always reachable", StateAwaitingLink, StateError, true},

		{"cannot skip terms", StateIdle, StateAwaitingLink, false},
		{"cannot skip link", StateAwaitingTerms, StateAwaitingName, false},
		{"phone unreachable without name", StateAwaitingLink, StateAwaitingPhone, false},
		{"phone unreachable from terms", StateAwaitingTerms, StateAwaitingPhone, false},
		{"no backwards edge", StateAwaitingName, StateAwaitingLink, false},
		{"admin states do not mix with onboarding", StateAwaitingPassword, StateAwaitingLink, false},
		{"search not reachable mid-onboarding", StateAwaitingLink, StateAwaitingSearchID, false},
		{"unknown state has no edges", State("bogus"), StateAwaitingTerms, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTransitionAllowed(tc.from, tc.to); got != tc.allowed {
				t.Fatalf("IsTransitionAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

// The onboarding machine must not be able to reach awaiting_phone without
// passing through the link step, no matter the input sequence.
func TestPhoneStateOnlyReachableThroughLink(t *testing.T) {
	for _, from := range All {
		if from == StateAwaitingName {
			continue
		}
		if IsTransitionAllowed(from, StateAwaitingPhone) {
			t.Fatalf("awaiting_phone must not be reachable from %s", from)
		}
	}
}
