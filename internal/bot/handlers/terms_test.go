package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
)

func TestTermsAcceptAdvancesFlow(t *testing.T) {
	env := newTestEnv(t)
	const userID int64 = 7

	require.NoError(t, env.fsm.SetState(context.Background(), userID, state.StateAwaitingTerms))

	handler := NewTermsAcceptHandler(env.fsm, env.t, env.log)

	c := newFakeContext(userID, "")
	require.NoError(t, handler(c))
	require.Contains(t, c.sent, env.t.T("onboarding.ask_link"))
	require.Equal(t, state.StateAwaitingLink, env.currentState(t, userID))
}

func TestTermsAcceptRecoversWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	const userID int64 = 7

	// The accept button may be pressed on a prompt that outlived its session.
	handler := NewTermsAcceptHandler(env.fsm, env.t, env.log)

	c := newFakeContext(userID, "")
	require.NoError(t, handler(c))
	require.Contains(t, c.sent, env.t.T("onboarding.ask_link"))
	require.Equal(t, state.StateAwaitingLink, env.currentState(t, userID),
		"the prompt must come with a session that accepts the link")
}
