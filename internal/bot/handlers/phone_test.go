package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
)

func TestPhoneHandlerRejectsForeignContact(t *testing.T) {
	env := newTestEnv(t)
	const userID int64 = 7

	ctx := context.Background()
	require.NoError(t, env.repo.Upsert(ctx, userID, "tester", "Tester"))
	require.NoError(t, env.fsm.SetState(ctx, userID, state.StateAwaitingPhone))

	handler := NewPhoneHandler(env.users, env.fsm, env.t, env.kb, env.log)

	// A forwarded contact carries someone else's id and must be re-prompted.
	foreign := newFakeContext(userID, "")
	foreign.message.Contact = &telebot.Contact{PhoneNumber: "+998901112233", UserID: 555}
	require.NoError(t, handler(foreign))
	require.Contains(t, foreign.sent, env.t.T("onboarding.need_contact"))
	require.Equal(t, state.StateAwaitingPhone, env.currentState(t, userID))

	own := newFakeContext(userID, "")
	own.message.Contact = &telebot.Contact{PhoneNumber: "+998901112233", UserID: userID}
	require.NoError(t, handler(own))
	require.Contains(t, own.sent, env.t.T("onboarding.done"))
	require.Equal(t, state.StateIdle, env.currentState(t, userID))

	saved, err := env.repo.FindByID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "+998901112233", saved.Phone)
}
