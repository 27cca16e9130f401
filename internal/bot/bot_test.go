package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
)

func TestMediaUpdatesReachStateHandlers(t *testing.T) {
	tb, err := telebot.NewBot(telebot.Settings{Offline: true, Synchronous: true})
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	fsm := state.NewStateMachine(state.NewMemoryStorage(), log)
	dispatcher := NewDispatcher(fsm, log)
	router := NewRouter(dispatcher, log)

	var calls int
	dispatcher.RegisterStateHandler(state.StateAwaitingBroadcast, func(c telebot.Context) error {
		calls++
		return nil
	})

	b := &Bot{telebot: tb, router: router, dispatcher: dispatcher, log: log}
	b.registerTelebotHandlers()

	const adminID int64 = 42
	require.NoError(t, fsm.SetState(context.Background(), adminID, state.StateAwaitingBroadcast))

	sender := &telebot.User{ID: adminID}
	chat := &telebot.Chat{ID: adminID}

	tb.ProcessUpdate(telebot.Update{Message: &telebot.Message{ID: 1, Sender: sender, Chat: chat, Photo: &telebot.Photo{}}})
	require.Equal(t, 1, calls, "a photo must reach the broadcast state handler")

	tb.ProcessUpdate(telebot.Update{Message: &telebot.Message{ID: 2, Sender: sender, Chat: chat, Document: &telebot.Document{}}})
	require.Equal(t, 2, calls)

	tb.ProcessUpdate(telebot.Update{Message: &telebot.Message{ID: 3, Sender: sender, Chat: chat, Text: "hello"}})
	require.Equal(t, 3, calls)
}
