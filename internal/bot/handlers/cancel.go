package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/bot/keyboard"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/i18n"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
)

// NewCancelHandler clears the user's session from any state.
func NewCancelHandler(fsm state.StateMachine, t i18n.Translator, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			log.Warn("cancel handler invoked without sender")
			return nil
		}

		ctx := context.Background()

		if err := fsm.ClearState(ctx, sender.ID); err != nil {
			log.Error("failed to clear user state", slog.Int64("user_id", sender.ID), slog.Any("error", err))
			return err
		}

		return c.Send(t.T("onboarding.cancelled"), kb.RemoveKeyboard())
	}
}
