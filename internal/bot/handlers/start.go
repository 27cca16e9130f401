// Package handlers contains the state and command handlers for the bot's two
// conversation flows: participant onboarding and the password-gated admin menu.
package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/bot/keyboard"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/i18n"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/user"
)

// NewStartHandler greets the user, shows the posting terms, and opens the
// onboarding flow.
func NewStartHandler(users *user.Service, fsm state.StateMachine, t i18n.Translator, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			log.Warn("start handler invoked without sender")
			return nil
		}

		ctx := context.Background()

		if err := users.RegisterOrRefresh(ctx, sender); err != nil {
			return err
		}

		if err := c.Send(t.T("onboarding.welcome")); err != nil {
			return err
		}

		if err := c.Send(t.T("onboarding.terms"), kb.TermsButton()); err != nil {
			return err
		}

		// /start always restarts the flow, even mid-onboarding.
		return fsm.SetState(ctx, sender.ID, state.StateAwaitingTerms)
	}
}
