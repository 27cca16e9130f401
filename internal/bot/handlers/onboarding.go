package handlers

import (
	"context"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/bot/keyboard"
	apperrors "github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/errors"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/i18n"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/user"
)

// contentLinkRe accepts Instagram reel, post, and IGTV links, with or without
// www, trailing slash, and query string.
var contentLinkRe = regexp.MustCompile(`^(?i)https?://(www\.)?instagram\.com/(reel|p|tv)/[A-Za-z0-9_\-]+/?(\?.*)?$`)

// ValidContentLink reports whether text is an acceptable content link.
func ValidContentLink(text string) bool {
	return contentLinkRe.MatchString(strings.TrimSpace(text))
}

var reactionEmojis = []string{"👍", "🔥", "👏", "😍", "✅", "🎉"}

// NewTermsAcceptHandler handles the terms confirmation button. It swaps the
// terms prompt for the link prompt and advances the flow.
func NewTermsAcceptHandler(fsm state.StateMachine, t i18n.Translator, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		if err := c.Respond(); err != nil {
			log.Warn("callback ack failed", slog.Any("error", err))
		}

		if err := c.Edit(t.T("onboarding.ask_link")); err != nil {
			// Editing fails when the prompt message is too old; fall back to
			// a fresh message so the flow still advances.
			if sendErr := c.Send(t.T("onboarding.ask_link")); sendErr != nil {
				return sendErr
			}
		}

		// The button can arrive from any state: the prompt may outlive the
		// session it was sent in, and sessions do not survive restarts.
		return fsm.SetState(context.Background(), sender.ID, state.StateAwaitingLink)
	}
}

// NewLinkHandler validates and persists the submitted content link. A valid
// link earns a random positive reaction; reaction failures are logged and
// never shown to the user.
func NewLinkHandler(users *user.Service, fsm state.StateMachine, t i18n.Translator, reactor Reactor, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		link := strings.TrimSpace(c.Text())
		if !ValidContentLink(link) {
			return c.Send(t.T("onboarding.bad_link"))
		}

		ctx := context.Background()

		if err := users.SaveContentLink(ctx, sender.ID, link); err != nil {
			return err
		}

		if reactor != nil {
			if msg := c.Message(); msg != nil && msg.Chat != nil {
				emoji := reactionEmojis[rand.Intn(len(reactionEmojis))]
				if err := reactor.React(msg.Chat.ID, msg.ID, emoji); err != nil {
					reactErr := apperrors.NewReactionError(err)
					log.Warn("reaction failed",
						slog.Int64("user_id", sender.ID),
						slog.Any("error", reactErr),
					)
				}
			}
		}

		if err := c.Send(t.T("onboarding.ask_name")); err != nil {
			return err
		}

		return fsm.TransitionTo(ctx, sender.ID, state.StateAwaitingName)
	}
}

// NewNameHandler persists the participant's real name.
func NewNameHandler(users *user.Service, fsm state.StateMachine, t i18n.Translator, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		name := strings.TrimSpace(c.Text())
		if name == "" {
			return c.Send(t.T("onboarding.empty_name"))
		}

		ctx := context.Background()

		if err := users.SaveRealName(ctx, sender.ID, name); err != nil {
			return err
		}

		if err := c.Send(t.T("onboarding.ask_phone"), kb.ContactRequest()); err != nil {
			return err
		}

		return fsm.TransitionTo(ctx, sender.ID, state.StateAwaitingPhone)
	}
}

// NewPhoneHandler accepts only a contact payload. Typed digits are rejected
// because the contact button is the only source of a verified number.
func NewPhoneHandler(users *user.Service, fsm state.StateMachine, t i18n.Translator, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		msg := c.Message()
		if msg == nil || msg.Contact == nil || msg.Contact.PhoneNumber == "" {
			return c.Send(t.T("onboarding.need_contact"), kb.ContactRequest())
		}

		contact := msg.Contact
		if contact.UserID != 0 && contact.UserID != sender.ID {
			return c.Send(t.T("onboarding.need_contact"), kb.ContactRequest())
		}

		ctx := context.Background()

		if err := users.SavePhone(ctx, sender.ID, contact.PhoneNumber); err != nil {
			return err
		}

		if err := c.Send(t.T("onboarding.done"), kb.RemoveKeyboard()); err != nil {
			return err
		}

		return fsm.ClearState(ctx, sender.ID)
	}
}
