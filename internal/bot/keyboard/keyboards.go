// Package keyboard renders the fixed keyboards the bot uses: the terms
// confirmation button, the contact request keyboard, and the admin menu.
package keyboard

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/i18n"
)

// CallbackTermsAccept is the callback payload of the terms confirmation button.
const CallbackTermsAccept = "terms_accept"

// Builder creates localized keyboards.
type Builder struct {
	t   i18n.Translator
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(t i18n.Translator, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}

	return &Builder{t: t, log: log}
}

// TermsButton builds the single inline button that confirms the posting terms.
func (b *Builder) TermsButton() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{
			{
				Text: b.t.T("buttons.accept_terms"),
				Data: CallbackTermsAccept,
			},
		},
	}
	return markup
}

// ContactRequest builds a one-time reply keyboard with a share-phone button.
// Only the button press carries a verified phone number, typed digits do not.
func (b *Builder) ContactRequest() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}

	contactBtn := markup.Contact(b.t.T("buttons.share_phone"))
	markup.Reply(markup.Row(contactBtn))

	return markup
}

// AdminMenu builds the admin reply keyboard. The active-users button label
// embeds the live count, so the menu is rebuilt on every render.
func (b *Builder) AdminMenu(activeCount int) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: false,
	}

	broadcastBtn := markup.Text(b.t.T("menu.broadcast"))
	searchBtn := markup.Text(b.t.T("menu.search"))
	listTextBtn := markup.Text(b.t.T("menu.list_text"))
	listFileBtn := markup.Text(b.t.T("menu.list_file"))
	activeBtn := markup.Text(fmt.Sprintf("%s (%d)", b.t.T("menu.active"), activeCount))

	markup.Reply(
		markup.Row(broadcastBtn),
		markup.Row(searchBtn),
		markup.Row(listTextBtn, listFileBtn),
		markup.Row(activeBtn),
	)

	return markup
}

// RemoveKeyboard clears any reply keyboard from the user's client.
func (b *Builder) RemoveKeyboard() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{RemoveKeyboard: true}
}
