// Package bot wires the Telegram transport to the conversation handlers.
package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/bot/handlers"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/bot/keyboard"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/broadcast"
	errors "github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/errors"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/i18n"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/idempotency"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/middleware"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/user"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/config"
)

// Bot wraps telebot.Bot with application dependencies required for handling updates.
type Bot struct {
	telebot            *telebot.Bot
	log                *slog.Logger
	cfg                config.Config
	fsm                state.StateMachine
	rateLimitMw        *middleware.RateLimitMiddleware
	router             *Router
	dispatcher         *Dispatcher
	keyboard           *keyboard.Builder
	errHandler         *errors.Handler
	idempotencyManager idempotency.Manager
}

// New builds a telegram bot instance configured according to the application settings.
func New(
	cfg config.Config,
	log *slog.Logger,
	fsm state.StateMachine,
	idempotencyManager idempotency.Manager,
	rateLimitMw *middleware.RateLimitMiddleware,
	users *user.Service,
	t i18n.Translator,
) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen: cfg.Server.Port,
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	kb := keyboard.NewBuilder(t, log)
	dispatcher := NewDispatcher(fsm, log)
	router := NewRouter(dispatcher, log)
	errHandler := errors.NewHandler(log, cfg.Sentry.Enabled)

	b := &Bot{
		telebot:            tb,
		log:                log,
		cfg:                cfg,
		fsm:                fsm,
		rateLimitMw:        rateLimitMw,
		router:             router,
		dispatcher:         dispatcher,
		keyboard:           kb,
		errHandler:         errHandler,
		idempotencyManager: idempotencyManager,
	}

	b.setupRouter(users, t)

	if b.rateLimitMw != nil {
		b.telebot.Use(b.rateLimitMw.Handle)
	}

	b.registerTelebotHandlers()

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	if b.log != nil {
		b.log.Info("stopping telegram bot...")
	}

	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

func (b *Bot) setupRouter(users *user.Service, t i18n.Translator) {
	if b.router == nil {
		return
	}

	b.router.Use(RecoveryMiddleware(b.log, b.errHandler))
	b.router.Use(middleware.Idempotency(b.idempotencyManager, b.log))
	b.router.Use(ErrorHandlingMiddleware(b.errHandler))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(AuthMiddleware(users, b.log))
	b.router.Use(middleware.Metrics)

	windowDays := b.cfg.Broadcast.ActiveWindowDays
	pacer := broadcast.NewRatePacer(b.cfg.Broadcast.RatePerSecond)
	caster := broadcast.New(pacer, b.log)
	reactor := &telebotReactor{bot: b.telebot}

	b.router.RegisterCommand(CommandStart, handlers.NewStartHandler(users, b.fsm, t, b.keyboard, b.log))
	b.router.RegisterCommand(CommandAdmin, handlers.NewAdminCommandHandler(b.fsm, t, b.log))
	b.router.RegisterCommand(CommandCancel, handlers.NewCancelHandler(b.fsm, t, b.keyboard, b.log))

	b.router.RegisterCallback(keyboard.CallbackTermsAccept, handlers.NewTermsAcceptHandler(b.fsm, t, b.log))

	b.dispatcher.RegisterStateHandler(state.StateAwaitingLink, handlers.NewLinkHandler(users, b.fsm, t, reactor, b.log))
	b.dispatcher.RegisterStateHandler(state.StateAwaitingName, handlers.NewNameHandler(users, b.fsm, t, b.keyboard, b.log))
	b.dispatcher.RegisterStateHandler(state.StateAwaitingPhone, handlers.NewPhoneHandler(users, b.fsm, t, b.keyboard, b.log))

	b.dispatcher.RegisterStateHandler(state.StateAwaitingPassword, handlers.NewPasswordHandler(
		b.dispatcher, users, b.fsm, t, b.keyboard, b.cfg.Bot.AdminPassword, windowDays, b.log))
	b.dispatcher.RegisterStateHandler(state.StateAwaitingSearchID, handlers.NewSearchHandler(users, b.fsm, t, b.log))
	b.dispatcher.RegisterStateHandler(state.StateAwaitingBroadcast, handlers.NewBroadcastHandler(
		users, b.fsm, t, b.keyboard, caster, b.telebot, windowDays, b.log))

	// Idle text is the admin menu surface; non-admin idle text gets no reply.
	b.dispatcher.RegisterStateHandler(state.StateIdle, handlers.NewMenuHandler(
		b.dispatcher, users, b.fsm, t, b.keyboard, windowDays, b.cfg.Export.Dir, b.log))
}

func (b *Bot) registerTelebotHandlers() {
	if b.telebot == nil || b.router == nil {
		return
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnCallback, b.router.Route)
	b.telebot.Handle(telebot.OnContact, b.router.Route)
	// Broadcast input may be a photo, video, or document, so media updates
	// go through the same state dispatch as text.
	b.telebot.Handle(telebot.OnMedia, b.router.Route)
}

// telebotReactor sets emoji reactions through the raw Bot API call. Older
// clients reject the method; callers treat failures as non-critical.
type telebotReactor struct {
	bot *telebot.Bot
}

func (r *telebotReactor) React(chatID int64, messageID int, emoji string) error {
	params := map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"reaction": []map[string]string{
			{"type": "emoji", "emoji": emoji},
		},
	}

	_, err := r.bot.Raw("setMessageReaction", params)
	return err
}
