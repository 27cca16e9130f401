package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/bot/keyboard"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/broadcast"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/export"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/i18n"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/state"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/user"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/metrics"
)

// listChunkLimit keeps chunked listings under Telegram's 4096-char message cap
// with headroom for formatting.
const listChunkLimit = 3500

// Copier re-sends an existing message to another chat without a forward
// header. *telebot.Bot satisfies it.
type Copier interface {
	Copy(to telebot.Recipient, msg telebot.Editable, opts ...interface{}) (*telebot.Message, error)
}

// NewAdminCommandHandler opens the admin flow with a password prompt.
func NewAdminCommandHandler(fsm state.StateMachine, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		if err := c.Send(t.T("admin.ask_password")); err != nil {
			return err
		}

		return fsm.SetState(context.Background(), sender.ID, state.StateAwaitingPassword)
	}
}

// NewPasswordHandler checks the submitted password. A match grants admin
// access for the process lifetime and shows the menu; a mismatch re-prompts
// with no lockout.
func NewPasswordHandler(gate AdminGate, users *user.Service, fsm state.StateMachine, t i18n.Translator, kb *keyboard.Builder, password string, windowDays int, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		if strings.TrimSpace(c.Text()) != password {
			log.Warn("admin password rejected", slog.Int64("user_id", sender.ID))
			return c.Send(t.T("admin.bad_password"))
		}

		gate.Grant(sender.ID)
		log.Info("admin access granted", slog.Int64("user_id", sender.ID))

		ctx := context.Background()

		count, err := users.CountActive(ctx, windowDays)
		if err != nil {
			return err
		}

		if err := c.Send(t.T("admin.welcome"), kb.AdminMenu(count)); err != nil {
			return err
		}

		return fsm.ClearState(ctx, sender.ID)
	}
}

// NewMenuHandler routes idle-state text. For admins it matches the exact menu
// labels; for everyone else it stays silent so stray text gets no reply.
func NewMenuHandler(gate AdminGate, users *user.Service, fsm state.StateMachine, t i18n.Translator, kb *keyboard.Builder, windowDays int, exportDir string, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil || !gate.IsAdmin(sender.ID) {
			return nil
		}

		ctx := context.Background()
		text := strings.TrimSpace(c.Text())

		switch text {
		case t.T("menu.broadcast"):
			if err := c.Send(t.T("admin.ask_broadcast")); err != nil {
				return err
			}
			return fsm.SetState(ctx, sender.ID, state.StateAwaitingBroadcast)

		case t.T("menu.search"):
			if err := c.Send(t.T("admin.ask_search_id")); err != nil {
				return err
			}
			return fsm.SetState(ctx, sender.ID, state.StateAwaitingSearchID)

		case t.T("menu.list_text"):
			return sendUserListText(ctx, c, users, t)

		case t.T("menu.list_file"):
			return sendUserListFiles(ctx, c, users, t, exportDir, log)
		}

		// The active-count label carries the live count, so match by prefix.
		if strings.HasPrefix(text, t.T("menu.active")) {
			count, err := users.CountActive(ctx, windowDays)
			if err != nil {
				return err
			}

			metrics.SetActiveUsers(count)

			return c.Send(t.Tf("admin.active_count", windowDays, count), kb.AdminMenu(count))
		}

		return nil
	}
}

// NewSearchHandler looks a user up by numeric id and prints the full profile.
func NewSearchHandler(users *user.Service, fsm state.StateMachine, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		id, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
		if err != nil {
			return c.Send(t.T("admin.search_not_number"))
		}

		ctx := context.Background()

		found, err := users.Find(ctx, id)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return c.Send(t.T("admin.search_not_found"))
			}
			return err
		}

		profile := t.Tf("admin.profile",
			found.ID,
			found.Handle,
			found.DisplayName,
			found.ContentLink,
			found.RealName,
			found.Phone,
			found.Likes,
			found.Views,
			found.Rating,
			found.CreatedAt.Format("2006-01-02 15:04:05"),
		)

		if err := c.Send(profile); err != nil {
			return err
		}

		return fsm.ClearState(ctx, sender.ID)
	}
}

// NewBroadcastHandler fans the submitted message out to every recently active
// user via copyMessage, then reports the tally.
func NewBroadcastHandler(users *user.Service, fsm state.StateMachine, t i18n.Translator, kb *keyboard.Builder, caster *broadcast.Broadcaster, copier Copier, windowDays int, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		msg := c.Message()
		if msg == nil {
			return nil
		}

		ctx := context.Background()

		active, err := users.ListActive(ctx, windowDays)
		if err != nil {
			return err
		}

		recipients := make([]int64, 0, len(active))
		for _, u := range active {
			recipients = append(recipients, u.ID)
		}

		if err := c.Send(t.Tf("admin.broadcast_started", windowDays)); err != nil {
			return err
		}

		result := caster.Run(ctx, recipients, func(ctx context.Context, recipientID int64) error {
			_, copyErr := copier.Copy(telebot.ChatID(recipientID), msg)
			if copyErr != nil {
				metrics.RecordBroadcastDelivery("failed")
				return copyErr
			}

			metrics.RecordBroadcastDelivery("sent")
			return nil
		})

		log.Info("broadcast finished",
			slog.Int("recipients", len(recipients)),
			slog.Int("sent", result.Sent),
			slog.Int("failed", result.Failed),
		)

		count, err := users.CountActive(ctx, windowDays)
		if err != nil {
			return err
		}

		if err := c.Send(t.Tf("admin.broadcast_done", result.Sent, result.Failed), kb.AdminMenu(count)); err != nil {
			return err
		}

		return fsm.ClearState(ctx, sender.ID)
	}
}

func sendUserListText(ctx context.Context, c telebot.Context, users *user.Service, t i18n.Translator) error {
	all, err := users.ListAll(ctx)
	if err != nil {
		return err
	}

	if len(all) == 0 {
		return c.Send(t.T("admin.list_empty"))
	}

	if err := c.Send(t.T("admin.list_header")); err != nil {
		return err
	}

	lines := make([]string, 0, len(all))
	for i, u := range all {
		lines = append(lines, fmt.Sprintf("%d) ID: %d | @%s | %s | %s | %s",
			i+1, u.ID, u.Handle, u.RealName, u.Phone, u.ContentLink))
	}

	for _, chunk := range export.ChunkLines(lines, listChunkLimit) {
		if err := c.Send(chunk); err != nil {
			return err
		}
	}

	return c.Send(t.T("admin.list_done"))
}

func sendUserListFiles(ctx context.Context, c telebot.Context, users *user.Service, t i18n.Translator, exportDir string, log *slog.Logger) error {
	all, err := users.ListAll(ctx)
	if err != nil {
		return err
	}

	if len(all) == 0 {
		return c.Send(t.T("admin.list_empty"))
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	xlsxPath := filepath.Join(exportDir, "users.xlsx")
	if err := export.WriteUsersXLSX(all, xlsxPath); err != nil {
		return err
	}

	pdfPath := filepath.Join(exportDir, "users.pdf")
	if err := export.WriteUsersPDF(all, pdfPath); err != nil {
		return err
	}

	log.Info("user list exported", slog.Int("users", len(all)), slog.String("dir", exportDir))

	xlsxDoc := &telebot.Document{
		File:     telebot.FromDisk(xlsxPath),
		FileName: "users.xlsx",
		Caption:  t.T("admin.xlsx_caption"),
	}
	if err := c.Send(xlsxDoc); err != nil {
		return err
	}

	pdfDoc := &telebot.Document{
		File:     telebot.FromDisk(pdfPath),
		FileName: "users.pdf",
		Caption:  t.T("admin.pdf_caption"),
	}
	return c.Send(pdfDoc)
}
