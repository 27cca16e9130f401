package middleware

import (
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/bot/handlers"
	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		command := extractCommandName(c)
		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordCommand(command, status, time.Since(start))

		return err
	}
}

func extractCommandName(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if cb := c.Callback(); cb != nil && cb.Data != "" {
		return cb.Data
	}

	if msg := c.Message(); msg != nil && msg.Contact != nil {
		return "contact"
	}

	// Free-form text carries user input. Collapse it to a fixed label so the
	// command cardinality stays bounded and no personal data reaches metrics.
	if text := c.Text(); text != "" {
		if strings.HasPrefix(text, "/") {
			return text
		}
		return "text"
	}

	return "unknown"
}
