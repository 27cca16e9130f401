// Package broadcast fans one piece of admin-submitted content out to a set
// of recipients, best effort.
package broadcast

import (
	"context"
	"log/slog"

	apperrors "github.com/Muhammaddiyor2010/Xum-ayron-bot/internal/errors"
)

// SendFunc delivers the content to a single recipient.
type SendFunc func(ctx context.Context, recipientID int64) error

// Result tallies a completed fan-out.
type Result struct {
	Sent   int
	Failed int
}

// Broadcaster delivers content to every recipient in order, pacing each send
// and counting failures without aborting the batch. There is no delivery
// guarantee beyond one attempt per recipient.
type Broadcaster struct {
	pacer Pacer
	log   *slog.Logger
}

// New constructs a Broadcaster with the provided pacer.
func New(pacer Pacer, log *slog.Logger) *Broadcaster {
	if log == nil {
		log = slog.Default()
	}

	return &Broadcaster{
		pacer: pacer,
		log:   log,
	}
}

// Run attempts delivery to every recipient. A failed recipient is counted and
// skipped; the loop runs to completion unless ctx is cancelled, in which case
// the remaining recipients are counted as failed.
func (b *Broadcaster) Run(ctx context.Context, recipients []int64, send SendFunc) Result {
	var result Result

	for i, recipientID := range recipients {
		if b.pacer != nil {
			if err := b.pacer.Wait(ctx); err != nil {
				b.log.Warn("broadcast interrupted",
					slog.Int("delivered", result.Sent),
					slog.Int("remaining", len(recipients)-i),
					slog.Any("error", err),
				)
				result.Failed += len(recipients) - i
				return result
			}
		}

		if err := send(ctx, recipientID); err != nil {
			result.Failed++
			deliveryErr := apperrors.NewDeliveryError(recipientID, err)
			b.log.Warn(deliveryErr.Message, slog.Int64("recipient_id", recipientID), slog.Any("error", err))
			continue
		}

		result.Sent++
	}

	return result
}
