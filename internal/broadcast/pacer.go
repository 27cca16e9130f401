package broadcast

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer spaces out consecutive deliveries so the fan-out respects outbound
// rate limits. It is injected so tests can observe pacing without sleeping.
type Pacer interface {
	Wait(ctx context.Context) error
}

type ratePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer builds a pacer allowing perSecond sends per second with no
// burst beyond a single send.
func NewRatePacer(perSecond float64) Pacer {
	return &ratePacer{
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (p *ratePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
