package ratelimit

import (
	"time"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/config"
)

// Rules encapsulates configured inbound rate limits.
type Rules struct {
	config config.RateLimitConfig
}

// NewRules constructs rate limiting rules from configuration settings.
func NewRules(cfg config.RateLimitConfig) *Rules {
	return &Rules{config: cfg}
}

// PerUserLimit returns the limit and window applied to each identity.
func (r *Rules) PerUserLimit() (int, time.Duration) {
	return r.config.PerUserLimit, r.config.PerUserWindow
}
