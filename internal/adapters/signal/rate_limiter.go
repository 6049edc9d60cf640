package signal

import (
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter caps inbound messages on one connection.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewLimiter returns a token bucket refilled perSecond times a second.
// perSecond <= 0 disables limiting.
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (rl *RateLimiter) Allow() bool {
	if rl == nil || rl.limiter == nil {
		return true
	}
	return rl.limiter.AllowN(time.Now(), 1)
}
