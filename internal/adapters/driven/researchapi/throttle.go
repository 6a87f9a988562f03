package researchapi

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle spaces outbound requests with a token bucket.
// It only delays requests; it never retries or rejects them.
type Throttle struct {
	bucket *rate.Limiter
}

// NewThrottle creates a throttle allowing perSecond requests per second
// with a burst of one. Zero or negative means unlimited.
func NewThrottle(perSecond float64) *Throttle {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Throttle{bucket: rate.NewLimiter(limit, 1)}
}

// Wait blocks until a request may be sent or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.bucket.Wait(ctx)
}

// Unlimited reports whether the throttle never delays.
func (t *Throttle) Unlimited() bool {
	return t.bucket.Limit() == rate.Inf
}
