package crawl

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/fwojciec/govmap"
)

var _ govmap.Limiter = (*Limiter)(nil)

// Limiter gates fetch cadence with a token bucket. Permits accrue at
// the configured rate up to a capacity of one second's worth, so
// steady-state throughput never exceeds rps and bursts never exceed one
// capacity window. Safe for use by concurrent callers.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second.
func NewLimiter(rps float64) *Limiter {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		l: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Wait blocks until a token is available, then consumes it.
// Returns an error if the context is canceled before then.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.l.Wait(ctx)
}
