package github

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBatchInterval is the minimum pause between content-fetch batches.
const DefaultBatchInterval = time.Second

// BatchPacer spaces out batches of API requests.
type BatchPacer interface {
	Wait(ctx context.Context) error
}

// Pacer enforces a minimum interval between batches with a token bucket.
// The interval is configurable; there is no adaptive backoff.
type Pacer struct {
	bucket *rate.Limiter
}

// NewPacer creates a pacer with the given minimum inter-batch interval.
// A non-positive interval selects the default.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultBatchInterval
	}
	return &Pacer{bucket: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next batch may start.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.bucket.Wait(ctx)
}
