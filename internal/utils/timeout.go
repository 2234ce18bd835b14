package utils

import (
	"context"
	"time"
)

const DefaultRequestTimeout = 10 * time.Second

// WithRequestTimeout bounds a single upstream call. A non-positive d falls
// back to DefaultRequestTimeout.
func WithRequestTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultRequestTimeout
	}
	return context.WithTimeout(ctx, d)
}
