package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTimeout bounds a single store operation by timeout, or by the caller's
// deadline when that is sooner. Session contexts are returned unchanged since
// wrapping them detaches the operation from its transaction.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

// Now returns the current time at the precision Mongo stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
