package executor

import (
	"context"
	"time"
)

// delayed makes a run feel like it takes a moment, the way the playground UI
// shows "Running" for a beat. It never changes the inner result.
type delayed struct {
	inner Executor
	delay time.Duration
}

// WithDelay wraps exec so every call waits d before returning. A
// non-positive d returns exec unchanged.
func WithDelay(exec Executor, d time.Duration) Executor {
	if d <= 0 {
		return exec
	}
	return &delayed{inner: exec, delay: d}
}

func (d *delayed) Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error) {
	// Compute first: the wait is cosmetic and must not influence the result.
	res, err := d.inner.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
