package executor

import "context"

type limited struct {
	inner Executor
	slots chan struct{}
}

// WithLimit lets at most n executions run at once. Callers beyond that
// wait for a free slot or their context, whichever comes first. n <= 0
// means no limit.
func WithLimit(exec Executor, n int) Executor {
	if n <= 0 {
		return exec
	}
	return &limited{inner: exec, slots: make(chan struct{}, n)}
}

func (l *limited) Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error) {
	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-l.slots }()

	return l.inner.Execute(ctx, req)
}
