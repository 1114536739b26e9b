package limiter

import "context"

// noopLimiter never blocks an attempt. Used by the admin CLI and tests.
type noopLimiter struct{}

// NewNoop creates a limiter that allows everything.
func NewNoop() AttemptLimiter {
	return noopLimiter{}
}

func (noopLimiter) Allowed(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) RecordFailure(context.Context, string) error   { return nil }
func (noopLimiter) Reset(context.Context, string) error           { return nil }
func (noopLimiter) Close() error                                  { return nil }

var _ AttemptLimiter = noopLimiter{}
