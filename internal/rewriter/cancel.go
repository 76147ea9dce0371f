package rewriter

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrCancelled is returned when a walk stops at a cancellation checkpoint.
var ErrCancelled = errors.New("translation cancelled")

// CancelToken is a set-once flag polled between units of work. It never
// interrupts a backend call that is already running.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns an unset token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel sets the token. Further calls have no effect.
func (t *CancelToken) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether the token is set. A nil token is never set.
func (t *CancelToken) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}

// CancelOnDone sets the token once ctx is done, e.g. a context returned by
// signal.NotifyContext.
func (t *CancelToken) CancelOnDone(ctx context.Context) {
	go func() {
		<-ctx.Done()
		t.Cancel()
	}()
}
