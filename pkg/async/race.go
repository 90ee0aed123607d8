package async

import (
	"context"
	"errors"
	"time"
)

// ErrTimedOut is returned when the deadline settles before the racing
// function does.
var ErrTimedOut = errors.New("operation timed out")

type settled[T any] struct {
	value T
	err   error
}

// Race runs fn and waits at most timeout for it to settle; first to settle
// wins. When the deadline wins the goroutine running fn is abandoned, not
// cancelled: fn still receives the parent context and its eventual result is
// discarded. Callers that need hard cancellation should derive their own
// context inside fn.
func Race[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	ch := make(chan settled[T], 1)
	go func() {
		value, err := fn(ctx)
		ch <- settled[T]{value: value, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s := <-ch:
		return s.value, s.err
	case <-timer.C:
		return zero, ErrTimedOut
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
