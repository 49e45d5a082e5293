package baasbox

import "context"

// Future is the pending result of a call started with Dispatch or Async. It
// completes exactly once.
type Future struct {
	done  chan struct{}
	value Value
	err   error
}

// Async runs fn on its own goroutine and returns a Future for its result.
// Cancelling ctx is the only way to stop fn early.
func Async(ctx context.Context, fn func(context.Context) (Value, error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn(ctx)
	}()
	return f
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the call completes or ctx is done. Giving up on the wait
// does not cancel the call; cancel the context passed to Dispatch for that.
func (f *Future) Wait(ctx context.Context) (Value, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return Value{}, ctx.Err()
	}
}
