package core

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"
)

// Task is the pending result of an asynchronous store operation.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func runTask[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task panic: %v", r)
			}
		}()
		t.value, t.err = fn(ctx)
		return nil
	})

	return t
}

// Done is closed when the operation has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the operation finishes or ctx is done.
// Giving up on Wait does not cancel the operation itself.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
