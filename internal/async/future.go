// Package async provides a single-shot completion value for work that runs
// off the caller's goroutine.
package async

import (
	"context"
	"sync"
)

// Future is resolved exactly once with either a value or an error.
type Future[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// New returns an unresolved future.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved[T any](value T, err error) *Future[T] {
	f := New[T]()
	f.Resolve(value, err)
	return f
}

// Go runs fn on a new goroutine and resolves the future with its result.
// A panic in fn resolves the future with a *PanicError.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := New[T]()
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				var zero T
				f.Resolve(zero, &PanicError{Value: rec})
			}
		}()
		v, err := fn()
		f.Resolve(v, err)
	}()
	return f
}

// Resolve completes the future. It reports false if the future was already
// resolved; later calls never change the stored outcome.
func (f *Future[T]) Resolve(value T, err error) bool {
	resolved := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		resolved = true
		close(f.done)
	})
	return resolved
}

// Done is closed once the future resolves.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx ends.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then runs fn with the outcome once the future resolves. fn runs on its own
// goroutine unless the future is already resolved, in which case it runs inline.
func (f *Future[T]) Then(fn func(T, error)) {
	select {
	case <-f.done:
		fn(f.value, f.err)
		return
	default:
	}
	go func() {
		<-f.done
		fn(f.value, f.err)
	}()
}

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return "async task panicked"
}
