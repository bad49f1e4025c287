package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolveOnlyOnce(t *testing.T) {
	f := New[string]()
	if !f.Resolve("first", nil) {
		t.Fatalf("expected first resolve to win")
	}
	if f.Resolve("second", errors.New("late")) {
		t.Fatalf("expected second resolve to be ignored")
	}
	got, err := f.Wait(context.Background())
	if err != nil || got != "first" {
		t.Fatalf("unexpected outcome: %q %v", got, err)
	}
}

func TestGoResolvesWithResult(t *testing.T) {
	want := errors.New("boom")
	f := Go(func() (int, error) { return 7, want })
	got, err := f.Wait(context.Background())
	if got != 7 || !errors.Is(err, want) {
		t.Fatalf("unexpected outcome: %d %v", got, err)
	}
}

func TestGoRecoversPanic(t *testing.T) {
	f := Go(func() (int, error) { panic("bad") })
	_, err := f.Wait(context.Background())
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "bad" {
		t.Fatalf("expected PanicError, got %v", err)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	f := New[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestThenCalledExactlyOnce(t *testing.T) {
	f := New[string]()
	var calls atomic.Int32
	done := make(chan struct{})
	f.Then(func(v string, err error) {
		calls.Add(1)
		close(done)
	})
	f.Resolve("x", nil)
	f.Resolve("y", nil)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("callback not invoked")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one call, got %d", calls.Load())
	}
}
