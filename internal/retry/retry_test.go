package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

var errInterrupted = errors.New("interrupted system call")

func isInterrupted(err error) bool { return errors.Is(err, errInterrupted) }

func TestOnInterrupt_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := OnInterrupt(context.Background(), isInterrupted, func(attempt int) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestOnInterrupt_ReissuesUntilSuccess(t *testing.T) {
	calls := 0
	err := OnInterrupt(context.Background(), isInterrupted, func(attempt int) error {
		calls++
		if attempt < 4 {
			return errInterrupted
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestOnInterrupt_StopsOnOtherError(t *testing.T) {
	boom := errors.New("connection refused")
	calls := 0
	err := OnInterrupt(context.Background(), isInterrupted, func(attempt int) error {
		calls++
		if attempt == 1 {
			return errInterrupted
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestOnInterrupt_PermanentUnwraps(t *testing.T) {
	boom := errors.New("no route to host")
	err := OnInterrupt(context.Background(), isInterrupted, func(int) error {
		return Permanent(fmt.Errorf("connect: %w", boom))
	})
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if IsPermanent(err) {
		t.Error("permanent marker should be stripped on return")
	}
}

func TestOnInterrupt_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := OnInterrupt(ctx, isInterrupted, func(int) error {
		t.Fatal("fn must not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestOnInterrupt_BoundedInterrupts(t *testing.T) {
	calls := 0
	err := OnInterrupt(context.Background(), isInterrupted, func(int) error {
		calls++
		return errInterrupted
	})
	if err == nil {
		t.Fatal("expected error after interrupt budget exhausted")
	}
	if calls != MaxInterrupts {
		t.Errorf("calls = %d, want %d", calls, MaxInterrupts)
	}
}

func TestPermanentNil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
	if IsPermanent(nil) {
		t.Error("nil is not permanent")
	}
}
