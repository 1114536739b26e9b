package limiter

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterBlocksAfterMaxAttempts(t *testing.T) {
	l := NewMemory(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := l.Allowed(ctx, "maria@empresa.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		if err := l.RecordFailure(ctx, "maria@empresa.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	allowed, err := l.Allowed(ctx, "maria@empresa.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Error("expected fourth attempt to be blocked")
	}

	// Other keys are unaffected.
	allowed, err = l.Allowed(ctx, "other@empresa.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected unrelated key to be allowed")
	}
}

func TestMemoryLimiterResetClearsCounter(t *testing.T) {
	l := NewMemory(1, time.Minute)
	ctx := context.Background()

	if err := l.RecordFailure(ctx, "maria@empresa.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allowed, err := l.Allowed(ctx, "maria@empresa.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("expected key to be blocked")
	}

	if err := l.Reset(ctx, "maria@empresa.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allowed, err = l.Allowed(ctx, "maria@empresa.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected key to be allowed after reset")
	}
}

func TestMemoryLimiterCloseIsIdempotent(t *testing.T) {
	l := NewMemory(1, time.Minute)

	if err := l.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}

	// Counting still works after Close; only the cleanup loop stops.
	ctx := context.Background()
	if err := l.RecordFailure(ctx, "maria@empresa.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	allowed, err := l.Allowed(ctx, "maria@empresa.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Error("expected key to be blocked")
	}
}

func TestMemoryLimiterWindowExpiry(t *testing.T) {
	l := NewMemory(1, 10*time.Millisecond)
	ctx := context.Background()

	if err := l.RecordFailure(ctx, "maria@empresa.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allowed, err := l.Allowed(ctx, "maria@empresa.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("expected key to be blocked inside the window")
	}

	time.Sleep(20 * time.Millisecond)

	allowed, err = l.Allowed(ctx, "maria@empresa.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Error("expected key to be allowed after the window expired")
	}
}
