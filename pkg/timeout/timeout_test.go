package timeout

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithDefault_FastCallWins(t *testing.T) {
	got, fell := WithDefault(context.Background(), time.Second, "fallback", func(ctx context.Context) (string, error) {
		return "real", nil
	})
	if fell {
		t.Error("fast call should not fall back")
	}
	if got != "real" {
		t.Errorf("got %q, want %q", got, "real")
	}
}

func TestWithDefault_TimerWins(t *testing.T) {
	got, fell := WithDefault(context.Background(), 10*time.Millisecond, 42, func(ctx context.Context) (int, error) {
		select {
		case <-time.After(time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	if !fell {
		t.Error("slow call should fall back")
	}
	if got != 42 {
		t.Errorf("got %d, want fallback 42", got)
	}
}

func TestWithDefault_ErrorFallsBack(t *testing.T) {
	got, fell := WithDefault(context.Background(), time.Second, "fallback", func(ctx context.Context) (string, error) {
		return "", errors.New("upstream failed")
	})
	if !fell {
		t.Error("failing call should fall back")
	}
	if got != "fallback" {
		t.Errorf("got %q, want %q", got, "fallback")
	}
}

func TestWithDefault_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, fell := WithDefault(ctx, time.Second, "fallback", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	if !fell {
		t.Error("cancelled parent should fall back")
	}
	if got != "fallback" {
		t.Errorf("got %q, want %q", got, "fallback")
	}
}
