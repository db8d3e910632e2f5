package cache

import (
	"context"
	"testing"
	"time"
)

// fixedClock returns a settable clock function for day-boundary tests.
type fixedClock struct {
	t time.Time
}

func (f *fixedClock) Now() time.Time { return f.t }

func newTestCache(at time.Time) (*Cache, *fixedClock, *MemoryStore) {
	clock := &fixedClock{t: at}
	store := NewMemoryStore()
	store.now = clock.Now
	c := New(store)
	c.now = clock.Now
	return c, clock, store
}

func TestDaily_SameDayHit(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(time.Date(2025, 1, 1, 9, 30, 0, 0, time.Local))

	if err := c.SetDaily(ctx, "k", []int{1, 2, 3}); err != nil {
		t.Fatalf("SetDaily: %v", err)
	}

	var got []int
	if !c.GetDaily(ctx, "k", &got) {
		t.Fatal("same-day read should hit")
	}
	if len(got) != 3 || got[0] != 1 {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestDaily_DayBoundaryMiss(t *testing.T) {
	ctx := context.Background()
	// Write late on Jan 1
	c, clock, _ := newTestCache(time.Date(2025, 1, 1, 23, 59, 0, 0, time.Local))

	if err := c.SetDaily(ctx, "k", "snapshot"); err != nil {
		t.Fatalf("SetDaily: %v", err)
	}

	// One second past local midnight the entry must be a miss,
	// regardless of wall-clock time-of-day at write.
	clock.t = time.Date(2025, 1, 2, 0, 0, 1, 0, time.Local)

	var got string
	if c.GetDaily(ctx, "k", &got) {
		t.Error("read on day D+1 after write on day D should miss")
	}
}

func TestDaily_StaleEntryRemovedOnRead(t *testing.T) {
	ctx := context.Background()
	c, clock, store := newTestCache(time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))

	if err := c.SetDaily(ctx, "k", "old"); err != nil {
		t.Fatalf("SetDaily: %v", err)
	}

	clock.t = clock.t.AddDate(0, 0, 1)

	var got string
	c.GetDaily(ctx, "k", &got)

	keys, _ := store.KeysWithPrefix(ctx, dailyPrefix)
	if len(keys) != 0 {
		t.Errorf("stale entry should be removed on read, %d keys remain", len(keys))
	}
}

func TestDaily_CorruptPayloadIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _, store := newTestCache(time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))

	// Corruption must never surface as an error, only a miss.
	store.Set(ctx, dailyPrefix+"k", []byte("{not json"), 0)

	var got string
	if c.GetDaily(ctx, "k", &got) {
		t.Error("corrupt payload should be a miss")
	}
}

func TestDaily_VersionMismatchIsMiss(t *testing.T) {
	ctx := context.Background()
	c, _, store := newTestCache(time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))

	store.Set(ctx, dailyPrefix+"k", []byte(`{"v":99,"day":"2025-01-01","payload":"x"}`), 0)

	var got string
	if c.GetDaily(ctx, "k", &got) {
		t.Error("unknown envelope version should be a miss")
	}
}

func TestSession_NoTimeExpiry(t *testing.T) {
	ctx := context.Background()
	c, clock, _ := newTestCache(time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))

	if err := c.SetSession(ctx, "k", 7); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	// A week later the session entry is still readable.
	clock.t = clock.t.AddDate(0, 0, 7)

	var got int
	if !c.GetSession(ctx, "k", &got) {
		t.Fatal("session entry should survive day rollover")
	}
	if got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestClearSession_RemovesOnlySessionEntries(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))

	c.SetSession(ctx, "a", 1)
	c.SetSession(ctx, "b", 2)
	c.SetDaily(ctx, "d", 3)

	if err := c.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	var got int
	if c.GetSession(ctx, "a", &got) || c.GetSession(ctx, "b", &got) {
		t.Error("session entries should be cleared")
	}
	if !c.GetDaily(ctx, "d", &got) {
		t.Error("daily entries should survive ClearSession")
	}
}

func TestSweepDaily_RemovesStaleKeepsFresh(t *testing.T) {
	ctx := context.Background()
	c, clock, _ := newTestCache(time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local))

	c.SetDaily(ctx, "old", "v")

	clock.t = clock.t.AddDate(0, 0, 1)
	c.SetDaily(ctx, "fresh", "v")

	removed, err := c.SweepDaily(ctx)
	if err != nil {
		t.Fatalf("SweepDaily: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	var got string
	if !c.GetDaily(ctx, "fresh", &got) {
		t.Error("fresh entry should survive sweep")
	}
}

func TestDisabledCache_AlwaysMissesNeverErrors(t *testing.T) {
	ctx := context.Background()
	c := New(nil)

	if err := c.SetDaily(ctx, "k", 1); err != nil {
		t.Errorf("disabled SetDaily should be a no-op, got %v", err)
	}
	var got int
	if c.GetDaily(ctx, "k", &got) {
		t.Error("disabled cache should always miss")
	}
	if err := c.ClearSession(ctx); err != nil {
		t.Errorf("disabled ClearSession should be a no-op, got %v", err)
	}
	if _, err := c.SweepDaily(ctx); err != nil {
		t.Errorf("disabled SweepDaily should be a no-op, got %v", err)
	}
}
