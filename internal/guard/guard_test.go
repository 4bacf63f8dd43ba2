package guard

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SameClientBlocked(t *testing.T) {
	ctx := context.Background()
	g := NewMemory(time.Minute)
	k := Key("tablet-1", "Group Dance", "24UCC001")

	if ok, _ := g.Acquire(ctx, k); !ok {
		t.Fatal("first acquire should succeed")
	}
	if ok, _ := g.Acquire(ctx, k); ok {
		t.Fatal("second acquire while held should fail")
	}
	if ok, _ := g.Acquire(ctx, Key("tablet-2", "Group Dance", "24UCC001")); !ok {
		t.Error("another client must not be blocked")
	}
	if ok, _ := g.Acquire(ctx, Key("tablet-1", "Group Dance", "24UCC002")); !ok {
		t.Error("another contestant must not be blocked")
	}

	_ = g.Release(ctx, k)
	if ok, _ := g.Acquire(ctx, k); !ok {
		t.Error("acquire after release should succeed")
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	g := NewMemory(10 * time.Second)
	g.now = func() time.Time { return now }

	k := Key("c", "Skit", "A1")
	if ok, _ := g.Acquire(ctx, k); !ok {
		t.Fatal("acquire")
	}
	now = now.Add(9 * time.Second)
	if ok, _ := g.Acquire(ctx, k); ok {
		t.Fatal("hold should still be active")
	}
	now = now.Add(2 * time.Second)
	if ok, _ := g.Acquire(ctx, k); !ok {
		t.Error("expired hold should be reclaimable")
	}
}
