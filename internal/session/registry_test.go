package session

import (
	"context"
	"testing"
	"time"

	"github.com/hayqway/waybot/internal/catalog"
	"github.com/hayqway/waybot/internal/geo"
)

func sampleRoutes(n int) []*catalog.Route {
	routes := make([]*catalog.Route, n)
	for i := range routes {
		routes[i] = &catalog.Route{Number: catalog.Label(rune('1' + i))}
	}
	return routes
}

func TestBeginReplacesPriorSession(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(time.Minute)

	first := r.Begin(ctx, 7)
	r.Freeze(ctx, 7, "12", sampleRoutes(3), nil)

	second := r.Begin(ctx, 7)
	if second == first {
		t.Fatal("Begin must create a new session, not reuse the old one")
	}

	got, ok := r.Get(7)
	if !ok || got != second {
		t.Fatal("only the replacement session must remain registered")
	}
	if got.Phase != PhaseAwaitingReply {
		t.Fatalf("replacement phase = %q, want awaiting_reply", got.Phase)
	}
	if got.Routes != nil {
		t.Fatal("replacement must not inherit the old snapshot")
	}
}

func TestFreezeSetsSnapshotAndPhase(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(time.Minute)
	r.Begin(ctx, 7)

	anchor := &geo.Point{Lat: 40.18, Lng: 44.51}
	s := r.Freeze(ctx, 7, "կենտրոն", sampleRoutes(25), anchor)
	if s == nil {
		t.Fatal("freeze on a live session must return it")
	}
	if s.Phase != PhaseAwaitingPageNav {
		t.Fatalf("phase = %q, want awaiting_page_nav", s.Phase)
	}
	if len(s.Routes) != 25 || s.Anchor != anchor {
		t.Fatal("snapshot or anchor not stored")
	}
	if got := s.PageCount(10); got != 3 {
		t.Fatalf("page count = %d, want 3", got)
	}
}

func TestFreezeWithoutSessionIsNoop(t *testing.T) {
	r := NewRegistry(time.Minute)
	if s := r.Freeze(context.Background(), 99, "x", sampleRoutes(1), nil); s != nil {
		t.Fatal("freeze without a session must return nil")
	}
}

func TestSessionExpiresOnce(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(20 * time.Millisecond)
	r.Begin(ctx, 7)
	r.Freeze(ctx, 7, "12", sampleRoutes(2), nil)

	deadline := time.After(time.Second)
	for {
		if _, ok := r.Get(7); !ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("session never expired")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStaleTimerDoesNotEvictReplacement(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(20 * time.Millisecond)
	r.Begin(ctx, 7)
	r.Freeze(ctx, 7, "old", sampleRoutes(1), nil)

	// Replace before the first timer fires. Even if the old timer were to
	// fire, the replacement must survive because it is a different session.
	replacement := r.Begin(ctx, 7)
	r.evict(7, replacement.gen-1)

	got, ok := r.Get(7)
	if !ok || got != replacement {
		t.Fatal("stale eviction removed the replacement session")
	}
}

func TestEndStopsTracking(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(time.Minute)
	r.Begin(ctx, 7)
	r.End(7)
	if _, ok := r.Get(7); ok {
		t.Fatal("session must be gone after End")
	}
}

func TestLastLocationOutlivesSession(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(time.Minute)
	p := geo.Point{Lat: 40.2, Lng: 44.5}

	r.Begin(ctx, 7)
	r.RememberLocation(7, p)
	r.End(7)

	got, ok := r.LastLocation(7)
	if !ok || got != p {
		t.Fatal("last location must survive session end")
	}
	if _, ok := r.LastLocation(8); ok {
		t.Fatal("unknown user must have no stored location")
	}
}
