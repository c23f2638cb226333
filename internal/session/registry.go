package session

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/hayqway/waybot/internal/catalog"
	"github.com/hayqway/waybot/internal/geo"
	"github.com/hayqway/waybot/internal/logger"
)

// Registry owns all live sessions plus each user's last shared location.
// Locations outlive sessions: a user who shared a location once can keep
// asking for route details with distance estimates long after the search
// conversation expired.
type Registry struct {
	ttl time.Duration

	mu        sync.Mutex
	sessions  map[int64]*Session
	locations map[int64]geo.Point
	nextGen   uint64
}

// NewRegistry creates a Registry whose frozen sessions expire after ttl.
// A zero or negative ttl disables eviction.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:       ttl,
		sessions:  make(map[int64]*Session),
		locations: make(map[int64]geo.Point),
	}
}

// Begin opens a fresh session in the awaiting-reply phase. Any previous
// session for the same user is discarded and its eviction timer stopped, so
// each user ever has a single listener for their next message.
func (r *Registry) Begin(ctx context.Context, userID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := r.dropLocked(userID)
	r.nextGen++
	s := &Session{
		UserID:    userID,
		Phase:     PhaseAwaitingReply,
		StartedAt: time.Now(),
		gen:       r.nextGen,
	}
	r.sessions[userID] = s

	logger.Debug(ctx, "session", "session.begin",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Bool("replaced", replaced),
	)
	return s
}

// Freeze stores the result snapshot and anchor on the user's session, moves
// it to the page-navigation phase, and arms the one-shot eviction timer. The
// timer is never re-armed: paging activity does not extend a session's life.
// Freeze is a no-op when the user has no session.
func (r *Registry) Freeze(ctx context.Context, userID int64, query string, routes []*catalog.Route, anchor *geo.Point) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok {
		return nil
	}
	s.Phase = PhaseAwaitingPageNav
	s.Query = query
	s.Routes = routes
	s.Anchor = anchor

	if r.ttl > 0 && s.timer == nil {
		gen := s.gen
		s.timer = time.AfterFunc(r.ttl, func() {
			r.evict(userID, gen)
		})
	}

	logger.Debug(ctx, "session", "session.freeze",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("query", logger.Sanitize(query)),
		slog.Int("routes", len(routes)),
	)
	return s
}

// Get returns the user's live session, if any.
func (r *Registry) Get(userID int64) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// End removes the user's session and stops its eviction timer.
func (r *Registry) End(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropLocked(userID)
}

// RememberLocation records the user's most recent shared location.
func (r *Registry) RememberLocation(userID int64, p geo.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations[userID] = p
}

// LastLocation returns the user's most recent shared location, if any.
func (r *Registry) LastLocation(userID int64) (geo.Point, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.locations[userID]
	return p, ok
}

// evict removes the session only when it is still the same one the timer was
// armed for. A replacement session under the same user id survives.
func (r *Registry) evict(userID int64, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok || s.gen != gen {
		return
	}
	delete(r.sessions, userID)
	logger.Debug(context.Background(), "session", "session.evict",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Duration("age", time.Since(s.StartedAt)),
	)
}

func (r *Registry) dropLocked(userID int64) bool {
	s, ok := r.sessions[userID]
	if !ok {
		return false
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	delete(r.sessions, userID)
	return true
}
