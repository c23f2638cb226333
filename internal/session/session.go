// Package session tracks per-user multi-turn search conversations. Each user
// has at most one active session; results shown to the user are frozen into
// the session so later page flips never observe a reloaded catalog.
package session

import (
	"time"

	"github.com/hayqway/waybot/internal/catalog"
	"github.com/hayqway/waybot/internal/geo"
)

// Phase identifies where a search conversation currently stands.
type Phase string

const (
	// PhaseIdle means no conversation is in progress.
	PhaseIdle Phase = "idle"
	// PhaseAwaitingReply means the user was prompted for a search query and
	// the next text or location message belongs to this session.
	PhaseAwaitingReply Phase = "awaiting_reply"
	// PhaseAwaitingPageNav means results were shown and the session is
	// waiting for paging or detail callbacks.
	PhaseAwaitingPageNav Phase = "awaiting_page_nav"
)

// Session is one user's search conversation. Routes and Anchor are set once
// when results are frozen and never change afterwards, so every page of a
// result list comes from the same snapshot.
type Session struct {
	UserID    int64
	Phase     Phase
	Query     string
	Routes    []*catalog.Route
	Anchor    *geo.Point
	StartedAt time.Time

	// Back is the token the result pages navigate back with. It depends on
	// how the session started and is set right after the snapshot freezes.
	Back string

	// gen distinguishes this session from any replacement under the same
	// user id, so a stale eviction timer cannot remove a newer session.
	gen   uint64
	timer *time.Timer
}

// PageCount returns how many pages the frozen snapshot spans at the given
// page size.
func (s *Session) PageCount(pageSize int) int {
	if pageSize <= 0 || len(s.Routes) == 0 {
		return 0
	}
	return (len(s.Routes) + pageSize - 1) / pageSize
}
