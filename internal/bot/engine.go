// Package bot implements the rider-facing search engine behind the Telegram
// surface: nearest-stop lookup, radius route discovery, free-text search,
// and the per-user multi-turn session flow with paginated results. The
// engine produces views (text plus callback tokens); delivering them is the
// transport's job.
package bot

import (
	"context"
	"math/rand"
	"strings"

	"log/slog"

	"github.com/hayqway/waybot/internal/catalog"
	"github.com/hayqway/waybot/internal/geo"
	"github.com/hayqway/waybot/internal/logger"
	"github.com/hayqway/waybot/internal/paginate"
	"github.com/hayqway/waybot/internal/session"
)

// View is a renderable engine result: a message body with optional inline
// keyboard rows, or a short callback notice when nothing should be sent.
type View struct {
	Text   string
	Rows   [][]Button
	Notice string
	// Menu asks the transport to attach the main reply keyboard.
	Menu bool
}

// Button is one inline button carrying a callback token.
type Button struct {
	Text  string
	Token string
}

// Options carries the engine's tunables.
type Options struct {
	Locale               string
	RadiusMeters         float64
	PageSize             int
	SpeedMetersPerMinute float64
}

// Engine answers search requests against the current catalog and drives the
// per-user session state machine.
type Engine struct {
	catalogs *catalog.Provider
	sessions *session.Registry
	opts     Options
}

// NewEngine wires an Engine over the catalog provider and session registry.
func NewEngine(catalogs *catalog.Provider, sessions *session.Registry, opts Options) *Engine {
	if opts.Locale == "" {
		opts.Locale = "hy"
	}
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = 1000
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.SpeedMetersPerMinute <= 0 {
		opts.SpeedMetersPerMinute = geo.DefaultSpeedMetersPerMinute
	}
	return &Engine{catalogs: catalogs, sessions: sessions, opts: opts}
}

// Sessions exposes the registry for transport-level conversation claims.
func (e *Engine) Sessions() *session.Registry {
	return e.sessions
}

func (e *Engine) catalog() (*catalog.Catalog, bool) {
	return e.catalogs.Current()
}

// NearestStop answers a /near query: the single closest locatable stop with
// its owning route, straight-line distance, and arrival estimate.
func (e *Engine) NearestStop(ctx context.Context, userID int64, origin geo.Point) View {
	cat, ok := e.catalog()
	if !ok {
		return View{Text: msgUnavailable}
	}
	e.sessions.RememberLocation(userID, origin)

	entry, dist, found := cat.NearestStop(origin)
	if !found {
		return View{Text: msgNoStopsFound}
	}

	eta := e.stopETA(entry.Stop, &origin)
	logger.Debug(ctx, "catalog", "search.nearest",
		slog.String("status", "ok"),
		slog.String("stop", entry.Stop.Name.In(e.opts.Locale)),
		slog.String("route", entry.Route.Label()),
		slog.Int("distance_m", int(dist)),
		slog.Int("eta_min", eta),
	)
	return View{Text: renderNearestStop(entry, dist, eta, e.opts.Locale)}
}

// NearbyRoutes answers a shared location outside a search session: every
// route with a stop inside the search radius, each opening at page 0.
func (e *Engine) NearbyRoutes(ctx context.Context, userID int64, origin geo.Point) View {
	cat, ok := e.catalog()
	if !ok {
		return View{Text: msgUnavailable}
	}
	e.sessions.RememberLocation(userID, origin)

	routes := cat.RoutesWithinRadius(origin, e.opts.RadiusMeters)
	logger.Debug(ctx, "catalog", "search.radius",
		slog.String("status", "ok"),
		slog.Int("radius_m", int(e.opts.RadiusMeters)),
		slog.Int("routes", len(routes)),
	)
	if len(routes) == 0 {
		return View{Text: msgNoNearbyBuses}
	}
	return View{
		Text: msgNearbyHeader,
		Rows: routeButtons(routes, e.opts.Locale, NearRouteToken),
	}
}

// BeginSearch opens a search conversation: the next message from the user is
// the query. Any previous conversation is replaced.
func (e *Engine) BeginSearch(ctx context.Context, userID int64) View {
	e.sessions.Begin(ctx, userID)
	return View{Text: msgAskQuery}
}

// HandleReply consumes the queued reply of an awaiting-reply session. A
// location triggers radius discovery; an all-digits text matches a route
// number exactly; anything else substring-searches route and stop names.
// The result set is frozen into the session before buttons go out.
func (e *Engine) HandleReply(ctx context.Context, userID int64, text string, loc *geo.Point) View {
	cat, ok := e.catalog()
	if !ok {
		return View{Text: msgUnavailable}
	}

	if loc != nil {
		e.sessions.RememberLocation(userID, *loc)
		routes := cat.RoutesWithinRadius(*loc, e.opts.RadiusMeters)
		if len(routes) == 0 {
			e.sessions.End(userID)
			return View{Text: msgNoNearbyRoutes}
		}
		if s := e.sessions.Freeze(ctx, userID, "", routes, loc); s != nil {
			s.Back = tokenBackRoutes
		}
		return View{
			Text: msgSearchNearby,
			Rows: routeButtons(routes, e.opts.Locale, func(r string) string { return PageToken(r, 0) }),
		}
	}

	query := strings.TrimSpace(text)
	if query == "" {
		return View{Text: msgEmptyQuery}
	}

	routes := cat.SearchRoutesByQuery(query, e.opts.Locale)
	logger.Debug(ctx, "catalog", "search.query",
		slog.String("status", "ok"),
		slog.String("query", logger.SanitizeLimit(query, 64)),
		slog.Int("routes", len(routes)),
	)
	if len(routes) == 0 {
		e.sessions.End(userID)
		return View{Text: msgNothingFound}
	}

	var anchor *geo.Point
	if last, ok := e.sessions.LastLocation(userID); ok {
		anchor = &last
	}
	if s := e.sessions.Freeze(ctx, userID, query, routes, anchor); s != nil {
		s.Back = tokenBackRoutes
	}

	greeting := greetings[rand.Intn(len(greetings))]
	return View{
		Text: greeting + " «" + query + "»–ում անցնող երթուղիները՝",
		Rows: routeButtons(routes, e.opts.Locale, func(r string) string { return PageToken(r, 0) }),
	}
}

// HandleToken dispatches a callback token. Stale or unknown tokens produce a
// notice, never an error; a wrong route number inside a live session keeps
// the session alive.
func (e *Engine) HandleToken(ctx context.Context, userID int64, raw string) View {
	tok, ok := ParseToken(raw)
	if !ok {
		return View{Notice: msgRouteNotFound}
	}

	switch tok.Kind {
	case TokenBackRoutes, TokenNearBack:
		e.sessions.End(userID)
		return View{Text: msgChooseAction, Menu: true}

	case TokenRoutePage:
		s, live := e.sessions.Get(userID)
		if !live || s.Phase != session.PhaseAwaitingPageNav {
			return View{Notice: msgSearchExpired}
		}
		route := routeFromSnapshot(s, tok.Route)
		if route == nil {
			return View{Notice: msgRouteNotFound}
		}
		return e.stopPage(route, tok.Page, s.Anchor, s.Back)

	case TokenNearRoute, TokenShowRoute:
		return e.openRoute(ctx, userID, tok.Route)
	}

	return View{Notice: msgRouteNotFound}
}

// openRoute shows page 0 of a route. A live session snapshot wins; otherwise
// the current catalog serves the lookup and a fresh single-route session is
// frozen so the paging buttons keep working.
func (e *Engine) openRoute(ctx context.Context, userID int64, number string) View {
	var anchor *geo.Point
	if last, ok := e.sessions.LastLocation(userID); ok {
		anchor = &last
	}

	if s, live := e.sessions.Get(userID); live && s.Phase == session.PhaseAwaitingPageNav {
		if route := routeFromSnapshot(s, number); route != nil {
			return e.stopPage(route, 0, s.Anchor, s.Back)
		}
	}

	cat, ok := e.catalog()
	if !ok {
		return View{Text: msgUnavailable}
	}
	route, found := cat.RouteByNumber(number)
	if !found {
		return View{Notice: msgRouteNotFound}
	}

	e.sessions.Begin(ctx, userID)
	if s := e.sessions.Freeze(ctx, userID, number, []*catalog.Route{route}, anchor); s != nil {
		s.Back = tokenNearBack
	}
	return e.stopPage(route, 0, anchor, tokenNearBack)
}

// SearchStops serves idle free text the way a stop lookup works: substring
// match on stop names, first page only, no session involved.
func (e *Engine) SearchStops(ctx context.Context, text string) View {
	cat, ok := e.catalog()
	if !ok {
		return View{Text: msgUnavailable}
	}
	found := cat.SearchStopsByName(text, e.opts.Locale)
	if len(found) == 0 {
		return View{}
	}
	page := paginate.Slice(found, e.opts.PageSize, 0)
	return View{Text: renderStopMatches(found, page.Items, e.opts.Locale)}
}

// stopPage renders one page of a route's stops from a frozen route value.
func (e *Engine) stopPage(route *catalog.Route, pageIndex int, anchor *geo.Point, back string) View {
	page := paginate.Slice(route.Stops, e.opts.PageSize, pageIndex)

	etas := make([]int, len(page.Items))
	for i := range page.Items {
		etas[i] = e.stopETA(&page.Items[i], anchor)
	}
	text := renderStopPage(route, page.Items, etas, pageIndex, e.opts.PageSize, e.opts.Locale)

	var nav []Button
	if page.HasNext {
		nav = append(nav, Button{Text: btnNext, Token: PageToken(route.Label(), pageIndex+1)})
	}
	if page.HasPrev {
		nav = append(nav, Button{Text: btnPrev, Token: PageToken(route.Label(), pageIndex-1)})
	}
	if back == "" {
		back = tokenBackRoutes
	}
	nav = append(nav, Button{Text: btnBack, Token: back})

	return View{Text: text, Rows: [][]Button{nav}}
}

// stopETA applies the arrival-estimate precedence: a positive precomputed
// eta_min wins; otherwise the estimate derives from the anchor location.
func (e *Engine) stopETA(stop *catalog.Stop, anchor *geo.Point) int {
	if stop.ETAMin > 0 {
		return roundPositive(stop.ETAMin)
	}
	return geo.ETAMinutes(anchor, stop.Coords.Point(), e.opts.SpeedMetersPerMinute)
}

func routeFromSnapshot(s *session.Session, number string) *catalog.Route {
	for _, r := range s.Routes {
		if r.Matches(number) {
			return r
		}
	}
	return nil
}

func roundPositive(v float64) int {
	n := int(v + 0.5)
	if n < 1 {
		return 1
	}
	return n
}
