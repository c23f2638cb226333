package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback tokens are opaque underscore-separated strings shared with the
// deployed keyboards, so their encoding must stay byte-stable. Route numbers
// may themselves contain underscores; page tokens therefore parse from both
// ends.
const (
	tokenBackRoutes = "back_routes"
	tokenNearBack   = "near_back"

	nearRoutePrefix = "near_route_"
	showRoutePrefix = "show_route_"
	routePrefix     = "route_"
)

// TokenKind classifies a parsed callback token.
type TokenKind int

const (
	// TokenUnknown marks an unparseable token.
	TokenUnknown TokenKind = iota
	// TokenBackRoutes returns from a search result to the idle state.
	TokenBackRoutes
	// TokenNearBack returns from a location result to the idle state.
	TokenNearBack
	// TokenNearRoute opens a route from a nearby-routes list at page 0.
	TokenNearRoute
	// TokenShowRoute opens a route directly at page 0.
	TokenShowRoute
	// TokenRoutePage navigates to a specific page of a route's stops.
	TokenRoutePage
)

// Token is a decoded callback token.
type Token struct {
	Kind  TokenKind
	Route string
	Page  int
}

// ParseToken decodes a callback token. Unknown shapes return ok=false.
func ParseToken(s string) (Token, bool) {
	switch s {
	case tokenBackRoutes:
		return Token{Kind: TokenBackRoutes}, true
	case tokenNearBack:
		return Token{Kind: TokenNearBack}, true
	}

	if route, ok := strings.CutPrefix(s, nearRoutePrefix); ok && route != "" {
		return Token{Kind: TokenNearRoute, Route: route}, true
	}
	if route, ok := strings.CutPrefix(s, showRoutePrefix); ok && route != "" {
		return Token{Kind: TokenShowRoute, Route: route}, true
	}

	if rest, ok := strings.CutPrefix(s, routePrefix); ok {
		parts := strings.Split(rest, "_")
		// Shape: <number...>_page_<index>
		if len(parts) >= 3 && parts[len(parts)-2] == "page" {
			page, err := strconv.Atoi(parts[len(parts)-1])
			if err != nil || page < 0 {
				return Token{}, false
			}
			route := strings.Join(parts[:len(parts)-2], "_")
			if route == "" {
				return Token{}, false
			}
			return Token{Kind: TokenRoutePage, Route: route, Page: page}, true
		}
	}

	return Token{}, false
}

// PageToken encodes a page-navigation token for a route.
func PageToken(route string, page int) string {
	return fmt.Sprintf("route_%s_page_%d", route, page)
}

// NearRouteToken encodes a token opening a route from a nearby-routes list.
func NearRouteToken(route string) string {
	return nearRoutePrefix + route
}

// ShowRouteToken encodes a token opening a route at its first page.
func ShowRouteToken(route string) string {
	return showRoutePrefix + route
}
