package bot

import "testing"

func TestParseToken(t *testing.T) {
	cases := []struct {
		in   string
		want Token
		ok   bool
	}{
		{"back_routes", Token{Kind: TokenBackRoutes}, true},
		{"near_back", Token{Kind: TokenNearBack}, true},
		{"near_route_12", Token{Kind: TokenNearRoute, Route: "12"}, true},
		{"show_route_07", Token{Kind: TokenShowRoute, Route: "07"}, true},
		{"route_12_page_0", Token{Kind: TokenRoutePage, Route: "12", Page: 0}, true},
		{"route_12_page_3", Token{Kind: TokenRoutePage, Route: "12", Page: 3}, true},
		// Route identifiers may contain underscores.
		{"route_12_a_page_2", Token{Kind: TokenRoutePage, Route: "12_a", Page: 2}, true},
		{"near_route_12_a", Token{Kind: TokenNearRoute, Route: "12_a"}, true},
		{"route_12_page_x", Token{}, false},
		{"route_12_page_-1", Token{}, false},
		{"route__page_0", Token{}, false},
		{"route_12", Token{}, false},
		{"near_route_", Token{}, false},
		{"garbage", Token{}, false},
		{"", Token{}, false},
	}

	for _, tc := range cases {
		got, ok := ParseToken(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseToken(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseToken(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	if got := PageToken("44", 2); got != "route_44_page_2" {
		t.Fatalf("PageToken = %q", got)
	}
	if got := NearRouteToken("44"); got != "near_route_44" {
		t.Fatalf("NearRouteToken = %q", got)
	}
	if got := ShowRouteToken("44"); got != "show_route_44" {
		t.Fatalf("ShowRouteToken = %q", got)
	}
	tok, ok := ParseToken(PageToken("07", 5))
	if !ok || tok.Route != "07" || tok.Page != 5 {
		t.Fatalf("round trip lost the token: %+v", tok)
	}
}
