package bot

import (
	"fmt"
	"strings"

	"github.com/hayqway/waybot/internal/catalog"
)

func routeTitle(r *catalog.Route, locale string) string {
	return fmt.Sprintf("%s → %s", r.Start.InOr(locale, nameUnknown), r.End.InOr(locale, nameUnknown))
}

// routeButtons renders one button per route, each on its own row, with the
// token produced by tokenFor from the route label.
func routeButtons(routes []*catalog.Route, locale string, tokenFor func(route string) string) [][]Button {
	rows := make([][]Button, 0, len(routes))
	for _, r := range routes {
		rows = append(rows, []Button{{
			Text:  fmt.Sprintf("🚍 %s: %s", r.Label(), routeTitle(r, locale)),
			Token: tokenFor(r.Label()),
		}})
	}
	return rows
}

func renderNearestStop(entry catalog.Entry, distanceMeters float64, etaMin int, locale string) string {
	stopTime := entry.Stop.Time
	if stopTime == "" {
		stopTime = nameUnknown
	}
	var b strings.Builder
	b.WriteString("🚌 Մոտակա կանգառը:\n")
	fmt.Fprintf(&b, "<b>%s</b>\n", entry.Stop.Name.InOr(locale, nameUnknownStop))
	fmt.Fprintf(&b, "Երթուղի: %s\n", routeTitle(entry.Route, locale))
	fmt.Fprintf(&b, "📍 Հեռավորություն ≈ %.0f մ\n", distanceMeters)
	fmt.Fprintf(&b, "⏱ մոտավորապես 🔴 <b>%d րոպե</b>\n", etaMin)
	fmt.Fprintf(&b, "🕒 Ժամանակ: %s", stopTime)
	return b.String()
}

// renderStopPage lists one page of a route's stops with continuous numbering
// across pages and a per-stop arrival estimate.
func renderStopPage(route *catalog.Route, stops []catalog.Stop, etas []int, pageIndex, pageSize int, locale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚍 Գիծ %s: %s\n", route.Label(), routeTitle(route, locale))
	fmt.Fprintf(&b, "Կանգառներ (մաս %d):\n\n", pageIndex+1)

	offset := pageIndex * pageSize
	for i, s := range stops {
		name := s.Name.InOr(locale, nameUnknownStop)
		fmt.Fprintf(&b, "%d. %s 🔴 ⏱ մոտավորապես <b>%d րոպե</b>\n", offset+i+1, name, etas[i])
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStopMatches(all []catalog.Entry, page []catalog.Entry, locale string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔎 Գտնված կանգառներ (%d):\n", len(all))
	for i, e := range page {
		fmt.Fprintf(&b, "%d. %s 🚍 %s\n", i+1, e.Stop.Name.InOr(locale, nameUnknownStop), routeTitle(e.Route, locale))
	}
	return strings.TrimRight(b.String(), "\n")
}
