// Package nav lists the dashboard pages and resolves titles and breadcrumbs
// for a route.
package nav

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Page routes.
const (
	RouteHome          = "/"
	RouteTableOverview = "/table-overview"
	RouteCandleSticks  = "/candle-sticks"
)

// Entry is one navigation item.
type Entry struct {
	ID    uuid.UUID
	Name  string
	Route string
	Title string
}

func entry(name, route, title string) Entry {
	return Entry{
		ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("tradeboard:"+route)),
		Name:  name,
		Route: route,
		Title: title,
	}
}

var entries = []Entry{
	entry("Home", RouteHome, "Trade Table"),
	entry("Table Overview", RouteTableOverview, "Table Overview"),
	entry("Candle Sticks", RouteCandleSticks, "Candlestick Charts"),
}

// Entries returns the navigation items in menu order.
func Entries() []Entry {
	return append([]Entry(nil), entries...)
}

// Find returns the entry that owns route. Nested routes belong to their
// closest registered prefix; anything else falls back to nothing.
func Find(route string) (Entry, bool) {
	route = clean(route)
	var best Entry
	found := false
	for _, e := range entries {
		if e.Route == route {
			return e, true
		}
		if e.Route != RouteHome && strings.HasPrefix(route, e.Route+"/") {
			if !found || len(e.Route) > len(best.Route) {
				best, found = e, true
			}
		}
	}
	return best, found
}

// ActiveTitle returns the page title for route, empty when unknown.
func ActiveTitle(route string) string {
	if e, ok := Find(route); ok {
		return e.Title
	}
	return ""
}

// Crumb is one breadcrumb link.
type Crumb struct {
	Label string
	Href  string
}

// Breadcrumb returns Home followed by one crumb per path segment.
func Breadcrumb(route string) []Crumb {
	route = clean(route)
	crumbs := []Crumb{{Label: "Home", Href: RouteHome}}

	href := ""
	for _, seg := range strings.Split(strings.Trim(route, "/"), "/") {
		if seg == "" {
			continue
		}
		href += "/" + seg
		label, err := url.PathUnescape(seg)
		if err != nil {
			label = seg
		}
		crumbs = append(crumbs, Crumb{Label: label, Href: href})
	}
	return crumbs
}

func clean(route string) string {
	if route == "" {
		return RouteHome
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
		if route == "" {
			route = RouteHome
		}
	}
	return route
}
