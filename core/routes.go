package core

import (
	"fmt"
	"strings"
)

// Route binds a URL-style path to the tab that renders it.
type Route struct {
	Path  string
	TabID string
}

// RouteTable maps paths to tabs. The first route is the fallback for any
// path that does not match.
type RouteTable struct {
	routes []Route
}

func NewRouteTable(routes ...Route) RouteTable {
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		r.Path = NormalizePath(r.Path)
		out = append(out, r)
	}
	return RouteTable{routes: out}
}

func DefaultRoutes() RouteTable {
	return NewRouteTable(
		Route{Path: "/", TabID: "chat"},
		Route{Path: "/chat", TabID: "chat"},
		Route{Path: "/search", TabID: "search"},
		Route{Path: "/visualize", TabID: "visualize"},
	)
}

// NormalizePath lowercases p, drops any query or fragment and trailing
// slashes, and guarantees a leading slash.
func NormalizePath(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// Resolve finds the route for path. Unknown paths resolve to the fallback
// route with redirected set.
func (t RouteTable) Resolve(path string) (Route, bool) {
	if len(t.routes) == 0 {
		return Route{Path: "/"}, true
	}
	p := NormalizePath(path)
	for _, r := range t.routes {
		if r.Path == p {
			return r, false
		}
	}
	return t.routes[0], true
}

// PathFor returns the canonical path for a tab: the first route naming it
// that is not the fallback, else the fallback itself.
func (t RouteTable) PathFor(tabID string) string {
	first := ""
	for i, r := range t.routes {
		if r.TabID != tabID {
			continue
		}
		if i > 0 {
			return r.Path
		}
		first = r.Path
	}
	if first == "" {
		return "/"
	}
	return first
}

func (t RouteTable) Paths() []string {
	out := make([]string, 0, len(t.routes))
	for _, r := range t.routes {
		out = append(out, r.Path)
	}
	return out
}

func errUnroutable(r Route) error {
	return fmt.Errorf("no tab registered for route %s", r.Path)
}
