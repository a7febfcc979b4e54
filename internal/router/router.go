// Package router computes published routes for documents and detects
// output path collisions before any write begins.
package router

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
)

// Route is a document's published location.
type Route struct {
	// URL is the site-relative link target (e.g. "/2020/05/01/modular-monolith/").
	URL string
	// OutputPath is the file written under the output root
	// (e.g. "2020/05/01/modular-monolith/index.html").
	OutputPath string
}

// Router derives routes according to the configured permalink style.
type Router struct {
	style config.PermalinkStyle
}

// New creates a router for the given permalink style.
func New(style config.PermalinkStyle) *Router {
	return &Router{style: style}
}

// RouteFor returns the document's route. An explicit permalink wins over
// the date+slug convention regardless of title or date.
func (r *Router) RouteFor(doc *content.Document) Route {
	if doc.Permalink != "" {
		return r.normalize(doc.Permalink)
	}

	d := doc.Date
	derived := fmt.Sprintf("/%04d/%02d/%02d/%s", d.Year(), int(d.Month()), d.Day(), Slugify(doc.Title))
	return r.normalize(derived)
}

// ListingRoute returns the route for a generated listing page mounted at
// the given site-relative directory (e.g. "/tags/elixir").
func (r *Router) ListingRoute(dir string) Route {
	clean := "/" + strings.Trim(dir, "/")
	if clean == "/" {
		return Route{URL: "/", OutputPath: "index.html"}
	}
	return Route{
		URL:        clean + "/",
		OutputPath: strings.TrimPrefix(clean, "/") + "/index.html",
	}
}

// normalize shapes a raw permalink or derived path per the permalink style.
// Permalinks are used verbatim apart from slash normalization and the
// index-document suffix.
func (r *Router) normalize(raw string) Route {
	clean := path.Clean("/" + strings.TrimSpace(raw))

	if r.style == config.PermalinkFile {
		if clean == "/" {
			return Route{URL: "/", OutputPath: "index.html"}
		}
		out := strings.TrimPrefix(clean, "/")
		if !strings.HasSuffix(out, ".html") {
			out += ".html"
		}
		return Route{URL: "/" + out, OutputPath: out}
	}

	// Pretty style: directory route with a trailing slash and index.html.
	if strings.HasSuffix(clean, ".html") {
		return Route{URL: clean, OutputPath: strings.TrimPrefix(clean, "/")}
	}
	if clean == "/" {
		return Route{URL: "/", OutputPath: "index.html"}
	}
	return Route{
		URL:        clean + "/",
		OutputPath: strings.TrimPrefix(clean, "/") + "/index.html",
	}
}

// Table records claimed output paths. The full table must be built as a
// barrier before any write: two documents mapping to one output path fail
// the build instead of silently overwriting.
type Table struct {
	byOutput map[string]string // output path -> source path
	routes   map[string]Route  // source path -> route
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{
		byOutput: make(map[string]string),
		routes:   make(map[string]Route),
	}
}

// Add claims a route for a source path, failing with RouteConflict when the
// output path is already taken.
func (t *Table) Add(source string, route Route) error {
	if other, taken := t.byOutput[route.OutputPath]; taken {
		return berrors.RouteConflict(route.URL, source, other)
	}
	t.byOutput[route.OutputPath] = source
	t.routes[source] = route
	return nil
}

// Lookup returns the route claimed by a source path.
func (t *Table) Lookup(source string) (Route, bool) {
	r, ok := t.routes[source]
	return r, ok
}

// URLs returns all claimed site-relative URLs, sorted.
func (t *Table) URLs() []string {
	urls := make([]string, 0, len(t.routes))
	for _, r := range t.routes {
		urls = append(urls, r.URL)
	}
	sort.Strings(urls)
	return urls
}

// Len returns the number of claimed routes.
func (t *Table) Len() int { return len(t.routes) }
