package router

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
)

func doc(t *testing.T, source string, fields map[string]any) *content.Document {
	t.Helper()
	if _, ok := fields["layout"]; !ok {
		fields["layout"] = "post"
	}
	d, err := content.NewDocument(source, fields, nil)
	require.NoError(t, err)
	return d
}

func TestRouteFor_PermalinkOverridesDateAndTitle(t *testing.T) {
	r := New(config.PermalinkPretty)
	d := doc(t, "posts/2020-05-01-ignored.md", map[string]any{
		"title":     "Completely Different Title",
		"date":      "2020-05-01",
		"permalink": "/foo",
	})

	route := r.RouteFor(d)
	require.Equal(t, "/foo/", route.URL)
	require.Equal(t, "foo/index.html", route.OutputPath)
}

func TestRouteFor_DerivesDateSlugRoute(t *testing.T) {
	r := New(config.PermalinkPretty)
	d := doc(t, "posts/x.md", map[string]any{
		"title": "Modular Monolith!",
		"date":  "2020-05-01",
	})

	route := r.RouteFor(d)
	require.Equal(t, "/2020/05/01/modular-monolith/", route.URL)
	require.Equal(t, "2020/05/01/modular-monolith/index.html", route.OutputPath)
}

func TestRouteFor_FileStyle(t *testing.T) {
	r := New(config.PermalinkFile)

	d := doc(t, "posts/x.md", map[string]any{"title": "Hello World", "date": "2021-01-02"})
	route := r.RouteFor(d)
	require.Equal(t, "/2021/01/02/hello-world.html", route.URL)
	require.Equal(t, "2021/01/02/hello-world.html", route.OutputPath)

	d = doc(t, "posts/y.md", map[string]any{"permalink": "/about"})
	route = r.RouteFor(d)
	require.Equal(t, "/about.html", route.URL)
}

func TestRouteFor_ExplicitHTMLPermalinkKeptVerbatim(t *testing.T) {
	r := New(config.PermalinkPretty)
	d := doc(t, "posts/y.md", map[string]any{"permalink": "/feed.html"})

	route := r.RouteFor(d)
	require.Equal(t, "/feed.html", route.URL)
	require.Equal(t, "feed.html", route.OutputPath)
}

func TestListingRoute(t *testing.T) {
	r := New(config.PermalinkPretty)

	route := r.ListingRoute("/tags/elixir")
	require.Equal(t, "/tags/elixir/", route.URL)
	require.Equal(t, "tags/elixir/index.html", route.OutputPath)

	route = r.ListingRoute("/")
	require.Equal(t, "/", route.URL)
	require.Equal(t, "index.html", route.OutputPath)
}

func TestTable_Add_DetectsCollisions(t *testing.T) {
	table := NewTable()
	r := New(config.PermalinkPretty)

	a := doc(t, "a.md", map[string]any{"permalink": "/foo"})
	b := doc(t, "b.md", map[string]any{"permalink": "/foo/"})

	require.NoError(t, table.Add(a.SourcePath, r.RouteFor(a)))

	err := table.Add(b.SourcePath, r.RouteFor(b))
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryRoute))

	be := err.(*berrors.BuildError)
	require.Equal(t, "b.md", be.Context["source"])
	require.Equal(t, "a.md", be.Context["other_source"])
}

func TestTable_Add_DistinctRoutes(t *testing.T) {
	table := NewTable()

	require.NoError(t, table.Add("a.md", Route{URL: "/a/", OutputPath: "a/index.html"}))
	require.NoError(t, table.Add("b.md", Route{URL: "/b/", OutputPath: "b/index.html"}))
	require.Equal(t, 2, table.Len())
	require.Equal(t, []string{"/a/", "/b/"}, table.URLs())

	got, ok := table.Lookup("a.md")
	require.True(t, ok)
	require.Equal(t, "/a/", got.URL)
}

func TestRouteFor_SameTitleDifferentDates_NoCollision(t *testing.T) {
	r := New(config.PermalinkPretty)
	table := NewTable()

	d1 := doc(t, "a.md", map[string]any{"title": "Retro", "date": "2020-01-01"})
	d2 := doc(t, "b.md", map[string]any{"title": "Retro", "date": "2021-01-01"})

	require.NoError(t, table.Add(d1.SourcePath, r.RouteFor(d1)))
	require.NoError(t, table.Add(d2.SourcePath, r.RouteFor(d2)))
}

func TestRouteFor_ZeroDate_StillProducesRoute(t *testing.T) {
	r := New(config.PermalinkPretty)
	d := doc(t, "a.md", map[string]any{"title": "Undated"})
	d.Date = time.Time{}

	route := r.RouteFor(d)
	require.Contains(t, route.URL, "undated")
}
