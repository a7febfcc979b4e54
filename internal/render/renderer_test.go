package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/layouts"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
)

func testDoc(t *testing.T, fields map[string]any, body string) *content.Document {
	t.Helper()
	if _, ok := fields["layout"]; !ok {
		fields["layout"] = "post"
	}
	doc, err := content.NewDocument("posts/a.md", fields, []byte(body))
	require.NoError(t, err)
	return doc
}

func newRenderer(t *testing.T, includes map[string]string) *Renderer {
	t.Helper()
	dir := t.TempDir()
	for name, body := range includes {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return New(dir, config.SiteConfig{Title: "Test Site"})
}

func TestPage_WrapsLayoutChainInnermostFirst(t *testing.T) {
	r := newRenderer(t, nil)
	doc := testDoc(t, map[string]any{"title": "Hello"}, "body text\n")
	chain := []*layouts.Layout{
		{Name: "post", Body: "<article>{{ content }}</article>"},
		{Name: "default", Body: "<html>{{ content }}</html>"},
	}

	out, err := r.Page(doc, chain, router.Route{URL: "/hello/"})
	require.NoError(t, err)
	require.Contains(t, out, "<html><article>")
	require.Contains(t, out, "<p>body text</p>")
}

func TestPage_SubstitutesPageAndSiteVariables(t *testing.T) {
	r := newRenderer(t, nil)
	doc := testDoc(t, map[string]any{"title": "Hello", "date": "2020-05-01"}, "x\n")
	chain := []*layouts.Layout{
		{Name: "post", Body: "<title>{{ page.title }} | {{ site.title }}</title><time>{{ page.date_iso }}</time><a href=\"{{ page.url }}\">{{ content }}</a>"},
	}

	out, err := r.Page(doc, chain, router.Route{URL: "/2020/05/01/hello/"})
	require.NoError(t, err)
	require.Contains(t, out, "<title>Hello | Test Site</title>")
	require.Contains(t, out, "<time>2020-05-01</time>")
	require.Contains(t, out, `href="/2020/05/01/hello/"`)
}

func TestPage_ExpandsIncludes(t *testing.T) {
	r := newRenderer(t, map[string]string{
		"signup-form.html": `<form class="signup">{{ site.title }}</form>`,
	})
	doc := testDoc(t, map[string]any{"title": "Hello"}, "intro\n\n{% include signup-form.html %}\n")
	chain := []*layouts.Layout{{Name: "post", Body: "{{ content }}"}}

	out, err := r.Page(doc, chain, router.Route{URL: "/x/"})
	require.NoError(t, err)
	require.Contains(t, out, `<form class="signup">Test Site</form>`)
}

func TestPage_MissingInclude_FailsWithIncludeNotFound(t *testing.T) {
	r := newRenderer(t, nil)
	doc := testDoc(t, map[string]any{"title": "Hello"}, "x\n")
	chain := []*layouts.Layout{{Name: "post", Body: "{% include missing.html %}{{ content }}"}}

	_, err := r.Page(doc, chain, router.Route{})
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryInclude))

	be := err.(*berrors.BuildError)
	require.Equal(t, "missing.html", be.Context["include"])
	require.Equal(t, "post.html", be.Context["source"])
}

func TestPage_NestedIncludes(t *testing.T) {
	r := newRenderer(t, map[string]string{
		"outer.html": "A {% include inner.html %} C",
		"inner.html": "B",
	})
	doc := testDoc(t, map[string]any{}, "{% include outer.html %}\n")
	chain := []*layouts.Layout{{Name: "post", Body: "{{ content }}"}}

	out, err := r.Page(doc, chain, router.Route{})
	require.NoError(t, err)
	require.Contains(t, out, "A B C")
}

func TestPage_SelfRecursiveInclude_FailsInsteadOfLooping(t *testing.T) {
	r := newRenderer(t, map[string]string{
		"loop.html": "{% include loop.html %}",
	})
	doc := testDoc(t, map[string]any{}, "{% include loop.html %}\n")
	chain := []*layouts.Layout{{Name: "post", Body: "{{ content }}"}}

	_, err := r.Page(doc, chain, router.Route{})
	require.Error(t, err)
}

func TestPage_HTMLSourceSkipsMarkdown(t *testing.T) {
	r := newRenderer(t, nil)
	doc, err := content.NewDocument("pages/about.html",
		map[string]any{"layout": "default", "title": "About"},
		[]byte("<section># not a heading</section>"))
	require.NoError(t, err)

	chain := []*layouts.Layout{{Name: "default", Body: "{{ content }}"}}
	out, err := r.Page(doc, chain, router.Route{})
	require.NoError(t, err)
	require.Contains(t, out, "<section># not a heading</section>")
}

func TestPage_UnknownVariableRendersEmpty(t *testing.T) {
	r := newRenderer(t, nil)
	doc := testDoc(t, map[string]any{"title": "Hello"}, "x\n")
	chain := []*layouts.Layout{{Name: "post", Body: "[{{ page.nonexistent }}]{{ content }}"}}

	out, err := r.Page(doc, chain, router.Route{})
	require.NoError(t, err)
	require.Contains(t, out, "[]")
}

func TestPage_ExtraHeaderFieldsReachableAsPageVars(t *testing.T) {
	r := newRenderer(t, nil)
	doc := testDoc(t, map[string]any{"title": "Hello", "subtitle": "deep dive"}, "x\n")
	chain := []*layouts.Layout{{Name: "post", Body: "<h2>{{ page.subtitle }}</h2>{{ content }}"}}

	out, err := r.Page(doc, chain, router.Route{})
	require.NoError(t, err)
	require.Contains(t, out, "<h2>deep dive</h2>")
}

func TestMarkdownToHTML_GFMTables(t *testing.T) {
	out, err := MarkdownToHTML([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<table>")
}
