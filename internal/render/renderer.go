// Package render merges document bodies into layout chains, expanding
// includes and substituting page/site variables.
//
// This is intentionally not a general templating language: the only
// constructs are `{{ content }}`, `{{ page.* }}` / `{{ site.* }}`
// placeholders, and `{% include name %}` expansion.
package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/layouts"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
)

var (
	includePattern = regexp.MustCompile(`\{%-?\s*include\s+([^\s%}]+)\s*-?%\}`)
	varPattern     = regexp.MustCompile(`\{\{\s*([a-zA-Z_][\w.]*)\s*\}\}`)
)

// maxIncludeDepth bounds nested include expansion.
const maxIncludeDepth = 10

// Renderer renders documents through their layout chains. It is stateless
// apart from the include cache and safe for concurrent use.
type Renderer struct {
	includes *IncludeSet
	site     config.SiteConfig
}

// New creates a renderer backed by the given include directory.
func New(includesDir string, site config.SiteConfig) *Renderer {
	return &Renderer{includes: NewIncludeSet(includesDir), site: site}
}

// Page renders one document through its resolved layout chain and returns
// the final output text.
func (r *Renderer) Page(doc *content.Document, chain []*layouts.Layout, route router.Route) (string, error) {
	vars := r.pageVars(doc, route)

	// Directives in the body are expanded before markdown conversion so
	// includes can emit raw HTML blocks.
	body, err := r.expand(string(doc.Body), vars, doc.SourcePath)
	if err != nil {
		return "", err
	}

	rendered := body
	if !doc.IsHTML {
		rendered, err = MarkdownToHTML([]byte(body))
		if err != nil {
			return "", berrors.InternalError("markdown conversion failed", err).WithContext("source", doc.SourcePath)
		}
	}

	// Innermost layout first, each wrap substituting the previous result
	// for the content placeholder.
	for _, layout := range chain {
		vars["content"] = rendered
		rendered, err = r.expand(layout.Body, vars, layout.Name+".html")
		if err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// Fragment expands includes and variables in a standalone template body,
// used for generated listing pages.
func (r *Renderer) Fragment(body string, vars map[string]string, source string) (string, error) {
	return r.expand(body, vars, source)
}

func (r *Renderer) expand(text string, vars map[string]string, source string) (string, error) {
	expanded, err := r.expandIncludes(text, source, 0)
	if err != nil {
		return "", err
	}

	return varPattern.ReplaceAllStringFunc(expanded, func(match string) string {
		name := varPattern.FindStringSubmatch(match)[1]
		return vars[name]
	}), nil
}

func (r *Renderer) expandIncludes(text, source string, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", berrors.InternalError(
			fmt.Sprintf("include nesting exceeds %d levels", maxIncludeDepth), nil).
			WithContext("source", source)
	}

	var expandErr error
	out := includePattern.ReplaceAllStringFunc(text, func(match string) string {
		if expandErr != nil {
			return match
		}
		name := includePattern.FindStringSubmatch(match)[1]

		body, ok := r.includes.Lookup(name)
		if !ok {
			expandErr = berrors.IncludeNotFound(name, source)
			return match
		}

		nested, err := r.expandIncludes(body, name, depth+1)
		if err != nil {
			expandErr = err
			return match
		}
		return nested
	})
	if expandErr != nil {
		return "", expandErr
	}
	return out, nil
}

// pageVars flattens a document into the `page.*` / `site.*` namespace.
func (r *Renderer) pageVars(doc *content.Document, route router.Route) map[string]string {
	vars := map[string]string{
		"site.title":       r.site.Title,
		"site.description": r.site.Description,
		"site.base_url":    r.site.BaseURL,
		"site.author":      r.site.Author,

		"page.title":         doc.Title,
		"page.url":           route.URL,
		"page.description":   doc.Description,
		"page.excerpt":       doc.Excerpt,
		"page.canonical_url": doc.CanonicalURL,
		"page.image":         doc.Image,
		"page.tags":          strings.Join(doc.Tags, ", "),
		"page.reading_time":  strconv.Itoa(doc.ReadingTime),
	}
	if !doc.Date.IsZero() {
		vars["page.date"] = doc.Date.Format("Jan 2, 2006")
		vars["page.date_iso"] = doc.Date.Format("2006-01-02")
	}

	// Any remaining header field is reachable as page.<key>.
	for key, value := range doc.Fields {
		name := "page." + key
		if _, taken := vars[name]; taken {
			continue
		}
		vars[name] = fmt.Sprintf("%v", value)
	}
	return vars
}
