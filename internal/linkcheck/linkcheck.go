// Package linkcheck verifies that internal links in rendered pages resolve
// to a generated route or a static file.
package linkcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Problem is one unresolved internal link.
type Problem struct {
	PageURL string // URL of the page containing the link
	Href    string // The unresolved link target
}

func (p Problem) String() string {
	return fmt.Sprintf("%s -> %s", p.PageURL, p.Href)
}

// Checker resolves internal hrefs against the set of generated routes and
// an optional static asset directory.
type Checker struct {
	routes    map[string]struct{}
	staticDir string
}

// NewChecker builds a checker from the claimed route URLs.
func NewChecker(routeURLs []string, staticDir string) *Checker {
	routes := make(map[string]struct{}, len(routeURLs))
	for _, u := range routeURLs {
		routes[u] = struct{}{}
	}
	return &Checker{routes: routes, staticDir: staticDir}
}

// Page extracts internal links from one rendered page and returns the
// unresolved ones. External links (with a scheme or host) are ignored.
func (c *Checker) Page(pageURL, rendered string) ([]Problem, error) {
	hrefs, err := extractInternalLinks(rendered)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	for _, href := range hrefs {
		if !c.resolves(href) {
			problems = append(problems, Problem{PageURL: pageURL, Href: href})
		}
	}
	return problems, nil
}

func (c *Checker) resolves(href string) bool {
	// Strip fragment and query; anchors within a page are not verified.
	if i := strings.IndexAny(href, "#?"); i >= 0 {
		href = href[:i]
	}
	if href == "" || href == "/" {
		_, ok := c.routes["/"]
		return ok || c.staticExists("index.html")
	}

	if _, ok := c.routes[href]; ok {
		return true
	}
	// A route generated as /a/ also serves /a.
	if _, ok := c.routes[href+"/"]; ok {
		return true
	}
	return c.staticExists(strings.TrimPrefix(href, "/"))
}

func (c *Checker) staticExists(rel string) bool {
	if c.staticDir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(c.staticDir, filepath.FromSlash(rel)))
	return err == nil
}

// extractInternalLinks parses rendered HTML and collects site-relative
// href/src targets from anchors and images.
func extractInternalLinks(rendered string) ([]string, error) {
	root, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			var attr string
			switch n.Data {
			case "a":
				attr = "href"
			case "img":
				attr = "src"
			}
			if attr != "" {
				for _, a := range n.Attr {
					if a.Key == attr && isInternal(a.Val) {
						seen[a.Val] = struct{}{}
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links, nil
}

func isInternal(href string) bool {
	return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
}
