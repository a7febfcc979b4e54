package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
)

// Listing describes a generated listing page before rendering.
type Listing struct {
	Doc   *content.Document
	Route router.Route
}

// Listings derives the generated pages: the chronological home index and
// one page per distinct tag. Bodies are prebuilt HTML fragments rendered
// through the configured listing layout like any other document.
func Listings(docs []*content.Document, rtr *router.Router, lookup func(*content.Document) router.Route, listLayout string) []Listing {
	var listings []Listing

	ordered := SortDocuments(docs)
	listings = append(listings, Listing{
		Doc: &content.Document{
			SourcePath: "index (generated)",
			Layout:     listLayout,
			Title:      "Posts",
			IsHTML:     true,
			Body:       []byte(listingMarkup(ordered, lookup)),
		},
		Route: rtr.ListingRoute("/"),
	})

	groups := ByTag(docs)
	for _, tag := range Tags(docs) {
		slug := router.Slugify(tag)
		listings = append(listings, Listing{
			Doc: &content.Document{
				SourcePath: fmt.Sprintf("tags/%s (generated)", slug),
				Layout:     listLayout,
				Title:      tag,
				IsHTML:     true,
				Body:       []byte(listingMarkup(groups[tag], lookup)),
			},
			Route: rtr.ListingRoute("/tags/" + slug),
		})
	}
	return listings
}

// listingMarkup emits the reverse-chronological link list for a listing
// page. Output depends only on the ordered input, keeping builds
// byte-identical.
func listingMarkup(docs []*content.Document, lookup func(*content.Document) router.Route) string {
	var b strings.Builder
	b.WriteString("<ul class=\"post-list\">\n")
	for _, doc := range docs {
		route := lookup(doc)
		b.WriteString("  <li>\n")
		if !doc.Date.IsZero() {
			fmt.Fprintf(&b, "    <time datetime=%q>%s</time>\n",
				doc.Date.Format("2006-01-02"), doc.Date.Format("Jan 2, 2006"))
		}
		fmt.Fprintf(&b, "    <a href=%q>%s</a>\n", route.URL, html.EscapeString(doc.Title))
		b.WriteString("  </li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
