// Package site aggregates rendered pages and derived listing pages into
// the final output tree.
package site

import (
	"sort"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
)

// Page is one rendered output document.
type Page struct {
	Doc   *content.Document
	Route router.Route
	HTML  string
}

// SortDocuments orders documents by publish date descending, ties broken
// by source path ascending. This total order makes repeated builds from
// unchanged input byte-identical.
func SortDocuments(docs []*content.Document) []*content.Document {
	sorted := make([]*content.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].SourcePath < sorted[j].SourcePath
	})
	return sorted
}

// ByTag groups documents by tag. Each group preserves the deterministic
// listing order; tag names are returned sorted by Tags().
func ByTag(docs []*content.Document) map[string][]*content.Document {
	groups := make(map[string][]*content.Document)
	for _, doc := range SortDocuments(docs) {
		for _, tag := range doc.Tags {
			groups[tag] = append(groups[tag], doc)
		}
	}
	return groups
}

// Tags returns the distinct tag names across all documents, sorted.
func Tags(docs []*content.Document) []string {
	seen := make(map[string]struct{})
	for _, doc := range docs {
		for _, tag := range doc.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
