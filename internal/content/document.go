// Package content loads source documents and their front matter into typed
// records for the rest of the pipeline.
package content

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
)

// Document represents one source content file: header metadata plus body.
// Documents are immutable at render time; the pipeline never writes back.
type Document struct {
	SourcePath string // Path relative to the content root

	Layout       string
	Title        string
	Date         time.Time
	Tags         []string
	Permalink    string // Optional explicit route override
	CanonicalURL string
	Description  string
	Excerpt      string
	Image        string
	ReadingTime  int // Minutes; estimated when not set in the header
	SkipRelated  bool
	Draft        bool

	Body   []byte
	IsHTML bool // True for .html sources, which skip markdown conversion

	// Fields preserves the raw header map for template variable lookup.
	Fields map[string]any
}

// wordsPerMinute is the reading speed used for the reading_time estimate.
const wordsPerMinute = 200

var filenameDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-(.+)$`)

// acceptedDateLayouts are tried in order when the header date is a string.
var acceptedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewDocument builds a typed Document from a parsed header map and body.
// The layout field is required; its absence fails the build rather than
// falling back to a silent default.
func NewDocument(sourcePath string, fields map[string]any, body []byte) (*Document, error) {
	doc := &Document{
		SourcePath: sourcePath,
		Body:       body,
		Fields:     fields,
		IsHTML:     strings.EqualFold(filepath.Ext(sourcePath), ".html"),
	}

	layout, ok := stringField(fields, "layout")
	if !ok || layout == "" {
		return nil, berrors.MissingField(sourcePath, "layout")
	}
	doc.Layout = layout

	if title, ok := stringField(fields, "title"); ok {
		doc.Title = title
	} else {
		doc.Title = titleFromFilename(sourcePath)
	}

	date, err := dateField(fields, "date")
	if err != nil {
		return nil, berrors.ParseError(sourcePath, err)
	}
	if date.IsZero() {
		date = dateFromFilename(sourcePath)
	}
	doc.Date = date

	doc.Tags = tagsField(fields)
	doc.Permalink, _ = stringField(fields, "permalink")
	doc.CanonicalURL, _ = stringField(fields, "canonical_url")
	doc.Description, _ = stringField(fields, "description")
	doc.Image, _ = stringField(fields, "image")
	doc.SkipRelated = boolField(fields, "skip_related")
	doc.Draft = boolField(fields, "draft")

	if excerpt, ok := stringField(fields, "excerpt"); ok {
		doc.Excerpt = excerpt
	} else {
		doc.Excerpt = firstParagraph(body)
	}

	if rt, ok := intField(fields, "reading_time"); ok {
		doc.ReadingTime = rt
	} else {
		doc.ReadingTime = estimateReadingTime(body)
	}

	return doc, nil
}

// Slug returns the hyphenated name segment of the source file, with any
// leading date prefix stripped.
func (d *Document) Slug() string {
	name := strings.TrimSuffix(filepath.Base(d.SourcePath), filepath.Ext(d.SourcePath))
	if m := filenameDatePattern.FindStringSubmatch(name); m != nil {
		return m[4]
	}
	return name
}

func stringField(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func boolField(fields map[string]any, key string) bool {
	switch v := fields[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

func intField(fields map[string]any, key string) (int, bool) {
	switch v := fields[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func dateField(fields map[string]any, key string) (time.Time, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return time.Time{}, nil
	}
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		for _, layout := range acceptedDateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", d)
	default:
		return time.Time{}, fmt.Errorf("unrecognized date value %v", v)
	}
}

// tagsField accepts both a YAML list and a single scalar. Jekyll headers
// also allow space-separated scalars, so those are split.
func tagsField(fields map[string]any) []string {
	v, ok := fields["tags"]
	if !ok || v == nil {
		return nil
	}
	switch tags := v.(type) {
	case []any:
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			if s, ok := t.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.Fields(tags)
	default:
		return nil
	}
}

func dateFromFilename(sourcePath string) time.Time {
	name := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	m := filenameDatePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", m[1]+"-"+m[2]+"-"+m[3])
	if err != nil {
		return time.Time{}
	}
	return t
}

func titleFromFilename(sourcePath string) string {
	name := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	if m := filenameDatePattern.FindStringSubmatch(name); m != nil {
		name = m[4]
	}
	return strings.ReplaceAll(name, "-", " ")
}

func estimateReadingTime(body []byte) int {
	words := len(strings.Fields(string(body)))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	return minutes
}

func firstParagraph(body []byte) string {
	text := strings.ReplaceAll(string(body), "\r\n", "\n")
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" || strings.HasPrefix(block, "#") {
			continue
		}
		return block
	}
	return ""
}
