package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
)

func TestNewDocument_MissingLayout_Fails(t *testing.T) {
	_, err := NewDocument("posts/a.md", map[string]any{"title": "A"}, nil)
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryField))
	require.Equal(t, "posts/a.md", berrors.Source(err))
}

func TestNewDocument_TypedFields(t *testing.T) {
	fields := map[string]any{
		"layout":        "post",
		"title":         "Modular monolith",
		"date":          "2020-05-01",
		"tags":          []any{"elixir", "architecture"},
		"permalink":     "/modular-monolith",
		"canonical_url": "https://example.com/x",
		"skip_related":  true,
		"reading_time":  7,
	}

	doc, err := NewDocument("posts/2020-05-01-modular-monolith.md", fields, []byte("body"))
	require.NoError(t, err)
	require.Equal(t, "post", doc.Layout)
	require.Equal(t, "Modular monolith", doc.Title)
	require.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), doc.Date)
	require.Equal(t, []string{"elixir", "architecture"}, doc.Tags)
	require.Equal(t, "/modular-monolith", doc.Permalink)
	require.True(t, doc.SkipRelated)
	require.Equal(t, 7, doc.ReadingTime)
}

func TestNewDocument_ScalarTags_AreSplit(t *testing.T) {
	doc, err := NewDocument("a.md", map[string]any{"layout": "post", "tags": "elixir otp"}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"elixir", "otp"}, doc.Tags)
}

func TestNewDocument_DateFromFilename(t *testing.T) {
	doc, err := NewDocument("posts/2019-11-03-anti-patterns.md", map[string]any{"layout": "post"}, nil)
	require.NoError(t, err)
	require.Equal(t, time.Date(2019, 11, 3, 0, 0, 0, 0, time.UTC), doc.Date)
	require.Equal(t, "anti-patterns", doc.Slug())
}

func TestNewDocument_InvalidDate_FailsAsParseError(t *testing.T) {
	_, err := NewDocument("a.md", map[string]any{"layout": "post", "date": "soon"}, nil)
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryParse))
}

func TestNewDocument_ReadingTimeEstimate(t *testing.T) {
	words := make([]byte, 0)
	for i := 0; i < 450; i++ {
		words = append(words, []byte("word ")...)
	}

	doc, err := NewDocument("a.md", map[string]any{"layout": "post"}, words)
	require.NoError(t, err)
	require.Equal(t, 3, doc.ReadingTime) // 450 words at 200 wpm, rounded up
}

func TestNewDocument_ExcerptDefaultsToFirstParagraph(t *testing.T) {
	body := []byte("# Heading\n\nFirst real paragraph.\n\nSecond paragraph.\n")

	doc, err := NewDocument("a.md", map[string]any{"layout": "post"}, body)
	require.NoError(t, err)
	require.Equal(t, "First real paragraph.", doc.Excerpt)
}

func TestNewDocument_TitleFallsBackToFilename(t *testing.T) {
	doc, err := NewDocument("posts/2020-01-01-why-modules.md", map[string]any{"layout": "post"}, nil)
	require.NoError(t, err)
	require.Equal(t, "why modules", doc.Title)
}
