package router

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugTransformer strips combining marks after NFD decomposition, so
// accented characters reduce to their ASCII base ("naïve" -> "naive").
var slugTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases a title and reduces it to hyphen-separated
// alphanumeric runs. Non-alphanumeric characters are stripped, never
// percent-encoded.
func Slugify(title string) string {
	normalized, _, err := transform.String(slugTransformer, title)
	if err != nil {
		normalized = title
	}

	var b strings.Builder
	lastHyphen := true // Suppress a leading hyphen
	for _, r := range strings.ToLower(normalized) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
