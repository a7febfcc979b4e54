// Package logfields centralizes canonical slog attribute helpers so field
// names stay stable across packages.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeySource     = "source"
	KeyStage      = "stage"
	KeyLayout     = "layout"
	KeyInclude    = "include"
	KeyRoute      = "route"
	KeyTag        = "tag"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Source(s string) slog.Attr        { return slog.String(KeySource, s) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Layout(l string) slog.Attr        { return slog.String(KeyLayout, l) }
func Include(i string) slog.Attr       { return slog.String(KeyInclude, i) }
func Route(r string) slog.Attr         { return slog.String(KeyRoute, r) }
func Tag(tag string) slog.Attr         { return slog.String(KeyTag, tag) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
