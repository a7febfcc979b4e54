package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/frontmatter"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
)

// DateResolver supplies a publish date for documents whose header and
// filename carry none. The git-backed implementation lives in gitmeta.
type DateResolver interface {
	LastModified(relPath string) (time.Time, bool)
}

// Loader discovers and parses documents under a content root.
type Loader struct {
	root          string
	includeDrafts bool
	dates         DateResolver
}

// NewLoader creates a loader for the given content root.
func NewLoader(root string, includeDrafts bool) *Loader {
	return &Loader{root: root, includeDrafts: includeDrafts}
}

// WithDateResolver installs a fallback date source (e.g. git history).
func (l *Loader) WithDateResolver(r DateResolver) *Loader {
	l.dates = r
	return l
}

// Load walks the content root and returns documents sorted by source path.
// Filesystem access is read-only. A malformed header or a missing required
// field fails the load, naming the offending file.
func (l *Loader) Load() ([]*Document, error) {
	var docs []*Document

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != l.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isContentFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}

		doc, err := l.loadFile(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if doc.Draft && !l.includeDrafts {
			slog.Debug("Skipping draft", logfields.Source(doc.SourcePath))
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].SourcePath < docs[j].SourcePath
	})

	slog.Info("Content loaded", logfields.Count(len(docs)), logfields.Path(l.root))
	return docs, nil
}

func (l *Loader) loadFile(path, rel string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, berrors.WorkspaceError("read content file", err).WithContext("source", rel)
	}

	header, body, had, err := frontmatter.Split(raw)
	if err != nil {
		return nil, berrors.ParseError(rel, err)
	}

	fields := map[string]any{}
	if had {
		fields, err = frontmatter.Parse(header)
		if err != nil {
			return nil, berrors.ParseError(rel, err)
		}
	}

	doc, err := NewDocument(rel, fields, body)
	if err != nil {
		return nil, err
	}

	if doc.Date.IsZero() {
		doc.Date = l.fallbackDate(path, rel)
	}
	return doc, nil
}

// fallbackDate prefers the last git commit touching the file, then mtime.
func (l *Loader) fallbackDate(path, rel string) time.Time {
	if l.dates != nil {
		if t, ok := l.dates.LastModified(rel); ok {
			return t
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func isContentFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".html":
		return true
	default:
		return false
	}
}
