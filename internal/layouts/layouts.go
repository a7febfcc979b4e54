// Package layouts loads page templates and resolves their inheritance
// chains.
package layouts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/frontmatter"
)

// Layout is a named template. A layout may reference a parent layout via a
// `layout:` key in its own front matter; chains form a strict tree and
// every chain terminates in a layout with no parent.
type Layout struct {
	Name   string
	Parent string
	Body   string
}

// Set holds all layouts loaded from the layouts directory.
type Set struct {
	layouts map[string]*Layout
}

// LoadDir reads every .html file in dir as a layout. The file name without
// extension is the layout name.
func LoadDir(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, berrors.WorkspaceError("read layouts directory", err).WithContext("path", dir)
	}

	set := &Set{layouts: make(map[string]*Layout)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, berrors.WorkspaceError("read layout", err).WithContext("source", entry.Name())
		}

		name := strings.TrimSuffix(entry.Name(), ".html")
		layout, err := parseLayout(name, raw)
		if err != nil {
			return nil, err
		}
		set.layouts[name] = layout
	}
	return set, nil
}

func parseLayout(name string, raw []byte) (*Layout, error) {
	header, body, had, err := frontmatter.Split(raw)
	if err != nil {
		return nil, berrors.ParseError(name+".html", err)
	}

	layout := &Layout{Name: name, Body: string(body)}
	if had {
		fields, err := frontmatter.Parse(header)
		if err != nil {
			return nil, berrors.ParseError(name+".html", err)
		}
		if parent, ok := fields["layout"].(string); ok {
			layout.Parent = parent
		}
	}
	return layout, nil
}

// Get returns a layout by name.
func (s *Set) Get(name string) (*Layout, bool) {
	l, ok := s.layouts[name]
	return l, ok
}

// Names returns all loaded layout names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.layouts))
	for name := range s.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain resolves the inheritance chain starting at name, innermost first.
// A reference to an unknown layout or a cycle fails resolution; `source`
// names the document that requested the chain for diagnostics.
func (s *Set) Chain(name, source string) ([]*Layout, error) {
	var chain []*Layout
	seen := make(map[string]bool)
	visited := []string{}

	for current := name; current != ""; {
		if seen[current] {
			return nil, berrors.LayoutCycle(append(visited, current))
		}
		seen[current] = true
		visited = append(visited, current)

		layout, ok := s.layouts[current]
		if !ok {
			return nil, berrors.UnknownLayout(current, source)
		}
		chain = append(chain, layout)
		current = layout.Parent
	}
	return chain, nil
}

// Validate resolves every layout's chain, surfacing cycles and dangling
// parents before any document rendering starts.
func (s *Set) Validate() error {
	for name := range s.layouts {
		if _, err := s.Chain(name, name+".html"); err != nil {
			return err
		}
	}
	return nil
}
