package render

import (
	"os"
	"path/filepath"
	"sync"
)

// IncludeSet resolves named include snippets from a fixed directory.
// Lookups are cached; the set is safe for concurrent use by render workers.
type IncludeSet struct {
	dir string

	mu    sync.RWMutex
	cache map[string]string
}

// NewIncludeSet creates an include resolver rooted at dir.
func NewIncludeSet(dir string) *IncludeSet {
	return &IncludeSet{dir: dir, cache: make(map[string]string)}
}

// Lookup returns the include body by name. Names may carry an extension
// (`signup-form.html`) or omit it, in which case `.html` is assumed.
func (s *IncludeSet) Lookup(name string) (string, bool) {
	if filepath.Ext(name) == "" {
		name += ".html"
	}

	s.mu.RLock()
	body, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return body, true
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, filepath.Clean(name)))
	if err != nil {
		return "", false
	}

	s.mu.Lock()
	s.cache[name] = string(raw)
	s.mu.Unlock()
	return string(raw), true
}
