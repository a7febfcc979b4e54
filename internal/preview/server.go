// Package preview runs the local development server: it serves the built
// site, watches the source directories, and rebuilds on change.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/metrics"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/stages"
)

// Server serves the output directory and rebuilds when source files change.
type Server struct {
	cfg      *config.Config
	recorder metrics.Recorder
	promRec  *metrics.PrometheusRecorder // nil unless serve.metrics is on

	mu        sync.RWMutex
	lastError error
}

// NewServer creates a preview server. When cfg.Serve.Metrics is set, a
// Prometheus recorder is created and exposed at /metrics.
func NewServer(cfg *config.Config) *Server {
	s := &Server{cfg: cfg, recorder: metrics.NoopRecorder{}}
	if cfg.Serve.Metrics {
		s.promRec = metrics.NewPrometheusRecorder(nil)
		s.recorder = s.promRec
	}
	return s
}

// Run builds once, then serves and rebuilds until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.rebuild(ctx, "manual"); err != nil {
		// The server still starts: the author fixes the file and saves again.
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := s.setupWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	debouncer := NewDebouncer(DebouncerConfig{
		QuietWindow: s.cfg.Serve.QuietWindow,
		MaxDelay:    s.cfg.Serve.MaxDelay,
	})
	triggers := make(chan string, 1)
	go debouncer.Run(ctx, triggers)

	scheduler, err := s.startScheduler(debouncer)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	httpErr := make(chan error, 1)
	server := s.startHTTP(httpErr)

	slog.Info("Preview server listening", logfields.Addr(s.cfg.Serve.Addr))

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(server)

		case err := <-httpErr:
			return err

		case reason := <-triggers:
			s.recorder.IncRebuild(reason)
			if err := s.rebuild(ctx, reason); err != nil {
				slog.Warn("Rebuild failed", logfields.Error(err))
			}

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(watcher, ev, debouncer)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// LastError returns the error of the most recent build, nil after success.
func (s *Server) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

func (s *Server) rebuild(ctx context.Context, reason string) error {
	slog.Info("Rebuilding site", slog.String("reason", reason))
	_, err := stages.Build(ctx, s.cfg, s.recorder, stages.Options{
		IncludeDrafts: s.cfg.Content.Drafts,
	})

	s.mu.Lock()
	s.lastError = err
	s.mu.Unlock()
	return err
}

func (s *Server) setupWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	roots := []string{
		s.cfg.Content.Dir,
		s.cfg.Content.LayoutsDir,
		s.cfg.Content.IncludesDir,
		s.cfg.Content.StaticDir,
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); err != nil {
			continue
		}
		if err := addDirsRecursive(watcher, root); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}
	return watcher, nil
}

func (s *Server) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, debouncer *Debouncer) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	// New subdirectories need their own watch.
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	debouncer.Notify()
}

// startScheduler sets up the optional periodic full rebuild. Returns nil
// when serve.rebuild_every is unset.
func (s *Server) startScheduler(debouncer *Debouncer) (gocron.Scheduler, error) {
	if s.cfg.Serve.RebuildEvery <= 0 {
		return nil, nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.cfg.Serve.RebuildEvery),
		gocron.NewTask(func() {
			slog.Debug("Scheduled rebuild requested")
			debouncer.Notify()
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	slog.Info("Periodic rebuild enabled", slog.Duration("every", s.cfg.Serve.RebuildEvery))
	return scheduler, nil
}

func (s *Server) startHTTP(errCh chan<- error) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Output.Directory)))
	if s.promRec != nil {
		mux.Handle("/metrics", s.promRec.Handler())
	}

	server := &http.Server{
		Addr:              s.cfg.Serve.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return server
}

func (s *Server) shutdown(server *http.Server) error {
	slog.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters events from editor temp and swap files that
// would otherwise trigger spurious rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
