// Package workspace manages the staging directory builds write into before
// the finished site is promoted onto the output directory.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
)

// Manager stages a build next to the output directory and promotes it only
// after every page has been written, so a failed build never leaves a
// partially rendered site behind.
type Manager struct {
	outputDir string
	stageDir  string
}

// NewManager creates a staging manager for the given output directory.
func NewManager(outputDir string) *Manager {
	return &Manager{outputDir: outputDir}
}

// Stage creates a fresh timestamped staging directory as a sibling of the
// output directory (same filesystem, so promotion is a rename).
func (m *Manager) Stage() (string, error) {
	parent := filepath.Dir(m.outputDir)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output parent directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405.000000000")
	stageDir := filepath.Join(parent, fmt.Sprintf(".%s-stage-%s", filepath.Base(m.outputDir), timestamp))
	if err := os.MkdirAll(stageDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	m.stageDir = stageDir
	slog.Debug("Created staging directory", logfields.Path(stageDir))
	return stageDir, nil
}

// StageDir returns the current staging directory, empty before Stage().
func (m *Manager) StageDir() string {
	return m.stageDir
}

// Promote replaces the output directory with the staged tree. The previous
// output is removed only after the staged tree is complete.
func (m *Manager) Promote() error {
	if m.stageDir == "" {
		return fmt.Errorf("no staging directory to promote")
	}

	if err := os.RemoveAll(m.outputDir); err != nil {
		return fmt.Errorf("failed to remove previous output: %w", err)
	}
	if err := os.Rename(m.stageDir, m.outputDir); err != nil {
		return fmt.Errorf("failed to promote staged site: %w", err)
	}

	slog.Info("Site promoted", logfields.Path(m.outputDir))
	m.stageDir = ""
	return nil
}

// Cleanup removes a staging directory left behind by a failed build.
// Safe to call after a successful Promote.
func (m *Manager) Cleanup() error {
	if m.stageDir == "" {
		return nil
	}
	if err := os.RemoveAll(m.stageDir); err != nil {
		return fmt.Errorf("failed to cleanup staging directory: %w", err)
	}
	slog.Debug("Cleaned up staging directory", logfields.Path(m.stageDir))
	m.stageDir = ""
	return nil
}
