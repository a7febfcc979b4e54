// Package gitmeta resolves publish dates from git history for documents
// whose headers carry none.
package gitmeta

import (
	"log/slog"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
)

// Resolver looks up the last commit time of files under a content root.
// A nil Resolver (content root outside any repository) is usable and
// always reports no date.
type Resolver struct {
	repo    *git.Repository
	relBase string // content root relative to the repository worktree
}

// Open detects the repository containing contentRoot. Returns nil without
// error when the root is not inside a git worktree; callers then fall back
// to file mtimes.
func Open(contentRoot string) (*Resolver, error) {
	abs, err := filepath.Abs(contentRoot)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return nil, nil
		}
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	relBase, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return nil, err
	}

	return &Resolver{repo: repo, relBase: filepath.ToSlash(relBase)}, nil
}

// LastModified returns the committer time of the newest commit touching the
// file, relative to the content root. ok is false when the file has no
// history (untracked or lookup failure).
func (r *Resolver) LastModified(relPath string) (time.Time, bool) {
	if r == nil || r.repo == nil {
		return time.Time{}, false
	}

	repoPath := filepath.ToSlash(filepath.Join(r.relBase, relPath))
	iter, err := r.repo.Log(&git.LogOptions{
		FileName: &repoPath,
		Order:    git.LogOrderCommitterTime,
	})
	if err != nil {
		slog.Debug("git log failed", logfields.File(relPath), logfields.Error(err))
		return time.Time{}, false
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return time.Time{}, false
	}
	return commit.Committer.When, true
}
