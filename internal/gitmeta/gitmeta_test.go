package gitmeta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestOpen_OutsideRepository_ReturnsNilResolver(t *testing.T) {
	r, err := Open(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, r)

	// A nil resolver is still safe to query.
	_, ok := r.LastModified("anything.md")
	require.False(t, ok)
}

func TestLastModified_ReturnsCommitterTime(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	postsDir := filepath.Join(root, "posts")
	require.NoError(t, os.MkdirAll(postsDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(postsDir, "a.md"), []byte("hello"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("posts/a.md")
	require.NoError(t, err)

	when := time.Date(2022, 6, 1, 10, 0, 0, 0, time.UTC)
	_, err = wt.Commit("add post", &git.CommitOptions{
		Author:    &object.Signature{Name: "t", Email: "t@example.com", When: when},
		Committer: &object.Signature{Name: "t", Email: "t@example.com", When: when},
	})
	require.NoError(t, err)

	r, err := Open(postsDir)
	require.NoError(t, err)
	require.NotNil(t, r)

	got, ok := r.LastModified("a.md")
	require.True(t, ok)
	require.True(t, got.Equal(when))
}

func TestLastModified_UntrackedFile_ReportsNoDate(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "untracked.md"), []byte("x"), 0o644))

	r, err := Open(root)
	require.NoError(t, err)
	require.NotNil(t, r)

	_, ok := r.LastModified("untracked.md")
	require.False(t, ok)
}
