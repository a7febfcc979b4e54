package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFile_ReturnsConfigError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryConfig))
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "site:\n  title: Test\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "posts", cfg.Content.Dir)
	require.Equal(t, "_layouts", cfg.Content.LayoutsDir)
	require.Equal(t, "_includes", cfg.Content.IncludesDir)
	require.Equal(t, "_site", cfg.Output.Directory)
	require.Equal(t, PermalinkPretty, cfg.Output.PermalinkStyle)
	require.Equal(t, "default", cfg.Content.ListLayout)
	require.NotZero(t, cfg.Serve.QuietWindow)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("BLOG_TITLE", "From Env")
	path := writeConfig(t, "site:\n  title: ${BLOG_TITLE}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "From Env", cfg.Site.Title)
}

func TestLoad_InvalidPermalinkStyle_Fails(t *testing.T) {
	path := writeConfig(t, "output:\n  permalink_style: fancy\n")

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, berrors.IsCategory(err, berrors.CategoryConfig))
}

func TestLoad_ContentDirEqualsOutputDir_Fails(t *testing.T) {
	path := writeConfig(t, "content:\n  dir: out\noutput:\n  directory: out\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestNormalizePermalinkStyle(t *testing.T) {
	require.Equal(t, PermalinkPretty, NormalizePermalinkStyle(""))
	require.Equal(t, PermalinkPretty, NormalizePermalinkStyle("pretty"))
	require.Equal(t, PermalinkFile, NormalizePermalinkStyle("file"))
	require.Equal(t, PermalinkStyle(""), NormalizePermalinkStyle("fancy"))
}

func TestInit_WritesStarterSkeleton(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "config.yaml")

	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "My Blog", cfg.Site.Title)

	for _, dir := range []string{"posts", "_layouts", "_includes", "static"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}

	// Refuses to overwrite without force.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
