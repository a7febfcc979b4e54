package linkcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPage_ResolvedLinksPass(t *testing.T) {
	c := NewChecker([]string{"/", "/2020/05/01/hello/", "/tags/elixir/"}, "")

	problems, err := c.Page("/", `<a href="/2020/05/01/hello/">post</a> <a href="/tags/elixir/">tag</a>`)
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestPage_UnresolvedLinkReported(t *testing.T) {
	c := NewChecker([]string{"/"}, "")

	problems, err := c.Page("/about/", `<a href="/missing/">gone</a>`)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Equal(t, "/about/", problems[0].PageURL)
	require.Equal(t, "/missing/", problems[0].Href)
}

func TestPage_ExternalLinksIgnored(t *testing.T) {
	c := NewChecker(nil, "")

	problems, err := c.Page("/", `
		<a href="https://example.com/x">ext</a>
		<a href="mailto:a@b.c">mail</a>
		<a href="//cdn.example.com/x.js">proto-relative</a>
		<a href="relative.html">relative</a>`)
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestPage_TrailingSlashVariantsResolve(t *testing.T) {
	c := NewChecker([]string{"/posts/hello/"}, "")

	problems, err := c.Page("/", `<a href="/posts/hello">no slash</a> <a href="/posts/hello/#section">anchor</a>`)
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestPage_StaticAssetsResolve(t *testing.T) {
	static := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(static, "images"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(static, "images", "me.png"), []byte{0x1}, 0o644))

	c := NewChecker(nil, static)

	problems, err := c.Page("/", `<img src="/images/me.png"> <img src="/images/gone.png">`)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	require.Equal(t, "/images/gone.png", problems[0].Href)
}
