package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
)

func TestWritePages_MirrorsRoutePaths(t *testing.T) {
	root := t.TempDir()
	pages := []*Page{
		{
			Doc:   &content.Document{SourcePath: "a.md"},
			Route: router.Route{URL: "/2020/05/01/hello/", OutputPath: "2020/05/01/hello/index.html"},
			HTML:  "<html>hello</html>",
		},
		{
			Doc:   &content.Document{SourcePath: "b.md"},
			Route: router.Route{URL: "/about.html", OutputPath: "about.html"},
			HTML:  "<html>about</html>",
		},
	}

	require.NoError(t, WritePages(root, pages))

	got, err := os.ReadFile(filepath.Join(root, "2020", "05", "01", "hello", "index.html"))
	require.NoError(t, err)
	require.Equal(t, "<html>hello</html>", string(got))
	require.FileExists(t, filepath.Join(root, "about.html"))
}

func TestCopyStatic_CopiesTreeVerbatim(t *testing.T) {
	static := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(static, "css"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(static, "css", "main.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "favicon.ico"), []byte{0x1}, 0o644))

	root := t.TempDir()
	require.NoError(t, CopyStatic(static, root))

	require.FileExists(t, filepath.Join(root, "css", "main.css"))
	require.FileExists(t, filepath.Join(root, "favicon.ico"))
}

func TestCopyStatic_MissingDirIsNoop(t *testing.T) {
	require.NoError(t, CopyStatic(filepath.Join(t.TempDir(), "absent"), t.TempDir()))
	require.NoError(t, CopyStatic("", t.TempDir()))
}
