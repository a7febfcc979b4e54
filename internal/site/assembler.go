package site

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
)

// WritePages writes rendered pages under root, mirroring each page's
// computed route path. Route collision checks have already run as a
// barrier, so no two pages share an output path.
func WritePages(root string, pages []*Page) error {
	for _, page := range pages {
		target := filepath.Join(root, filepath.FromSlash(page.Route.OutputPath))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return berrors.WriteError(target, err)
		}
		if err := os.WriteFile(target, []byte(page.HTML), 0o644); err != nil {
			return berrors.WriteError(target, err)
		}
	}
	slog.Info("Pages written", logfields.Count(len(pages)), logfields.Path(root))
	return nil
}

// CopyStatic copies the static asset tree verbatim into root. A missing
// static directory is not an error.
func CopyStatic(staticDir, root string) error {
	if staticDir == "" {
		return nil
	}
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}
	return copyDir(staticDir, root)
}

func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
