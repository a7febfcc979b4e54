package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/frontmatter"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
)

// NewCmd implements the 'new' command: scaffold a dated post file.
type NewCmd struct {
	Title string   `arg:"" help:"Post title"`
	Tags  []string `short:"t" help:"Tags for the post"`
	Draft bool     `help:"Mark the post as a draft"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slug := router.Slugify(n.Title)
	if slug == "" {
		return fmt.Errorf("title %q produces an empty slug", n.Title)
	}

	name := fmt.Sprintf("%s-%s.md", time.Now().Format("2006-01-02"), slug)
	path := filepath.Join(cfg.Content.Dir, name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("post already exists: %s", path)
	}

	fields := map[string]any{
		"layout": "post",
		"title":  n.Title,
	}
	if len(n.Tags) > 0 {
		fields["tags"] = n.Tags
	}
	if n.Draft {
		fields["draft"] = true
	}

	content, err := frontmatter.Join(fields, []byte("\n"))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Content.Dir, 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", path)
	return nil
}
