package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterConfig = `# Site configuration
site:
  title: "My Blog"
  description: ""
  base_url: ""
  author: ""

content:
  dir: posts
  layouts_dir: _layouts
  includes_dir: _includes
  static_dir: static
  drafts: false

output:
  directory: _site
  permalink_style: pretty

serve:
  addr: 127.0.0.1:4000
  metrics: false

# Uncomment to record build history:
# history:
#   path: .blogbuilder/history.db
`

const starterLayout = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ page.title }} | {{ site.title }}</title>
</head>
<body>
  <main>
    {{ content }}
  </main>
</body>
</html>
`

const starterPostLayout = `---
layout: default
---
<article>
  <h1>{{ page.title }}</h1>
  {{ content }}
</article>
`

// Init writes a starter configuration file and directory skeleton.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	root := filepath.Dir(configPath)
	for _, dir := range []string{"posts", "_layouts", "_includes", "static"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o750); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}

	layouts := map[string]string{
		"default.html": starterLayout,
		"post.html":    starterPostLayout,
	}
	for name, content := range layouts {
		path := filepath.Join(root, "_layouts", name)
		if _, err := os.Stat(path); err == nil && !force {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write layout %s: %w", name, err)
		}
	}

	return nil
}
