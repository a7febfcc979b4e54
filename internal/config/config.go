// Package config loads and validates the site configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	berrors "github.com/mkaszubowski/mkaszubowski.github.io/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Serve   ServeConfig   `yaml:"serve"`
	History HistoryConfig `yaml:"history"`
}

// SiteConfig holds site-wide variables exposed to templates as `site.*`.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// ContentConfig locates the source directories.
type ContentConfig struct {
	Dir         string `yaml:"dir"`
	LayoutsDir  string `yaml:"layouts_dir"`
	IncludesDir string `yaml:"includes_dir"`
	StaticDir   string `yaml:"static_dir,omitempty"`
	ListLayout  string `yaml:"list_layout,omitempty"` // Layout used for tag and archive listing pages
	Drafts      bool   `yaml:"drafts"`
}

// OutputConfig controls route shape and output writing.
type OutputConfig struct {
	Directory      string         `yaml:"directory"`
	PermalinkStyle PermalinkStyle `yaml:"permalink_style,omitempty"`
	Workers        int            `yaml:"workers,omitempty"` // Render worker pool size, 0 = GOMAXPROCS
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr         string        `yaml:"addr,omitempty"`
	Metrics      bool          `yaml:"metrics"`
	RebuildEvery time.Duration `yaml:"rebuild_every,omitempty"` // Optional periodic full rebuild
	QuietWindow  time.Duration `yaml:"quiet_window,omitempty"`  // Debounce window for file events
	MaxDelay     time.Duration `yaml:"max_delay,omitempty"`     // Upper bound on debounce postponement
}

// HistoryConfig configures the build history store.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"` // SQLite file, empty disables history
}

// PermalinkStyle controls how routes map to output files.
type PermalinkStyle string

const (
	// PermalinkPretty emits `/a/b/` routes backed by `a/b/index.html`.
	PermalinkPretty PermalinkStyle = "pretty"
	// PermalinkFile emits `/a/b.html` routes backed by `a/b.html`.
	PermalinkFile PermalinkStyle = "file"
)

// NormalizePermalinkStyle maps raw user input to a supported style,
// returning the empty string when unrecognized.
func NormalizePermalinkStyle(raw string) PermalinkStyle {
	switch PermalinkStyle(raw) {
	case PermalinkPretty, PermalinkFile:
		return PermalinkStyle(raw)
	case "":
		return PermalinkPretty
	default:
		return ""
	}
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; absence is not an error.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, berrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "posts"
	}
	if c.Content.LayoutsDir == "" {
		c.Content.LayoutsDir = "_layouts"
	}
	if c.Content.IncludesDir == "" {
		c.Content.IncludesDir = "_includes"
	}
	if c.Content.ListLayout == "" {
		c.Content.ListLayout = "default"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "_site"
	}
	if c.Output.PermalinkStyle == "" {
		c.Output.PermalinkStyle = PermalinkPretty
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = "127.0.0.1:4000"
	}
	if c.Serve.QuietWindow <= 0 {
		c.Serve.QuietWindow = 300 * time.Millisecond
	}
	if c.Serve.MaxDelay <= 0 {
		c.Serve.MaxDelay = 2 * time.Second
	}
}

// Validate rejects configurations the build cannot act on.
func (c *Config) Validate() error {
	if NormalizePermalinkStyle(string(c.Output.PermalinkStyle)) == "" {
		return berrors.ValidationFailed("output.permalink_style",
			fmt.Sprintf("unsupported style %q (want pretty or file)", c.Output.PermalinkStyle))
	}
	if c.Output.Workers < 0 {
		return berrors.ValidationFailed("output.workers", "must be >= 0")
	}
	if c.Content.Dir == c.Output.Directory {
		return berrors.ValidationFailed("output.directory", "must differ from content.dir")
	}
	return nil
}
