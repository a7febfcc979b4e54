package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/preview"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr         string        `short:"a" help:"Listen address (overrides serve.addr)"`
	Drafts       bool          `help:"Include draft posts"`
	Metrics      bool          `help:"Expose Prometheus metrics at /metrics (overrides serve.metrics)"`
	RebuildEvery time.Duration `name:"rebuild-every" help:"Periodic full rebuild interval (overrides serve.rebuild_every)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s.Addr != "" {
		cfg.Serve.Addr = s.Addr
	}
	if s.Drafts {
		cfg.Content.Drafts = true
	}
	if s.Metrics {
		cfg.Serve.Metrics = true
	}
	if s.RebuildEvery > 0 {
		cfg.Serve.RebuildEvery = s.RebuildEvery
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Serving on http://%s (Ctrl-C to stop)\n", cfg.Serve.Addr)
	return preview.NewServer(cfg).Run(ctx)
}
