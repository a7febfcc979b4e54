package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/stages"
)

// CheckCmd implements the 'check' command: a dry-run build where link
// problems are failures instead of warnings.
type CheckCmd struct {
	Drafts bool `help:"Include draft posts"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := stages.Build(ctx, cfg, nil, stages.Options{
		IncludeDrafts: c.Drafts || cfg.Content.Drafts,
		DryRun:        true,
	})
	if err != nil {
		return err
	}

	if len(report.LinkProblems) > 0 {
		for _, p := range report.LinkProblems {
			fmt.Printf("broken link: %s\n", p)
		}
		return fmt.Errorf("%d unresolved internal links", len(report.LinkProblems))
	}

	fmt.Printf("OK: %d pages, no broken internal links\n", report.Pages)
	return nil
}
