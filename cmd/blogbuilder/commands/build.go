package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/history"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/stages"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Source  string `short:"s" help:"Content directory (overrides content.dir)"`
	Output  string `short:"o" help:"Output directory (overrides output.directory)"`
	Drafts  bool   `help:"Include draft posts"`
	DryRun  bool   `name:"dry-run" help:"Run the full pipeline without writing output"`
	Workers int    `short:"w" help:"Render worker pool size (0 = number of CPUs)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Source != "" {
		cfg.Content.Dir = b.Source
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, buildErr := stages.Build(ctx, cfg, nil, stages.Options{
		IncludeDrafts: b.Drafts || cfg.Content.Drafts,
		Workers:       b.Workers,
		DryRun:        b.DryRun,
	})

	recordHistory(ctx, cfg, report)

	if buildErr != nil {
		return buildErr
	}
	fmt.Printf("Built %d pages from %d posts in %s\n",
		report.Pages, report.Documents, report.Duration.Round(time.Millisecond))
	if n := len(report.LinkProblems); n > 0 {
		fmt.Printf("Warning: %d unresolved internal links (run 'blogbuilder check' for details)\n", n)
	}
	return nil
}

// recordHistory appends the build outcome to the history store when one is
// configured. History failures never fail the build.
func recordHistory(ctx context.Context, cfg *config.Config, report *stages.Report) {
	if cfg.History.Path == "" || report == nil {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("History store unavailable", logfields.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	record := history.Record{
		BuildID:   report.BuildID,
		StartedAt: report.StartedAt,
		Duration:  report.Duration,
		Documents: report.Documents,
		Pages:     report.Pages,
		Outcome:   report.Outcome,
	}
	if report.Err != nil {
		record.Error = report.Err.Error()
	}
	if err := store.Record(ctx, record); err != nil {
		slog.Warn("Failed to record build history", logfields.Error(err))
	}
}
