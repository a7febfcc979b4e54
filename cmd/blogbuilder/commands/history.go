package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of builds to show" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.History.Path == "" {
		return fmt.Errorf("build history is not configured (set history.path)")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No builds recorded yet")
		return nil
	}

	for _, r := range records {
		line := fmt.Sprintf("%s  %-8s  %3d posts  %3d pages  %s",
			r.StartedAt.Local().Format(time.DateTime), r.Outcome,
			r.Documents, r.Pages, r.Duration.Round(time.Millisecond))
		if r.Error != "" {
			line += "  " + r.Error
		}
		fmt.Println(line)
	}
	return nil
}
