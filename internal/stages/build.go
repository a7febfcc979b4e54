package stages

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/metrics"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/render"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/workspace"
)

// Build runs the full pipeline once and returns its report. The report is
// non-nil even on failure so callers can record the outcome.
func Build(ctx context.Context, cfg *config.Config, recorder metrics.Recorder, opts Options) (*Report, error) {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if opts.Workers <= 0 {
		opts.Workers = cfg.Output.Workers
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	bs := &BuildState{
		Config:    cfg,
		Opts:      opts,
		Recorder:  recorder,
		Workspace: workspace.NewManager(cfg.Output.Directory),
		Router:    router.New(cfg.Output.PermalinkStyle),
		Renderer:  render.New(cfg.Content.IncludesDir, cfg.Site),
		Routes:    router.NewTable(),
		Report:    NewReport(),
	}
	defer func() {
		if err := bs.Workspace.Cleanup(); err != nil {
			slog.Warn("Staging cleanup failed", logfields.Error(err))
		}
	}()

	slog.Info("Build started",
		logfields.BuildID(bs.Report.BuildID),
		logfields.Path(cfg.Content.Dir))

	err := RunStages(ctx, bs, buildStages(opts))

	bs.Report.Duration = time.Since(bs.Report.StartedAt)
	recorder.ObserveBuildDuration(bs.Report.Duration)
	recorder.IncBuildOutcome(bs.Report.Outcome)
	if err == nil {
		recorder.SetPagesBuilt(bs.Report.Pages)
		slog.Info("Build finished",
			logfields.BuildID(bs.Report.BuildID),
			logfields.Count(bs.Report.Pages),
			logfields.DurationMS(float64(bs.Report.Duration.Milliseconds())))
	}
	return bs.Report, err
}

// buildStages returns the stage list for one build. Dry runs skip every
// stage that touches the filesystem.
func buildStages(opts Options) []StageDef {
	defs := []StageDef{
		{Name: StageLoad, Fn: StageLoadFn},
		{Name: StageLayouts, Fn: StageLayoutsFn},
		{Name: StageRoute, Fn: StageRouteFn},
		{Name: StageRender, Fn: StageRenderFn},
		{Name: StageAssemble, Fn: StageAssembleFn},
		{Name: StageVerifyLinks, Fn: StageVerifyLinksFn},
	}
	if opts.DryRun {
		return defs
	}

	withWrites := []StageDef{{Name: StagePrepare, Fn: StagePrepareFn}}
	withWrites = append(withWrites, defs...)
	return append(withWrites,
		StageDef{Name: StageWrite, Fn: StageWriteFn},
		StageDef{Name: StagePromote, Fn: StagePromoteFn},
	)
}
