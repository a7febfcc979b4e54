package stages

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/metrics"
)

// RunStages executes stages in order, recording timing and stopping on the
// first error. Content-level errors are fatal to the whole build; there is
// no partial-success mode.
func RunStages(ctx context.Context, bs *BuildState, defs []StageDef) error {
	for _, st := range defs {
		select {
		case <-ctx.Done():
			bs.Report.Outcome = "canceled"
			bs.Report.Err = ctx.Err()
			bs.Recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return ctx.Err()
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[st.Name] = dur
		bs.Recorder.ObserveStageDuration(string(st.Name), dur)

		if err != nil {
			bs.Report.Outcome = "failed"
			bs.Report.Err = err
			bs.Recorder.IncStageResult(string(st.Name), metrics.ResultFatal)
			slog.Error("Stage failed",
				logfields.Stage(string(st.Name)),
				logfields.DurationMS(float64(dur.Milliseconds())),
				logfields.Error(err))
			return err
		}

		bs.Recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
		slog.Debug("Stage completed",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Milliseconds())))
	}
	return nil
}
