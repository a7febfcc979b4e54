// Package stages orchestrates the build pipeline: load, route, render,
// assemble, verify, write, promote.
package stages

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/config"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/layouts"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/linkcheck"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/metrics"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/render"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/site"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/workspace"
)

// StageName identifies one pipeline stage.
type StageName string

const (
	StagePrepare     StageName = "prepare"
	StageLoad        StageName = "load"
	StageLayouts     StageName = "layouts"
	StageRoute       StageName = "route"
	StageRender      StageName = "render"
	StageAssemble    StageName = "assemble"
	StageVerifyLinks StageName = "verify_links"
	StageWrite       StageName = "write"
	StagePromote     StageName = "promote"
)

// StageDef pairs a stage name with its implementation.
type StageDef struct {
	Name StageName
	Fn   func(ctx context.Context, bs *BuildState) error
}

// Options control a single build invocation.
type Options struct {
	IncludeDrafts bool
	Workers       int // Render pool size, 0 = GOMAXPROCS
	DryRun        bool
}

// BuildState carries everything the stages share. Stages run in order;
// each reads what earlier stages produced.
type BuildState struct {
	Config   *config.Config
	Opts     Options
	Recorder metrics.Recorder

	Workspace *workspace.Manager
	Router    *router.Router
	Renderer  *render.Renderer

	Docs    []*content.Document
	Layouts *layouts.Set
	Routes  *router.Table
	Pages   []*site.Page

	Report *Report
}

// Report summarizes one build for logging, metrics, and history.
type Report struct {
	BuildID        string
	StartedAt      time.Time
	Duration       time.Duration
	StageDurations map[StageName]time.Duration
	Documents      int
	Pages          int
	Outcome        string // success|failed|canceled
	LinkProblems   []linkcheck.Problem
	Err            error
}

// NewReport creates a report with a fresh build ID.
func NewReport() *Report {
	return &Report{
		BuildID:        uuid.NewString(),
		StartedAt:      time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		Outcome:        "success",
	}
}
