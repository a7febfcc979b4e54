package stages

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mkaszubowski/mkaszubowski.github.io/internal/content"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/gitmeta"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/layouts"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/linkcheck"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/logfields"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/router"
	"github.com/mkaszubowski/mkaszubowski.github.io/internal/site"
)

// StagePrepareFn creates the staging directory the build writes into.
func StagePrepareFn(_ context.Context, bs *BuildState) error {
	_, err := bs.Workspace.Stage()
	return err
}

// StageLoadFn loads and parses all content documents.
func StageLoadFn(_ context.Context, bs *BuildState) error {
	loader := content.NewLoader(bs.Config.Content.Dir, bs.Opts.IncludeDrafts)

	if resolver, err := gitmeta.Open(bs.Config.Content.Dir); err == nil && resolver != nil {
		loader = loader.WithDateResolver(resolver)
	} else if err != nil {
		slog.Debug("Git metadata unavailable", logfields.Error(err))
	}

	docs, err := loader.Load()
	if err != nil {
		return err
	}
	bs.Docs = docs
	bs.Report.Documents = len(docs)
	return nil
}

// StageLayoutsFn loads the layout set and validates every inheritance
// chain before any rendering starts.
func StageLayoutsFn(_ context.Context, bs *BuildState) error {
	set, err := layouts.LoadDir(bs.Config.Content.LayoutsDir)
	if err != nil {
		return err
	}
	if err := set.Validate(); err != nil {
		return err
	}
	bs.Layouts = set
	return nil
}

// StageRouteFn claims every document's output path. This is the collision
// barrier: it must complete before any write begins, so no two workers
// ever target the same output path.
func StageRouteFn(_ context.Context, bs *BuildState) error {
	for _, doc := range bs.Docs {
		if err := bs.Routes.Add(doc.SourcePath, bs.Router.RouteFor(doc)); err != nil {
			return err
		}
	}
	slog.Info("Routes resolved", logfields.Count(bs.Routes.Len()))
	return nil
}

// StageRenderFn renders all documents on a bounded worker pool. Documents
// are independent, so ordering between them does not matter; results land
// in a preallocated slice indexed by document.
func StageRenderFn(ctx context.Context, bs *BuildState) error {
	pages := make([]*site.Page, len(bs.Docs))

	g, _ := errgroup.WithContext(ctx)
	if bs.Opts.Workers > 0 {
		g.SetLimit(bs.Opts.Workers)
	}

	for i, doc := range bs.Docs {
		g.Go(func() error {
			chain, err := bs.Layouts.Chain(doc.Layout, doc.SourcePath)
			if err != nil {
				return err
			}
			route, _ := bs.Routes.Lookup(doc.SourcePath)
			html, err := bs.Renderer.Page(doc, chain, route)
			if err != nil {
				return err
			}
			pages[i] = &site.Page{Doc: doc, Route: route, HTML: html}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	bs.Pages = pages
	return nil
}

// StageAssembleFn generates and renders the listing pages: the
// chronological home index and one page per distinct tag. Listing routes
// are claimed through the same table, so a document permalink colliding
// with a listing path fails the build before any write.
func StageAssembleFn(_ context.Context, bs *BuildState) error {
	lookup := func(doc *content.Document) router.Route {
		route, _ := bs.Routes.Lookup(doc.SourcePath)
		return route
	}

	listings := site.Listings(bs.Docs, bs.Router, lookup, bs.Config.Content.ListLayout)
	for _, listing := range listings {
		if err := bs.Routes.Add(listing.Doc.SourcePath, listing.Route); err != nil {
			return err
		}

		chain, err := bs.Layouts.Chain(listing.Doc.Layout, listing.Doc.SourcePath)
		if err != nil {
			return err
		}
		html, err := bs.Renderer.Page(listing.Doc, chain, listing.Route)
		if err != nil {
			return err
		}
		bs.Pages = append(bs.Pages, &site.Page{Doc: listing.Doc, Route: listing.Route, HTML: html})
	}

	bs.Report.Pages = len(bs.Pages)
	return nil
}

// StageVerifyLinksFn checks internal links in every rendered page against
// the claimed routes and static assets. Problems are reported as warnings
// here; the check command treats them as failures.
func StageVerifyLinksFn(_ context.Context, bs *BuildState) error {
	checker := linkcheck.NewChecker(bs.Routes.URLs(), bs.Config.Content.StaticDir)

	for _, page := range bs.Pages {
		problems, err := checker.Page(page.Route.URL, page.HTML)
		if err != nil {
			continue // Unparseable output is the renderer's problem, not the checker's
		}
		for _, p := range problems {
			slog.Warn("Unresolved internal link",
				logfields.Route(p.PageURL),
				slog.String("href", p.Href))
		}
		bs.Report.LinkProblems = append(bs.Report.LinkProblems, problems...)
	}
	return nil
}

// StageWriteFn writes all pages and static assets into the staging
// directory.
func StageWriteFn(_ context.Context, bs *BuildState) error {
	root := bs.Workspace.StageDir()
	if err := site.WritePages(root, bs.Pages); err != nil {
		return err
	}
	return site.CopyStatic(bs.Config.Content.StaticDir, root)
}

// StagePromoteFn swaps the staged tree onto the output directory.
func StagePromoteFn(_ context.Context, bs *BuildState) error {
	return bs.Workspace.Promote()
}
