package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vela-lang/velac/internal/ast"
	"github.com/vela-lang/velac/internal/diag"
	"github.com/vela-lang/velac/internal/fixture"
	"github.com/vela-lang/velac/internal/project"
	"github.com/vela-lang/velac/internal/query"
	"github.com/vela-lang/velac/internal/resolve"
	"github.com/vela-lang/velac/internal/symbols"
	"github.com/vela-lang/velac/internal/trace"
	"github.com/vela-lang/velac/internal/types"
)

// ModuleResult is one fixture module's resolution outcome.
type ModuleResult struct {
	Module  string
	Bag     *diag.Bag
	Summary *ResolutionSummary
	// FromCache reports whether Bag/Summary came from a prior run's
	// disk cache instead of a fresh resolve.
	FromCache bool
}

// maxDiagnosticsPerModule bounds diag.NewBag for every module. It is
// fixed: ResolveProject takes no limit, and main.go's
// --max-diagnostics flag is not passed through to it.
const maxDiagnosticsPerModule = 100

// ResolveProject fans out over manifest's declared modules with
// errgroup, exactly like the teacher's parallel.go TokenizeDir/ParseDir
// (per-index result slice, no mutex needed; SetLimit caps concurrency
// to jobs). Modules unknown to internal/fixture's registry produce an
// error result rather than being silently skipped. Events streams
// live per-module progress to a consumer (internal/ui's Bubble Tea
// model, or a plain writer); it may be nil.
func ResolveProject(ctx context.Context, manifest *project.Manifest, cache *DiskCache, jobs int, events chan<- Event) ([]ModuleResult, error) {
	modules := manifest.Config.Run.Modules
	if jobs <= 0 {
		jobs = manifest.Config.Run.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	driverSpan := trace.Begin(tracer, trace.ScopeDriver, "resolve:"+manifest.Config.Package.Name, 0)
	defer driverSpan.End(fmt.Sprintf("modules=%d jobs=%d", len(modules), jobs))

	results := make([]ModuleResult, len(modules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(modules)))

	for i, name := range modules {
		g.Go(func(i int, name string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				emit(events, Event{Module: name, Stage: StageQueued})
				results[i] = resolveOneModule(tracer, driverSpan.ID(), manifest.Config.Package.Name, name, cache, events)
				return nil
			}
		}(i, name))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func emit(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	events <- ev
}

func resolveOneModule(tracer trace.Tracer, parentSpan uint64, projectName, name string, cache *DiskCache, events chan<- Event) ModuleResult {
	moduleSpan := trace.Begin(tracer, trace.ScopeModule, "module:"+name, parentSpan)
	defer moduleSpan.End("")

	key := project.HashModule(projectName, name)
	if summary, ok, err := cache.Get(key); err == nil && ok {
		emit(events, Event{Module: name, Stage: StageCacheHit})
		emit(events, Event{Module: name, Stage: StageDone})
		moduleSpan.WithExtra("cached", "true")
		return ModuleResult{Module: name, Summary: summary, FromCache: true}
	}

	spec, ok := fixture.Lookup(name)
	if !ok {
		err := fmt.Errorf("unknown module %q (see internal/fixture for the registered set)", name)
		emit(events, Event{Module: name, Stage: StageDone, Err: err})
		return ModuleResult{Module: name, Summary: newSummary(name, 1, 0)}
	}

	emit(events, Event{Module: name, Stage: StageResolving})
	buildSpan := trace.Begin(tracer, trace.ScopePass, "build+resolve:"+name, moduleSpan.ID())
	bag := diag.NewBag(maxDiagnosticsPerModule)
	b := ast.NewBuilder(ast.Hints{})
	root := spec.Build(b)
	tree := b.Build()
	ap := ast.NewProvider(tree, []ast.ItemID{root})
	scopes := symbols.Build(tree, ap, []ast.ItemID{root})
	r := resolve.NewResolver(query.NewContext(), types.NewInterner(), tree, ap, scopes, diag.BagReporter{Bag: bag})
	r.Strings = fixture.Strings()
	r.ResolveModule(root)

	errCount, warnCount := bag.Counts()
	buildSpan.WithExtra("errors", fmt.Sprintf("%d", errCount)).
		WithExtra("warnings", fmt.Sprintf("%d", warnCount))
	buildSpan.End("")
	summary := newSummary(name, errCount, warnCount)
	if err := cache.Put(key, summary); err != nil {
		emit(events, Event{Module: name, Stage: StageDone, Err: err})
		return ModuleResult{Module: name, Bag: bag, Summary: summary}
	}

	emit(events, Event{Module: name, Stage: StageDone})
	return ModuleResult{Module: name, Bag: bag, Summary: summary}
}
