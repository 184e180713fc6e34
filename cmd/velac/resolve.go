package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vela-lang/velac/internal/diagfmt"
	"github.com/vela-lang/velac/internal/driver"
	"github.com/vela-lang/velac/internal/project"
	"github.com/vela-lang/velac/internal/trace"
	"github.com/vela-lang/velac/internal/ui"
)

var resolveModuleFlag []string

func init() {
	resolveCmd.Flags().StringSliceVar(&resolveModuleFlag, "module", nil,
		"resolve exactly these fixture modules instead of velac.toml's [run].modules")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [dir]",
	Short: "Resolve a project's declared modules and report diagnostics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		manifest, modules, err := loadResolveTargets(dir)
		if err != nil {
			return err
		}

		cache, err := driver.OpenDiskCache("velac")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}

		jobs, _ := cmd.Flags().GetInt("jobs")
		quiet, _ := cmd.Flags().GetBool("quiet")
		colored := wantColor(cmd)

		tracer, err := newTracer(cmd)
		if err != nil {
			return err
		}
		defer tracer.Close()

		ctx := trace.WithTracer(context.Background(), tracer)

		if !quiet && isTerminal(os.Stdout) {
			return runWithProgress(ctx, manifest, cache, jobs, modules, colored)
		}
		return runQuiet(ctx, manifest, cache, jobs, colored)
	},
}

// loadResolveTargets resolves either the explicit --module list or a
// velac.toml's [run].modules, mirroring the teacher's
// loadProjectManifest/resolveProjectRunTarget split between an
// explicit CLI target and a manifest-derived one.
func loadResolveTargets(dir string) (*project.Manifest, []string, error) {
	if len(resolveModuleFlag) > 0 {
		return &project.Manifest{
			Config: project.Config{
				Package: project.PackageConfig{Name: "adhoc"},
				Run:     project.RunConfig{Modules: resolveModuleFlag},
			},
		}, resolveModuleFlag, nil
	}

	manifest, ok, err := project.LoadManifest(dir)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errors.New(project.NoManifestMessage())
	}
	return manifest, manifest.Config.Run.Modules, nil
}

type resolveOutcome struct {
	results []driver.ModuleResult
	err     error
}

// runWithProgress mirrors the teacher's runBuildWithUI/runCompileWithUI
// (cmd/surge/ui_runner.go): the actual work runs in a goroutine
// feeding an events channel the Bubble Tea program drains, with the
// outcome handed back over a second, buffered channel so the UI loop
// and the work loop never block on each other.
func runWithProgress(ctx context.Context, manifest *project.Manifest, cache *driver.DiskCache, jobs int, modules []string, colored bool) error {
	events := make(chan driver.Event, 16)
	outcomeCh := make(chan resolveOutcome, 1)

	go func() {
		results, err := driver.ResolveProject(ctx, manifest, cache, jobs, events)
		outcomeCh <- resolveOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("resolving "+manifest.Config.Package.Name, modules, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return uiErr
	}
	if outcome.err != nil {
		return outcome.err
	}
	return reportResults(outcome.results, colored)
}

func runQuiet(ctx context.Context, manifest *project.Manifest, cache *driver.DiskCache, jobs int, colored bool) error {
	results, err := driver.ResolveProject(ctx, manifest, cache, jobs, nil)
	if err != nil {
		return err
	}
	return reportResults(results, colored)
}

func reportResults(results []driver.ModuleResult, colored bool) error {
	anyErrors := false
	for _, res := range results {
		if res.Bag != nil {
			res.Bag.Sort()
			diagfmt.Pretty(os.Stdout, res.Module, res.Bag, diagfmt.PrettyOpts{Color: colored, ShowNotes: true})
		}
		errCount, warnCount := 0, 0
		if res.Summary != nil {
			errCount, warnCount = res.Summary.ErrorCount, res.Summary.WarningCount
		}
		diagfmt.Summary(os.Stdout, res.Module, errCount, warnCount, colored)
		if errCount > 0 {
			anyErrors = true
		}
	}
	if anyErrors {
		return fmt.Errorf("resolution reported errors")
	}
	return nil
}
