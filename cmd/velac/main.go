package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vela-lang/velac/internal/trace"
	"github.com/vela-lang/velac/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "velac",
	Short: "velac resolution core CLI",
	Long:  `velac drives the semantic resolution core over a project's declared modules.`,
}

// main wires the CLI's subcommands, sets the root command's reported
// version, and executes it; a returned error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress the progress UI")
	rootCmd.PersistentFlags().Int("jobs", 0, "module resolution concurrency (0 = velac.toml's [run].jobs, else GOMAXPROCS)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "accepted but not read; the driver keeps at most 100 diagnostics per module")
	rootCmd.PersistentFlags().String("trace", "", "write a trace to this path (\"-\" for stderr, empty disables tracing)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newTracer builds a trace.Tracer from a command's --trace/--trace-level
// flags. An empty --trace path or LevelOff yields the package's Nop
// tracer, matching trace.New's own contract.
func newTracer(cmd *cobra.Command) (trace.Tracer, error) {
	path, _ := cmd.Flags().GetString("trace")
	levelStr, _ := cmd.Flags().GetString("trace-level")

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	if path == "" {
		level = trace.LevelOff
	}

	return trace.New(trace.Config{
		Level:      level,
		Mode:       trace.ModeStream,
		Format:     trace.FormatAuto,
		OutputPath: path,
	})
}

func wantColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
