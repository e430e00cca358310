// Package cli implements the benchviz command-line interface.
//
// # Commands
//
//   - render: draw a visualization table and a results store as a figure
//   - benchmark: run every benchmark of a suite against a model
//   - initcond: print the initial conditions of an SBML model
//   - serve: HTTP render service
//   - cache: inspect and clear the artifact cache
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command context (see loggerFromContext).
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sparced/benchviz/pkg/bench"
	"github.com/sparced/benchviz/pkg/buildinfo"
	"github.com/sparced/benchviz/pkg/cache"
	"github.com/sparced/benchviz/pkg/figure/sink"
	"github.com/sparced/benchviz/pkg/observability"
	"github.com/sparced/benchviz/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "benchviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	launcher bench.Launcher // nil means bench.MPILauncher
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "benchviz renders SPARCED benchmark results as plot grids",
		Long: `benchviz renders simulation results into a grid of scatter, line and bar
plots described by a PEtab visualization table, and runs model benchmark
suites.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.NewLogHooks(c.Logger).Register()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.benchmarkCommand())
	root.AddCommand(c.initcondCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the artifact cache directory, $XDG_CACHE_HOME/benchviz
// or ~/.cache/benchviz.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma-separated format list. Empty means svg.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{string(sink.FormatSVG)}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
