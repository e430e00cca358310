package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sparced/benchviz/pkg/bench"
)

// ErrSilent is returned by commands that already reported their failure.
// main exits non-zero without printing it.
var ErrSilent = errors.New("silent failure")

type benchmarkOpts struct {
	model    string
	suite    string
	procs    int
	parallel int
	mpiexec  string
	python   string
	script   string
	showLogs bool
}

// benchmarkCommand creates the benchmark command.
func (c *CLI) benchmarkCommand() *cobra.Command {
	opts := benchmarkOpts{suite: "..", procs: 4}

	cmd := &cobra.Command{
		Use:   "benchmark [benchmark...]",
		Short: "Run the model benchmark suite",
		Long: `Run every benchmark of a suite against a model directory.

Each benchmark directory next to benchmark_utils runs as its own job:

  mpiexec -n 4 python3 run_benchmark.py -m <model> -b <benchmark>

Jobs run concurrently and are all awaited. The command fails if any job
exits non-zero. Name benchmarks as arguments to run a subset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.model == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), bench.MissingModelMessage)
				return ErrSilent
			}
			return c.runBenchmark(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "path to the model directory")
	cmd.Flags().StringVar(&opts.suite, "suite", opts.suite, "benchmark suite directory")
	cmd.Flags().IntVarP(&opts.procs, "procs", "n", opts.procs, "MPI processes per benchmark")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "max concurrent benchmarks (0 = all)")
	cmd.Flags().StringVar(&opts.mpiexec, "mpiexec", "mpiexec", "MPI launcher")
	cmd.Flags().StringVar(&opts.python, "python", "python3", "Python interpreter")
	cmd.Flags().StringVar(&opts.script, "script", "run_benchmark.py", "benchmark entry script")
	cmd.Flags().BoolVar(&opts.showLogs, "logs", false, "print the output tail of failed jobs")

	return cmd
}

func (c *CLI) runBenchmark(ctx context.Context, opts benchmarkOpts, only []string) error {
	logger := loggerFromContext(ctx)

	suite, err := filepath.Abs(opts.suite)
	if err != nil {
		return fmt.Errorf("resolve suite: %w", err)
	}
	names, err := bench.Discover(suite, bench.UtilsDir)
	if err != nil {
		return err
	}
	if len(only) > 0 {
		names, err = selectBenchmarks(names, only)
		if err != nil {
			return err
		}
	}
	if len(names) == 0 {
		printWarning("No benchmarks found in %s", suite)
		return nil
	}
	logger.Debug("discovered benchmarks", "suite", suite, "count", len(names))

	launcher := c.launcher
	if launcher == nil {
		launcher = bench.MPILauncher{
			MPIExec: opts.mpiexec,
			Python:  opts.python,
			Script:  opts.script,
			Procs:   opts.procs,
		}
	}
	runner := bench.Runner{Launcher: launcher, Logger: logger, Parallel: opts.parallel}

	prog := newProgress(logger)
	results, runErr := runner.Run(ctx, opts.model, suite, names)
	prog.done(fmt.Sprintf("Ran %d benchmarks", len(results)))

	failed := 0
	for _, res := range results {
		d := res.Duration.Round(time.Millisecond)
		if res.Failed() {
			failed++
			printError("%s %s", res.Benchmark, StyleDim.Render(fmt.Sprintf("exit %d · %s · %s", res.ExitCode, d, res.ID)))
			if opts.showLogs && res.Output != "" {
				printDetail("%s", strings.TrimRight(res.Output, "\n"))
			}
			continue
		}
		printSuccess("%s %s", res.Benchmark, StyleDim.Render(fmt.Sprintf("%s · %s", d, res.ID)))
	}

	if runErr != nil {
		if !opts.showLogs {
			printNextStep("Show job output", "benchviz benchmark --logs -m "+opts.model)
		}
		return fmt.Errorf("%d of %d benchmarks failed: %w", failed, len(results), runErr)
	}
	printKeyValue("Results", filepath.Join(opts.model, "results"))
	return nil
}

// selectBenchmarks keeps the requested names, in request order, and fails
// on names that are not in the suite.
func selectBenchmarks(all, only []string) ([]string, error) {
	known := make(map[string]bool, len(all))
	for _, n := range all {
		known[n] = true
	}
	var out []string
	for _, n := range only {
		if !known[n] {
			return nil, fmt.Errorf("unknown benchmark %q (have: %s)", n, strings.Join(all, ", "))
		}
		out = append(out, n)
	}
	return out, nil
}
