package bench

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/observability"
)

// MissingModelMessage is reported when no model directory is given.
const MissingModelMessage = "Please provide a path to the model directory"

// maxOutput bounds the captured output kept per job.
const maxOutput = 64 << 10

// Result is the outcome of one job.
type Result struct {
	ID        string
	Benchmark string
	ExitCode  int
	Duration  time.Duration
	Output    string // tail of combined stdout/stderr
	Err       error
}

// Failed reports whether the job did not exit cleanly.
func (r Result) Failed() bool { return r.Err != nil || r.ExitCode != 0 }

// Runner launches benchmark jobs in parallel.
type Runner struct {
	Launcher Launcher
	Logger   *log.Logger
	Parallel int // max concurrent jobs, 0 for unlimited
}

// Run starts one job per benchmark, working in suiteDir, and waits for all
// of them. Results are returned in benchmark order. The error joins one
// JOB_FAILED error per failed job.
func (r *Runner) Run(ctx context.Context, model, suiteDir string, benchmarks []string) ([]Result, error) {
	if model == "" {
		return nil, errors.NewConfigError("model", MissingModelMessage)
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	launcher := r.Launcher
	if launcher == nil {
		launcher = MPILauncher{}
	}

	results := make([]Result, len(benchmarks))
	var g errgroup.Group
	if r.Parallel > 0 {
		g.SetLimit(r.Parallel)
	}
	for i, b := range benchmarks {
		job := Job{ID: uuid.NewString(), Benchmark: b, Model: model, Dir: suiteDir}
		logger.Info("Running benchmark", "benchmark", b, "job", job.ID)
		g.Go(func() error {
			results[i] = runJob(ctx, launcher, job)
			res := results[i]
			if res.Failed() {
				logger.Error("Benchmark failed", "benchmark", b, "job", job.ID, "exit", res.ExitCode, "err", res.Err)
			} else {
				logger.Debug("Benchmark finished", "benchmark", b, "job", job.ID, "duration", res.Duration.Round(time.Millisecond))
			}
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range results {
		if !res.Failed() {
			continue
		}
		cause := res.Err
		if cause == nil {
			cause = fmt.Errorf("exit status %d", res.ExitCode)
		}
		errs = append(errs, errors.Wrap(errors.ErrCodeJobFailed, cause, "benchmark %s (job %s)", res.Benchmark, res.ID))
	}
	return results, stderrors.Join(errs...)
}

func runJob(ctx context.Context, l Launcher, job Job) Result {
	hooks := observability.Bench()
	hooks.OnJobStart(ctx, job.Benchmark, job.ID)

	out := &tailBuffer{limit: maxOutput}
	start := time.Now()
	code, err := l.Launch(ctx, job, out, out)
	hooks.OnJobComplete(ctx, job.Benchmark, job.ID, code, time.Since(start), err)
	return Result{
		ID:        job.ID,
		Benchmark: job.Benchmark,
		ExitCode:  code,
		Duration:  time.Since(start),
		Output:    out.String(),
		Err:       err,
	}
}

// tailBuffer keeps the last limit bytes written to it. Safe for the
// concurrent stdout/stderr writes exec makes.
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf.Write(p)
	if over := t.buf.Len() - t.limit; over > 0 {
		t.buf.Next(over)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}
