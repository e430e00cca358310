package bench

import (
	"context"
	"io"
	"os/exec"
	"strconv"
)

// Job is one benchmark run.
type Job struct {
	ID        string // uuid
	Benchmark string
	Model     string
	Dir       string // working directory
}

// Launcher starts a job and blocks until it exits. A non-zero exit is
// reported through the exit code; err is for jobs that could not run.
type Launcher interface {
	Launch(ctx context.Context, job Job, stdout, stderr io.Writer) (exitCode int, err error)
}

// MPILauncher runs run_benchmark.py under mpiexec.
type MPILauncher struct {
	MPIExec string // default "mpiexec"
	Python  string // default "python3"
	Script  string // default "run_benchmark.py"
	Procs   int    // default 4
}

// Args returns the full command line for job.
func (l MPILauncher) Args(job Job) []string {
	mpi, py, script, procs := l.MPIExec, l.Python, l.Script, l.Procs
	if mpi == "" {
		mpi = "mpiexec"
	}
	if py == "" {
		py = "python3"
	}
	if script == "" {
		script = "run_benchmark.py"
	}
	if procs <= 0 {
		procs = 4
	}
	return []string{mpi, "-n", strconv.Itoa(procs), py, script, "-m", job.Model, "-b", job.Benchmark}
}

// Launch implements Launcher.
func (l MPILauncher) Launch(ctx context.Context, job Job, stdout, stderr io.Writer) (int, error) {
	args := l.Args(job)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = job.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
