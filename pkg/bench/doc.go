// Package bench discovers model benchmarks and runs them as parallel jobs.
//
// A benchmark suite is a directory whose subdirectories are benchmarks,
// plus a shared utilities directory ([UtilsDir]) that is not one. [Discover]
// lists the benchmarks in sorted order; [Runner.Run] launches one job per
// benchmark, waits for all of them and reports every failure.
//
// Jobs are started through a [Launcher]. [MPILauncher] runs
//
//	mpiexec -n 4 python3 run_benchmark.py -m <model> -b <benchmark>
//
// from the suite directory. Tests substitute a fake launcher.
package bench
