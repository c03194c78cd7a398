// Command uthreads-demo runs one of a handful of named scenarios against a
// real *uthreads.Runtime and prints the per-thread scheduling statistics
// once it settles. Grounded on toysched/step7's main(): a hand-built
// demo scheduler, seeded with a few sample units of work, run for a fixed
// wall-clock window and then torn down — re-expressed on top of this
// repository's own Runtime instead of the toy G/P/M scheduler, and on
// cobra/pflag for argument parsing instead of toysched's bare main().
package main

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gopherschool/uthreads"
	"github.com/gopherschool/uthreads/internal/logging"
)

var (
	quantum    time.Duration
	maxThreads int
	runFor     time.Duration
	logLevel   = logLevelFlag{level: logging.LevelInfo}
)

// logLevelFlag adapts logging.LogLevel to pflag.Value so --log-level can be
// given as a name ("debug", "info", ...) instead of a bare integer.
type logLevelFlag struct{ level logging.LogLevel }

func (f *logLevelFlag) String() string {
	switch f.level {
	case logging.LevelDebug:
		return "debug"
	case logging.LevelWarn:
		return "warn"
	case logging.LevelError:
		return "error"
	default:
		return "info"
	}
}

func (f *logLevelFlag) Set(s string) error {
	switch s {
	case "debug":
		f.level = logging.LevelDebug
	case "info":
		f.level = logging.LevelInfo
	case "warn":
		f.level = logging.LevelWarn
	case "error":
		f.level = logging.LevelError
	default:
		return fmt.Errorf("unknown log level %q (want debug, info, warn, or error)", s)
	}
	return nil
}

func (f *logLevelFlag) Type() string { return "level" }

var _ pflag.Value = (*logLevelFlag)(nil)

func main() {
	root := &cobra.Command{
		Use:   "uthreads-demo [scenario]",
		Short: "Run a canned uthreads scheduling scenario and print the resulting stats",
		Args:  cobra.ExactArgs(1),
		ValidArgs: []string{
			"s1-spawn", "s2-round-robin", "s3-sleep", "s4-block-resume",
			"s5-self-terminate", "s6-capacity",
		},
		RunE: runScenario,
	}
	root.Flags().DurationVar(&quantum, "quantum", 20*time.Millisecond, "scheduling quantum period")
	root.Flags().IntVar(&maxThreads, "max-threads", 16, "thread table capacity")
	root.Flags().DurationVar(&runFor, "run-for", time.Second, "how long to let the scenario run before reporting")
	root.Flags().VarP(&logLevel, "log-level", "l", "diagnostic log level: debug, info, warn, or error")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(&logging.Config{Level: logLevel.level, Output: os.Stderr})
	rt, err := uthreads.NewRuntime(
		uthreads.WithQuantumPeriod(quantum),
		uthreads.WithMaxThreads(maxThreads),
		uthreads.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("construct runtime: %w", err)
	}
	if err := rt.Init(); err != nil {
		return fmt.Errorf("init runtime: %w", err)
	}
	defer rt.Shutdown()

	spawned, err := scenarios[args[0]](rt)
	if err != nil {
		return err
	}

	time.Sleep(runFor)
	printStats(rt, spawned)
	return nil
}

var scenarios = map[string]func(rt *uthreads.Runtime) ([]int, error){
	"s1-spawn":          scenarioSpawn,
	"s2-round-robin":    scenarioRoundRobin,
	"s3-sleep":          scenarioSleep,
	"s4-block-resume":   scenarioBlockResume,
	"s5-self-terminate": scenarioSelfTerminate,
	"s6-capacity":       scenarioCapacity,
}

// scenarioSpawn spawns a single thread that runs a few rounds of
// sleep-paced busy work and exits,
// exercising the plain Spawn -> dispatch -> implicit-terminate path.
func scenarioSpawn(rt *uthreads.Runtime) ([]int, error) {
	id, err := rt.Spawn(func(self int) {
		busyWork(3)
	})
	if err != nil {
		return nil, err
	}
	return []int{id}, nil
}

// scenarioRoundRobin spawns several threads whose bodies run across many
// quanta with no explicit yielding, to show quantum rotation doing all
// the work.
func scenarioRoundRobin(rt *uthreads.Runtime) ([]int, error) {
	var ids []int
	for i := 0; i < 4; i++ {
		id, err := rt.Spawn(func(self int) {
			busyWork(20)
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// scenarioSleep spawns a thread that sleeps mid-flight, demonstrating the
// sleepUntil wake arithmetic against real ticks.
func scenarioSleep(rt *uthreads.Runtime) ([]int, error) {
	id, err := rt.Spawn(func(self int) {
		busyWork(2)
		_ = rt.Sleep(self, 5)
		busyWork(2)
	})
	if err != nil {
		return nil, err
	}
	return []int{id}, nil
}

// scenarioBlockResume spawns a worker and a watcher: the watcher blocks
// the worker, waits, then resumes it.
func scenarioBlockResume(rt *uthreads.Runtime) ([]int, error) {
	var ids []int
	var mu sync.Mutex
	workerID, err := rt.Spawn(func(self int) {
		busyWork(10)
	})
	if err != nil {
		return nil, err
	}
	mu.Lock()
	ids = append(ids, workerID)
	mu.Unlock()

	watcherID, err := rt.Spawn(func(self int) {
		_ = rt.Block(workerID)
		time.Sleep(5 * quantum)
		_ = rt.Resume(workerID)
	})
	if err != nil {
		return nil, err
	}
	mu.Lock()
	ids = append(ids, watcherID)
	mu.Unlock()
	return ids, nil
}

// scenarioSelfTerminate spawns a thread that terminates itself early
// instead of letting its entry function return.
func scenarioSelfTerminate(rt *uthreads.Runtime) ([]int, error) {
	id, err := rt.Spawn(func(self int) {
		busyWork(2)
		_ = rt.Terminate(self)
		panic("unreachable: Terminate(self) does not return")
	})
	if err != nil {
		return nil, err
	}
	return []int{id}, nil
}

// scenarioCapacity spawns threads until Spawn fails with ErrCapacity; the
// printed report lists every id that was handed out.
func scenarioCapacity(rt *uthreads.Runtime) ([]int, error) {
	var ids []int
	for {
		id, err := rt.Spawn(func(self int) { busyWork(50) })
		if err != nil {
			if uthreads.IsCode(err, uthreads.ErrCapacity) {
				break
			}
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func busyWork(rounds int) {
	for i := 0; i < rounds; i++ {
		time.Sleep(quantum / 4)
	}
}

func printStats(rt *uthreads.Runtime, spawned []int) {
	fmt.Printf("total quantums elapsed: %d\n", rt.GetTotalQuantums())
	fmt.Printf("%-6s %s\n", "tid", "run_quantums")

	ids := append([]int(nil), spawned...)
	sort.Ints(ids)
	for _, id := range ids {
		n, err := rt.GetQuantums(id)
		if err != nil {
			fmt.Printf("%-6d terminated\n", id)
			continue
		}
		fmt.Printf("%-6d %d\n", id, n)
	}
}
