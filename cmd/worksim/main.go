// Command worksim replays a JSON-described workload through flowq,
// first as one bounded batch via Queue, then through a priority Pool.
//
// Usage:
//
//	worksim [-config config.yml] [-scenario scenario.json]
//
// The scenario file is validated against an embedded JSON schema
// before anything runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/baxromumarov/flowq"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config")
	scenarioPath := flag.String("scenario", "", "path to the JSON scenario (overrides config)")
	flag.Parse()

	cfg := loadConfig(*configPath)
	fmt.Printf("Loaded config: %+v\n", cfg)

	path := cfg.Scenario
	if *scenarioPath != "" {
		path = *scenarioPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "worksim: read scenario: %v\n", err)
		os.Exit(1)
	}
	sc, err := decodeScenario(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "worksim: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scenario %q: %d tasks\n", sc.Name, len(sc.Tasks))

	runQueuePhase(sc, cfg.Ceiling)
	runPoolPhase(sc, cfg.Workers)
}

// simulate turns one scenario entry into a runnable task.
func simulate(st SimTask) flowq.Task[string] {
	d := time.Duration(st.DurationMS) * time.Millisecond
	return func(ctx context.Context) (string, error) {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", context.Cause(ctx)
		}
		if st.Fail {
			return "", fmt.Errorf("task %s failed", st.ID)
		}
		return st.ID, nil
	}
}

// runQueuePhase runs the whole scenario as a single bounded batch.
func runQueuePhase(sc Scenario, ceiling int) {
	fmt.Printf("\n=== Queue phase (ceiling=%d) ===\n", ceiling)

	tasks := make([]flowq.Task[string], len(sc.Tasks))
	for i, st := range sc.Tasks {
		tasks[i] = simulate(st)
	}

	var active, maxActive atomic.Int32
	start := time.Now()
	// Drain on failure so every started task reports before the summary.
	results, err := flowq.Queue(context.Background(), tasks, ceiling,
		flowq.WithDrainOnError(),
		flowq.WithOnTaskStart(func(info flowq.TaskInfo) {
			cur := active.Add(1)
			for {
				old := maxActive.Load()
				if cur <= old || maxActive.CompareAndSwap(old, cur) {
					break
				}
			}
			fmt.Printf("  start %s\n", sc.Tasks[info.Index].ID)
		}),
		flowq.WithOnTaskDone(func(info flowq.TaskInfo, err error, d time.Duration) {
			active.Add(-1)
			status := "done"
			if err != nil {
				status = "failed"
			}
			fmt.Printf("  %-6s %s (%v)\n", status, sc.Tasks[info.Index].ID, d.Round(time.Millisecond))
		}),
	)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		fmt.Printf("queue rejected after %v: %v\n", elapsed, err)
	} else {
		fmt.Printf("queue resolved after %v, completion order: %v\n", elapsed, results)
	}
	fmt.Printf("peak concurrency: %d\n", maxActive.Load())
}

// runPoolPhase replays the scenario through a long-lived pool,
// honoring per-task priorities.
func runPoolPhase(sc Scenario, workers int) {
	fmt.Printf("\n=== Pool phase (workers=%d) ===\n", workers)

	p := flowq.NewPool[string](context.Background(), workers)

	handles := make([]*flowq.Result[string], len(sc.Tasks))
	for i, st := range sc.Tasks {
		r, err := p.SubmitPriority(simulate(st), st.Priority)
		if err != nil {
			fmt.Fprintf(os.Stderr, "worksim: submit %s: %v\n", st.ID, err)
			os.Exit(1)
		}
		handles[i] = r
	}

	for i, s := range flowq.AllSettled(handles...) {
		if s.Fulfilled() {
			fmt.Printf("  %-10s fulfilled: %s\n", sc.Tasks[i].ID, s.Value)
		} else {
			fmt.Printf("  %-10s rejected: %v\n", sc.Tasks[i].ID, s.Reason)
		}
	}

	if err := p.Close(); err != nil {
		fmt.Printf("pool finished with task errors:\n%v\n", err)
	}

	stats := p.Stats()
	fmt.Printf("pool stats: submitted=%d completed=%d errored=%d\n",
		stats.Submitted, stats.Completed, stats.Errored)
}
