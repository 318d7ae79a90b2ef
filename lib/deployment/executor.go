// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package deployment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Options configures a [Run].
type Options struct {
	// Parallelism is the maximum number of tasks in flight at once.
	// 0 means unbounded: every task may run simultaneously.
	Parallelism int

	// Events receives state-transition events. May be nil. Sends are
	// non-blocking: a full channel drops events rather than gating
	// execution, so the channel should be buffered generously if the
	// consumer cares about completeness of the stream.
	Events chan<- Event
}

// emit delivers an event without ever blocking the executor.
func (o Options) emit(task string, from, to State) {
	if o.Events == nil {
		return
	}
	event := Event{Task: task, From: from, To: to, Time: time.Now()}
	select {
	case o.Events <- event:
	default:
	}
}

// Run executes the task list under the configured parallelism ceiling
// and returns a summary covering every task.
//
// Tasks are admitted in slice order as worker slots free up; each
// admitted task runs its pipeline (transfer, then activation unless
// the goal is push) and reaches exactly one terminal outcome. A
// failing task affects nothing but its own outcome: per-task errors
// are captured into the summary and never returned by Run itself.
// Run returns an error only for malformed input (duplicate task
// names), detected before anything is scheduled.
//
// Cancelling ctx stops admission: queued tasks are recorded as
// cancelled, while tasks already transferring or activating run to
// completion — interrupting a half-finished remote activation could
// leave the host in an inconsistent state, so in-flight phases
// execute on a detached context. Run returns once every admitted
// task is terminal.
func Run(ctx context.Context, tasks []Task, opts Options) (Summary, error) {
	seen := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if _, dup := seen[task.Name]; dup {
			return Summary{}, fmt.Errorf("duplicate task name %q", task.Name)
		}
		seen[task.Name] = struct{}{}
	}

	// Admission gate: a buffered channel used as a counting
	// semaphore. nil when the run is unbounded.
	var slots chan struct{}
	if opts.Parallelism > 0 {
		slots = make(chan struct{}, opts.Parallelism)
	}

	// Buffered so workers can report their outcome and release their
	// slot without waiting on collection.
	results := make(chan Outcome, len(tasks))

	// Remote phases run on a context that survives cancellation of
	// the run; see the cancellation contract above.
	phaseCtx := context.WithoutCancel(ctx)

	var wait sync.WaitGroup
	var cancelled []string
	for _, task := range tasks {
		if ctx.Err() != nil {
			opts.emit(task.Name, StateQueued, StateCancelled)
			cancelled = append(cancelled, task.Name)
			continue
		}
		if slots != nil {
			select {
			case slots <- struct{}{}:
				// A slot and cancellation can become available at the
				// same moment; cancellation wins.
				if ctx.Err() != nil {
					<-slots
					opts.emit(task.Name, StateQueued, StateCancelled)
					cancelled = append(cancelled, task.Name)
					continue
				}
			case <-ctx.Done():
				opts.emit(task.Name, StateQueued, StateCancelled)
				cancelled = append(cancelled, task.Name)
				continue
			}
		}
		wait.Add(1)
		go func(task Task) {
			defer wait.Done()
			if slots != nil {
				defer func() { <-slots }()
			}
			results <- runPipeline(phaseCtx, task, opts)
		}(task)
	}

	wait.Wait()
	close(results)

	summary := Summary{Cancelled: cancelled}
	for outcome := range results {
		summary.Attempted++
		if outcome.Failed() {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
	sort.Slice(summary.Outcomes, func(i, j int) bool {
		return summary.Outcomes[i].Name < summary.Outcomes[j].Name
	})
	return summary, nil
}

// runPipeline advances one task from admission to a terminal state.
// A panic anywhere in the host capability is converted into a failed
// outcome so it cannot take sibling tasks down with it.
func runPipeline(ctx context.Context, task Task, opts Options) (outcome Outcome) {
	state := StateTransferring
	opts.emit(task.Name, StateQueued, StateTransferring)

	defer func() {
		if recovered := recover(); recovered != nil {
			phase := PhaseTransfer
			if state == StateActivating {
				phase = PhaseActivation
			}
			opts.emit(task.Name, state, StateFailed)
			outcome = Outcome{
				Name:  task.Name,
				Phase: phase,
				Err:   fmt.Errorf("panic during %s: %v", phase, recovered),
			}
		}
	}()

	if err := task.Host.CopyClosure(ctx, task.Closure, task.Options); err != nil {
		opts.emit(task.Name, StateTransferring, StateFailed)
		return Outcome{Name: task.Name, Phase: PhaseTransfer, Err: err}
	}

	if !task.Goal.RequiresActivation() {
		opts.emit(task.Name, StateTransferring, StateSucceeded)
		return Outcome{Name: task.Name, Phase: PhaseTransfer}
	}

	state = StateActivating
	opts.emit(task.Name, StateTransferring, StateActivating)

	if err := task.Host.Activate(ctx, task.Closure, task.Goal); err != nil {
		opts.emit(task.Name, StateActivating, StateFailed)
		return Outcome{Name: task.Name, Phase: PhaseActivation, Err: err}
	}

	opts.emit(task.Name, StateActivating, StateSucceeded)
	return Outcome{Name: task.Name, Phase: PhaseActivation}
}
