// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package deployment

// Phase identifies which pipeline phase a task reached.
type Phase int

const (
	// PhaseTransfer is the closure copy to the remote host.
	PhaseTransfer Phase = iota
	// PhaseActivation is the remote switch-to-configuration action.
	PhaseActivation
)

// String returns a lower-case label for reports.
func (p Phase) String() string {
	if p == PhaseActivation {
		return "activation"
	}
	return "transfer"
}

// Outcome is the terminal record of one attempted task: the furthest
// phase it reached and the error that stopped it, if any.
type Outcome struct {
	Name  string
	Phase Phase
	Err   error
}

// Failed reports whether the task ended in failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// SkipEntry records a selected name that never became a task, with
// the reason it was diverted.
type SkipEntry struct {
	Name   string
	Reason string
}

// Summary is the fleet-wide result of one run. Every attempted task
// contributes exactly one entry to Outcomes; names cancelled before
// admission appear in Cancelled; names diverted before scheduling
// appear in Skips.
type Summary struct {
	Attempted int
	Succeeded int
	Failed    int
	Skipped   int

	// Cancelled lists tasks that were still queued when the run was
	// cancelled. They were never dispatched and have no outcome.
	Cancelled []string

	// Outcomes holds one terminal record per attempted task, sorted
	// by name so summaries compare stably across runs.
	Outcomes []Outcome

	Skips []SkipEntry
}

// Failures returns the outcomes of tasks that failed.
func (s Summary) Failures() []Outcome {
	var failures []Outcome
	for _, outcome := range s.Outcomes {
		if outcome.Failed() {
			failures = append(failures, outcome)
		}
	}
	return failures
}

// ExitCode maps the summary onto the process exit status: 0 only if
// at least one task was attempted, every attempted task succeeded,
// and none were cancelled. Skipped hosts are reported but do not
// fail an otherwise successful run; a host that was never attempted
// carries no evidence that the deployment would have failed. A run
// where every matched host was skipped accomplished nothing, though,
// and that must be visible to scripts. The empty-selection case
// exits earlier with its own code and never reaches a Summary.
func (s Summary) ExitCode() int {
	if s.Failed > 0 || len(s.Cancelled) > 0 {
		return 1
	}
	if s.Attempted == 0 && s.Skipped > 0 {
		return 1
	}
	return 0
}
