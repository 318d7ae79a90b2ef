// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package deployment

import (
	"fmt"
	"time"
)

// State is a position in the per-task pipeline state machine.
//
//	Queued -> Transferring -> Succeeded            (goal == push)
//	Queued -> Transferring -> Activating -> Succeeded
//	Transferring | Activating -> Failed
//	Queued -> Cancelled                            (run cancelled before admission)
//
// Succeeded, Failed, and Cancelled are terminal.
type State int

const (
	StateQueued State = iota
	StateTransferring
	StateActivating
	StateSucceeded
	StateFailed
	StateCancelled
)

// String returns a lower-case label for log lines and the progress
// indicator.
func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateTransferring:
		return "transferring"
	case StateActivating:
		return "activating"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition can occur.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// Event records one state transition of one task. Events are emitted
// by the executor on a best-effort basis: delivery is fire-and-forget
// and a full event channel drops the event rather than slowing the
// run down. Consumers that need exact terminal states read the
// [Summary] instead.
type Event struct {
	Task string
	From State
	To   State
	Time time.Time
}
