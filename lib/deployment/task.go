// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package deployment

import "context"

// TransferOptions governs how a closure is moved to a host. The
// options affect the mechanics of the copy, never whether it happens.
type TransferOptions struct {
	// UseCompression compresses the closure stream on the wire.
	UseCompression bool
	// UseSubstitutes lets the remote host fetch paths from its own
	// substituters instead of receiving them over the connection.
	UseSubstitutes bool
}

// DefaultTransferOptions enables both compression and substituters;
// the CLI flags opt out of each individually.
func DefaultTransferOptions() TransferOptions {
	return TransferOptions{UseCompression: true, UseSubstitutes: true}
}

// Host is the remote host capability the executor runs against. Both
// operations block for the duration of the remote work and must be
// independently invokable per host with no state shared across hosts.
//
// Implementations must treat ctx as advisory for setup only: an
// in-flight activation left half-finished can leave a host in an
// inconsistent state, so the executor hands phases a context that is
// never cancelled mid-run.
type Host interface {
	// CopyClosure transfers the closure (and its dependency graph) to
	// the host.
	CopyClosure(ctx context.Context, closure string, options TransferOptions) error

	// Activate runs the activation action for the goal against the
	// previously copied closure.
	Activate(ctx context.Context, closure string, goal Goal) error
}

// Task is one host's end-to-end deployment pipeline for a single run.
// Tasks are constructed once by [Assemble], are immutable afterwards,
// and are owned exclusively by the executor while [Run] is in flight.
type Task struct {
	// Name identifies the task within the run. Unique; [Run] rejects
	// duplicates before scheduling anything.
	Name string

	// Closure is the store path of the already-built system closure.
	// Opaque to the executor.
	Closure string

	// Goal selects the activation action, or none for push.
	Goal Goal

	// Options governs the transfer phase.
	Options TransferOptions

	// Host is the remote capability the pipeline runs against.
	Host Host
}
