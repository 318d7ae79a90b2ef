// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package deployment contains the deployment task model and the
// bounded-parallelism execution engine. A run turns a list of
// (host, closure, goal) triples into independent per-host pipelines,
// executes them concurrently under a configurable ceiling, and
// aggregates the per-host outcomes into a fleet-wide summary.
//
// Each task moves through a short state machine: transfer the closure
// to the host, then (for every goal except push) activate it. Both
// phases can fail; a failure is terminal for that task and invisible
// to every other task. The executor never retries and never lets one
// pipeline's error abort a sibling.
//
// The package is deliberately free of transport knowledge: remote
// operations happen behind the [Host] interface, implemented for
// production by lib/sshexec and by in-memory stubs in tests.
//
// Key exports:
//
//   - [Task], [Goal], [TransferOptions] -- the unit of work
//   - [Assemble] -- join selection, closures, and connectivity into
//     a task list and a skip set
//   - [Run] -- execute a task list under a parallelism ceiling
//   - [Summary] -- fleet-wide outcome, including the exit-code policy
//   - [Event] -- state transitions streamed to the progress reporter
package deployment
