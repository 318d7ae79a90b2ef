// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Waggle is a CLI for deploying pre-built NixOS system closures to a
// fleet of remote machines. It transfers each node's closure over ssh
// and activates it according to the requested goal, in parallel, with
// per-host failure isolation.
package main

import (
	"fmt"
	"os"

	"github.com/waggle-tools/waggle/cmd/waggle/commands"
)

func main() {
	if err := commands.Root().Execute(os.Args[1:]); err != nil {
		// Commands that already reported their result (like a
		// deployment with failed hosts) return an error carrying just
		// the exit code; don't print a redundant "error:" line for
		// those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
