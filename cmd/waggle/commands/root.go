// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the waggle command tree.
package commands

import (
	"github.com/waggle-tools/waggle/cmd/waggle/apply"
	"github.com/waggle-tools/waggle/cmd/waggle/cli"
	"github.com/waggle-tools/waggle/cmd/waggle/nodes"
)

// Root returns the top-level waggle command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "waggle",
		Summary: "Deploy pre-built NixOS closures to a fleet of machines",
		Description: `Waggle deploys already-built NixOS system closures to the machines
listed in a hive file and brings each one to a requested goal:
copy-only (push), switch, boot, test, or dry-activate.

The hive file records, for every node, the built closure's store path
and how to reach the machine over ssh. Building closures is not
waggle's job; point it at the output of your build pipeline.`,
		Subcommands: []*cli.Command{
			apply.Command(),
			nodes.Command(),
		},
		Examples: []cli.Example{
			{
				Description: "Deploy and activate everywhere",
				Command:     "waggle apply --hive ./hive.yaml",
			},
			{
				Description: "See what would be deployed",
				Command:     "waggle nodes --hive ./hive.yaml",
			},
		},
	}
}
