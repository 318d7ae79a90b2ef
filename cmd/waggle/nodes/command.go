// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package nodes implements "waggle nodes": inspect the inventory
// without deploying anything.
package nodes

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/waggle-tools/waggle/cmd/waggle/cli"
	"github.com/waggle-tools/waggle/lib/hive"
)

type nodesParams struct {
	Hive string `flag:"hive" desc:"path to the hive file (defaults to $WAGGLE_HIVE)"`
	On   string `flag:"on" desc:"selector limiting which nodes are listed"`
}

// Command returns the "nodes" subcommand.
func Command() *cli.Command {
	var params nodesParams

	return &cli.Command{
		Name:    "nodes",
		Summary: "List the nodes in the hive",
		Description: `List every node the hive file knows about, with its tags, its
deployment target, and whether it could be deployed right now. Nodes
without a target or without a built closure would be skipped by
"waggle apply"; this command shows why before a deployment is
attempted.`,
		Usage: "waggle nodes [flags]",
		Examples: []cli.Example{
			{
				Description: "List the whole inventory",
				Command:     "waggle nodes",
			},
			{
				Description: "List only the web nodes",
				Command:     "waggle nodes --on @web",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("nodes", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			return run(&params)
		},
	}
}

func run(params *nodesParams) error {
	inventory, err := loadHive(params.Hive)
	if err != nil {
		return err
	}
	selection, err := inventory.Select(params.On)
	if err != nil {
		return err
	}

	writeTable(os.Stdout, inventory, selection)
	return nil
}

func loadHive(path string) (*hive.Hive, error) {
	if path != "" {
		return hive.LoadFile(path)
	}
	return hive.Load()
}

// writeTable renders one row per selected node.
func writeTable(w io.Writer, inventory *hive.Hive, selection []string) {
	table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(table, "NAME\tTAGS\tTARGET\tSTATUS")
	for _, name := range selection {
		node := inventory.Nodes[name]
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			name, strings.Join(node.Tags, ","), targetColumn(node), statusColumn(node))
	}
	table.Flush()
}

func targetColumn(node hive.Node) string {
	if node.Target == nil {
		return "-"
	}
	return node.Target.String()
}

func statusColumn(node hive.Node) string {
	switch {
	case node.Target == nil:
		return "no target"
	case node.Closure == "":
		return "not built"
	default:
		return "deployable"
	}
}
