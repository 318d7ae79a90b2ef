// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package apply implements "waggle apply": deploy built closures to
// the selected nodes and bring each one to the requested goal.
package apply

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/waggle-tools/waggle/cmd/waggle/cli"
	"github.com/waggle-tools/waggle/lib/deployment"
	"github.com/waggle-tools/waggle/lib/hive"
	"github.com/waggle-tools/waggle/lib/progress"
	"github.com/waggle-tools/waggle/lib/sshexec"
)

type applyParams struct {
	Hive          string `flag:"hive" desc:"path to the hive file (defaults to $WAGGLE_HIVE)"`
	On            string `flag:"on" desc:"selector limiting which nodes are deployed (name globs and @tags, comma-separated)"`
	Parallel      int    `flag:"parallel,p" desc:"maximum number of hosts deployed in parallel; 0 disables the limit" default:"10"`
	Verbose       bool   `flag:"verbose,v" desc:"print every state transition instead of the progress indicator"`
	NoSubstitutes bool   `flag:"no-substitutes" desc:"do not use substituters when copying closures"`
	NoGzip        bool   `flag:"no-gzip" desc:"do not compress closure transfers"`
}

// Command returns the "apply" subcommand.
func Command() *cli.Command {
	var params applyParams

	return &cli.Command{
		Name:    "apply",
		Summary: "Apply configurations on remote machines",
		Description: `Deploy the built system closures recorded in the hive file to the
selected nodes and bring each node to the requested goal.

The goal is the same as the switch-to-configuration targets, plus
"push", which only copies the closure without activating anything.
The default goal is "switch".

Nodes deploy in parallel up to the --parallel limit. A node that
fails to transfer or activate is reported and counted, but never
stops the other nodes. Nodes without a deployment target (or without
a built closure) are skipped and reported; skips alone do not fail
the run. Interrupting the run stops new nodes from starting while
nodes already deploying run to completion.`,
		Usage: "waggle apply [push|switch|boot|test|dry-activate] [flags]",
		Examples: []cli.Example{
			{
				Description: "Activate the new configuration everywhere",
				Command:     "waggle apply",
			},
			{
				Description: "Copy closures to the web nodes without activating",
				Command:     "waggle apply push --on @web",
			},
			{
				Description: "Make the configuration the boot default on one host, serially",
				Command:     "waggle apply boot --on alpha --parallel 1",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("apply", &params)
		},
		Run: func(args []string) error {
			return run(args, &params)
		},
	}
}

func run(args []string, params *applyParams) error {
	goal, err := goalFromArgs(args)
	if err != nil {
		return err
	}
	if params.Parallel < 0 {
		return fmt.Errorf("--parallel must be non-negative, got %d", params.Parallel)
	}

	logger := cli.NewLogger(params.Verbose).With("command", "apply")

	inventory, err := loadHive(params.Hive)
	if err != nil {
		return err
	}

	selection, err := inventory.Select(params.On)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		logger.Warn("no hosts matched", "selector", params.On)
		return &cli.ExitError{Code: cli.ExitEmptySelection}
	}
	if len(selection) == len(inventory.Nodes) {
		logger.Info("deploying all nodes", "count", len(selection), "goal", goal.String())
	} else {
		logger.Info("deploying selected nodes",
			"selected", len(selection), "known", len(inventory.Nodes), "goal", goal.String())
	}

	options := deployment.TransferOptions{
		UseCompression: !params.NoGzip,
		UseSubstitutes: !params.NoSubstitutes,
	}
	tasks, skips := deployment.Assemble(selection, inventory.Closures(),
		buildHosts(inventory, selection), goal, options)
	if len(skips) > 0 {
		logger.Info("applying configurations", "tasks", len(tasks), "skipped", len(skips))
	} else {
		logger.Info("applying configurations", "tasks", len(tasks))
	}

	// Interrupt stops admission of queued nodes; in-flight nodes
	// finish their deployment before the run returns.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan deployment.Event, 8*len(tasks)+16)
	reporter := progress.New(len(tasks), params.Verbose)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		reporter.Run(events)
	}()

	summary, err := deployment.Run(ctx, tasks, deployment.Options{
		Parallelism: params.Parallel,
		Events:      events,
	})
	close(events)
	<-reporterDone
	if err != nil {
		return err
	}

	summary.Skipped = len(skips)
	summary.Skips = skips
	writeReport(os.Stdout, summary)

	if code := summary.ExitCode(); code != 0 {
		return &cli.ExitError{Code: code}
	}
	return nil
}

// goalFromArgs resolves the optional positional goal, defaulting to
// switch.
func goalFromArgs(args []string) (deployment.Goal, error) {
	switch len(args) {
	case 0:
		return deployment.GoalSwitch, nil
	case 1:
		return deployment.ParseGoal(args[0])
	default:
		return deployment.GoalSwitch, fmt.Errorf("expected at most one argument (the goal), got %d", len(args))
	}
}

// loadHive reads the hive named by the flag, falling back to
// WAGGLE_HIVE.
func loadHive(path string) (*hive.Hive, error) {
	if path != "" {
		return hive.LoadFile(path)
	}
	return hive.Load()
}

// buildHosts constructs the ssh capability for every selected node
// that has a target. Nodes without one stay absent from the map and
// end up in the skip set.
func buildHosts(inventory *hive.Hive, selection []string) map[string]deployment.Host {
	hosts := make(map[string]deployment.Host)
	for _, name := range selection {
		node, known := inventory.Nodes[name]
		if !known || node.Target == nil {
			continue
		}
		hosts[name] = sshexec.NewHost(*node.Target)
	}
	return hosts
}
