// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testTree(ran *string) *Command {
	return &Command{
		Name:    "waggle",
		Summary: "Deploy NixOS closures to a fleet",
		Subcommands: []*Command{
			{
				Name:    "apply",
				Summary: "Apply configurations on remote machines",
				Run: func(args []string) error {
					*ran = "apply " + strings.Join(args, " ")
					return nil
				},
			},
			{
				Name:    "nodes",
				Summary: "List the inventory",
				Run: func(args []string) error {
					*ran = "nodes"
					return nil
				},
			},
		},
	}
}

func TestExecute_DispatchesSubcommand(t *testing.T) {
	t.Parallel()

	var ran string
	if err := testTree(&ran).Execute([]string{"apply", "switch"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ran != "apply switch" {
		t.Errorf("ran = %q, want the apply subcommand with its args", ran)
	}
}

func TestExecute_UnknownCommandSuggests(t *testing.T) {
	t.Parallel()

	var ran string
	err := testTree(&ran).Execute([]string{"aply"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "apply"`) {
		t.Errorf("error = %v, want an apply suggestion", err)
	}
	if ran != "" {
		t.Errorf("a command ran despite the dispatch failure: %q", ran)
	}
}

func TestExecute_ParsesFlags(t *testing.T) {
	t.Parallel()

	var verbose bool
	var positional []string
	command := &Command{
		Name: "apply",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			flagSet.BoolVarP(&verbose, "verbose", "v", false, "be verbose")
			return flagSet
		},
		Run: func(args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute([]string{"-v", "switch"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !verbose {
		t.Error("-v not parsed")
	}
	if len(positional) != 1 || positional[0] != "switch" {
		t.Errorf("positional = %v, want [switch]", positional)
	}
}

func TestExecute_UnknownFlagSuggests(t *testing.T) {
	t.Parallel()

	command := &Command{
		Name: "apply",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			flagSet.Bool("verbose", false, "")
			return flagSet
		},
		Run: func([]string) error { return nil },
	}

	err := command.Execute([]string{"--verbos"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--verbose") {
		t.Errorf("error = %v, want a --verbose suggestion", err)
	}
}

func TestExecute_GroupWithoutSubcommandShowsHelp(t *testing.T) {
	t.Parallel()

	var ran string
	if err := testTree(&ran).Execute(nil); err == nil {
		t.Error("a bare group invocation should error")
	}
}

func TestPrintHelp(t *testing.T) {
	t.Parallel()

	var ran string
	root := testTree(&ran)
	root.Examples = []Example{{Description: "Deploy everything", Command: "waggle apply"}}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	help := buffer.String()

	for _, want := range []string{"Usage:", "apply", "nodes", "Deploy everything", "--help"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}
