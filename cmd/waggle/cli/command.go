// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the waggle
// binary: a dispatch tree over spf13/pflag with struct-tag flag
// binding, typo suggestions, structured help, and explicit exit
// codes.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node in the CLI tree: either a group (Subcommands)
// or an action (Run), never both.
type Command struct {
	// Name as typed by the user ("apply", "nodes").
	Name string

	// Summary is the one-liner in the parent's command listing.
	Summary string

	// Description is the long help text for the command itself.
	Description string

	// Usage overrides the synthesized usage line when set.
	Usage string

	// Examples are rendered at the end of the help output.
	Examples []Example

	// Flags builds the flag set, lazily. Nil means no flags.
	Flags func() *pflag.FlagSet

	// Subcommands dispatched by the first positional argument.
	Subcommands []*Command

	// Run executes the command with the post-flag-parsing args.
	Run func(args []string) error

	parent *Command
}

// Example is one usage example in help output.
type Example struct {
	Description string
	Command     string
}

// Execute parses args and either descends into a subcommand or runs
// this command. It is the entry point for the whole tree.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpArg(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name := args[0]
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.Execute(args[1:])
			}
		}
		if suggestion := closestCommand(name, c.Subcommands); suggestion != "" {
			return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
				name, suggestion, c.path())
		}
		return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", name, c.path())
	}

	if c.Run == nil {
		c.PrintHelp(os.Stderr)
		if len(args) == 0 {
			return fmt.Errorf("subcommand required")
		}
		return fmt.Errorf("subcommand required (got %q)", args[0])
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			if suggestion := closestFlag(args, c.Flags()); suggestion != "" {
				return fmt.Errorf("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
					err, suggestion, c.path())
			}
			return fmt.Errorf("%s\n\nRun '%s --help' for usage.", err, c.path())
		}
		args = flagSet.Args()
	}

	return c.Run(args)
}

// PrintHelp writes the structured help text for this command.
func (c *Command) PrintHelp(w io.Writer) {
	if c.Usage != "" {
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	} else if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", c.path())
	} else {
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", c.path())
	}

	switch {
	case c.Description != "":
		fmt.Fprintf(w, "\n%s\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "\n%s\n", c.Summary)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		var rendered strings.Builder
		flagSet.SetOutput(&rendered)
		flagSet.PrintDefaults()
		if rendered.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", rendered.String())
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n", example.Description)
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", c.path())
	}
}

// path returns the full command path ("waggle apply").
func (c *Command) path() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.path() + " " + c.Name
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
