// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// suggestionThreshold is the largest edit distance still offered as a
// "did you mean". Three covers the common typo classes: a dropped
// character, an extra character, a transposition.
const suggestionThreshold = 3

// closestCommand returns the subcommand name nearest to the unknown
// input, or "" when nothing is close enough.
func closestCommand(unknown string, commands []*Command) string {
	best, bestDistance := "", suggestionThreshold+1
	for _, command := range commands {
		if d := editDistance(unknown, command.Name); d < bestDistance {
			best, bestDistance = command.Name, d
		}
	}
	return best
}

// closestFlag finds the first undefined flag in args and returns the
// nearest defined flag, with its dash prefix, or "".
func closestFlag(args []string, flagSet *pflag.FlagSet) string {
	var defined []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		defined = append(defined, f.Name)
	})

	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}
		if flagSet.Lookup(name) != nil {
			continue
		}

		best, bestDistance := "", suggestionThreshold+1
		for _, candidate := range defined {
			if d := editDistance(name, candidate); d < bestDistance {
				best, bestDistance = candidate, d
			}
		}
		if best == "" {
			return ""
		}
		if len(best) == 1 {
			return "-" + best
		}
		return "--" + best
	}
	return ""
}

// editDistance is the Levenshtein distance between two strings,
// computed with a single reusable row.
func editDistance(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return len(a) + len(b)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(b); j++ {
		previousDiagonal := row[0]
		row[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min(row[i]+1, min(row[i-1]+1, previousDiagonal+cost))
			previousDiagonal = row[i]
			row[i] = next
		}
	}
	return row[len(a)]
}
