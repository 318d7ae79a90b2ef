// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package hive

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Select resolves a selector expression against the inventory and
// returns the matching node names, sorted. The expression is a
// comma-separated list of terms; a node is selected if any term
// matches it. Two term forms exist:
//
//   - @tag — nodes carrying the tag
//   - a name glob in path.Match syntax ("web-*", "alpha")
//
// The empty expression selects every node. An empty result is not an
// error here; the caller decides what an empty selection means (for
// apply it is fatal, before anything is scheduled).
func (h *Hive) Select(expression string) ([]string, error) {
	if strings.TrimSpace(expression) == "" {
		return h.Names(), nil
	}

	selected := make(map[string]bool)
	for _, term := range strings.Split(expression, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		if tag, isTag := strings.CutPrefix(term, "@"); isTag {
			for name, node := range h.Nodes {
				if node.HasTag(tag) {
					selected[name] = true
				}
			}
			continue
		}

		for name := range h.Nodes {
			matched, err := path.Match(term, name)
			if err != nil {
				return nil, fmt.Errorf("bad selector pattern %q: %w", term, err)
			}
			if matched {
				selected[name] = true
			}
		}
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
