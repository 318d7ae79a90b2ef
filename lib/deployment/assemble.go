// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package deployment

import "sort"

// Assemble joins the selected names with their built closures and
// remote capabilities. Names whose host is nil (no way to reach the
// machine) or whose closure is missing are diverted to the skip set
// instead of being scheduled. Pure partition: no network or build
// activity happens here.
//
// The returned task list and skip set are disjoint by name and
// together cover the selection exactly. Both are sorted by name.
func Assemble(selection []string, closures map[string]string, hosts map[string]Host, goal Goal, options TransferOptions) ([]Task, []SkipEntry) {
	names := make([]string, len(selection))
	copy(names, selection)
	sort.Strings(names)

	var tasks []Task
	var skips []SkipEntry
	for _, name := range names {
		closure, built := closures[name]
		if !built || closure == "" {
			skips = append(skips, SkipEntry{Name: name, Reason: "no built closure"})
			continue
		}
		host := hosts[name]
		if host == nil {
			skips = append(skips, SkipEntry{Name: name, Reason: "no deployment target"})
			continue
		}
		tasks = append(tasks, Task{
			Name:    name,
			Closure: closure,
			Goal:    goal,
			Options: options,
			Host:    host,
		})
	}
	return tasks, skips
}
