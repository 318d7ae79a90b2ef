// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package apply

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/waggle-tools/waggle/lib/deployment"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// writeReport renders the fleet summary: the counts line, then one
// line per failed, cancelled, or skipped node with its cause.
func writeReport(w io.Writer, summary deployment.Summary) {
	counts := fmt.Sprintf("%d attempted, %s, %s, %d skipped",
		summary.Attempted,
		okStyle.Render(fmt.Sprintf("%d succeeded", summary.Succeeded)),
		failStyle.Render(fmt.Sprintf("%d failed", summary.Failed)),
		summary.Skipped)
	if len(summary.Cancelled) > 0 {
		counts += failStyle.Render(fmt.Sprintf(", %d cancelled", len(summary.Cancelled)))
	}
	fmt.Fprintln(w, headerStyle.Render("deployment finished:"), counts)

	for _, failure := range summary.Failures() {
		fmt.Fprintf(w, "  %s %s: %s failed: %v\n",
			failStyle.Render("✗"), failure.Name, failure.Phase, failure.Err)
	}
	for _, name := range summary.Cancelled {
		fmt.Fprintf(w, "  %s %s: cancelled before it started\n",
			mutedStyle.Render("−"), name)
	}
	for _, skip := range summary.Skips {
		fmt.Fprintf(w, "  %s %s: skipped (%s)\n",
			mutedStyle.Render("−"), skip.Name, skip.Reason)
	}
}
