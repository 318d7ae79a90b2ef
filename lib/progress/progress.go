// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package progress renders deployment state transitions for the
// operator. It is purely observational: it consumes the executor's
// event stream and never feeds anything back, so a slow terminal can
// never slow a deployment down (the executor drops events rather
// than wait, and the summary is computed from outcomes, not from
// this stream).
//
// Two modes exist. Verbose prints one line per transition. The
// default renders a single aggregate line — counts of queued,
// in-flight, succeeded, and failed tasks — rewritten in place when
// stderr is a terminal, and reduced to terminal-transition lines
// when it is not (CI logs should not fill up with redraws).
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/waggle-tools/waggle/lib/deployment"
)

var (
	succeededStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	inFlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Reporter consumes executor events and renders them. Create one per
// run; it is not restartable.
type Reporter struct {
	out         *termenv.Output
	verbose     bool
	interactive bool

	total     int
	inFlight  int
	succeeded int
	failed    int
	cancelled int
}

// New returns a reporter writing to stderr. Verbose selects
// line-per-transition output; otherwise the aggregate indicator is
// used, in place when stderr is a terminal.
func New(total int, verbose bool) *Reporter {
	interactive := !verbose && term.IsTerminal(int(os.Stderr.Fd()))
	return newReporter(os.Stderr, total, verbose, interactive)
}

// newReporter is the test seam: any writer, forced interactivity.
func newReporter(w io.Writer, total int, verbose, interactive bool) *Reporter {
	return &Reporter{
		out:         termenv.NewOutput(w),
		verbose:     verbose,
		interactive: interactive,
		total:       total,
	}
}

// Run consumes events until the channel is closed, rendering as it
// goes, then leaves the terminal on a fresh line. Call it from its
// own goroutine; the executor owns and closes the channel's sending
// side indirectly via the caller.
func (r *Reporter) Run(events <-chan deployment.Event) {
	for event := range events {
		r.observe(event)
		if r.verbose {
			r.printTransition(event)
			continue
		}
		if r.interactive {
			r.redrawIndicator()
			continue
		}
		if event.To.Terminal() {
			r.printTransition(event)
		}
	}
	if r.interactive {
		r.redrawIndicator()
		fmt.Fprintln(r.out)
	}
}

// observe updates the aggregate counters for one transition.
func (r *Reporter) observe(event deployment.Event) {
	switch event.To {
	case deployment.StateTransferring:
		r.inFlight++
	case deployment.StateSucceeded:
		r.inFlight--
		r.succeeded++
	case deployment.StateFailed:
		r.inFlight--
		r.failed++
	case deployment.StateCancelled:
		r.cancelled++
	}
}

// printTransition writes one human-readable line for a transition.
func (r *Reporter) printTransition(event deployment.Event) {
	label := event.To.String()
	switch event.To {
	case deployment.StateSucceeded:
		label = succeededStyle.Render(label)
	case deployment.StateFailed:
		label = failedStyle.Render(label)
	case deployment.StateCancelled:
		label = faintStyle.Render(label)
	}
	fmt.Fprintf(r.out, "%s %s: %s\n",
		faintStyle.Render(event.Time.Format("15:04:05")), event.Task, label)
}

// redrawIndicator rewrites the aggregate line in place.
func (r *Reporter) redrawIndicator() {
	queued := r.total - r.inFlight - r.succeeded - r.failed - r.cancelled
	if queued < 0 {
		queued = 0
	}

	line := fmt.Sprintf("%s · %s · %s · %s",
		inFlightStyle.Render(fmt.Sprintf("%d in flight", r.inFlight)),
		succeededStyle.Render(fmt.Sprintf("%d ok", r.succeeded)),
		failedStyle.Render(fmt.Sprintf("%d failed", r.failed)),
		faintStyle.Render(fmt.Sprintf("%d queued", queued)))
	if r.cancelled > 0 {
		line += faintStyle.Render(fmt.Sprintf(" · %d cancelled", r.cancelled))
	}

	fmt.Fprint(r.out, "\r")
	r.out.ClearLineRight()
	fmt.Fprint(r.out, line)
}
