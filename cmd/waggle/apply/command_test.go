// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package apply

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/waggle-tools/waggle/cmd/waggle/cli"
	"github.com/waggle-tools/waggle/lib/deployment"
	"github.com/waggle-tools/waggle/lib/hive"
	"github.com/waggle-tools/waggle/lib/sshexec"
)

func TestGoalFromArgs(t *testing.T) {
	t.Parallel()

	goal, err := goalFromArgs(nil)
	if err != nil || goal != deployment.GoalSwitch {
		t.Errorf("no args: goal = %v, err = %v, want the switch default", goal, err)
	}

	goal, err = goalFromArgs([]string{"dry-activate"})
	if err != nil || goal != deployment.GoalDryActivate {
		t.Errorf("goal = %v, err = %v, want dry-activate", goal, err)
	}

	if _, err := goalFromArgs([]string{"reboot"}); err == nil {
		t.Error("expected error for invalid goal token")
	}
	if _, err := goalFromArgs([]string{"switch", "boot"}); err == nil {
		t.Error("expected error for extra positional args")
	}
}

func TestBuildHosts(t *testing.T) {
	t.Parallel()

	inventory := &hive.Hive{Nodes: map[string]hive.Node{
		"reachable":   {Target: &sshexec.Target{Host: "alpha.example.com"}},
		"unreachable": {},
	}}

	hosts := buildHosts(inventory, []string{"reachable", "unreachable", "unknown"})
	if hosts["reachable"] == nil {
		t.Error("reachable node missing a capability")
	}
	if _, ok := hosts["unreachable"]; ok {
		t.Error("node without target must not get a capability")
	}
	if _, ok := hosts["unknown"]; ok {
		t.Error("unknown node must not get a capability")
	}
}

func TestRun_EmptySelectionExitsTwo(t *testing.T) {
	hivePath := filepath.Join(t.TempDir(), "hive.yaml")
	content := "nodes:\n  alpha:\n    target: {host: alpha.example.com}\n"
	if err := os.WriteFile(hivePath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	params := &applyParams{Hive: hivePath, On: "nosuchnode", Parallel: 10}
	err := run(nil, params)
	if err == nil {
		t.Fatal("expected an exit error for an empty selection")
	}
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitEmptySelection {
		t.Errorf("err = %v, want ExitError with code %d", err, cli.ExitEmptySelection)
	}
}

func TestRun_RejectsNegativeParallelism(t *testing.T) {
	t.Parallel()

	err := run(nil, &applyParams{Parallel: -1})
	if err == nil || !strings.Contains(err.Error(), "non-negative") {
		t.Errorf("err = %v, want a validation error", err)
	}
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	summary := deployment.Summary{
		Attempted: 2,
		Succeeded: 1,
		Failed:    1,
		Skipped:   1,
		Outcomes: []deployment.Outcome{
			{Name: "alpha"},
			{Name: "beta", Phase: deployment.PhaseActivation, Err: errors.New("unit failed")},
		},
		Skips: []deployment.SkipEntry{{Name: "gamma", Reason: "no deployment target"}},
	}

	var buffer bytes.Buffer
	writeReport(&buffer, summary)
	report := buffer.String()

	for _, want := range []string{
		"2 attempted", "1 succeeded", "1 failed", "1 skipped",
		"beta: activation failed: unit failed",
		"gamma: skipped (no deployment target)",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "alpha:") {
		t.Errorf("succeeded nodes should not be listed individually:\n%s", report)
	}
}
