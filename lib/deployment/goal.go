// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package deployment

import "fmt"

// Goal is the requested end state for a host. It is a closed
// enumeration: every goal except [GoalPush] maps one-to-one onto a
// switch-to-configuration action on the remote host.
type Goal int

const (
	// GoalSwitch activates the new configuration now and makes it the
	// boot default. This is the default goal.
	GoalSwitch Goal = iota
	// GoalPush copies the closure to the host without activating it.
	GoalPush
	// GoalBoot makes the new configuration the boot default without
	// activating it now.
	GoalBoot
	// GoalTest activates the new configuration now without touching
	// the boot default.
	GoalTest
	// GoalDryActivate shows what would change without activating.
	GoalDryActivate
)

// goalTokens maps the CLI tokens onto goals. The token set is fixed;
// anything else is a configuration error surfaced by [ParseGoal].
var goalTokens = map[string]Goal{
	"push":         GoalPush,
	"switch":       GoalSwitch,
	"boot":         GoalBoot,
	"test":         GoalTest,
	"dry-activate": GoalDryActivate,
}

// ParseGoal converts a CLI token into a [Goal]. The error lists the
// accepted tokens so a typo is self-explanatory.
func ParseGoal(token string) (Goal, error) {
	goal, ok := goalTokens[token]
	if !ok {
		return GoalSwitch, fmt.Errorf(
			"unknown goal %q (expected push, switch, boot, test, or dry-activate)", token)
	}
	return goal, nil
}

// String returns the CLI token for the goal.
func (g Goal) String() string {
	switch g {
	case GoalPush:
		return "push"
	case GoalSwitch:
		return "switch"
	case GoalBoot:
		return "boot"
	case GoalTest:
		return "test"
	case GoalDryActivate:
		return "dry-activate"
	}
	return fmt.Sprintf("Goal(%d)", int(g))
}

// RequiresActivation reports whether the goal has an activation
// phase. Push-only deployments stop after the transfer.
func (g Goal) RequiresActivation() bool {
	return g != GoalPush
}

// ActivationAction returns the switch-to-configuration argument for
// the goal. Calling this for [GoalPush] is a programming error.
func (g Goal) ActivationAction() string {
	switch g {
	case GoalSwitch:
		return "switch"
	case GoalBoot:
		return "boot"
	case GoalTest:
		return "test"
	case GoalDryActivate:
		return "dry-activate"
	}
	panic(fmt.Sprintf("goal %v has no activation action", g))
}
