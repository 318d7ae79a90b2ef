// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package sshexec implements the remote host capability over plain
// ssh subprocesses. Transfers go through nix-copy-closure (which runs
// ssh itself, configured via NIX_SSHOPTS); activation is an ssh
// invocation of the closure's switch-to-configuration script.
//
// Each [Host] is independent: no connection pooling, no state shared
// across hosts. Timeouts are whatever the operator's ssh configuration
// says; the deployment engine imposes none of its own.
package sshexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/waggle-tools/waggle/lib/deployment"
	"github.com/waggle-tools/waggle/lib/nix"
)

// Target describes how to reach one machine. The zero User means the
// current user; the zero Port means ssh's default.
type Target struct {
	Host string `yaml:"host"`
	User string `yaml:"user,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// String returns [user@]host[:port] for log lines and reports.
func (t Target) String() string {
	s := t.destination()
	if t.Port != 0 {
		s += ":" + strconv.Itoa(t.Port)
	}
	return s
}

// destination returns the [user@]host form both ssh and
// nix-copy-closure accept.
func (t Target) destination() string {
	if t.User != "" {
		return t.User + "@" + t.Host
	}
	return t.Host
}

// Host is an ssh-backed [deployment.Host] for a single target.
type Host struct {
	target Target
}

// NewHost returns the capability for one target.
func NewHost(target Target) *Host {
	return &Host{target: target}
}

// CopyClosure transfers the closure to the target with
// nix-copy-closure.
func (h *Host) CopyClosure(ctx context.Context, closure string, options deployment.TransferOptions) error {
	_, err := nix.CopyClosure(ctx, h.copyEnv(), h.copyArgs(closure, options)...)
	return err
}

// copyArgs builds the nix-copy-closure argument list for a transfer.
func (h *Host) copyArgs(closure string, options deployment.TransferOptions) []string {
	args := []string{"--to"}
	if options.UseCompression {
		args = append(args, "--gzip")
	}
	if options.UseSubstitutes {
		args = append(args, "--use-substitutes")
	}
	return append(args, h.target.destination(), closure)
}

// copyEnv returns the NIX_SSHOPTS entry carrying the non-default port
// to the ssh process nix-copy-closure spawns, or nil.
func (h *Host) copyEnv() []string {
	if h.target.Port == 0 {
		return nil
	}
	return []string{"NIX_SSHOPTS=-p " + strconv.Itoa(h.target.Port)}
}

// Activate runs the closure's switch-to-configuration script on the
// target with the goal's action. Remote stdout and stderr are
// captured and included in the error on failure — the remote script's
// own output is the only useful diagnostic there is.
func (h *Host) Activate(ctx context.Context, closure string, goal deployment.Goal) error {
	sshPath, err := nix.FindBinary("ssh")
	if err != nil {
		return err
	}

	args := h.activateArgs(closure, goal)
	command := exec.CommandContext(ctx, sshPath, args...)

	var output bytes.Buffer
	command.Stdout = &output
	command.Stderr = &output
	command.Stdin = nil

	if err := command.Run(); err != nil {
		text := strings.TrimSpace(output.String())
		if text != "" {
			return fmt.Errorf("activation on %s: %s", h.target, text)
		}
		return fmt.Errorf("activation on %s: %w", h.target, err)
	}
	return nil
}

// activateArgs builds the ssh argument list for an activation.
func (h *Host) activateArgs(closure string, goal deployment.Goal) []string {
	var args []string
	if h.target.Port != 0 {
		args = append(args, "-p", strconv.Itoa(h.target.Port))
	}
	args = append(args, h.target.destination(), "--",
		closure+"/bin/switch-to-configuration", goal.ActivationAction())
	return args
}
