// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package sshexec

import (
	"strings"
	"testing"

	"github.com/waggle-tools/waggle/lib/deployment"
)

func TestTarget_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target Target
		want   string
	}{
		{Target{Host: "alpha.example.com"}, "alpha.example.com"},
		{Target{Host: "alpha.example.com", User: "root"}, "root@alpha.example.com"},
		{Target{Host: "alpha.example.com", User: "deploy", Port: 2222}, "deploy@alpha.example.com:2222"},
	}
	for _, test := range tests {
		if got := test.target.String(); got != test.want {
			t.Errorf("%+v.String() = %q, want %q", test.target, got, test.want)
		}
	}
}

func TestHost_CopyArgs(t *testing.T) {
	t.Parallel()

	host := NewHost(Target{Host: "alpha.example.com", User: "root"})
	closure := "/nix/store/abc-nixos-system-alpha"

	args := host.copyArgs(closure, deployment.TransferOptions{
		UseCompression: true,
		UseSubstitutes: true,
	})
	joined := strings.Join(args, " ")
	if joined != "--to --gzip --use-substitutes root@alpha.example.com "+closure {
		t.Errorf("copyArgs = %q", joined)
	}

	args = host.copyArgs(closure, deployment.TransferOptions{})
	joined = strings.Join(args, " ")
	if strings.Contains(joined, "--gzip") || strings.Contains(joined, "--use-substitutes") {
		t.Errorf("disabled options leaked into args: %q", joined)
	}
}

func TestHost_CopyEnv(t *testing.T) {
	t.Parallel()

	if env := NewHost(Target{Host: "a"}).copyEnv(); env != nil {
		t.Errorf("default port produced env %v, want none", env)
	}

	env := NewHost(Target{Host: "a", Port: 2222}).copyEnv()
	if len(env) != 1 || env[0] != "NIX_SSHOPTS=-p 2222" {
		t.Errorf("copyEnv = %v, want NIX_SSHOPTS with the port", env)
	}
}

func TestHost_ActivateArgs(t *testing.T) {
	t.Parallel()

	host := NewHost(Target{Host: "alpha.example.com", User: "root", Port: 2222})
	args := host.activateArgs("/nix/store/abc-nixos-system-alpha", deployment.GoalDryActivate)

	joined := strings.Join(args, " ")
	want := "-p 2222 root@alpha.example.com -- " +
		"/nix/store/abc-nixos-system-alpha/bin/switch-to-configuration dry-activate"
	if joined != want {
		t.Errorf("activateArgs = %q, want %q", joined, want)
	}
}

func TestHost_ImplementsCapability(t *testing.T) {
	t.Parallel()

	var _ deployment.Host = NewHost(Target{Host: "alpha"})
}
