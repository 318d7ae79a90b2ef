// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package nix provides typed access to the Nix CLI binaries waggle
// shells out to for deployments. It centralizes binary resolution for
// the Determinate Nix installation pattern (PATH first, then
// /nix/var/nix/profiles/default/bin/) and uniform error formatting
// across invocations.
//
// The deployment pipeline uses one Nix binary:
//   - nix-copy-closure: transferring a built system closure (and its
//     dependency graph) to a remote host over ssh
//
// Activation does not go through Nix at all; it is a plain ssh
// invocation of the closure's switch-to-configuration script, handled
// by lib/sshexec.
package nix

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// determinateProfileBin is where Determinate Nix installs its binaries.
// This location is outside PATH by default, so we check it explicitly
// after the PATH lookup fails.
const determinateProfileBin = "/nix/var/nix/profiles/default/bin"

// FindBinary resolves a Nix binary by name (e.g., "nix-copy-closure"),
// checking PATH first and then the standard Determinate Nix
// installation directory. Returns the absolute path to the binary.
func FindBinary(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	determinatePath := filepath.Join(determinateProfileBin, name)
	if _, err := os.Stat(determinatePath); err == nil {
		return determinatePath, nil
	}

	return "", fmt.Errorf("%s not found on PATH or at %s — install Nix first",
		name, determinatePath)
}

// CopyClosure executes "nix-copy-closure <args>" with the given extra
// environment entries appended to the ambient environment (used for
// NIX_SSHOPTS) and returns the stdout output. Stderr is captured and
// included in error messages (nix writes diagnostics to stderr).
func CopyClosure(ctx context.Context, extraEnv []string, args ...string) (string, error) {
	return run(ctx, "nix-copy-closure", extraEnv, args)
}

// run resolves the named binary, executes it with the given arguments
// and environment, and returns stdout. Stderr is captured separately
// and included in error messages.
func run(ctx context.Context, binaryName string, extraEnv []string, args []string) (string, error) {
	binaryPath, err := FindBinary(binaryName)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, binaryPath, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr
	if len(extraEnv) > 0 {
		command.Env = append(os.Environ(), extraEnv...)
	}

	if err := command.Run(); err != nil {
		return "", formatError(binaryName, args, &stderr, err)
	}
	return stdout.String(), nil
}

// storePrefix is the standard Nix store root directory.
const storePrefix = "/nix/store/"

// ValidateStorePath checks that path names a top-level Nix store
// entry, the shape a built system closure has. Paths outside
// /nix/store/ or pointing below a store entry are rejected: the hive
// file records closures, not files inside them.
func ValidateStorePath(path string) error {
	if !strings.HasPrefix(path, storePrefix) {
		return fmt.Errorf("path %q is not under /nix/store/", path)
	}

	remainder := path[len(storePrefix):]
	if remainder == "" {
		return fmt.Errorf("path %q has no store entry name", path)
	}
	if strings.ContainsRune(remainder, '/') {
		return fmt.Errorf("path %q points inside a store entry, expected the entry itself", path)
	}
	return nil
}

// formatError produces an error message for a failed nix command,
// preferring stderr output (which contains the actual nix error) over
// the generic exec error.
func formatError(binaryName string, args []string, stderr *bytes.Buffer, err error) error {
	commandString := binaryName + " " + strings.Join(args, " ")
	stderrText := strings.TrimSpace(stderr.String())
	if stderrText != "" {
		return fmt.Errorf("%s: %s", commandString, stderrText)
	}
	return fmt.Errorf("%s: %w", commandString, err)
}
