// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// Exit codes with meaning to scripts wrapping waggle. Code 1 is the
// general "something failed" code, including deployments where some
// attempted host failed.
const (
	// ExitEmptySelection means the selector matched no hosts; nothing
	// was attempted at all.
	ExitEmptySelection = 2
)

// ExitError carries a specific process exit code out of a command.
// The command has already written its own report; main exits with the
// code without printing a redundant error line.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
