// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

type (
	// Invocation describes one host process launch.
	Invocation struct {
		// Bin is the executable name or path.
		Bin string
		// Args are the arguments passed to Bin.
		Args []string
		// Dir overrides the working directory when non-empty. The fallback
		// install must run from inside the package directory.
		Dir string
	}

	// Result contains the outcome of one host process invocation.
	Result struct {
		// ExitCode is the process exit code. It is -1 when the process
		// could not be started at all.
		ExitCode int
		// Err is the launch or wait error, if any.
		Err error
	}

	// Runner launches host processes. The production implementation shells
	// out; tests inject scripted fakes so the install state machine can be
	// exercised without an R toolchain.
	Runner interface {
		Run(ctx context.Context, inv Invocation) *Result
	}

	// ExecRunner runs invocations with os/exec. Output is discarded unless
	// Verbose is set, keeping stdout clear for the host tool's consumers.
	ExecRunner struct {
		// Verbose forwards the host process output to this process's
		// streams instead of discarding it.
		Verbose bool
	}
)

// Succeeded reports whether the invocation exited zero.
func (r *Result) Succeeded() bool { return r.Err == nil && r.ExitCode == 0 }

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) *Result {
	cmd := exec.CommandContext(ctx, inv.Bin, inv.Args...)
	cmd.Dir = inv.Dir
	if r.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: -1, Err: err}
	}
	return &Result{}
}
