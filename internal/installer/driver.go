// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"

	"github.com/charmbracelet/log"
)

const (
	// PathPrimary identifies the remotes-based install path.
	PathPrimary Path = "primary"
	// PathFallback identifies the R CMD INSTALL path.
	PathFallback Path = "fallback"
)

type (
	// Path identifies which install strategy produced an outcome.
	Path string

	// InstallResult is the terminal state of the install state machine.
	InstallResult struct {
		// Path is the strategy that produced the final outcome.
		Path Path
		// ExitCode is the final host process exit code.
		ExitCode int
		// Err is the launch error when the host process could not be
		// started, nil otherwise.
		Err error
	}

	// Driver runs the two install strategies in order. The primary path
	// resolves the package's declared dependencies through the remotes
	// helper; the fallback path works without network access or any helper
	// package. Fallback runs only after the primary path fails.
	Driver struct {
		runner Runner
		logger *log.Logger
		host   string
		force  bool
	}
)

// Succeeded reports whether an install path exited zero.
func (r InstallResult) Succeeded() bool { return r.Err == nil && r.ExitCode == 0 }

// NewDriver creates a Driver invoking host through runner.
func NewDriver(runner Runner, logger *log.Logger, host string, force bool) *Driver {
	return &Driver{runner: runner, logger: logger, host: host, force: force}
}

// Install attempts the primary install of pkgDir and falls back to the
// primitive install when it fails. The fallback is never entered after a
// primary success.
func (d *Driver) Install(ctx context.Context, pkgDir string) InstallResult {
	d.logger.Info("installing package", "path", PathPrimary, "host", d.host)
	res := d.runner.Run(ctx, primaryInvocation(d.host, pkgDir, d.force))
	if res.Succeeded() {
		d.logger.Info("install succeeded", "path", PathPrimary)
		return InstallResult{Path: PathPrimary}
	}

	if res.Err != nil {
		d.logger.Warn("primary install could not run, falling back", "err", res.Err)
	} else {
		d.logger.Warn("primary install failed, falling back", "exit_code", res.ExitCode)
	}

	res = d.runner.Run(ctx, fallbackInvocation(d.host, pkgDir))
	if res.Succeeded() {
		d.logger.Info("install succeeded", "path", PathFallback)
		return InstallResult{Path: PathFallback}
	}

	if res.Err != nil {
		d.logger.Error("fallback install could not run", "err", res.Err)
	} else {
		d.logger.Error("fallback install failed", "exit_code", res.ExitCode)
	}
	return InstallResult{Path: PathFallback, ExitCode: res.ExitCode, Err: res.Err}
}
