// SPDX-License-Identifier: MPL-2.0

package orchestrator

import "cratestage/internal/installer"

const (
	// OutcomeSuccess means the package was installed (by either path).
	OutcomeSuccess Outcome = iota
	// OutcomePreconditionFailure means the crate source tree was absent or
	// incomplete; nothing was staged.
	OutcomePreconditionFailure
	// OutcomeStagingFailure means a mandatory copy failed; partial staged
	// content may remain for inspection.
	OutcomeStagingFailure
	// OutcomeInstallFailure means both install paths failed.
	OutcomeInstallFailure
)

type (
	// Outcome classifies how a run ended.
	Outcome int

	// Report is the structured result of one run. Install outcome and
	// cleanup outcome are reported independently so a calling harness can
	// assert on both rather than inferring cleanup success from the exit
	// code.
	Report struct {
		// Outcome classifies the run.
		Outcome Outcome
		// InstallPath is the install strategy that produced the terminal
		// install state. Empty when install was never attempted.
		InstallPath installer.Path
		// Err is the failure behind a non-success Outcome.
		Err error
		// CleanupErr records a failed staged-copy removal. It never affects
		// the exit code.
		CleanupErr error
	}
)

// String returns the outcome name used in diagnostics.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePreconditionFailure:
		return "precondition-failure"
	case OutcomeStagingFailure:
		return "staging-failure"
	case OutcomeInstallFailure:
		return "install-failure"
	default:
		return "unknown"
	}
}

// ExitCode maps the outcome to the process exit code contract: 0 success,
// 2 precondition or staging failure, 3 install failure.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeSuccess:
		return 0
	case OutcomePreconditionFailure, OutcomeStagingFailure:
		return 2
	case OutcomeInstallFailure:
		return 3
	default:
		return 1
	}
}
