// SPDX-License-Identifier: MPL-2.0

package orchestrator

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"cratestage/internal/installer"
)

type fakeStager struct {
	checkErr  error
	stageErr  error
	removeErr error

	staged  bool
	removed bool
}

func (f *fakeStager) CheckSource() error { return f.checkErr }
func (f *fakeStager) Stage() error {
	if f.stageErr != nil {
		return f.stageErr
	}
	f.staged = true
	return nil
}
func (f *fakeStager) Remove() error {
	f.removed = true
	return f.removeErr
}
func (f *fakeStager) Dest() string { return "/pkg/src/rust" }

type fakeInstaller struct {
	result installer.InstallResult
	called bool
	pkgDir string
}

func (f *fakeInstaller) Install(_ context.Context, pkgDir string) installer.InstallResult {
	f.called = true
	f.pkgDir = pkgDir
	return f.result
}

func newTestOrchestrator(s *fakeStager, i *fakeInstaller, keep bool) *Orchestrator {
	return New(s, i, log.New(io.Discard), "/repo/R/qsi.pulse.reader", keep)
}

func TestRunSuccess(t *testing.T) {
	t.Parallel()

	s := &fakeStager{}
	i := &fakeInstaller{result: installer.InstallResult{Path: installer.PathPrimary}}
	rep := newTestOrchestrator(s, i, false).Run(context.Background())

	if rep.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %v, want success", rep.Outcome)
	}
	if rep.Outcome.ExitCode() != 0 {
		t.Errorf("ExitCode = %d, want 0", rep.Outcome.ExitCode())
	}
	if rep.InstallPath != installer.PathPrimary {
		t.Errorf("InstallPath = %q, want primary", rep.InstallPath)
	}
	if i.pkgDir != "/repo/R/qsi.pulse.reader" {
		t.Errorf("installed pkgDir = %q", i.pkgDir)
	}
	if !s.removed {
		t.Error("staged copy should be removed after a successful install")
	}
	if rep.CleanupErr != nil {
		t.Errorf("CleanupErr = %v, want nil", rep.CleanupErr)
	}
}

func TestRunPreconditionFailure(t *testing.T) {
	t.Parallel()

	checkErr := errors.New("crate source not found")
	s := &fakeStager{checkErr: checkErr}
	i := &fakeInstaller{}
	rep := newTestOrchestrator(s, i, false).Run(context.Background())

	if rep.Outcome != OutcomePreconditionFailure {
		t.Errorf("Outcome = %v, want precondition failure", rep.Outcome)
	}
	if rep.Outcome.ExitCode() != 2 {
		t.Errorf("ExitCode = %d, want 2", rep.Outcome.ExitCode())
	}
	if !errors.Is(rep.Err, checkErr) {
		t.Errorf("Err = %v, want the check error", rep.Err)
	}
	if s.staged {
		t.Error("staging must not run after a failed precondition")
	}
	if i.called {
		t.Error("install must not run after a failed precondition")
	}
	if s.removed {
		t.Error("cleanup must not run when staging never started")
	}
}

func TestRunStagingFailureLeavesDebris(t *testing.T) {
	t.Parallel()

	s := &fakeStager{stageErr: errors.New("copying manifest: permission denied")}
	i := &fakeInstaller{}
	rep := newTestOrchestrator(s, i, false).Run(context.Background())

	if rep.Outcome != OutcomeStagingFailure {
		t.Errorf("Outcome = %v, want staging failure", rep.Outcome)
	}
	if rep.Outcome.ExitCode() != 2 {
		t.Errorf("ExitCode = %d, want 2", rep.Outcome.ExitCode())
	}
	if i.called {
		t.Error("install must not run after a failed staging")
	}
	// Partial staged content stays for inspection.
	if s.removed {
		t.Error("cleanup must not run after a staging failure")
	}
}

func TestRunInstallFailureStillCleansUp(t *testing.T) {
	t.Parallel()

	s := &fakeStager{}
	i := &fakeInstaller{result: installer.InstallResult{Path: installer.PathFallback, ExitCode: 1}}
	rep := newTestOrchestrator(s, i, false).Run(context.Background())

	if rep.Outcome != OutcomeInstallFailure {
		t.Errorf("Outcome = %v, want install failure", rep.Outcome)
	}
	if rep.Outcome.ExitCode() != 3 {
		t.Errorf("ExitCode = %d, want 3", rep.Outcome.ExitCode())
	}
	if rep.Err == nil {
		t.Error("install failure should carry an explanatory error")
	}
	if !s.removed {
		t.Error("cleanup must still run after an install failure")
	}
}

func TestRunKeepStagingRetainsCopy(t *testing.T) {
	t.Parallel()

	s := &fakeStager{}
	i := &fakeInstaller{result: installer.InstallResult{Path: installer.PathPrimary}}
	rep := newTestOrchestrator(s, i, true).Run(context.Background())

	if rep.Outcome != OutcomeSuccess {
		t.Fatalf("Outcome = %v, want success", rep.Outcome)
	}
	if s.removed {
		t.Error("keep_staging must retain the staged copy")
	}
}

func TestRunCleanupFailureDoesNotChangeOutcome(t *testing.T) {
	t.Parallel()

	s := &fakeStager{removeErr: errors.New("device busy")}
	i := &fakeInstaller{result: installer.InstallResult{Path: installer.PathPrimary}}
	rep := newTestOrchestrator(s, i, false).Run(context.Background())

	if rep.Outcome != OutcomeSuccess {
		t.Errorf("Outcome = %v, cleanup failure must not change it", rep.Outcome)
	}
	if rep.Outcome.ExitCode() != 0 {
		t.Errorf("ExitCode = %d, want 0 despite cleanup failure", rep.Outcome.ExitCode())
	}
	if rep.CleanupErr == nil {
		t.Error("CleanupErr should record the failed removal")
	}
}

func TestOutcomeStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSuccess, "success"},
		{OutcomePreconditionFailure, "precondition-failure"},
		{OutcomeStagingFailure, "staging-failure"},
		{OutcomeInstallFailure, "install-failure"},
		{Outcome(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
