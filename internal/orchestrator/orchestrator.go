// SPDX-License-Identifier: MPL-2.0

// Package orchestrator sequences one staging-and-install run: precondition
// check, staging, install, cleanup. Each stage short-circuits the rest on
// failure except cleanup, which is best-effort and never escalates the
// outcome.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"cratestage/internal/installer"
)

type (
	// CrateStager is the staging capability the pipeline depends on.
	// Implemented by stage.Stager.
	CrateStager interface {
		CheckSource() error
		Stage() error
		Remove() error
		Dest() string
	}

	// PackageInstaller is the install capability the pipeline depends on.
	// Implemented by installer.Driver.
	PackageInstaller interface {
		Install(ctx context.Context, pkgDir string) installer.InstallResult
	}

	// Orchestrator runs the pipeline. Single-instance execution is assumed;
	// two concurrent runs against one repository are undefined behavior.
	Orchestrator struct {
		stager     CrateStager
		inst       PackageInstaller
		logger     *log.Logger
		packageDir string
		keep       bool
	}
)

// New creates an Orchestrator installing packageDir. When keep is set the
// staged copy survives the run.
func New(stager CrateStager, inst PackageInstaller, logger *log.Logger, packageDir string, keep bool) *Orchestrator {
	return &Orchestrator{stager: stager, inst: inst, logger: logger, packageDir: packageDir, keep: keep}
}

// Run executes one staging-and-install run and returns its structured
// Report. Cleanup runs on both install terminal states (success and
// failure): a staged copy has no further use once install was attempted.
// A staging failure exits before install, leaving partial content in place
// for inspection.
func (o *Orchestrator) Run(ctx context.Context) Report {
	if err := o.stager.CheckSource(); err != nil {
		o.logger.Error("precondition failed", "err", err)
		return Report{Outcome: OutcomePreconditionFailure, Err: err}
	}

	if err := o.stager.Stage(); err != nil {
		o.logger.Error("staging failed", "err", err)
		return Report{Outcome: OutcomeStagingFailure, Err: err}
	}

	res := o.inst.Install(ctx, o.packageDir)
	rep := Report{InstallPath: res.Path}
	if res.Succeeded() {
		rep.Outcome = OutcomeSuccess
	} else {
		rep.Outcome = OutcomeInstallFailure
		if res.Err != nil {
			rep.Err = res.Err
		} else {
			rep.Err = fmt.Errorf("install failed via %s path with exit code %d", res.Path, res.ExitCode)
		}
	}

	o.cleanup(&rep)
	return rep
}

// cleanup removes the staged copy unless retention was requested. A failed
// removal is recorded on the report but never changes the outcome.
func (o *Orchestrator) cleanup(rep *Report) {
	if o.keep {
		o.logger.Info("keeping staged copy", "dest", o.stager.Dest())
		return
	}
	if err := o.stager.Remove(); err != nil {
		o.logger.Warn("cleanup failed", "err", err)
		rep.CleanupErr = err
	}
}
