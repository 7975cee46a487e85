// SPDX-License-Identifier: MPL-2.0

package layout

import "path/filepath"

const (
	// BindingsDirName is the directory under the repository root that holds
	// language binding packages.
	BindingsDirName = "R"
	// PackageName is the R binding package embedding the crate.
	PackageName = "qsi.pulse.reader"
	// CrateDirName is the directory under the repository root that holds the
	// native crate source.
	CrateDirName = "rust-core"
	// CrateSourceDirName is the crate subdirectory that holds buildable
	// sources. Its presence is the staging precondition.
	CrateSourceDirName = "src"
	// scriptDepth is how many directory levels separate the entry-point
	// script from the repository root (R/<pkg>/tools/<script>).
	scriptDepth = 3
)

// stagingSubpath is where the crate is staged inside the package tree. The R
// build expects the crate root directly at src/rust, with the crate's own
// src/ nested below it.
var stagingSubpath = filepath.Join("src", "rust")

// Layout holds the resolved absolute paths for one run.
type Layout struct {
	// RepoRoot contains both the package tree and the crate source tree.
	RepoRoot string
	// PackageDir is the R package directory (<root>/R/<package>).
	PackageDir string
	// CrateDir is the crate source tree (<root>/rust-core), read-only input.
	CrateDir string
	// StagingDir is the staging destination (<package>/src/rust), fully
	// owned by the orchestrator for the duration of a run.
	StagingDir string
}

// FromRoot builds a Layout from an explicit repository root.
func FromRoot(root string) Layout {
	root = filepath.Clean(root)
	pkg := filepath.Join(root, BindingsDirName, PackageName)
	return Layout{
		RepoRoot:   root,
		PackageDir: pkg,
		CrateDir:   filepath.Join(root, CrateDirName),
		StagingDir: filepath.Join(pkg, stagingSubpath),
	}
}

// FromScript builds a Layout from the path of the invoking entry point,
// walking scriptDepth levels up from its directory to reach the repository
// root. This mirrors the historical install scripts, which lived at
// R/<package>/tools/ inside the repository.
func FromScript(scriptPath string) Layout {
	root := filepath.Dir(scriptPath)
	for range scriptDepth {
		root = filepath.Dir(root)
	}
	return FromRoot(root)
}

// CrateSourceDir returns the crate's buildable source subdirectory.
func (l Layout) CrateSourceDir() string {
	return filepath.Join(l.CrateDir, CrateSourceDirName)
}
