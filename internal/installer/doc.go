// SPDX-License-Identifier: MPL-2.0

// Package installer drives the R side of the install: a primary path through
// remotes::install_local, which resolves the package's declared dependencies,
// and a primitive R CMD INSTALL fallback that works without network access.
// Host processes run behind the Runner interface so the state machine is
// testable without an R toolchain.
package installer
