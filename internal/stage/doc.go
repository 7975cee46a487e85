// SPDX-License-Identifier: MPL-2.0

// Package stage copies the native crate's buildable subset into the R
// package tree and removes it again after the install. The copy unit is the
// crate's src/ directory plus its manifest and optional lockfile and license;
// build-artifact directories are excluded by an explicit denylist. Staging
// always starts from a clean destination so no stale files from a previous
// run can leak into the package build.
package stage
