// SPDX-License-Identifier: MPL-2.0

// Package config resolves the run options for the staging orchestrator.
// Options come from CRATESTAGE_* environment variables and mirrored CLI
// flags, with documented defaults; the resolved Config is immutable for the
// lifetime of the process.
package config
