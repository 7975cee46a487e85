// SPDX-License-Identifier: MPL-2.0

// Package layout derives every filesystem path the orchestrator touches from
// a single anchor: the repository root. Path computation is pure — no I/O, no
// dependence on the process working directory — so callers may invoke the
// tool from anywhere.
package layout
