// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"fmt"
	"strings"
)

// remotesRepo is where the primary install expression fetches the remotes
// helper from when it is not already installed.
const remotesRepo = "https://cloud.r-project.org"

// primaryExpr builds the R expression for the primary install path. The
// expression bootstraps the remotes helper if absent, then installs the
// package directory with its declared dependencies resolved. A non-zero
// status is forced on error so the driver sees the failure in the exit code.
func primaryExpr(pkgDir string, force bool) string {
	return fmt.Sprintf(
		`if (!requireNamespace("remotes", quietly = TRUE)) install.packages("remotes", repos = "%s"); remotes::install_local("%s", force = %s)`,
		remotesRepo, escapeRString(pkgDir), rBool(force),
	)
}

// primaryInvocation is the richer install path: evaluate the install
// expression in a clean, non-interactive session.
func primaryInvocation(host, pkgDir string, force bool) Invocation {
	return Invocation{
		Bin:  host,
		Args: []string{"--vanilla", "--no-echo", "-e", primaryExpr(pkgDir, force)},
	}
}

// fallbackInvocation is the primitive install path: R CMD INSTALL of the
// package directory itself. It needs no helper package and overwrites an
// existing install unconditionally, so no force flag is passed.
func fallbackInvocation(host, pkgDir string) Invocation {
	return Invocation{
		Bin:  host,
		Args: []string{"CMD", "INSTALL", "."},
		Dir:  pkgDir,
	}
}

// escapeRString escapes a value for interpolation into a double-quoted R
// string literal. Windows paths carry backslashes, which R would otherwise
// read as escapes.
func escapeRString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// rBool renders a Go bool as an R logical constant.
func rBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
