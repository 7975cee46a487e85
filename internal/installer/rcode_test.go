// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"strings"
	"testing"
)

func TestPrimaryExpr(t *testing.T) {
	t.Parallel()

	expr := primaryExpr("/repo/R/qsi.pulse.reader", true)

	for _, want := range []string{
		`requireNamespace("remotes"`,
		`install.packages("remotes"`,
		`remotes::install_local("/repo/R/qsi.pulse.reader", force = TRUE)`,
	} {
		if !strings.Contains(expr, want) {
			t.Errorf("primaryExpr missing %q in:\n%s", want, expr)
		}
	}
}

func TestPrimaryExprForceOff(t *testing.T) {
	t.Parallel()

	expr := primaryExpr("/pkg", false)
	if !strings.Contains(expr, "force = FALSE") {
		t.Errorf("primaryExpr with force off should render force = FALSE, got:\n%s", expr)
	}
}

func TestEscapeRString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "/repo/pkg", want: "/repo/pkg"},
		{name: "windows path", in: `C:\repo\pkg`, want: `C:\\repo\\pkg`},
		{name: "embedded quote", in: `a"b`, want: `a\"b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := escapeRString(tt.in); got != tt.want {
				t.Errorf("escapeRString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFallbackInvocation(t *testing.T) {
	t.Parallel()

	inv := fallbackInvocation("R-devel", "/pkg")
	if inv.Bin != "R-devel" {
		t.Errorf("Bin = %q, want host passthrough", inv.Bin)
	}
	if inv.Dir != "/pkg" {
		t.Errorf("Dir = %q, want package dir", inv.Dir)
	}
	// The primitive install overwrites unconditionally; no force flag exists.
	for _, arg := range inv.Args {
		if strings.Contains(strings.ToLower(arg), "force") {
			t.Errorf("fallback must not carry a force flag, got args %v", inv.Args)
		}
	}
}
