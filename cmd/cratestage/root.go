// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI binding for cratestage.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"cratestage/internal/config"
	"cratestage/internal/installer"
	"cratestage/internal/layout"
	"cratestage/internal/orchestrator"
	"cratestage/internal/stage"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// v resolves options from flags, environment and defaults. Flags are
	// bound into it at init time.
	v = config.NewViper()

	// rootCmd is the single entry command; there are no subcommands and no
	// positional arguments.
	rootCmd = &cobra.Command{
		Use:   "cratestage",
		Short: "Stage the embedded Rust crate and install the R binding package",
		Long: TitleStyle.Render("cratestage") + SubtitleStyle.Render(" - R binding package installer") + `

cratestage copies the rust-core crate's buildable sources into the
qsi.pulse.reader package tree at src/rust, then drives R to build and
install the package. Installation first goes through
remotes::install_local so the package's declared dependencies are
resolved; if that fails, a plain 'R CMD INSTALL' is attempted. The
staged copy is removed afterwards unless retention is requested.

` + SubtitleStyle.Render("Options (flags or CRATESTAGE_* environment):") + `
  --host-command   executable invoked for install       (default R)
  --force          overwrite policy for the primary path (default true)
  --keep-staging   retain the staged copy after the run  (default false)
  --verbose        show host process output              (default false)

` + SubtitleStyle.Render("Exit codes:") + `
  0  installed
  2  crate source missing or staging copy failed
  3  both install strategies failed`,
		Args: cobra.NoArgs,
		RunE: runRoot,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.String("host-command", config.DefaultHostCommand, "executable invoked for install")
	flags.Bool("force", config.DefaultForce, "pass force = TRUE to the primary install helper")
	flags.Bool("keep-staging", config.DefaultKeepStaging, "retain the staged crate copy after the run")
	flags.BoolP("verbose", "v", config.DefaultVerbose, "do not suppress host process output")
	flags.String("root", "", "repository root (default: derived from the executable location)")

	for key, flag := range map[string]string{
		config.KeyHostCommand: "host-command",
		config.KeyForce:       "force",
		config.KeyKeepStaging: "keep-staging",
		config.KeyVerbose:     "verbose",
		config.KeyRoot:        "root",
	} {
		cobra.CheckErr(v.BindPFlag(key, flags.Lookup(flag)))
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// runRoot wires the resolved config into the pipeline and maps its report to
// the exit-code contract.
func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "cratestage",
		ReportTimestamp: true,
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	lay, err := resolveLayout(cfg)
	if err != nil {
		return err
	}

	stager := stage.New(afero.NewOsFs(), logger, lay.CrateDir, lay.StagingDir)
	runner := &installer.ExecRunner{Verbose: cfg.Verbose}
	driver := installer.NewDriver(runner, logger, cfg.HostCommand, cfg.Force)

	rep := orchestrator.New(stager, driver, logger, lay.PackageDir, cfg.KeepStaging).Run(cmd.Context())
	if code := rep.Outcome.ExitCode(); code != 0 {
		return &ExitError{Code: code, Err: rep.Err}
	}
	return nil
}

// resolveLayout anchors the path layout: an explicit root wins, otherwise
// the layout is derived from the executable's own location so the tool works
// from any working directory.
func resolveLayout(cfg config.Config) (layout.Layout, error) {
	if cfg.RepoRoot != "" {
		return layout.FromRoot(cfg.RepoRoot), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return layout.Layout{}, fmt.Errorf("locating executable: %w", err)
	}
	return layout.FromScript(exe), nil
}
