// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultHostCommand is the executable used to drive the install.
	DefaultHostCommand = "R"
	// DefaultForce is the overwrite policy passed to the primary install
	// helper.
	DefaultForce = true
	// DefaultKeepStaging controls whether the staged crate copy survives
	// the run.
	DefaultKeepStaging = false
	// DefaultVerbose controls whether host process output is suppressed.
	DefaultVerbose = false
)

var (
	// ErrInvalidHostCommand is returned when the host command is empty or
	// whitespace-only.
	ErrInvalidHostCommand = errors.New("invalid host command")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config holds the resolved run options. It is built once at process
	// start and never mutated afterwards.
	Config struct {
		// HostCommand is the name or path of the executable invoked for
		// install (the R interpreter).
		HostCommand string
		// Force is passed through to the primary install helper's overwrite
		// behavior.
		Force bool
		// KeepStaging retains the staging destination after the run when set.
		KeepStaging bool
		// Verbose leaves host process output unsuppressed when set.
		Verbose bool
		// RepoRoot overrides repository root derivation when non-empty. The
		// compiled binary may live outside the repository tree, so an
		// explicit root is the reliable anchor for such installs.
		RepoRoot string
	}

	// InvalidConfigError aggregates the validation failures of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns the sentinel plus each field error so callers can use
// errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Default returns a Config populated with the documented defaults.
func Default() Config {
	return Config{
		HostCommand: DefaultHostCommand,
		Force:       DefaultForce,
		KeepStaging: DefaultKeepStaging,
		Verbose:     DefaultVerbose,
	}
}

// Validate checks the Config for values that can never work at runtime.
func (c Config) Validate() error {
	var fieldErrs []error
	if strings.TrimSpace(c.HostCommand) == "" {
		fieldErrs = append(fieldErrs, fmt.Errorf("%w: host command must not be blank", ErrInvalidHostCommand))
	}
	if len(fieldErrs) > 0 {
		return &InvalidConfigError{FieldErrors: fieldErrs}
	}
	return nil
}
