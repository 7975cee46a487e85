// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for all environment variables read by Load
	// (CRATESTAGE_HOST_COMMAND, CRATESTAGE_FORCE, ...).
	EnvPrefix = "CRATESTAGE"

	// KeyHostCommand names the host executable option.
	KeyHostCommand = "host_command"
	// KeyForce names the overwrite policy option.
	KeyForce = "force"
	// KeyKeepStaging names the staged-copy retention option.
	KeyKeepStaging = "keep_staging"
	// KeyVerbose names the output suppression option.
	KeyVerbose = "verbose"
	// KeyRoot names the repository root override option.
	KeyRoot = "root"
)

// NewViper builds a viper instance with the option defaults registered and
// environment binding active. Exposed so the CLI layer can bind its flags
// into the same instance before Load resolves the final values.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault(KeyHostCommand, defaults.HostCommand)
	v.SetDefault(KeyForce, defaults.Force)
	v.SetDefault(KeyKeepStaging, defaults.KeepStaging)
	v.SetDefault(KeyVerbose, defaults.Verbose)
	v.SetDefault(KeyRoot, defaults.RepoRoot)

	return v
}

// Load resolves the Config from the given viper instance and validates it.
// Precedence follows viper's rules: explicit flag binding, then environment,
// then defaults.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		HostCommand: v.GetString(KeyHostCommand),
		Force:       v.GetBool(KeyForce),
		KeepStaging: v.GetBool(KeyKeepStaging),
		Verbose:     v.GetBool(KeyVerbose),
		RepoRoot:    v.GetString(KeyRoot),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
