package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tripload/internal/config"
	"github.com/vvka-141/tripload/pkg/tripload"
)

// loadProjectConfig loads tripload.yaml from dir.
// Returns nil config if tripload.yaml does not exist (not an error).
func loadProjectConfig(dir string) (*config.ProjectConfig, error) {
	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %v: %w", config.ConfigFileName, err, tripload.ErrInvalidConfig)
	}
	return projectCfg, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring tripload.yaml if flag wasn't set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		return projectCfg.ParsedTimeout()
	}
	if flagTimeout < 0 {
		return 0, fmt.Errorf("--timeout cannot be negative: %w", tripload.ErrInvalidConfig)
	}
	return flagTimeout, nil
}

// pick returns the flag value when the flag was set on the command line or
// the config value is unset, and the config value otherwise.
func pick[T comparable](cmd *cobra.Command, flag string, flagValue, configValue T) T {
	var zero T
	if cmd.Flags().Changed(flag) || configValue == zero {
		return flagValue
	}
	return configValue
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(logger tripload.Logger, connConfig *tripload.ConnectionConfig) {
	logger.Verbose("Connection resolved:")
	logger.Verbose("  Host: %s", connConfig.Host)
	logger.Verbose("  Port: %d", connConfig.Port)
	logger.Verbose("  User: %s", connConfig.Username)
	logger.Verbose("  Database: %s", connConfig.Database)
	logger.Verbose("  SSL Mode: %s", connConfig.SSLMode)
}

// projectIngest returns the ingest section of projectCfg, or an empty one.
func projectIngest(projectCfg *config.ProjectConfig) config.IngestConfig {
	if projectCfg == nil {
		return config.IngestConfig{}
	}
	return projectCfg.Ingest
}
