package cmd

import (
	"fmt"

	"github.com/iost-studio/contractkit/config"
	"github.com/spf13/cobra"
)

// addRestoreFlags adds the various flags for the restore command
func addRestoreFlags() error {
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	restoreCmd.Flags().SortFlags = false

	// Config file
	restoreCmd.Flags().String("config", "", "path to config file")

	// Output path
	restoreCmd.Flags().String("out", "", "output path for the restored source (default is stdout)")

	// Report
	restoreCmd.Flags().Bool("stats", false, "log a report of what was removed and rewritten")

	// Iteration bounds
	restoreCmd.Flags().Int("max-iterations", 0,
		fmt.Sprintf("number of passes after which restoration fails (unless a config file is provided, default is %d)",
			defaultConfig.Restoration.MaxIterations))

	return nil
}

// updateProjectConfigWithRestoreFlags will update the given projectConfig with any CLI arguments that were provided
// to the restore command
func updateProjectConfigWithRestoreFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// Update the iteration ceiling
	if cmd.Flags().Changed("max-iterations") {
		maxIterations, err := cmd.Flags().GetInt("max-iterations")
		if err != nil {
			return err
		}
		projectConfig.Restoration.MaxIterations = maxIterations
	}
	return projectConfig.Restoration.Validate()
}
