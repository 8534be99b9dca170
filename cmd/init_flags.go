package cmd

import (
	"github.com/iost-studio/contractkit/config"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Overwrite without prompting
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration file without prompting")

	// Destructuring
	initCmd.Flags().Bool("forbid-destructuring", false, "reject destructuring patterns anywhere in the contract")

	return nil
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to
// the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	if cmd.Flags().Changed("forbid-destructuring") {
		forbid, err := cmd.Flags().GetBool("forbid-destructuring")
		if err != nil {
			return err
		}
		projectConfig.Compilation.ForbidDestructuring = forbid
	}
	return nil
}
