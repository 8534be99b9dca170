package cmd

import (
	"fmt"
	"strings"

	"github.com/iost-studio/contractkit/compilation"
	"github.com/iost-studio/contractkit/config"
	"github.com/spf13/cobra"
)

// addAbiFlags adds the various flags for the abi command
func addAbiFlags() error {
	// Prevent alphabetical sorting of usage message
	abiCmd.Flags().SortFlags = false

	// Config file
	abiCmd.Flags().String("config", "", "path to config file")

	// Output path
	abiCmd.Flags().String("out", "", "output path for the descriptor (default is stdout)")

	// Output format
	abiCmd.Flags().String("format", DefaultOutputFormat,
		fmt.Sprintf("descriptor encoding (options: %s)", strings.Join(compilation.GetSupportedOutputFormats(), ", ")))

	// Descriptor hash
	abiCmd.Flags().Bool("hash", false, "log the descriptor fingerprint and whether it changed since the last run "+
		"(records fingerprints in "+compilation.DescriptorHashCacheFileName+" next to the contract)")

	// Destructuring
	abiCmd.Flags().Bool("forbid-destructuring", false,
		"reject destructuring patterns anywhere in the contract (unless a config file is provided, default is false)")

	return nil
}

// updateProjectConfigWithAbiFlags will update the given projectConfig with any CLI arguments that were provided to
// the abi command
func updateProjectConfigWithAbiFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// Update destructuring policy
	if cmd.Flags().Changed("forbid-destructuring") {
		forbid, err := cmd.Flags().GetBool("forbid-destructuring")
		if err != nil {
			return err
		}
		projectConfig.Compilation.ForbidDestructuring = forbid
	}
	return nil
}
