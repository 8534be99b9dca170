package cmd

import (
	"os"

	"github.com/iost-studio/contractkit/logging"
	"github.com/iost-studio/contractkit/logging/colors"
	"github.com/iost-studio/contractkit/restoration"
	"github.com/spf13/cobra"
)

// restoreCmd represents the command provider for restoring instrumented source
var restoreCmd = &cobra.Command{
	Use:               "restore <file>",
	Short:             "Restores instrumented contract source",
	Long:              `Removes instruction counters, template tags and spread wrappers from instrumented contract source and rewrites binary operator wrappers back into infix expressions`,
	Args:              cmdValidateFileArg,
	ValidArgsFunction: cmdValidFlagArgs,
	RunE:              cmdRunRestore,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the restore command
	err := addRestoreFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the restore command", err)
	}

	// Add the restore command and its associated flags to the root command
	rootCmd.AddCommand(restoreCmd)
}

// cmdRunRestore executes the CLI restore command.
func cmdRunRestore(cmd *cobra.Command, args []string) error {
	projectConfig, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the restore command", err)
		return withExitCode(err)
	}
	err = updateProjectConfigWithRestoreFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the restore command", err)
		return withExitCode(err)
	}

	release, err := setupLogging(projectConfig.Logging, cmd.ErrOrStderr())
	defer release()
	if err != nil {
		cmdLogger.Error("Failed to run the restore command", err)
		return withExitCode(err)
	}

	sourcePath := args[0]
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		cmdLogger.Error("Failed to read the instrumented source", err)
		return withExitCode(err)
	}

	restorer, err := restoration.NewRestorer(projectConfig.Restoration)
	if err != nil {
		cmdLogger.Error("Failed to run the restore command", err)
		return withExitCode(err)
	}
	result, err := restorer.Restore(string(source))
	if err != nil {
		cmdLogger.Error("Failed to restore ", colors.Bold, sourcePath, colors.Reset, err)
		return withExitCode(err)
	}

	statsFlag, err := cmd.Flags().GetBool("stats")
	if err != nil {
		cmdLogger.Error("Failed to run the restore command", err)
		return withExitCode(err)
	}
	if statsFlag {
		cmdLogger.Info(restorationReport(sourcePath, result).Args()...)
	}

	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		cmdLogger.Error("Failed to run the restore command", err)
		return withExitCode(err)
	}
	err = writeOutput(cmd.OutOrStdout(), outputPath, []byte(result.Source))
	if err != nil {
		cmdLogger.Error("Failed to write the restored source", err)
		return withExitCode(err)
	}
	return nil
}

// restorationReport builds a multi-line summary of a restoration result.
func restorationReport(sourcePath string, result *restoration.Result) *logging.LogBuffer {
	buffer := logging.NewLogBuffer()
	buffer.Append("Restored ", colors.Bold, sourcePath, colors.Reset, "\n")
	buffer.Append(colors.LEFT_ARROW, " counters removed: ", colors.Bold, result.RemovedCounters, colors.Reset,
		" (total increment ", result.TotalIncrement.String(), ")\n")
	buffer.Append(colors.LEFT_ARROW, " binary operator passes: ", colors.Bold, result.Iterations, colors.Reset, "\n")
	if result.FallbackEngaged {
		buffer.Append(colors.LEFT_ARROW, " greedy fallback: ", colors.YellowBold, "engaged", colors.Reset)
	} else {
		buffer.Append(colors.LEFT_ARROW, " greedy fallback: ", colors.GreenBold, "not engaged", colors.Reset)
	}
	return buffer
}
