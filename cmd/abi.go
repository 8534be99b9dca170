package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iost-studio/contractkit/compilation"
	"github.com/iost-studio/contractkit/logging/colors"
	"github.com/spf13/cobra"
)

// abiCmd represents the command provider for ABI generation
var abiCmd = &cobra.Command{
	Use:               "abi <file>",
	Short:             "Generates the ABI descriptor of a contract",
	Long:              `Generates the ABI descriptor of the class exported by a JavaScript contract`,
	Args:              cmdValidateFileArg,
	ValidArgsFunction: cmdValidFlagArgs,
	RunE:              cmdRunAbi,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the abi command
	err := addAbiFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the abi command", err)
	}

	// Add the abi command and its associated flags to the root command
	rootCmd.AddCommand(abiCmd)
}

// cmdRunAbi executes the CLI abi command: it generates the descriptor of the given contract and writes it in the
// requested format.
func cmdRunAbi(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		cmdLogger.Error("Failed to run the abi command", err)
		return withExitCode(err)
	}
	if !compilation.IsSupportedOutputFormat(format) {
		err = fmt.Errorf("abi was provided invalid format '%s' (options: %s)", format,
			strings.Join(compilation.GetSupportedOutputFormats(), ", "))
		cmdLogger.Error("Failed to run the abi command", err)
		return withExitCode(err)
	}

	projectConfig, err := loadProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the abi command", err)
		return withExitCode(err)
	}
	err = updateProjectConfigWithAbiFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the abi command", err)
		return withExitCode(err)
	}

	release, err := setupLogging(projectConfig.Logging, cmd.ErrOrStderr())
	defer release()
	if err != nil {
		cmdLogger.Error("Failed to run the abi command", err)
		return withExitCode(err)
	}

	sourcePath := args[0]
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		cmdLogger.Error("Failed to read the contract source", err)
		return withExitCode(err)
	}

	descriptor, err := compilation.GenerateDescriptor(string(source), projectConfig.Compilation)
	if err != nil {
		cmdLogger.Error("Contract ", colors.Bold, sourcePath, colors.Reset, " was rejected", err)
		return withExitCode(err)
	}

	hashFlag, err := cmd.Flags().GetBool("hash")
	if err != nil {
		cmdLogger.Error("Failed to run the abi command", err)
		return withExitCode(err)
	}
	if hashFlag {
		absolutePath, err := filepath.Abs(sourcePath)
		if err != nil {
			absolutePath = sourcePath
		}
		hash, err := compilation.NotifyDescriptorHashStatus(descriptor, absolutePath, filepath.Dir(absolutePath), cmdLogger)
		if err != nil {
			cmdLogger.Error("Failed to compute the descriptor hash", err)
			return withExitCode(err)
		}
		cmdLogger.Info("Descriptor hash: ", colors.Bold, hash, colors.Reset)
	}

	data, err := compilation.EncodeDescriptor(format, descriptor)
	if err != nil {
		cmdLogger.Error("Failed to encode the descriptor", err)
		return withExitCode(err)
	}

	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		cmdLogger.Error("Failed to run the abi command", err)
		return withExitCode(err)
	}
	if format == DefaultOutputFormat && outputPath == "" {
		data = append(data, '\n')
	}
	err = writeOutput(cmd.OutOrStdout(), outputPath, data)
	if err != nil {
		cmdLogger.Error("Failed to write the descriptor", err)
		return withExitCode(err)
	}

	cmdLogger.Debug("Generated ", len(descriptor.ABI), " ABI entries for ", colors.Bold, sourcePath, colors.Reset)
	return nil
}
