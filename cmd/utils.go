package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/iost-studio/contractkit/cmd/exitcodes"
	"github.com/iost-studio/contractkit/compilation/types"
	"github.com/iost-studio/contractkit/config"
	"github.com/iost-studio/contractkit/logging"
	"github.com/iost-studio/contractkit/logging/colors"
	"github.com/iost-studio/contractkit/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// cmdValidFlagArgs will return which flags are valid for dynamic completion for a command. Positional arguments are
// completed as file names.
func cmdValidFlagArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// Include the "--" prefix so the suggestions are not mistaken for positional arguments
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})

	// Until the contract file is given, let the shell complete file names
	if len(args) == 0 {
		return unusedFlags, cobra.ShellCompDirectiveDefault
	}
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateFileArg makes sure exactly one positional argument, the contract file path, was provided.
func cmdValidateFileArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("%s expects exactly one contract file path argument", cmd.Name())
		cmdLogger.Error("Failed to validate args to the "+cmd.Name()+" command", err)
		return err
	}
	return nil
}

// loadProjectConfig resolves the project configuration for a command:
// #1: If --config was used, the file must exist and is read.
// #2: Otherwise, contractkit.json in the working directory is read if it exists.
// #3: Otherwise, the default project configuration is used.
// The resulting configuration is validated before being returned.
func loadProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If --config was not used, look for `contractkit.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	projectConfig := config.GetDefaultProjectConfig()
	_, existenceError := os.Stat(configPath)
	if existenceError == nil {
		cmdLogger.Debug("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			return nil, err
		}
	} else if configFlagUsed {
		return nil, fmt.Errorf("unable to read config file '%s': %w", configPath, existenceError)
	}

	if err = projectConfig.Validate(); err != nil {
		return nil, err
	}
	return projectConfig, nil
}

// setupLogging configures the global logger, which the compilation and restoration services derive their loggers
// from, and the cmd logger according to the provided logging configuration.
// Returns a function that releases any log file opened, or an error if one occurs.
func setupLogging(loggingConfig config.LoggingConfig, stderr io.Writer) (func(), error) {
	if loggingConfig.NoColor {
		colors.DisableColor()
	}

	logging.GlobalLogger = logging.NewLogger(loggingConfig.Level)
	logging.GlobalLogger.AddWriter(stderr, logging.UNSTRUCTURED, !loggingConfig.NoColor)

	release := func() {}
	if loggingConfig.LogDirectory != "" {
		fileName := logFilePrefix + strconv.FormatInt(time.Now().Unix(), 10) + ".log"
		file, err := utils.CreateFile(loggingConfig.LogDirectory, fileName)
		if err != nil {
			return release, err
		}
		logging.GlobalLogger.AddWriter(file, logging.STRUCTURED, false)
		cmdLogger.AddWriter(file, logging.STRUCTURED, false)
		release = func() {
			logging.GlobalLogger.RemoveWriter(file, logging.STRUCTURED, false)
			cmdLogger.RemoveWriter(file, logging.STRUCTURED, false)
			_ = file.Close()
		}
	}
	return release, nil
}

// withExitCode attaches the exit code for a failed command to its error. Rejected contracts exit with
// ExitCodeContractRejected, anything else has already been logged and exits with ExitCodeHandledError.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	var contractErr *types.ContractError
	if errors.As(err, &contractErr) {
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeContractRejected)
	}
	return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
}

// writeOutput writes data to the file at path, or to w if path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}

	return utils.WriteFile(filepath.Dir(path), filepath.Base(path), data)
}
