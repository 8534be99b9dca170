package cmd

import (
	"os"

	"github.com/iost-studio/contractkit/logging"
	"github.com/iost-studio/contractkit/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd represents the root CLI command object which all other commands stem from.
var rootCmd = &cobra.Command{
	Use:     "contractkit",
	Version: version.GetInfo().Short(),
	Short:   "A toolkit for IOST JavaScript smart contracts",
	Long:    "contractkit generates ABI descriptors for IOST JavaScript smart contracts and restores instrumented contract source",
}

// cmdLogger is the logger that will be used for the cmd package
var cmdLogger = logging.NewLogger(zerolog.InfoLevel)

func init() {
	// Command output goes to stdout so logs go to stderr
	cmdLogger.AddWriter(os.Stderr, logging.UNSTRUCTURED, true)
}

// Execute provides an exportable function to invoke the CLI. Returns an error if one was encountered.
func Execute() error {
	return rootCmd.Execute()
}
