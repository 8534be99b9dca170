package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iost-studio/contractkit/cmd/exitcodes"
	"github.com/iost-studio/contractkit/compilation"
	"github.com/iost-studio/contractkit/compilation/types"
	"github.com/iost-studio/contractkit/config"
	"github.com/iost-studio/contractkit/restoration"
	"github.com/iost-studio/contractkit/utils/testutils"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = `class Token {
    init() {}

    /**
     * @param {string} to
     * @param {number} amount
     */
    transfer(to, amount) {}
}

module.exports = Token;
`

// executeCommand runs the root command with the given arguments and returns what it wrote to stdout along with the
// exit code its error maps to. Flags keep their values across executions, so callers pass every flag they rely on.
func executeCommand(t *testing.T, stdin string, args ...string) (string, int) {
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	_, exitCode := exitcodes.GetInnerErrorAndExitCode(rootCmd.Execute())
	return stdout.String(), exitCode
}

// resetFlags restores every subcommand flag to its default value and clears its changed state.
func resetFlags() {
	for _, command := range rootCmd.Commands() {
		command.Flags().VisitAll(func(flag *pflag.Flag) {
			_ = flag.Value.Set(flag.DefValue)
			flag.Changed = false
		})
	}
}

// writeTestFiles writes a default project configuration and the given contract source to a temporary directory and
// returns their paths.
func writeTestFiles(t *testing.T, source string) (string, string) {
	directory := t.TempDir()
	configPath := filepath.Join(directory, DefaultProjectConfigFilename)
	require.NoError(t, config.GetDefaultProjectConfig().WriteToFile(configPath))

	sourcePath := filepath.Join(directory, "contract.js")
	require.NoError(t, os.WriteFile(sourcePath, []byte(source), 0644))
	return configPath, sourcePath
}

func TestAbiCommand_WritesDescriptorToStdout(t *testing.T) {
	configPath, sourcePath := writeTestFiles(t, testContract)

	stdout, exitCode := executeCommand(t, "", "abi", sourcePath, "--config", configPath, "--out=",
		"--format", "json", "--hash=false", "--forbid-destructuring=false")
	require.Equal(t, exitcodes.ExitCodeSuccess, exitCode)

	descriptor, err := types.UnmarshalContractDescriptor([]byte(stdout))
	require.NoError(t, err)
	require.Len(t, descriptor.ABI, 1)
	assert.Equal(t, "transfer", descriptor.ABI[0].Name)
	assert.Equal(t, []types.ParamType{types.ParamTypeString, types.ParamTypeNumber}, descriptor.ABI[0].Args)
}

func TestAbiCommand_WritesCBORToFile(t *testing.T) {
	configPath, sourcePath := writeTestFiles(t, testContract)
	outputPath := filepath.Join(t.TempDir(), "out", "token.cbor")

	stdout, exitCode := executeCommand(t, "", "abi", sourcePath, "--config", configPath, "--out", outputPath,
		"--format", "cbor", "--hash=true", "--forbid-destructuring=false")
	require.Equal(t, exitcodes.ExitCodeSuccess, exitCode)
	assert.Empty(t, stdout)

	descriptor, err := compilation.GenerateDescriptor(testContract, nil)
	require.NoError(t, err)
	expected, err := compilation.EncodeDescriptor("cbor", descriptor)
	require.NoError(t, err)

	written, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, expected, written)

	// The hash cache lands next to the contract
	cache := compilation.LoadDescriptorHashCache(filepath.Dir(sourcePath), sourcePath)
	require.NotNil(t, cache)
	hash, err := compilation.ComputeDescriptorHash(descriptor)
	require.NoError(t, err)
	assert.Equal(t, hash, cache.Hash)
}

func TestAbiCommand_DiscoversProjectConfig(t *testing.T) {
	contractPath := testutils.CopyToTestDirectory(t, "testdata/contracts/token.js")

	projectConfig := config.GetDefaultProjectConfig()
	projectConfig.Compilation.Version = "2.0.0"
	require.NoError(t, projectConfig.WriteToFile(filepath.Join(filepath.Dir(contractPath), DefaultProjectConfigFilename)))

	testutils.ExecuteInDirectory(t, contractPath, func() {
		stdout, exitCode := executeCommand(t, "", "abi", filepath.Base(contractPath))
		require.Equal(t, exitcodes.ExitCodeSuccess, exitCode)

		descriptor, err := types.UnmarshalContractDescriptor([]byte(stdout))
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", descriptor.Version)
		require.Len(t, descriptor.ABI, 2)
		assert.Equal(t, "issue", descriptor.ABI[0].Name)
		assert.Equal(t, []types.ParamType{types.ParamTypeString, types.ParamTypeNumber}, descriptor.ABI[0].Args)
		assert.Equal(t, "balanceOf", descriptor.ABI[1].Name)
		assert.Equal(t, []types.ParamType{types.ParamTypeString}, descriptor.ABI[1].Args)
	})
}

func TestAbiCommand_ExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		args     []string
		exitCode int
	}{
		{
			name:     "missing init",
			source:   "class C { f() {} }\nmodule.exports = C;",
			args:     []string{"--format", "json"},
			exitCode: exitcodes.ExitCodeContractRejected,
		},
		{
			name:     "forbidden construct",
			source:   "class C { init() {} f() { try { g(); } catch (e) {} } }\nmodule.exports = C;",
			args:     []string{"--format", "json"},
			exitCode: exitcodes.ExitCodeContractRejected,
		},
		{
			name:     "unsupported format",
			source:   testContract,
			args:     []string{"--format", "xml"},
			exitCode: exitcodes.ExitCodeHandledError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			configPath, sourcePath := writeTestFiles(t, test.source)
			args := append([]string{"abi", sourcePath, "--config", configPath, "--out=", "--hash=false",
				"--forbid-destructuring=false"}, test.args...)
			_, exitCode := executeCommand(t, "", args...)
			assert.Equal(t, test.exitCode, exitCode)
		})
	}
}

func TestAbiCommand_MissingConfigFile(t *testing.T) {
	_, sourcePath := writeTestFiles(t, testContract)

	_, exitCode := executeCommand(t, "", "abi", sourcePath, "--config", filepath.Join(t.TempDir(), "missing.json"),
		"--out=", "--format", "json", "--hash=false", "--forbid-destructuring=false")
	assert.Equal(t, exitcodes.ExitCodeHandledError, exitCode)
}

func TestAbiCommand_RequiresFileArgument(t *testing.T) {
	_, exitCode := executeCommand(t, "", "abi")
	assert.Equal(t, exitcodes.ExitCodeGeneralError, exitCode)
}

func TestAbiCommand_HashFlagNamesCacheFile(t *testing.T) {
	flag := abiCmd.Flags().Lookup("hash")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, compilation.DescriptorHashCacheFileName)
}

func TestRestoreCommand(t *testing.T) {
	instrumented := "var x = _IOSTBinaryOp(a, b, '+'); _IOSTInstruction_counter.incr(3);\nf(_IOSTSpreadElement(args));"
	configPath, sourcePath := writeTestFiles(t, instrumented)

	stdout, exitCode := executeCommand(t, "", "restore", sourcePath, "--config", configPath, "--out=",
		"--stats=true", "--max-iterations", "200")
	require.Equal(t, exitcodes.ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout, "var x = a + b;")
	assert.Contains(t, stdout, "f(args);")
	assert.NotContains(t, stdout, "_IOST")
}

func TestRestoreCommand_TransformLimit(t *testing.T) {
	// The wrapper name occurs in an identifier, so no pattern can ever remove it
	configPath, sourcePath := writeTestFiles(t, "var _IOSTBinaryOpCache = 1;")

	stdout, exitCode := executeCommand(t, "", "restore", sourcePath, "--config", configPath, "--out=",
		"--stats=false", "--max-iterations", "110")
	assert.Equal(t, exitcodes.ExitCodeContractRejected, exitCode)
	assert.Empty(t, stdout)
}

func TestRestoreCommand_InvalidIterationBounds(t *testing.T) {
	configPath, sourcePath := writeTestFiles(t, "var x = 1;")

	// The ceiling must exceed the greedy threshold
	_, exitCode := executeCommand(t, "", "restore", sourcePath, "--config", configPath, "--out=",
		"--stats=false", "--max-iterations", "50")
	assert.Equal(t, exitcodes.ExitCodeHandledError, exitCode)
}

func TestInitCommand(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), DefaultProjectConfigFilename)

	_, exitCode := executeCommand(t, "", "init", "--out", outputPath, "--force=false", "--forbid-destructuring=true")
	require.Equal(t, exitcodes.ExitCodeSuccess, exitCode)

	projectConfig, err := config.ReadProjectConfigFromFile(outputPath)
	require.NoError(t, err)
	assert.True(t, projectConfig.Compilation.ForbidDestructuring)
	assert.Equal(t, restoration.DefaultConfig(), projectConfig.Restoration)
	assert.NoError(t, projectConfig.Validate())
}

func TestInitCommand_OverwritePrompt(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), DefaultProjectConfigFilename)
	require.NoError(t, os.WriteFile(outputPath, []byte("{}"), 0644))

	// Declining keeps the existing file
	stdout, exitCode := executeCommand(t, "n\n", "init", "--out", outputPath, "--force=false",
		"--forbid-destructuring=false")
	require.Equal(t, exitcodes.ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout, "Operation canceled.")
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	// Accepting overwrites it
	_, exitCode = executeCommand(t, "y\n", "init", "--out", outputPath, "--force=false",
		"--forbid-destructuring=false")
	require.Equal(t, exitcodes.ExitCodeSuccess, exitCode)
	_, err = config.ReadProjectConfigFromFile(outputPath)
	require.NoError(t, err)
	data, err = os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "restoration")
}

func TestVersionCommand(t *testing.T) {
	stdout, exitCode := executeCommand(t, "", "version")
	require.Equal(t, exitcodes.ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout, "contractkit version")
}

func TestWithExitCode(t *testing.T) {
	assert.NoError(t, withExitCode(nil))

	rejected := types.NewContractError(types.ErrMissingInit, nil, "class 'C' has no init method")
	_, code := exitcodes.GetInnerErrorAndExitCode(withExitCode(rejected))
	assert.Equal(t, exitcodes.ExitCodeContractRejected, code)

	_, code = exitcodes.GetInnerErrorAndExitCode(withExitCode(errors.New("disk full")))
	assert.Equal(t, exitcodes.ExitCodeHandledError, code)
}

func TestRestorationReport(t *testing.T) {
	report := restorationReport("contract.js", &restoration.Result{
		RemovedCounters: 2,
		TotalIncrement:  decimal.RequireFromString("4.5"),
		Iterations:      3,
		FallbackEngaged: true,
	})

	text := report.String()
	assert.Contains(t, text, "Restored contract.js")
	assert.Contains(t, text, "counters removed: 2 (total increment 4.5)")
	assert.Contains(t, text, "binary operator passes: 3")
	assert.Contains(t, text, "greedy fallback: engaged")
}
