package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iost-studio/contractkit/utils"
	"github.com/stretchr/testify/require"
)

// CopyToTestDirectory copies the file at the provided filePath (relative to the working directory) to an ephemeral
// directory used for unit tests. Returns the absolute path of the copy.
func CopyToTestDirectory(t *testing.T, filePath string) string {
	// Construct our file path relative to our working directory
	cwd, err := os.Getwd()
	require.NoError(t, err)
	sourcePath := filepath.Join(cwd, filePath)

	// Verify the file path exists
	sourcePathInfo, err := os.Stat(sourcePath)
	require.NoError(t, err)
	require.False(t, sourcePathInfo.IsDir(), "only files can be copied to a test directory")

	// Obtain an isolated test directory path and copy our source to it
	targetPath := filepath.Join(t.TempDir(), "contractkitTest", sourcePathInfo.Name())
	require.NoError(t, utils.CopyFile(sourcePath, targetPath))

	// Get a normalized absolute path
	targetPath, err = filepath.Abs(targetPath)
	require.NoError(t, err)
	return targetPath
}

// ExecuteInDirectory executes the given method in a given test directory. It changes the current working directory
// to the directory specified, runs the provided method, then restores the working directory. This wraps tests so
// any file artifacts generated do not end up in the codebase directories.
func ExecuteInDirectory(t *testing.T, testPath string, method func()) {
	// Backup our old working directory
	cwd, err := os.Getwd()
	require.NoError(t, err)

	// Change to the directory holding the test path if it refers to a file
	testPathInfo, err := os.Stat(testPath)
	require.NoError(t, err)
	testDirectory := testPath
	if !testPathInfo.IsDir() {
		testDirectory = filepath.Dir(testPath)
	}

	err = os.Chdir(testDirectory)
	require.NoError(t, err)

	// Restore our working directory (we must leave the test directory or else clean up will fail post testing)
	defer func() {
		require.NoError(t, os.Chdir(cwd))
	}()

	method()
}
