package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesDirectories(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, WriteFile(directory, "out.json", []byte("{}")))

	data, err := os.ReadFile(filepath.Join(directory, "out.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestMakeDirectoryRejectsFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	assert.Error(t, MakeDirectory(filePath))
	assert.NoError(t, MakeDirectory(filepath.Dir(filePath)))
}

func TestCopyFile(t *testing.T) {
	directory := t.TempDir()
	sourcePath := filepath.Join(directory, "source.js")
	require.NoError(t, os.WriteFile(sourcePath, []byte("class C {}"), 0600))

	targetPath := filepath.Join(directory, "nested", "target.js")
	require.NoError(t, CopyFile(sourcePath, targetPath))

	data, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "class C {}", string(data))

	info, err := os.Stat(targetPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Directories cannot be copied as files
	assert.Error(t, CopyFile(directory, filepath.Join(directory, "copy")))
}
