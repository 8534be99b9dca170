package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProjectConfig(t *testing.T) {
	t.Parallel()

	projectConfig := GetDefaultProjectConfig()
	require.NoError(t, projectConfig.Validate())
	assert.Equal(t, "javascript", projectConfig.Compilation.Language)
	assert.Equal(t, "1.0.0", projectConfig.Compilation.Version)
	assert.Contains(t, projectConfig.Compilation.ReservedNames, "_IOSTBinaryOp")
	assert.Equal(t, 100, projectConfig.Restoration.GreedyAfterIterations)
	assert.Equal(t, 200, projectConfig.Restoration.MaxIterations)
	assert.Equal(t, zerolog.InfoLevel, projectConfig.Logging.Level)
}

func TestProjectConfigRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "contractkit.json")
	projectConfig := GetDefaultProjectConfig()
	projectConfig.Compilation.Version = "1.2.3"
	projectConfig.Compilation.ForbidDestructuring = true
	projectConfig.Restoration.MaxIterations = 500
	projectConfig.Logging.Level = zerolog.DebugLevel
	require.NoError(t, projectConfig.WriteToFile(path))

	loaded, err := ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, projectConfig, loaded)

	// Levels are written by name
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"level": "debug"`)
}

func TestReadProjectConfigFromFile_PartialOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "contractkit.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"restoration": {"maxIterations": 300}, "logging": {"level": "warn"}}`), 0644))

	loaded, err := ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 300, loaded.Restoration.MaxIterations)
	assert.Equal(t, 100, loaded.Restoration.GreedyAfterIterations)
	assert.Equal(t, "_IOSTBinaryOp", loaded.Restoration.BinaryOpName)
	assert.Equal(t, zerolog.WarnLevel, loaded.Logging.Level)
	assert.Equal(t, "1.0.0", loaded.Compilation.Version)
	require.NoError(t, loaded.Validate())
}

func TestReadProjectConfigFromFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadProjectConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = ReadProjectConfigFromFile(path)
	assert.Error(t, err)
}

func TestProjectConfigValidate(t *testing.T) {
	t.Parallel()

	projectConfig := GetDefaultProjectConfig()
	projectConfig.Compilation.Version = "one"
	assert.Error(t, projectConfig.Validate(), "version must be a semantic version")

	projectConfig = GetDefaultProjectConfig()
	projectConfig.Compilation = nil
	assert.Error(t, projectConfig.Validate())

	projectConfig = GetDefaultProjectConfig()
	projectConfig.Restoration.TemplateTagName = projectConfig.Restoration.CounterName
	assert.Error(t, projectConfig.Validate())

	projectConfig = GetDefaultProjectConfig()
	projectConfig.Restoration.GreedyAfterIterations = 300
	assert.Error(t, projectConfig.Validate())
}
