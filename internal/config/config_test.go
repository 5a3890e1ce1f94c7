package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CLEAN_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(33554432), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "mean", cfg.Cleaning.Strategy)
	assert.Equal(t, 3.0, cfg.Cleaning.OutlierThreshold)
	assert.Equal(t, 0.5, cfg.Cleaning.CategoricalRatio)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CLEAN_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("CLEAN_SERVER_PORT", "9090")
	t.Setenv("CLEAN_CLEANING_STRATEGY", "mode")
	t.Setenv("CLEAN_CLEANING_OUTLIER_THRESHOLD", "2.5")
	t.Setenv("CLEAN_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mode", cfg.Cleaning.Strategy)
	assert.Equal(t, 2.5, cfg.Cleaning.OutlierThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
cleaning:
  strategy: delete
paths:
  data_dir: ` + filepath.Join(dir, "data") + `
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	t.Setenv("CLEAN_CONFIG_FILE", configPath)
	// Clear the envconfig default so the file value survives the merge
	t.Setenv("CLEAN_CLEANING_STRATEGY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "delete", cfg.Cleaning.Strategy)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Paths.DataDir)
}

func TestPathsConfig_Resolve(t *testing.T) {
	p := PathsConfig{DataDir: "data"}
	require.NoError(t, p.resolve())

	assert.True(t, filepath.IsAbs(p.DataDir))
	assert.Equal(t, filepath.Join(p.DataDir, "uploads"), p.UploadsDir)
	assert.Equal(t, filepath.Join(p.DataDir, "cleaned"), p.CleanedDir)
	assert.Equal(t, filepath.Join(p.DataDir, "logs"), p.LogsDir)
}

func TestPathsConfig_ResolveKeepsExplicitDirs(t *testing.T) {
	custom := t.TempDir()
	p := PathsConfig{DataDir: "data", CleanedDir: custom}
	require.NoError(t, p.resolve())

	assert.Equal(t, custom, p.CleanedDir)
	assert.Equal(t, filepath.Join(p.DataDir, "uploads"), p.UploadsDir)
}

func TestPathsConfig_EnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	p := PathsConfig{DataDir: dir}
	require.NoError(t, p.resolve())
	require.NoError(t, p.EnsureDirectories())

	for _, d := range []string{p.UploadsDir, p.CleanedDir, p.LogsDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestPathsConfig_FilePaths(t *testing.T) {
	p := PathsConfig{DataDir: t.TempDir()}
	require.NoError(t, p.resolve())

	assert.Equal(t, filepath.Join(p.UploadsDir, "in.csv"), p.GetUploadPath("in.csv"))
	assert.Equal(t, filepath.Join(p.CleanedDir, "out.csv"), p.GetCleanedPath("out.csv"))
	assert.Equal(t, filepath.Join(p.LogsDir, "app.log"), p.GetLogPath("app.log"))
}
