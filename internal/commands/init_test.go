package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomstat/ecomclean/internal/commands"
	"github.com/ecomstat/ecomclean/internal/config"
)

func runEcomclean(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"ECOMCLEAN_INPUT", "ECOMCLEAN_OUTPUT", "ECOMCLEAN_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runEcomclean(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized ecomclean project at "+dir)

	for _, d := range []string{
		filepath.Join("data", "raw"),
		filepath.Join("data", "processed"),
		"logs",
	} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	assert.FileExists(t, filepath.Join(dir, "data", "raw", ".gitkeep"))
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runEcomclean(t, "init", dir)
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Input, cfg.Input)
	assert.Equal(t, filepath.Join("logs", "runs.csv"), cfg.RunLog)
	assert.NoError(t, cfg.Validate())
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runEcomclean(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	for _, pattern := range []string{"data/processed/", "logs/", ".env"} {
		assert.Contains(t, string(data), pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runEcomclean(t, "init", dir)
	require.NoError(t, err)

	_, err = runEcomclean(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runEcomclean(t, "init", dir, "--force")
	assert.NoError(t, err)
}

func TestInit_TooManyArgs(t *testing.T) {
	_, err := runEcomclean(t, "init", "a", "b")
	assert.Error(t, err)
}
