package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomstat/ecomclean/internal/header"
	"github.com/ecomstat/ecomclean/internal/model"
)

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"ecomclean.yaml", "ecomclean.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.Input.Path = "in/table.xlsx"
			cfg.Input.Sheet = "Table 1"
			cfg.Output.Format = "arrow"
			cfg.Layout.YearRow = 3
			cfg.Layout.CodeCol = Auto
			cfg.SuppressionTokens = []string{"S", "Z"}
			cfg.RunLog = "logs/runs.csv"

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, cfg))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("data", "raw", "table_1.csv"), cfg.Input.Path)
	assert.Equal(t, filepath.Join("data", "processed", "manufacturing_clean.csv"), cfg.Output.Path)
	assert.Equal(t, "auto", cfg.Input.Format)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, []string{"S", "D", "X"}, cfg.SuppressionTokens)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.RunLog)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, header.DefaultLayout(), cfg.HeaderLayout())
}

func TestLoad_PartialFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecomclean.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  data_start: 7\nlogging:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Layout.DataStart)
	assert.Equal(t, Auto, cfg.Layout.YearRow)
	assert.Equal(t, 12, cfg.Layout.ScanRows)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.Equal(t, Default().Input, cfg.Input)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecomclean.toml")
	data := "suppression_tokens = [\"S\"]\n\n[output]\npath = \"out/tidy.arrow\"\nformat = \"arrow\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out/tidy.arrow", cfg.Output.Path)
	assert.Equal(t, "arrow", cfg.Output.Format)
	assert.Equal(t, []string{"S"}, cfg.SuppressionTokens)
	assert.Equal(t, Default().Input, cfg.Input)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: [1, 2"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty input", func(c *Config) { c.Input.Path = "" }, "Input.Path"},
		{"bad input format", func(c *Config) { c.Input.Format = "json" }, "Input.Format"},
		{"bad output format", func(c *Config) { c.Output.Format = "parquet" }, "Output.Format"},
		{"no tokens", func(c *Config) { c.SuppressionTokens = nil }, "SuppressionTokens"},
		{"blank token", func(c *Config) { c.SuppressionTokens = []string{"S", ""} }, "SuppressionTokens[1]"},
		{"offset below auto", func(c *Config) { c.Layout.YearRow = -2 }, "Layout.YearRow"},
		{"zero scan rows", func(c *Config) { c.Layout.ScanRows = 0 }, "Layout.ScanRows"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "Logging.Level"},
		{"same columns", func(c *Config) { c.Layout.CodeCol = 1 }, "code_col and industry_col"},
		{"type before year", func(c *Config) { c.Layout.YearRow, c.Layout.TypeRow = 3, 2 }, "type_row 2 must follow year_row 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("ECOMCLEAN_OUTPUT=from-dotenv.csv\nECOMCLEAN_INPUT=ignored.csv\n"), 0o644))

	t.Setenv("ECOMCLEAN_INPUT", "from-env.csv")
	t.Setenv("ECOMCLEAN_OUTPUT", "")
	t.Setenv("ECOMCLEAN_LOG_LEVEL", "WARN")
	os.Unsetenv("ECOMCLEAN_OUTPUT")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, dotenv))

	assert.Equal(t, "from-env.csv", cfg.Input.Path)
	assert.Equal(t, "from-dotenv.csv", cfg.Output.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestApplyEnv_MissingDotenv(t *testing.T) {
	t.Setenv("ECOMCLEAN_INPUT", "")
	t.Setenv("ECOMCLEAN_OUTPUT", "")
	t.Setenv("ECOMCLEAN_LOG_LEVEL", "")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, Default(), cfg)
}

func TestBuildParams(t *testing.T) {
	cfg := Default()
	cfg.Layout.CodeCol = model.NoColumn
	cfg.Layout.IndustryCol = 0

	p := cfg.BuildParams(4)
	assert.Equal(t, 4, p.DataStart)
	assert.Equal(t, 0, p.DataEnd)
	assert.Equal(t, 0, p.IndustryCol)
	assert.Equal(t, model.NoColumn, p.CodeCol)
}
