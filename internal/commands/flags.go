package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ecomstat/ecomclean/internal/config"
	"github.com/ecomstat/ecomclean/internal/logging"
)

// configFlags are shared by the commands that read the project config.
// Precedence is defaults, then the config file, then the environment, then flags.
type configFlags struct {
	path     string
	envFile  string
	input    string
	output   string
	format   string
	logLevel string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "config", "", "config file (default ./"+config.FileName+" when present)")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "dotenv file (default .env next to the config)")
	cmd.Flags().StringVar(&f.input, "input", "", "raw survey table (csv or xlsx)")
	cmd.Flags().StringVar(&f.output, "output", "", "tidy table path")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: auto, csv or arrow")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
}

func (f *configFlags) load() (*config.Config, error) {
	path := f.path
	if path == "" {
		if _, err := os.Stat(config.FileName); err == nil {
			path = config.FileName
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	envFile := f.envFile
	if envFile == "" {
		envFile = filepath.Join(filepath.Dir(path), ".env")
	}
	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return nil, err
	}

	if f.input != "" {
		cfg.Input.Path = f.input
	}
	if f.output != "" {
		cfg.Output.Path = f.output
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return log, nil
}
