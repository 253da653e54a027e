// Package config loads and validates ecomclean.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ecomstat/ecomclean/internal/header"
	"github.com/ecomstat/ecomclean/internal/records"
)

// FileName is the default config file name written by init.
const FileName = "ecomclean.yaml"

// EnvPrefix prefixes every environment override, e.g. ECOMCLEAN_INPUT.
const EnvPrefix = "ECOMCLEAN"

// Auto marks a layout offset that is detected from content, or a column
// that is absent.
const Auto = -1

// Config represents the top-level ecomclean.yaml configuration.
type Config struct {
	Input             InputConfig   `yaml:"input" toml:"input"`
	Output            OutputConfig  `yaml:"output" toml:"output"`
	Layout            LayoutConfig  `yaml:"layout" toml:"layout"`
	SuppressionTokens []string      `yaml:"suppression_tokens" toml:"suppression_tokens" validate:"min=1,dive,required"`
	Logging           LoggingConfig `yaml:"logging" toml:"logging"`
	RunLog            string        `yaml:"run_log,omitempty" toml:"run_log,omitempty"`
}

// InputConfig locates the raw survey table.
type InputConfig struct {
	Path   string `yaml:"path" toml:"path" validate:"required"`
	Format string `yaml:"format" toml:"format" validate:"oneof=auto csv xlsx"`
	Sheet  string `yaml:"sheet,omitempty" toml:"sheet,omitempty"` // xlsx only; empty means the first sheet
}

// OutputConfig locates the tidy table.
type OutputConfig struct {
	Path   string `yaml:"path" toml:"path" validate:"required"`
	Format string `yaml:"format" toml:"format" validate:"oneof=auto csv arrow"`
}

// LayoutConfig pins the header band. Rows and columns are 0-based.
type LayoutConfig struct {
	YearRow     int `yaml:"year_row" toml:"year_row" validate:"min=-1"`
	TypeRow     int `yaml:"type_row" toml:"type_row" validate:"min=-1"`
	DataStart   int `yaml:"data_start" toml:"data_start" validate:"min=-1"`
	ScanRows    int `yaml:"scan_rows" toml:"scan_rows" validate:"min=1"`
	CodeCol     int `yaml:"code_col" toml:"code_col" validate:"min=-1"`
	IndustryCol int `yaml:"industry_col" toml:"industry_col" validate:"min=0"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level    string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Encoding string `yaml:"encoding" toml:"encoding" validate:"oneof=console json"`
}

// Default returns a Config with the standard project layout.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:   filepath.Join("data", "raw", "table_1.csv"),
			Format: "auto",
		},
		Output: OutputConfig{
			Path:   filepath.Join("data", "processed", "manufacturing_clean.csv"),
			Format: "auto",
		},
		Layout: LayoutConfig{
			YearRow:     Auto,
			TypeRow:     Auto,
			DataStart:   Auto,
			ScanRows:    12,
			CodeCol:     0,
			IndustryCol: 1,
		},
		SuppressionTokens: []string{"S", "D", "X"},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a config file from disk. Values present in the file overlay
// Default(); TOML is used when the extension is .toml, YAML otherwise.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config as YAML, or TOML when path ends in .toml.
func Save(path string, cfg *Config) error {
	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// envOverrides are the settings that may come from the environment.
type envOverrides struct {
	Input    string `envconfig:"INPUT"`
	Output   string `envconfig:"OUTPUT"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// ApplyEnv loads dotenv (when it exists) into the process environment and
// then applies ECOMCLEAN_INPUT, ECOMCLEAN_OUTPUT and ECOMCLEAN_LOG_LEVEL.
// Variables already set in the environment win over the dotenv file.
func ApplyEnv(cfg *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", dotenv, err)
		}
	}

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if env.Input != "" {
		cfg.Input.Path = env.Input
	}
	if env.Output != "" {
		cfg.Output.Path = env.Output
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(env.LogLevel)
	}
	return nil
}

// Validate checks the struct constraints and the cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Layout.CodeCol == c.Layout.IndustryCol {
		return fmt.Errorf("invalid config: code_col and industry_col are both %d", c.Layout.CodeCol)
	}
	if c.Layout.TypeRow >= 0 && c.Layout.YearRow >= 0 && c.Layout.TypeRow <= c.Layout.YearRow {
		return fmt.Errorf("invalid config: type_row %d must follow year_row %d", c.Layout.TypeRow, c.Layout.YearRow)
	}
	return nil
}

// HeaderLayout converts the layout section for the header resolver.
func (c *Config) HeaderLayout() header.Layout {
	return header.Layout{
		YearRow:     c.Layout.YearRow,
		TypeRow:     c.Layout.TypeRow,
		DataStart:   c.Layout.DataStart,
		ScanRows:    c.Layout.ScanRows,
		CodeCol:     c.Layout.CodeCol,
		IndustryCol: c.Layout.IndustryCol,
	}
}

// BuildParams converts the layout section for the record builder, given the
// resolved first data row.
func (c *Config) BuildParams(dataStart int) records.Params {
	return records.Params{
		DataStart:   dataStart,
		IndustryCol: c.Layout.IndustryCol,
		CodeCol:     c.Layout.CodeCol,
	}
}
