package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sqlshift/sqlshift"
)

// ToolConfig holds the full TOML-driven conversion configuration.
type ToolConfig struct {
	Source    string        `toml:"source"`
	Target    string        `toml:"target"`
	RulesFile string        `toml:"rules_file"`
	Options   OptionsConfig `toml:"options"`
	Oracle    OracleConfig  `toml:"oracle"`
	Watch     WatchConfig   `toml:"watch"`

	// configDir is the directory containing the TOML file, used to resolve
	// relative paths.
	configDir string
}

// OptionsConfig mirrors the engine's conversion options.
type OptionsConfig struct {
	PreserveComments        bool              `toml:"preserve_comments"`
	FormatOutput            bool              `toml:"format_output"`
	IncludeWarnings         bool              `toml:"include_warnings"`
	StrictMode              bool              `toml:"strict_mode"`
	SkipUnsupportedFeatures bool              `toml:"skip_unsupported_features"`
	MaxComplexityScore      int               `toml:"max_complexity_score"`
	CustomMappings          map[string]string `toml:"custom_mappings"`
}

// OracleConfig carries the Oracle-family DDL placement options.
type OracleConfig struct {
	SchemaOwner        string `toml:"schema_owner"`
	Tablespace         string `toml:"tablespace"`
	Indexspace         string `toml:"indexspace"`
	SeparatePrimaryKey bool   `toml:"separate_primary_key"`
	SeparateComments   bool   `toml:"separate_comments"`
	GenerateIndex      bool   `toml:"generate_index"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	InputDir    string `toml:"input_dir"`
	OutputDir   string `toml:"output_dir"`
	DebounceMs  int    `toml:"debounce_ms"`
	FailOnError bool   `toml:"fail_on_error"`
}

// loadConfig reads a TOML config file and returns a ToolConfig with
// defaults applied. Unknown keys are an error.
func loadConfig(path string) (*ToolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := ToolConfig{
		Options: OptionsConfig{
			PreserveComments: true,
			IncludeWarnings:  true,
		},
		Oracle: OracleConfig{
			SeparatePrimaryKey: true,
			SeparateComments:   true,
			GenerateIndex:      true,
		},
		Watch: WatchConfig{DebounceMs: 200},
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	if cfg.Source != "" {
		if _, err := sqlshift.ParseDialect(cfg.Source); err != nil {
			return nil, err
		}
	}
	if cfg.Target != "" {
		if _, err := sqlshift.ParseDialect(cfg.Target); err != nil {
			return nil, err
		}
	}
	if cfg.Watch.DebounceMs <= 0 {
		cfg.Watch.DebounceMs = 200
	}
	return &cfg, nil
}

// resolvePath resolves a path relative to the config file directory.
func (c *ToolConfig) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.configDir, p)
}

// conversionOptions builds the engine options from the config.
func (c *ToolConfig) conversionOptions() *sqlshift.ConversionOptions {
	custom := make(map[string]string, len(c.Options.CustomMappings))
	for k, v := range c.Options.CustomMappings {
		custom[strings.ToUpper(k)] = v
	}
	return &sqlshift.ConversionOptions{
		PreserveComments:        c.Options.PreserveComments,
		FormatOutput:            c.Options.FormatOutput,
		IncludeWarnings:         c.Options.IncludeWarnings,
		StrictMode:              c.Options.StrictMode,
		SkipUnsupportedFeatures: c.Options.SkipUnsupportedFeatures,
		MaxComplexityScore:      c.Options.MaxComplexityScore,
		CustomMappings:          custom,
		SchemaOwner:             c.Oracle.SchemaOwner,
		Tablespace:              c.Oracle.Tablespace,
		Indexspace:              c.Oracle.Indexspace,
		SeparatePrimaryKey:      c.Oracle.SeparatePrimaryKey,
		SeparateComments:        c.Oracle.SeparateComments,
		GenerateIndex:           c.Oracle.GenerateIndex,
	}
}
