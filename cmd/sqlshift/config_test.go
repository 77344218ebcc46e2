package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlshift.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFull(t *testing.T) {
	path := writeConfig(t, `
source = "mysql"
target = "oracle"
rules_file = "rules.yaml"

[options]
preserve_comments = false
format_output = true
include_warnings = true
strict_mode = true
max_complexity_score = 50

[options.custom_mappings]
ifnull = "COALESCE"

[oracle]
schema_owner = "HR"
tablespace = "DATA"
indexspace = "IDX"
separate_primary_key = false
separate_comments = true
generate_index = true

[watch]
input_dir = "in"
output_dir = "out"
debounce_ms = 500
fail_on_error = true
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Source != "mysql" || cfg.Target != "oracle" {
		t.Errorf("dialects = %q -> %q", cfg.Source, cfg.Target)
	}
	if cfg.RulesFile != "rules.yaml" {
		t.Errorf("RulesFile = %q", cfg.RulesFile)
	}
	if cfg.Options.PreserveComments {
		t.Error("PreserveComments not overridden by file")
	}
	if !cfg.Options.StrictMode || cfg.Options.MaxComplexityScore != 50 {
		t.Errorf("options = %+v", cfg.Options)
	}
	if cfg.Oracle.SchemaOwner != "HR" || cfg.Oracle.SeparatePrimaryKey {
		t.Errorf("oracle = %+v", cfg.Oracle)
	}
	if cfg.Watch.DebounceMs != 500 || !cfg.Watch.FailOnError {
		t.Errorf("watch = %+v", cfg.Watch)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
source = "pg"
target = "tibero"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.Options.PreserveComments || !cfg.Options.IncludeWarnings {
		t.Errorf("option defaults = %+v", cfg.Options)
	}
	if !cfg.Oracle.SeparatePrimaryKey || !cfg.Oracle.SeparateComments || !cfg.Oracle.GenerateIndex {
		t.Errorf("oracle defaults = %+v", cfg.Oracle)
	}
	if cfg.Watch.DebounceMs != 200 {
		t.Errorf("DebounceMs = %d, want 200", cfg.Watch.DebounceMs)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, `
source = "mysql"
target = "oracle"
verbose = true
`)
	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown config keys") || !strings.Contains(err.Error(), "verbose") {
		t.Errorf("error = %v", err)
	}
}

func TestLoadConfigBadDialect(t *testing.T) {
	path := writeConfig(t, `
source = "sybase"
target = "oracle"
`)
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected error for unsupported dialect")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigNonPositiveDebounce(t *testing.T) {
	path := writeConfig(t, `
[watch]
debounce_ms = -5
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Watch.DebounceMs != 200 {
		t.Errorf("DebounceMs = %d, want 200", cfg.Watch.DebounceMs)
	}
}

func TestConversionOptionsMapping(t *testing.T) {
	path := writeConfig(t, `
source = "mysql"
target = "oracle"

[options]
preserve_comments = true
include_warnings = true
strict_mode = true
max_complexity_score = 10

[options.custom_mappings]
now = "CURRENT_TIMESTAMP"

[oracle]
schema_owner = "HR"
separate_primary_key = true
separate_comments = true
generate_index = false
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	opts := cfg.conversionOptions()
	if !opts.StrictMode || opts.MaxComplexityScore != 10 {
		t.Errorf("options = %+v", opts)
	}
	if opts.SchemaOwner != "HR" || opts.GenerateIndex {
		t.Errorf("oracle options = %+v", opts)
	}
	if got := opts.CustomMappings["NOW"]; got != "CURRENT_TIMESTAMP" {
		t.Errorf("custom mapping key not upper-cased: %v", opts.CustomMappings)
	}
}

func TestResolvePath(t *testing.T) {
	path := writeConfig(t, `source = "mysql"`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	rel := cfg.resolvePath("rules.yaml")
	if rel != filepath.Join(filepath.Dir(path), "rules.yaml") {
		t.Errorf("resolvePath relative = %q", rel)
	}
	if abs := cfg.resolvePath("/etc/rules.yaml"); abs != "/etc/rules.yaml" {
		t.Errorf("resolvePath absolute = %q", abs)
	}
}
