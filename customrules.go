package sqlshift

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk format for user-supplied function mapping rules.
// Rules loaded from a file are layered over the built-in table through
// WithFunctionRules.
type RulesFile struct {
	Version string         `yaml:"version"`
	Rules   []RuleFileItem `yaml:"rules"`
}

// RuleFileItem is one mapping rule in a rules file.
type RuleFileItem struct {
	Source         string `yaml:"source"`
	Target         string `yaml:"target"`
	SourceFunction string `yaml:"source_function"`
	TargetFunction string `yaml:"target_function"`
	ParameterOrder []int  `yaml:"parameter_order,omitempty"`
	Partial        bool   `yaml:"partial,omitempty"`
	Warning        string `yaml:"warning,omitempty"`
	Suggestion     string `yaml:"suggestion,omitempty"`
}

// Supported rules file versions.
const (
	RulesFileVersionV1 = "v1"
)

// LoadRulesFile reads and validates a YAML rules file.
func LoadRulesFile(path string) ([]FunctionMappingRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRulesFile(data)
}

// ParseRulesFile validates raw YAML rules content.
func ParseRulesFile(data []byte) ([]FunctionMappingRule, error) {
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	// Legacy files without a version field are treated as v1.
	if file.Version == "" {
		file.Version = RulesFileVersionV1
	}
	if file.Version != RulesFileVersionV1 {
		return nil, fmt.Errorf("unsupported rules file version %q (supported: %s)",
			file.Version, RulesFileVersionV1)
	}

	rules := make([]FunctionMappingRule, 0, len(file.Rules))
	seen := make(map[mappingKey]int, len(file.Rules))
	for i, item := range file.Rules {
		rule, err := item.toRule()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		key := mappingKey{rule.Source, rule.Target, strings.ToUpper(rule.SourceFunction)}
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("rule %d: duplicates rule %d (%s→%s %s)",
				i+1, prev, rule.Source, rule.Target, rule.SourceFunction)
		}
		seen[key] = i + 1
		rules = append(rules, rule)
	}
	return rules, nil
}

func (item RuleFileItem) toRule() (FunctionMappingRule, error) {
	source, err := ParseDialect(item.Source)
	if err != nil {
		return FunctionMappingRule{}, err
	}
	target, err := ParseDialect(item.Target)
	if err != nil {
		return FunctionMappingRule{}, err
	}
	if strings.TrimSpace(item.SourceFunction) == "" {
		return FunctionMappingRule{}, fmt.Errorf("source_function is required")
	}
	if strings.TrimSpace(item.TargetFunction) == "" {
		return FunctionMappingRule{}, fmt.Errorf("target_function is required")
	}
	rule := FunctionMappingRule{
		Source:            source,
		Target:            target,
		SourceFunction:    strings.ToUpper(strings.TrimSpace(item.SourceFunction)),
		TargetFunction:    strings.TrimSpace(item.TargetFunction),
		ParameterMappings: item.ParameterOrder,
		IsPartialSupport:  item.Partial,
		WarningMessage:    item.Warning,
		Suggestion:        item.Suggestion,
	}
	if rule.WarningMessage != "" {
		rule.WarningKind = WarnPartialSupport
	}
	return rule, nil
}
