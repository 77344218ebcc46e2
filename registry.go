package sqlshift

import (
	"fmt"
	"sort"
	"strings"
)

// FunctionMappingRule describes how one function name converts between a
// dialect pair. ParameterMappings optionally reorders arguments: entry i is
// the zero-based source argument used as target argument i; nil keeps the
// argument list unchanged.
type FunctionMappingRule struct {
	Source            Dialect
	Target            Dialect
	SourceFunction    string
	TargetFunction    string
	ParameterMappings []int
	WarningKind       WarningKind
	WarningMessage    string
	Suggestion        string
	IsPartialSupport  bool
}

type mappingKey struct {
	source Dialect
	target Dialect
	name   string
}

// FunctionRegistry is a read-only lookup table of function mapping rules
// keyed by (source dialect, target dialect, upper-cased function name).
// It is built once at engine construction and never mutated afterward.
type FunctionRegistry struct {
	rules map[mappingKey]FunctionMappingRule
}

// newFunctionRegistry builds the registry from the built-in rule set.
// Duplicate keys are a programming error and panic at construction time.
func newFunctionRegistry(rules []FunctionMappingRule) *FunctionRegistry {
	reg := &FunctionRegistry{rules: make(map[mappingKey]FunctionMappingRule, len(rules))}
	for _, r := range rules {
		key := mappingKey{r.Source, r.Target, strings.ToUpper(r.SourceFunction)}
		if _, dup := reg.rules[key]; dup {
			panic(fmt.Sprintf("duplicate function mapping rule %s→%s %s", r.Source, r.Target, key.name))
		}
		reg.rules[key] = r
	}
	return reg
}

// Lookup resolves a function mapping for the given dialect pair. Custom
// mappings from options are consulted before the built-in table. The second
// return is false on a miss; a miss is not an error — callers keep the
// original name and log a warning.
func (reg *FunctionRegistry) Lookup(opts *ConversionOptions, source, target Dialect, name string) (FunctionMappingRule, bool) {
	upper := strings.ToUpper(name)
	if opts != nil {
		if repl, ok := opts.CustomMappings[upper]; ok {
			return FunctionMappingRule{
				Source:         source,
				Target:         target,
				SourceFunction: upper,
				TargetFunction: repl,
			}, true
		}
	}
	rule, ok := reg.rules[mappingKey{source, target, upper}]
	return rule, ok
}

// RulesFor returns every built-in rule for a dialect pair in stable
// (source-function) order, used both by the converters and by the fallback
// transformer so the two paths apply identical substitutions.
func (reg *FunctionRegistry) RulesFor(source, target Dialect) []FunctionMappingRule {
	var out []FunctionMappingRule
	for key, rule := range reg.rules {
		if key.source == source && key.target == target {
			out = append(out, rule)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SourceFunction < out[j].SourceFunction
	})
	return out
}

// Size returns the number of built-in rules.
func (reg *FunctionRegistry) Size() int { return len(reg.rules) }
