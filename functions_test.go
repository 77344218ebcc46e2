package sqlshift

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitTopLevelArgs(t *testing.T) {
	tests := []struct {
		name string
		args string
		want []string
	}{
		{"empty", "  ", nil},
		{"single", "a", []string{"a"}},
		{"flat", "a, b, c", []string{"a", "b", "c"}},
		{"nested call", "SUBSTR(a, 1, 2), 'x'", []string{"SUBSTR(a, 1, 2)", "'x'"}},
		{"comma inside literal", "'a,b', c", []string{"'a,b'", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTopLevelArgs(tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitTopLevelArgs(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestApplyFunctionRule(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		rule FunctionMappingRule
		want string
	}{
		{
			"simple rename",
			"SELECT IFNULL(a, 0) FROM t",
			FunctionMappingRule{SourceFunction: "IFNULL", TargetFunction: "NVL"},
			"SELECT NVL(a, 0) FROM t",
		},
		{
			"case insensitive",
			"select ifnull(a, 0) from t",
			FunctionMappingRule{SourceFunction: "IFNULL", TargetFunction: "NVL"},
			"select NVL(a, 0) from t",
		},
		{
			"argument swap",
			"SELECT LOCATE('x', name) FROM t",
			FunctionMappingRule{SourceFunction: "LOCATE", TargetFunction: "INSTR", ParameterMappings: []int{1, 0}},
			"SELECT INSTR(name, 'x') FROM t",
		},
		{
			"bare keyword",
			"SELECT SYSDATE FROM DUAL",
			FunctionMappingRule{SourceFunction: "SYSDATE", TargetFunction: "NOW()"},
			"SELECT NOW() FROM DUAL",
		},
		{
			"zero-arg call",
			"SELECT NOW() FROM t",
			FunctionMappingRule{SourceFunction: "NOW", TargetFunction: "SYSDATE"},
			"SELECT SYSDATE FROM t",
		},
		{
			"literal untouched",
			"SELECT 'IFNULL(a, 0)' FROM t",
			FunctionMappingRule{SourceFunction: "IFNULL", TargetFunction: "NVL"},
			"SELECT 'IFNULL(a, 0)' FROM t",
		},
		{
			"qualified name skipped",
			"SELECT pkg.IFNULL(a, 0) FROM t",
			FunctionMappingRule{SourceFunction: "IFNULL", TargetFunction: "NVL"},
			"SELECT pkg.IFNULL(a, 0) FROM t",
		},
		{
			"multiple occurrences",
			"SELECT IFNULL(a, 0), IFNULL(b, 1) FROM t",
			FunctionMappingRule{SourceFunction: "IFNULL", TargetFunction: "NVL"},
			"SELECT NVL(a, 0), NVL(b, 1) FROM t",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := applyFunctionRule(tt.sql, tt.rule)
			if got != tt.want {
				t.Errorf("applyFunctionRule(%q) = %q, want %q", tt.sql, got, tt.want)
			}
		})
	}
}

func TestExpandDecode(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			"with default",
			"SELECT DECODE(status, 1, 'A', 2, 'B', 'C') FROM t",
			"SELECT CASE WHEN status = 1 THEN 'A' WHEN status = 2 THEN 'B' ELSE 'C' END FROM t",
		},
		{
			"without default",
			"SELECT DECODE(status, 1, 'A', 2, 'B') FROM t",
			"SELECT CASE WHEN status = 1 THEN 'A' WHEN status = 2 THEN 'B' END FROM t",
		},
		{
			"null search value",
			"SELECT DECODE(x, NULL, 'none', 'some') FROM t",
			"SELECT CASE WHEN x IS NULL THEN 'none' ELSE 'some' END FROM t",
		},
		{
			"nested call argument",
			"SELECT DECODE(SUBSTR(a, 1, 1), 'Y', 1, 0) FROM t",
			"SELECT CASE WHEN SUBSTR(a, 1, 1) = 'Y' THEN 1 ELSE 0 END FROM t",
		},
		{
			"too few arguments untouched",
			"SELECT DECODE(a, b) FROM t",
			"SELECT DECODE(a, b) FROM t",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandDecode(tt.sql, newConversionState())
			if got != tt.want {
				t.Errorf("expandDecode(%q) = %q, want %q", tt.sql, got, tt.want)
			}
		})
	}
}

func TestExpandNVL2(t *testing.T) {
	state := newConversionState()
	got := expandNVL2("SELECT NVL2(phone, 'has phone', 'no phone') FROM t", state)
	want := "SELECT CASE WHEN phone IS NOT NULL THEN 'has phone' ELSE 'no phone' END FROM t"
	if got != want {
		t.Errorf("expandNVL2 = %q, want %q", got, want)
	}
	if len(state.rules) != 1 || state.rules[0] != "nvl2-to-case" {
		t.Errorf("rules = %v, want [nvl2-to-case]", state.rules)
	}
}

func TestConcatToPipes(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"three args", "SELECT CONCAT(a, b, c) FROM t", "SELECT a || b || c FROM t"},
		{"two args", "SELECT CONCAT(first, last) FROM t", "SELECT first || last FROM t"},
		{"one arg untouched", "SELECT CONCAT(a) FROM t", "SELECT CONCAT(a) FROM t"},
		{"literal comma kept together", "SELECT CONCAT(a, ', ', b) FROM t", "SELECT a || ', ' || b FROM t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := concatToPipes(tt.sql, newConversionState())
			if got != tt.want {
				t.Errorf("concatToPipes(%q) = %q, want %q", tt.sql, got, tt.want)
			}
		})
	}
}

func TestWarnUnmappedFunctions(t *testing.T) {
	state := newConversionState()
	// ADD_MONTHS is an Oracle function with no MySQL counterpart.
	warnUnmappedFunctions("SELECT ADD_MONTHS(hired, 3) FROM emp", Oracle, MySQL, state)
	found := false
	for _, w := range state.warnings {
		if w.Kind == WarnUnsupportedFunction && strings.Contains(w.Message, "ADD_MONTHS") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected UNSUPPORTED_FUNCTION warning for ADD_MONTHS, got %v", state.warnings)
	}

	// Functions both dialects share stay silent.
	state = newConversionState()
	warnUnmappedFunctions("SELECT UPPER(name) FROM emp", Oracle, MySQL, state)
	if len(state.warnings) != 0 {
		t.Errorf("expected no warnings for UPPER, got %v", state.warnings)
	}
}

func TestApplyFunctionMappingsCustomFirst(t *testing.T) {
	reg := newFunctionRegistry(builtinFunctionRules())
	opts := &ConversionOptions{CustomMappings: map[string]string{"IFNULL": "COALESCE"}}
	state := newConversionState()

	got := applyFunctionMappings("SELECT IFNULL(a, 0) FROM t", reg, opts, MySQL, Oracle, state)
	want := "SELECT COALESCE(a, 0) FROM t"
	if got != want {
		t.Errorf("applyFunctionMappings = %q, want %q", got, want)
	}
	foundCustom := false
	for _, r := range state.rules {
		if r == "custom-function:IFNULL->COALESCE" {
			foundCustom = true
		}
		if r == "function:IFNULL->NVL" {
			t.Errorf("built-in rule fired despite custom override: %v", state.rules)
		}
	}
	if !foundCustom {
		t.Errorf("custom rule not recorded: %v", state.rules)
	}
}

func TestApplyFunctionMappingsCustomOrderDeterministic(t *testing.T) {
	reg := newFunctionRegistry(builtinFunctionRules())
	// FOO->BAR and BAR->BAZ overlap: if BAR ran after FOO, FOO's output
	// would be rewritten a second time. Sorted application pins the result.
	opts := &ConversionOptions{CustomMappings: map[string]string{
		"FOO": "BAR",
		"BAR": "BAZ",
	}}
	want := "SELECT BAR(1) FROM t"
	for i := 0; i < 20; i++ {
		got := applyFunctionMappings("SELECT FOO(1) FROM t", reg, opts, MySQL, Oracle, newConversionState())
		if got != want {
			t.Fatalf("run %d: applyFunctionMappings = %q, want %q", i, got, want)
		}
	}
}
