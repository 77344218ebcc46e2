package sqlshift

import (
	"regexp"
	"strings"
)

// FallbackConverter is the pattern-based safety net. It applies an ordered
// list of idempotent text stages to statements the structured path could
// not handle. Every stage operates on literal-masked text, so string
// contents are never rewritten, and no stage ever fails: text a stage does
// not recognize passes through untouched.
type FallbackConverter struct {
	source    Dialect
	functions *FunctionRegistry
}

// NewFallbackConverter builds the fallback path for one source dialect.
func NewFallbackConverter(source Dialect, functions *FunctionRegistry) *FallbackConverter {
	return &FallbackConverter{source: source, functions: functions}
}

var (
	reSelectNoFrom = regexp.MustCompile(`(?is)^\s*SELECT\b`)
	reHasFrom      = regexp.MustCompile(`(?i)\bFROM\b`)
)

// Convert runs every rewrite stage in order, then flags the output for
// review in strict mode. The stages are individually idempotent, so
// re-running the fallback over already-converted text is harmless.
func (f *FallbackConverter) Convert(sql string, target Dialect, opts *ConversionOptions, state *conversionState) string {
	if strings.TrimSpace(sql) == "" {
		return sql
	}
	out := applyDialectRewrites(sql, f.source, target, f.functions, opts, state)
	switch classifyStatement(sql) {
	case KindCreateTable, KindAlter:
		// No column structure is available here; rewrite the type names the
		// raw text shows.
		out = substituteTypeNames(out, f.source, target, state)
	}
	warnUnmappedFunctions(out, f.source, target, state)
	if opts.StrictMode {
		state.warn(WarnManualReviewNeeded, SeverityWarning,
			"statement was handled by pattern matching, not structural analysis; review the output", "")
	}
	return out
}

// applyDialectRewrites is the ordered stage list shared by the fallback
// path and the structured DML path. Every stage operates on literal-masked
// text and passes unrecognized input through untouched.
func applyDialectRewrites(sql string, source, target Dialect, functions *FunctionRegistry,
	opts *ConversionOptions, state *conversionState) string {

	out := sql

	// Stage 1: function call mappings, custom rules first.
	out = applyFunctionMappings(out, functions, opts, source, target, state)

	// Stage 2: expression rewrites with no one-to-one target function.
	if source.IsOracleFamily() && !target.IsOracleFamily() {
		out = expandDecode(out, state)
		out = expandNVL2(out, state)
	}
	if source == MySQL && target != MySQL {
		out = concatToPipes(out, state)
	}

	// Stage 3: pagination.
	out = convertPagination(out, source, target, state)

	// Stage 4: dummy-table handling. Oracle requires FROM DUAL on
	// expression-only selects; the other dialects reject it.
	if source.IsOracleFamily() && !target.IsOracleFamily() {
		out = removeFromDual(out, state)
	}
	if !source.IsOracleFamily() && target.IsOracleFamily() {
		out = ensureFromDual(out, state)
	}

	// Stage 5: set operations.
	if source.IsOracleFamily() && !target.IsOracleFamily() {
		out = minusToExcept(out, state)
	}
	if !source.IsOracleFamily() && target.IsOracleFamily() {
		out = exceptToMinus(out, state)
	}
	return out
}

func convertPagination(sql string, source, target Dialect, state *conversionState) string {
	switch {
	case source.IsOracleFamily() && !target.IsOracleFamily():
		sql = rownumToLimit(sql, state)
		if target == MySQL {
			sql = fetchToLimit(sql, state)
		}
	case source == MySQL && target.IsOracleFamily():
		sql = limitToFetch(sql, state)
	case source == MySQL && target == PostgreSQL:
		// LIMIT n,m is MySQL-only; PostgreSQL takes LIMIT n OFFSET m.
		sql = commaLimitToOffset(sql, state)
	case source == PostgreSQL && target.IsOracleFamily():
		sql = limitToFetch(sql, state)
	}
	return sql
}

// ensureFromDual appends FROM DUAL to expression-only selects. Selects
// that already read from a table are left alone.
func ensureFromDual(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)
	if !reSelectNoFrom.MatchString(masked) || reHasFrom.MatchString(masked) {
		return sql
	}
	trimmed := strings.TrimRight(sql, " \t\n")
	state.addRule("add-from-dual")
	return trimmed + " FROM DUAL"
}

var reCommaLimit = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)\s*,\s*(\d+)`)

// commaLimitToOffset rewrites LIMIT offset,count into LIMIT count OFFSET
// offset for targets that reject the comma form.
func commaLimitToOffset(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)
	m := reCommaLimit.FindStringSubmatchIndex(masked)
	if m == nil {
		return sql
	}
	offset := masked[m[2]:m[3]]
	count := masked[m[4]:m[5]]
	state.addRule("limit-comma-to-offset")
	return sql[:m[0]] + "LIMIT " + count + " OFFSET " + offset + sql[m[1]:]
}

var reExcept = regexp.MustCompile(`(?i)\bEXCEPT\b`)

// exceptToMinus is the inverse of minusToExcept for Oracle-family targets.
func exceptToMinus(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)
	locs := reExcept.FindAllStringIndex(masked, -1)
	if locs == nil {
		return sql
	}
	var b strings.Builder
	prev := 0
	for _, loc := range locs {
		b.WriteString(sql[prev:loc[0]])
		b.WriteString("MINUS")
		prev = loc[1]
	}
	b.WriteString(sql[prev:])
	state.addRule("except-to-minus")
	return b.String()
}
