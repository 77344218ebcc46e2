package sqlshift

import (
	"regexp"
	"sort"
	"strings"
)

// Source-only physical-storage and DDL-option clauses that have no meaning
// on other targets. Patterns are anchored to single clauses so they never
// cross a statement boundary.

type stripRule struct {
	name string
	re   *regexp.Regexp
}

var oracleStorageRules = []stripRule{
	{"strip-tablespace", regexp.MustCompile(`(?i)\s+TABLESPACE\s+"?\w+"?`)},
	{"strip-storage", regexp.MustCompile(`(?i)\s+STORAGE\s*\([^)]*\)`)},
	{"strip-pct", regexp.MustCompile(`(?i)\s+(PCTFREE|PCTUSED|INITRANS|MAXTRANS)\s+\d+`)},
	{"strip-compress", regexp.MustCompile(`(?i)\s+(NOCOMPRESS|COMPRESS(\s+FOR\s+\w+)?)\b`)},
	{"strip-logging", regexp.MustCompile(`(?i)\s+(NOLOGGING|LOGGING)\b`)},
	{"strip-parallel", regexp.MustCompile(`(?i)\s+(NOPARALLEL|PARALLEL(\s+\d+)?)\b`)},
	{"strip-cache", regexp.MustCompile(`(?i)\s+(NOCACHE|CACHE)\b`)},
	{"strip-monitoring", regexp.MustCompile(`(?i)\s+(NOMONITORING|MONITORING)\b`)},
	{"strip-segment-creation", regexp.MustCompile(`(?i)\s+SEGMENT\s+CREATION\s+(IMMEDIATE|DEFERRED)\b`)},
	{"strip-row-movement", regexp.MustCompile(`(?i)\s+(ENABLE|DISABLE)\s+ROW\s+MOVEMENT\b`)},
	{"strip-constraint-state", regexp.MustCompile(`(?i)\s+(ENABLE|DISABLE)\s+(VALIDATE|NOVALIDATE)\b`)},
	{"strip-result-cache", regexp.MustCompile(`(?i)\s+RESULT_CACHE\s*\([^)]*\)`)},
	{"strip-optimizer-hint", regexp.MustCompile(`(?s)/\*\+.*?\*/`)},
}

var mysqlTableOptionRules = []stripRule{
	{"strip-engine", regexp.MustCompile(`(?i)\s+ENGINE\s*=\s*\w+`)},
	{"strip-charset", regexp.MustCompile(`(?i)\s+(DEFAULT\s+)?(CHARSET|CHARACTER\s+SET)\s*=\s*\w+`)},
	{"strip-collate-option", regexp.MustCompile(`(?i)\s+(DEFAULT\s+)?COLLATE\s*=\s*\w+`)},
	{"strip-auto-increment-option", regexp.MustCompile(`(?i)\s+AUTO_INCREMENT\s*=\s*\d+`)},
	{"strip-row-format", regexp.MustCompile(`(?i)\s+ROW_FORMAT\s*=\s*\w+`)},
	{"strip-key-block-size", regexp.MustCompile(`(?i)\s+KEY_BLOCK_SIZE\s*=\s*\d+`)},
}

// storageRulesFor returns the strip rules that remove source-only physical
// clauses when converting away from the source dialect.
func storageRulesFor(source Dialect) []stripRule {
	switch {
	case source.IsOracleFamily():
		return oracleStorageRules
	case source == MySQL:
		return mysqlTableOptionRules
	default:
		return nil
	}
}

// stripPhysicalClauses removes the source's physical-storage DDL options.
// Only DDL-shaped statements are touched; DML passes through so clause
// keywords inside expressions are never clipped.
func stripPhysicalClauses(sql string, source Dialect, kind StatementKind, state *conversionState) string {
	switch kind {
	case KindCreateTable, KindCreateIndex, KindAlter, KindCreateMaterializedView, KindOther:
	default:
		if kind != KindSelect || !strings.Contains(sql, "/*+") {
			return sql
		}
		// optimizer hints are legal in DML too
		out := sql
		for _, r := range oracleStorageRules {
			if r.name != "strip-optimizer-hint" {
				continue
			}
			if r.re.MatchString(out) {
				out = r.re.ReplaceAllString(out, "")
				state.addRule(r.name)
			}
		}
		return out
	}

	out := sql
	for _, r := range storageRulesFor(source) {
		masked := maskSingleQuoted(out)
		locs := r.re.FindAllStringIndex(masked, -1)
		if len(locs) == 0 {
			continue
		}
		var b strings.Builder
		last := 0
		for _, loc := range locs {
			b.WriteString(out[last:loc[0]])
			last = loc[1]
		}
		b.WriteString(out[last:])
		out = b.String()
		state.addRule(r.name)
	}
	return out
}

var (
	reFromDual      = regexp.MustCompile(`(?i)\s+FROM\s+"?DUAL"?\b`)
	reMinusKeyword  = regexp.MustCompile(`(?i)\bMINUS\b`)
	reLineComment   = regexp.MustCompile(`(?m)--[^\n]*`)
	reBlockComment  = regexp.MustCompile(`(?s)/\*[^+].*?\*/|/\*\*/`)
	reCommentClause = regexp.MustCompile(`(?i)\s+COMMENT\s+('(?:[^']|'')*')`)
)

// removeFromDual drops Oracle's FROM DUAL for targets that allow a bare
// SELECT.
func removeFromDual(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)
	locs := reFromDual.FindAllStringIndex(masked, -1)
	if len(locs) == 0 {
		return sql
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(sql[last:loc[0]])
		last = loc[1]
	}
	b.WriteString(sql[last:])
	state.addRule("remove-from-dual")
	return b.String()
}

// minusToExcept rewrites Oracle's MINUS set operator to EXCEPT.
func minusToExcept(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)
	locs := reMinusKeyword.FindAllStringIndex(masked, -1)
	if len(locs) == 0 {
		return sql
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(sql[last:loc[0]])
		b.WriteString("EXCEPT")
		last = loc[1]
	}
	b.WriteString(sql[last:])
	state.addRule("minus-to-except")
	return b.String()
}

// stripSchemaPrefix removes owner qualification (OWNER.TABLE) when
// flattening to a single-schema target. SQL keywords on the left of the dot
// are never treated as schema names.
func stripSchemaPrefix(sql, schema string, state *conversionState) string {
	if schema == "" {
		return sql
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(schema) + `\.`)
	masked := maskSingleQuoted(sql)
	locs := re.FindAllStringIndex(masked, -1)
	if len(locs) == 0 {
		return sql
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		b.WriteString(sql[last:loc[0]])
		last = loc[1]
	}
	b.WriteString(sql[last:])
	state.addRule("strip-schema-prefix")
	return b.String()
}

// stripComments removes line and block comments when PreserveComments is
// off. Optimizer hints (/*+ ... */) are left to the storage-clause rules.
func stripComments(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)
	var spans [][]int
	spans = append(spans, reLineComment.FindAllStringIndex(masked, -1)...)
	spans = append(spans, reBlockComment.FindAllStringIndex(masked, -1)...)
	if len(spans) == 0 {
		return sql
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	var b strings.Builder
	last := 0
	for _, loc := range spans {
		if loc[0] < last {
			continue
		}
		b.WriteString(sql[last:loc[0]])
		last = loc[1]
	}
	b.WriteString(sql[last:])
	state.addRule("strip-comments")
	return strings.TrimSpace(b.String())
}
