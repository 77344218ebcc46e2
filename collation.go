package sqlshift

import (
	"fmt"
	"regexp"
	"strings"
)

// Collation handling in converted text. MySQL DDL carries COLLATE clauses
// whose names mean nothing to the other dialects; known collations map to a
// PostgreSQL equivalent, unknown ones are stripped with a warning so the
// statement still applies.

// mysqlToPostgresCollations maps the collation names that have a direct
// PostgreSQL counterpart. _bin collations are deterministic byte order.
var mysqlToPostgresCollations = map[string]string{
	"utf8mb4_bin":        "C",
	"utf8_bin":           "C",
	"latin1_bin":         "C",
	"binary":             "C",
	"utf8mb4_general_ci": "",
	"utf8mb4_unicode_ci": "",
	"utf8_general_ci":    "",
	"utf8_unicode_ci":    "",
}

var reCollateClause = regexp.MustCompile(`(?i)\s+COLLATE[\s=]+([\w]+)`)

// convertCollations rewrites or removes COLLATE clauses for the target
// dialect. Case-insensitive collations have no default equivalent in
// PostgreSQL or Oracle, so dropping one changes comparison semantics and
// gets a warning.
func convertCollations(sql string, source, target Dialect, state *conversionState) string {
	if source != MySQL || target == MySQL {
		return sql
	}
	masked := maskSingleQuoted(sql)
	matches := reCollateClause.FindAllStringSubmatchIndex(masked, -1)
	if matches == nil {
		return sql
	}

	var b strings.Builder
	prev := 0
	for _, m := range matches {
		b.WriteString(sql[prev:m[0]])
		prev = m[1]
		name := strings.ToLower(masked[m[2]:m[3]])

		if target == PostgreSQL {
			if mapped, ok := mysqlToPostgresCollations[name]; ok && mapped != "" {
				fmt.Fprintf(&b, ` COLLATE "%s"`, mapped)
				state.addRule("collation-mapping")
				continue
			}
		}
		if strings.HasSuffix(name, "_ci") {
			state.warn(WarnSyntaxDifference, SeverityWarning,
				fmt.Sprintf("collation %s is case-insensitive; %s comparisons will be case-sensitive after conversion",
					name, target), "use a citext column or a functional index on LOWER() to keep the semantics")
		}
		state.addRule("strip-collation")
	}
	b.WriteString(sql[prev:])
	return b.String()
}
