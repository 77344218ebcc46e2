package sqlshift

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pagination rewrites between the LIMIT/OFFSET family (MySQL, PostgreSQL)
// and the OFFSET/FETCH and ROWNUM families (Oracle, Tibero).

var (
	reLimitOffset  = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+|\?)\s+OFFSET\s+(\d+|\?)`)
	reLimitComma   = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+|\?)\s*,\s*(\d+|\?)`)
	reLimitOnly    = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+|\?)`)
	reOffsetFetch  = regexp.MustCompile(`(?i)\bOFFSET\s+(\d+|\?)\s+ROWS?\s+FETCH\s+(?:FIRST|NEXT)\s+(\d+|\?)\s+ROWS?\s+ONLY`)
	reFetchOnly    = regexp.MustCompile(`(?i)\bFETCH\s+(?:FIRST|NEXT)\s+(\d+|\?)\s+ROWS?\s+ONLY`)
	reRownumWhere  = regexp.MustCompile(`(?i)\s+WHERE\s+ROWNUM\s*(<=|<|=)\s*(\d+)\s*`)
	reRownumAnd    = regexp.MustCompile(`(?i)\s+AND\s+ROWNUM\s*(<=|<)\s*(\d+)\s*`)
	reRownumSelect = regexp.MustCompile(`(?i)\bROWNUM\b`)
)

// limitToFetch converts LIMIT/OFFSET clauses to OFFSET n ROWS FETCH NEXT n
// ROWS ONLY for Oracle-family targets.
func limitToFetch(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)

	if loc := reLimitOffset.FindStringIndex(masked); loc != nil {
		m := reLimitOffset.FindStringSubmatch(masked[loc[0]:loc[1]])
		repl := fmt.Sprintf("OFFSET %s ROWS FETCH NEXT %s ROWS ONLY", m[2], m[1])
		state.addRule("limit-offset-to-fetch")
		return sql[:loc[0]] + repl + sql[loc[1]:]
	}

	// MySQL comma form: LIMIT offset, count
	if loc := reLimitComma.FindStringIndex(masked); loc != nil {
		m := reLimitComma.FindStringSubmatch(masked[loc[0]:loc[1]])
		repl := fmt.Sprintf("OFFSET %s ROWS FETCH NEXT %s ROWS ONLY", m[1], m[2])
		state.addRule("limit-offset-to-fetch")
		return sql[:loc[0]] + repl + sql[loc[1]:]
	}

	if loc := reLimitOnly.FindStringIndex(masked); loc != nil {
		m := reLimitOnly.FindStringSubmatch(masked[loc[0]:loc[1]])
		repl := fmt.Sprintf("FETCH FIRST %s ROWS ONLY", m[1])
		state.addRule("limit-to-fetch-first")
		return sql[:loc[0]] + repl + sql[loc[1]:]
	}

	return sql
}

// fetchToLimit converts OFFSET/FETCH clauses back to LIMIT/OFFSET for
// MySQL and PostgreSQL targets.
func fetchToLimit(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)

	if loc := reOffsetFetch.FindStringIndex(masked); loc != nil {
		m := reOffsetFetch.FindStringSubmatch(masked[loc[0]:loc[1]])
		repl := fmt.Sprintf("LIMIT %s OFFSET %s", m[2], m[1])
		state.addRule("fetch-to-limit-offset")
		return sql[:loc[0]] + repl + sql[loc[1]:]
	}

	if loc := reFetchOnly.FindStringIndex(masked); loc != nil {
		m := reFetchOnly.FindStringSubmatch(masked[loc[0]:loc[1]])
		repl := fmt.Sprintf("LIMIT %s", m[1])
		state.addRule("fetch-to-limit")
		return sql[:loc[0]] + repl + sql[loc[1]:]
	}

	return sql
}

// rownumToLimit converts ROWNUM row-count predicates into LIMIT clauses. A
// strict bound shifts by one (ROWNUM < 10 keeps 9 rows). A removed WHERE or
// AND never leaves a dangling keyword behind. ROWNUM projected as a column
// is not mechanically rewritten: it degrades to ROW_NUMBER() OVER() with a
// warning because correctness depends on ordering the rule cannot infer.
func rownumToLimit(sql string, state *conversionState) string {
	masked := maskSingleQuoted(sql)

	// AND ROWNUM <= n : drop the predicate, keep the WHERE
	if loc := reRownumAnd.FindStringIndex(masked); loc != nil {
		m := reRownumAnd.FindStringSubmatch(masked[loc[0]:loc[1]])
		sql = strings.TrimRight(sql[:loc[0]], " \t") + " " + strings.TrimLeft(sql[loc[1]:], " \t")
		sql = appendLimit(sql, rownumBound(m[1], m[2]))
		state.addRule("rownum-to-limit")
		return sql
	}

	// WHERE ROWNUM <= n : drop the whole WHERE. Equality is only a row-count
	// predicate for ROWNUM = 1; any other bound matches zero rows in Oracle
	// and must not become a LIMIT.
	if loc := reRownumWhere.FindStringIndex(masked); loc != nil {
		m := reRownumWhere.FindStringSubmatch(masked[loc[0]:loc[1]])
		if m[1] != "=" || m[2] == "1" {
			rest := strings.TrimLeft(sql[loc[1]:], " \t")
			head := strings.TrimRight(sql[:loc[0]], " \t")
			if rest == "" {
				sql = head
			} else {
				sql = head + " " + rest
			}
			sql = appendLimit(sql, rownumBound(m[1], m[2]))
			state.addRule("rownum-to-limit")
			return sql
		}
	}

	// ROWNUM used as a projected pseudo-column: paging idiom, manual review.
	if loc := reRownumSelect.FindStringIndex(masked); loc != nil {
		fromIdx := regexp.MustCompile(`(?i)\bFROM\b`).FindStringIndex(masked)
		if fromIdx != nil && loc[0] < fromIdx[0] {
			head, changed := replaceBareKeyword(sql[:fromIdx[0]], "ROWNUM", "ROW_NUMBER() OVER()")
			if changed {
				state.addRule("rownum-to-row-number")
				state.warn(WarnManualReviewNeeded, SeverityWarning,
					"ROWNUM used as a projected column was rewritten to ROW_NUMBER() OVER(); row ordering depends on an ORDER BY this rule cannot infer",
					"add an ORDER BY inside the OVER() clause")
				return head + sql[fromIdx[0]:]
			}
		}
		// ROWNUM in a shape with no safe rewrite is left as-is, never silently
		state.warn(WarnManualReviewNeeded, SeverityError,
			"ROWNUM predicate could not be converted mechanically",
			"rewrite the paging logic with LIMIT/OFFSET or ROW_NUMBER()")
	}

	return sql
}

// rownumBound computes the LIMIT value for a ROWNUM comparison; the strict
// form keeps one row fewer.
func rownumBound(op, bound string) int {
	n, err := strconv.Atoi(bound)
	if err != nil {
		return 0
	}
	if op == "<" {
		return n - 1
	}
	return n
}

// appendLimit appends a LIMIT clause, keeping it ahead of nothing — the
// clause always terminates the statement text.
func appendLimit(sql string, n int) string {
	return strings.TrimRight(sql, " \t\n") + fmt.Sprintf(" LIMIT %d", n)
}
