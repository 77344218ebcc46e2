package sqlshift

import (
	"fmt"
	"strings"
	"time"
)

// DialectConverter converts a single parsed statement from its source
// dialect to a target dialect. Implementations are keyed by SOURCE
// dialect and branch internally on the target.
type DialectConverter interface {
	// Source reports the dialect this converter accepts.
	Source() Dialect
	// CanConvert reports whether the statement kind is handled for the
	// given target. Statements it declines go to the fallback path.
	CanConvert(stmt *Statement, target Dialect) bool
	// Convert rewrites one statement. The returned text may span multiple
	// statements (separate PK, COMMENT ON relocation). An error routes the
	// statement to the fallback path.
	Convert(stmt *Statement, target Dialect, opts *ConversionOptions, state *conversionState) (string, error)
}

// runConversion is the shared per-statement pipeline: structured convert,
// fallback on failure, then the post-processing steps every target gets.
func runConversion(conv DialectConverter, fb *FallbackConverter, stmt *Statement,
	source, target Dialect, opts *ConversionOptions, state *conversionState) string {

	var out string
	var err error
	if conv != nil && conv.CanConvert(stmt, target) {
		out, err = conv.Convert(stmt, target, opts, state)
	} else {
		err = fmt.Errorf("no structured conversion for %s statements", stmt.Kind)
	}
	if err != nil {
		state.warn(WarnPartialSupport, SeverityInfo,
			fmt.Sprintf("structured conversion unavailable (%v); applied pattern-based conversion", err), "")
		out = fb.Convert(stmt.Raw, target, opts, state)
	}
	return postProcess(out, stmt, source, target, opts, state)
}

// postProcess applies the dialect-independent finishing steps in a fixed
// order. Each step is a no-op when it has nothing to do.
func postProcess(sql string, stmt *Statement, source, target Dialect,
	opts *ConversionOptions, state *conversionState) string {

	if sql == "" {
		return sql
	}
	if !opts.PreserveComments {
		sql = stripComments(sql, state)
	}
	sql = stripPhysicalClauses(sql, source, stmt.Kind, state)
	sql = convertCollations(sql, source, target, state)
	if opts.SchemaOwner != "" && !target.IsOracleFamily() {
		sql = stripSchemaPrefix(sql, opts.SchemaOwner, state)
	}
	sql = convertIdentifierQuoting(sql, source, target, state)
	if opts.FormatOutput {
		sql = normalizeWhitespace(sql)
	}
	return strings.TrimSpace(sql)
}

// normalizeWhitespace collapses runs of spaces and tabs outside string
// literals; literal bodies and line structure are kept byte for byte.
func normalizeWhitespace(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))
	pendingSpace := false
	inQuote := false
	flush := func(next byte) {
		if pendingSpace {
			if b.Len() > 0 && next != '\n' {
				b.WriteByte(' ')
			}
			pendingSpace = false
		}
	}
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if inQuote {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(sql) {
					b.WriteByte(sql[i+1])
					i++
				}
			case '\'':
				if i+1 < len(sql) && sql[i+1] == '\'' {
					b.WriteByte('\'')
					i++
				} else {
					inQuote = false
				}
			}
			continue
		}
		if c == ' ' || c == '\t' {
			pendingSpace = true
			continue
		}
		flush(c)
		if c == '\'' {
			inQuote = true
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stampMetadata fills the result metadata common to every conversion.
func stampMetadata(res *ConversionResult, source, target Dialect, analysis *Analysis, started time.Time) {
	res.ExecutionTime = time.Since(started)
	if res.Metadata == nil {
		res.Metadata = &ConversionMetadata{}
	}
	res.Metadata.SourceDialect = source
	res.Metadata.TargetDialect = target
	if analysis != nil {
		res.Metadata.ComplexityScore = analysis.ComplexityScore
		res.Metadata.FunctionCount = analysis.FunctionCount
		res.Metadata.TableCount = analysis.TableCount
		res.Metadata.JoinCount = analysis.JoinCount
		res.Metadata.SubqueryCount = analysis.SubqueryCount
	}
}
