package sqlshift

import (
	"fmt"
	"regexp"
	"strings"
)

// convertDML rewrites SELECT/INSERT/UPDATE/DELETE text. The statement has
// already been classified and analyzed; the rewrites themselves are the
// shared literal-masked stages.
func convertDML(stmt *Statement, source, target Dialect, functions *FunctionRegistry,
	opts *ConversionOptions, state *conversionState) (string, error) {

	out := applyDialectRewrites(stmt.Raw, source, target, functions, opts, state)
	warnUnmappedFunctions(out, source, target, state)
	return out, nil
}

// convertProcedural dispatches trigger, sequence, procedure, materialized
// view and COMMENT ON statements through clause extraction and the target
// renderer. Extraction failure is an error so the statement falls back.
func convertProcedural(stmt *Statement, source, target Dialect, functions *FunctionRegistry,
	opts *ConversionOptions, state *conversionState) (string, error) {

	r := rendererFor(target)
	switch stmt.Kind {
	case KindCreateSequence:
		def, ok := parseSequence(stmt.Raw)
		if !ok {
			return "", fmt.Errorf("unrecognized CREATE SEQUENCE shape")
		}
		return r.Sequence(def, opts, state), nil

	case KindCreateTrigger:
		def, ok := parseTrigger(stmt.Raw)
		if !ok {
			return "", fmt.Errorf("unrecognized CREATE TRIGGER shape")
		}
		def.Body = applyDialectRewrites(def.Body, source, target, functions, opts, state)
		if def.When != "" {
			def.When = applyDialectRewrites(def.When, source, target, functions, opts, state)
		}
		return r.Trigger(def, opts, state), nil

	case KindCreateProcedure:
		def, ok := parseProcedure(stmt.Raw)
		if !ok {
			return "", fmt.Errorf("unrecognized CREATE PROCEDURE/FUNCTION shape")
		}
		def.Body = applyDialectRewrites(def.Body, source, target, functions, opts, state)
		if def.Returns != "" {
			def.Returns = mapDataType(def.Returns, source, target, state)
		}
		return r.Procedure(def, opts, state), nil

	case KindCreateMaterializedView:
		def, ok := parseMaterializedView(stmt.Raw)
		if !ok {
			return "", fmt.Errorf("unrecognized CREATE MATERIALIZED VIEW shape")
		}
		def.Query = applyDialectRewrites(def.Query, source, target, functions, opts, state)
		return r.MaterializedView(def, opts, state), nil

	case KindCommentOn:
		return convertCommentOn(stmt.Raw, target, opts, state)
	}
	return "", fmt.Errorf("statement kind %s is not procedural", stmt.Kind)
}

// convertCommentOn handles COMMENT ON TABLE/COLUMN. PostgreSQL and the
// Oracle family accept the statement as-is; MySQL only has table comments,
// expressed through ALTER TABLE.
func convertCommentOn(raw string, target Dialect, opts *ConversionOptions, state *conversionState) (string, error) {
	def, ok := parseCommentOn(raw)
	if !ok {
		return "", fmt.Errorf("unrecognized COMMENT ON shape")
	}
	if target != MySQL {
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), ";")), nil
	}
	if def.Kind == "TABLE" {
		state.addRule("comment-on-to-alter")
		return fmt.Sprintf("ALTER TABLE %s COMMENT = %s",
			MySQL.QuoteIdentifier(lastNamePart(def.Target)), def.Comment), nil
	}
	// Column comments in MySQL require restating the full column
	// definition, which a standalone COMMENT ON does not carry.
	state.warn(WarnUnsupportedStatement, SeverityError,
		fmt.Sprintf("COMMENT ON COLUMN %s cannot be converted; MySQL column comments need the full column definition", def.Target),
		"add the comment to the column in ALTER TABLE ... MODIFY")
	return strings.TrimSpace(raw), nil
}

var (
	reIndexUsing      = regexp.MustCompile(`(?i)\s+USING\s+(BTREE|HASH)\b`)
	reIndexTablespace = regexp.MustCompile(`(?i)\s+TABLESPACE\s+[\w"]+`)
)

// convertCreateIndex adjusts CREATE INDEX text for the target: access
// method hints and tablespace clauses are dialect-local.
func convertCreateIndex(raw string, target Dialect, opts *ConversionOptions, state *conversionState) (string, error) {
	out := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), ";"))
	masked := maskSingleQuoted(out)

	if target != MySQL {
		if loc := reIndexUsing.FindStringIndex(masked); loc != nil {
			out = out[:loc[0]] + out[loc[1]:]
			masked = masked[:loc[0]] + masked[loc[1]:]
			state.addRule("strip-index-using")
		}
	}
	if loc := reIndexTablespace.FindStringIndex(masked); loc != nil {
		out = out[:loc[0]] + out[loc[1]:]
		state.addRule("strip-index-tablespace")
	}
	if target.IsOracleFamily() && opts.GenerateIndex {
		out += " TABLESPACE " + target.QuoteIdentifier(opts.indexspace())
		state.addRule("index-tablespace")
	}
	return out, nil
}

// structuredKinds is the kind set every source converter accepts when the
// statement carries enough structure to convert.
func canConvertKind(stmt *Statement, target Dialect) bool {
	switch stmt.Kind {
	case KindSelect, KindInsert, KindUpdate, KindDelete, KindCreateIndex:
		return true
	case KindCreateTable:
		return ddlWithSpec(stmt) != nil
	case KindCreateSequence, KindCreateTrigger, KindCreateProcedure,
		KindCreateMaterializedView, KindCommentOn:
		return true
	}
	return false
}
