package sqlshift

import (
	"regexp"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// StatementKind is the closed set of statement-tree variants the converters
// dispatch on. Kinds the engine has no rules for map to KindOther and pass
// through unchanged.
type StatementKind int

const (
	KindOther StatementKind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
	KindCreateTable
	KindCreateIndex
	KindCreateSequence
	KindCreateTrigger
	KindCreateProcedure
	KindCreateMaterializedView
	KindCommentOn
	KindDrop
	KindAlter
)

var kindNames = map[StatementKind]string{
	KindOther:                  "other",
	KindSelect:                 "select",
	KindInsert:                 "insert",
	KindUpdate:                 "update",
	KindDelete:                 "delete",
	KindCreateTable:            "create-table",
	KindCreateIndex:            "create-index",
	KindCreateSequence:         "create-sequence",
	KindCreateTrigger:          "create-trigger",
	KindCreateProcedure:        "create-procedure",
	KindCreateMaterializedView: "create-materialized-view",
	KindCommentOn:              "comment-on",
	KindDrop:                   "drop",
	KindAlter:                  "alter",
}

func (k StatementKind) String() string { return kindNames[k] }

// Statement is one parsed statement: its kind, the original text, and the
// structured AST when the parsing collaborator produced one. Procedural
// kinds (trigger, sequence, procedure, materialized view) carry a shallow
// tree: kind plus raw text, with clause extraction done by the DDL layer.
type Statement struct {
	Kind StatementKind
	Raw  string
	AST  sqlparser.Statement
}

var kindPatterns = []struct {
	re   *regexp.Regexp
	kind StatementKind
}{
	{regexp.MustCompile(`(?is)^\s*CREATE\s+(OR\s+REPLACE\s+)?TRIGGER\b`), KindCreateTrigger},
	{regexp.MustCompile(`(?is)^\s*CREATE\s+SEQUENCE\b`), KindCreateSequence},
	{regexp.MustCompile(`(?is)^\s*CREATE\s+(OR\s+REPLACE\s+)?(PROCEDURE|FUNCTION)\b`), KindCreateProcedure},
	{regexp.MustCompile(`(?is)^\s*CREATE\s+MATERIALIZED\s+VIEW\b`), KindCreateMaterializedView},
	{regexp.MustCompile(`(?is)^\s*COMMENT\s+ON\s+(TABLE|COLUMN)\b`), KindCommentOn},
	{regexp.MustCompile(`(?is)^\s*CREATE\s+(UNIQUE\s+)?INDEX\b`), KindCreateIndex},
	{regexp.MustCompile(`(?is)^\s*CREATE\s+(TEMPORARY\s+)?TABLE\b`), KindCreateTable},
	{regexp.MustCompile(`(?is)^\s*DROP\b`), KindDrop},
	{regexp.MustCompile(`(?is)^\s*ALTER\b`), KindAlter},
	{regexp.MustCompile(`(?is)^\s*(SELECT|WITH)\b`), KindSelect},
	{regexp.MustCompile(`(?is)^\s*INSERT\b`), KindInsert},
	{regexp.MustCompile(`(?is)^\s*UPDATE\b`), KindUpdate},
	{regexp.MustCompile(`(?is)^\s*DELETE\b`), KindDelete},
}

// classifyStatement determines the statement kind from leading keywords.
// This never fails; unknown statements are KindOther.
func classifyStatement(sql string) StatementKind {
	for _, p := range kindPatterns {
		if p.re.MatchString(sql) {
			return p.kind
		}
	}
	return KindOther
}

// isProceduralKind reports whether the kind is handled with a shallow tree
// because the structured parser does not model it.
func isProceduralKind(k StatementKind) bool {
	switch k {
	case KindCreateTrigger, KindCreateSequence, KindCreateProcedure,
		KindCreateMaterializedView, KindCommentOn:
		return true
	}
	return false
}

// leadingKeyword returns the first keyword of a statement, upper-cased, for
// diagnostics.
func leadingKeyword(sql string) string {
	fields := strings.Fields(strings.TrimSpace(sql))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
