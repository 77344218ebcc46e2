package sqlshift

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// Analysis is the complexity summary the parsing collaborator produces for
// one statement.
type Analysis struct {
	ComplexityScore int
	FunctionCount   int
	TableCount      int
	JoinCount       int
	SubqueryCount   int
}

// Parser is the external parsing collaborator. A returned error is not
// fatal: the orchestrator falls back to the textual transformer.
type Parser interface {
	Parse(sql string) (*Statement, *Analysis, error)
}

// StandardParser is the default parsing collaborator. Procedural statements
// (triggers, sequences, procedures, materialized views, COMMENT ON) receive
// shallow trees from keyword classification; everything else goes through
// the structured SQL parser, whose rejections route the statement onto the
// fallback path.
type StandardParser struct{}

// NewStandardParser returns the default parsing collaborator.
func NewStandardParser() *StandardParser { return &StandardParser{} }

// Parse implements Parser.
func (p *StandardParser) Parse(sql string) (*Statement, *Analysis, error) {
	kind := classifyStatement(sql)
	if isProceduralKind(kind) {
		return &Statement{Kind: kind, Raw: sql}, heuristicAnalysis(sql), nil
	}

	ast, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}

	stmt := &Statement{Kind: kindFromAST(ast, kind), Raw: sql, AST: ast}
	return stmt, analyzeAST(ast), nil
}

// kindFromAST refines the keyword classification with the parsed node type.
func kindFromAST(ast sqlparser.Statement, fallback StatementKind) StatementKind {
	switch node := ast.(type) {
	case *sqlparser.Select, *sqlparser.Union:
		return KindSelect
	case *sqlparser.Insert:
		return KindInsert
	case *sqlparser.Update:
		return KindUpdate
	case *sqlparser.Delete:
		return KindDelete
	case *sqlparser.DDL:
		switch node.Action {
		case "create":
			if node.TableSpec != nil {
				return KindCreateTable
			}
			return fallback
		case "drop":
			return KindDrop
		case "alter", "rename":
			return KindAlter
		}
	}
	return fallback
}

// analyzeAST walks the parse tree and counts the features that feed the
// complexity score.
func analyzeAST(ast sqlparser.Statement) *Analysis {
	a := &Analysis{}
	tables := make(map[string]struct{})
	functions := make(map[string]struct{})

	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		switch n := node.(type) {
		case *sqlparser.FuncExpr:
			functions[strings.ToUpper(n.Name.String())] = struct{}{}
		case *sqlparser.JoinTableExpr:
			a.JoinCount++
		case *sqlparser.Subquery:
			a.SubqueryCount++
		case sqlparser.TableName:
			if name := n.Name.String(); name != "" && name != "dual" {
				tables[name] = struct{}{}
			}
		}
		return true, nil
	}, ast)

	a.FunctionCount = len(functions)
	a.TableCount = len(tables)
	a.ComplexityScore = complexityScore(a)
	return a
}

var (
	reWordFunc  = regexp.MustCompile(`(?i)\b([A-Z_][A-Z0-9_]*)\s*\(`)
	reJoinWord  = regexp.MustCompile(`(?i)\bJOIN\b`)
	reSubSelect = regexp.MustCompile(`(?i)\(\s*SELECT\b`)
	reFromTable = regexp.MustCompile(`(?i)\b(?:FROM|INTO|UPDATE|TABLE|ON)\s+([A-Za-z_][A-Za-z0-9_.$]*)`)
)

// heuristicAnalysis approximates the analysis summary for statements the
// structured parser does not model.
func heuristicAnalysis(sql string) *Analysis {
	clean := maskSingleQuoted(sql)
	a := &Analysis{
		JoinCount:     len(reJoinWord.FindAllString(clean, -1)),
		SubqueryCount: len(reSubSelect.FindAllString(clean, -1)),
	}

	functions := make(map[string]struct{})
	for _, m := range reWordFunc.FindAllStringSubmatch(clean, -1) {
		functions[strings.ToUpper(m[1])] = struct{}{}
	}
	a.FunctionCount = len(functions)

	tables := make(map[string]struct{})
	for _, m := range reFromTable.FindAllStringSubmatch(clean, -1) {
		name := strings.ToLower(m[1])
		if name != "dual" {
			tables[name] = struct{}{}
		}
	}
	a.TableCount = len(tables)
	a.ComplexityScore = complexityScore(a)
	return a
}

// complexityScore weights joins and subqueries above plain feature counts.
func complexityScore(a *Analysis) int {
	return a.FunctionCount + a.TableCount + 2*a.JoinCount + 3*a.SubqueryCount
}

// maskSingleQuoted blanks out single-quoted literal contents so regex scans
// never match inside strings. The masked text has identical length and
// offsets.
func maskSingleQuoted(sql string) string {
	out := []byte(sql)
	inQuote := false
	for i := 0; i < len(out); i++ {
		c := out[i]
		if inQuote {
			if c == '\'' {
				if i+1 < len(out) && out[i+1] == '\'' {
					out[i+1] = ' '
					i++
					continue
				}
				inQuote = false
				continue
			}
			if c == '\\' && i+1 < len(out) {
				out[i] = ' '
				out[i+1] = ' '
				i++
				continue
			}
			out[i] = ' '
			continue
		}
		if c == '\'' {
			inQuote = true
		}
	}
	return string(out)
}
