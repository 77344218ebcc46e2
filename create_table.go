package sqlshift

import (
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// ddlWithSpec returns the statement's DDL node when it is a CREATE TABLE
// with a full column specification, nil otherwise.
func ddlWithSpec(stmt *Statement) *sqlparser.DDL {
	ddl, ok := stmt.AST.(*sqlparser.DDL)
	if !ok || ddl.TableSpec == nil {
		return nil
	}
	return ddl
}

func ddlTableName(ddl *sqlparser.DDL) string {
	if name := ddl.NewName.Name.String(); name != "" {
		return name
	}
	return ddl.Table.Name.String()
}

// convertCreateTable rebuilds a CREATE TABLE statement from its parsed
// column specification for the target dialect. The output may carry
// trailing statements (separate primary key, generated indexes, relocated
// comments).
func convertCreateTable(stmt *Statement, source, target Dialect,
	opts *ConversionOptions, state *conversionState) (string, error) {

	ddl := ddlWithSpec(stmt)
	if ddl == nil {
		return "", fmt.Errorf("no column specification available")
	}
	spec := ddl.TableSpec
	table := ddlTableName(ddl)

	qualified := target.QuoteIdentifier(table)
	if target.IsOracleFamily() && opts.SchemaOwner != "" {
		qualified = target.QuoteIdentifier(opts.schemaOwner()) + "." + qualified
	}

	var cols []string
	var checks []string
	var comments []string
	for _, col := range spec.Columns {
		line, check, comment := convertColumn(col, table, source, target, opts, state)
		cols = append(cols, line)
		if check != "" {
			checks = append(checks, check)
		}
		if comment != "" {
			comments = append(comments, comment)
		}
	}

	inline, trailing := convertTableIndexes(spec.Indexes, table, target, opts, state)

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", qualified)
	body := append(append([]string{}, cols...), checks...)
	body = append(body, inline...)
	for i, line := range body {
		b.WriteString("  " + line)
		if i < len(body)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(")")
	if target.IsOracleFamily() {
		fmt.Fprintf(&b, " TABLESPACE %s", target.QuoteIdentifier(opts.tablespace()))
		state.addRule("table-tablespace")
	}

	stmts := []string{b.String()}
	stmts = append(stmts, trailing...)
	if target != MySQL {
		stmts = append(stmts, comments...)
	}
	state.addRule("create-table-rebuild")
	return strings.Join(stmts, ";\n"), nil
}

// columnTypeText renders a parsed column type back to declaration text so
// the type mapper sees the same shape raw DDL would carry.
func columnTypeText(ct sqlparser.ColumnType) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(ct.Type))
	if ct.Length != nil {
		b.WriteByte('(')
		b.Write(ct.Length.Val)
		if ct.Scale != nil {
			b.WriteByte(',')
			b.Write(ct.Scale.Val)
		}
		b.WriteByte(')')
	}
	if ct.Unsigned {
		b.WriteString(" UNSIGNED")
	}
	return b.String()
}

// convertColumn renders one column definition line plus any check
// constraint and relocated comment it produces.
func convertColumn(col *sqlparser.ColumnDefinition, table string, source, target Dialect,
	opts *ConversionOptions, state *conversionState) (line, check, comment string) {

	name := col.Name.String()
	ct := col.Type
	baseType := strings.ToLower(ct.Type)

	var typ string
	switch {
	case (baseType == "enum" || baseType == "set") && target != MySQL:
		typ, check = convertEnumSet(name, ct, table, target, state)
	case baseType == "enum" || baseType == "set":
		typ = strings.ToUpper(baseType) + "(" + strings.Join(ct.EnumValues, ", ") + ")"
	default:
		typ = mapDataType(columnTypeText(ct), source, target, state)
	}

	var b strings.Builder
	b.WriteString(target.QuoteIdentifier(name))
	b.WriteByte(' ')
	b.WriteString(typ)

	if ct.Autoincrement {
		switch {
		case target == MySQL:
			b.WriteString(" AUTO_INCREMENT")
		default:
			b.WriteString(" GENERATED BY DEFAULT AS IDENTITY")
			state.addRule("autoincrement-to-identity")
		}
	}
	if ct.NotNull {
		b.WriteString(" NOT NULL")
	}
	if ct.Default != nil {
		b.WriteString(" DEFAULT " + convertDefault(ct.Default, source, target, state))
	}
	if ct.Comment != nil {
		text := sqlStringLiteral(string(ct.Comment.Val))
		switch {
		case target == MySQL:
			b.WriteString(" COMMENT " + text)
		case !opts.SeparateComments:
			state.warn(WarnPartialSupport, SeverityInfo,
				fmt.Sprintf("column %s: inline comment dropped; enable separate comments to keep it as COMMENT ON", name), "")
		default:
			qualified := target.QuoteIdentifier(table)
			if target.IsOracleFamily() && opts.SchemaOwner != "" {
				qualified = target.QuoteIdentifier(opts.schemaOwner()) + "." + qualified
			}
			comment = fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s",
				qualified, target.QuoteIdentifier(name), text)
			state.addRule("separate-comments")
		}
	}
	return b.String(), check, comment
}

// convertEnumSet maps MySQL enum/set columns to a character type plus a
// check constraint carrying the value list.
func convertEnumSet(name string, ct sqlparser.ColumnType, table string, target Dialect,
	state *conversionState) (typ, check string) {

	values := make([]string, 0, len(ct.EnumValues))
	for _, v := range ct.EnumValues {
		values = append(values, sqlStringLiteral(strings.Trim(v, "'")))
	}
	if target == PostgreSQL {
		typ = "TEXT"
	} else {
		typ = "VARCHAR2(255 CHAR)"
	}
	if strings.EqualFold(ct.Type, "enum") && len(values) > 0 {
		check = fmt.Sprintf("CONSTRAINT %s CHECK (%s IN (%s))",
			target.QuoteIdentifier("ck_"+table+"_"+name),
			target.QuoteIdentifier(name), strings.Join(values, ", "))
		state.addRule("enum-to-check")
	} else {
		// SET allows combinations, which a membership check cannot express.
		state.warn(WarnPartialSupport, SeverityWarning,
			fmt.Sprintf("column %s: SET mapped to a plain character type; the value-list restriction was dropped", name), "")
	}
	return typ, check
}

// convertDefault renders a parsed default value, translating function
// defaults between dialects.
func convertDefault(v *sqlparser.SQLVal, source, target Dialect, state *conversionState) string {
	raw := string(v.Val)
	if v.Type == sqlparser.StrVal {
		upper := strings.ToUpper(strings.TrimSpace(raw))
		switch upper {
		case "CURRENT_TIMESTAMP", "NOW()":
			if target.IsOracleFamily() {
				state.addRule("default-current-timestamp")
				return "SYSTIMESTAMP"
			}
			return "CURRENT_TIMESTAMP"
		}
		return sqlStringLiteral(raw)
	}
	return raw
}

// sqlStringLiteral quotes a string value, doubling embedded quotes.
func sqlStringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// convertTableIndexes splits parsed index definitions into inline table
// body entries and trailing standalone statements.
func convertTableIndexes(indexes []*sqlparser.IndexDefinition, table string, target Dialect,
	opts *ConversionOptions, state *conversionState) (inline, trailing []string) {

	r := rendererFor(target)
	for _, idx := range indexes {
		cols := make([]string, 0, len(idx.Columns))
		for _, c := range idx.Columns {
			cols = append(cols, c.Column.String())
		}
		switch {
		case idx.Info.Primary:
			if target.IsOracleFamily() && opts.SeparatePrimaryKey {
				rendered := r.UniqueConstraint(UniqueConstraintDef{
					Table: table, Columns: cols, Primary: true,
				}, opts, state)
				trailing = append(trailing, strings.Split(rendered, ";\n")...)
			} else {
				inline = append(inline, "PRIMARY KEY ("+strings.Join(quoteAll(target, cols), ", ")+")")
			}
		case idx.Info.Unique:
			name := idx.Info.Name.String()
			if name == "" {
				name = "uq_" + table + "_" + strings.Join(cols, "_")
			}
			inline = append(inline, fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)",
				target.QuoteIdentifier(name), strings.Join(quoteAll(target, cols), ", ")))
		default:
			// Plain KEY entries are MySQL table-body syntax only.
			if target == MySQL {
				inline = append(inline, fmt.Sprintf("KEY %s (%s)",
					target.QuoteIdentifier(idx.Info.Name.String()),
					strings.Join(quoteAll(target, cols), ", ")))
				continue
			}
			if !opts.GenerateIndex {
				state.warn(WarnPartialSupport, SeverityWarning,
					fmt.Sprintf("index %s on %s was dropped; enable index generation to keep it",
						idx.Info.Name.String(), table), "")
				continue
			}
			name := idx.Info.Name.String()
			if name == "" {
				name = "ix_" + table + "_" + strings.Join(cols, "_")
			}
			create := fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
				target.QuoteIdentifier(name), target.QuoteIdentifier(table),
				strings.Join(quoteAll(target, cols), ", "))
			if target.IsOracleFamily() {
				create += " TABLESPACE " + target.QuoteIdentifier(opts.indexspace())
			}
			trailing = append(trailing, create)
			state.addRule("generate-index")
		}
	}
	return inline, trailing
}
