package sqlshift

import (
	"fmt"
	"strings"
)

// oracleRenderer renders DDL records for Oracle and Tibero targets. The two
// share syntax for everything emitted here; Tibero-specific notes surface as
// INFO diagnostics.
type oracleRenderer struct {
	dialect Dialect
}

func (r oracleRenderer) qualified(opts *ConversionOptions, name string) string {
	return r.dialect.QuoteIdentifier(opts.schemaOwner()) + "." + r.dialect.QuoteIdentifier(name)
}

func (r oracleRenderer) ForeignKey(fk ForeignKeyDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		r.qualified(opts, fk.Table),
		r.dialect.QuoteIdentifier(fk.Name),
		strings.Join(quoteAll(r.dialect, fk.Columns), ", "),
		r.qualified(opts, fk.RefTable),
		strings.Join(quoteAll(r.dialect, fk.RefColumns), ", "))
	if fk.DeleteRule != "" && fk.DeleteRule != "NO ACTION" && fk.DeleteRule != "RESTRICT" {
		fmt.Fprintf(&b, " ON DELETE %s", fk.DeleteRule)
	}
	if fk.UpdateRule != "" && fk.UpdateRule != "NO ACTION" && fk.UpdateRule != "RESTRICT" {
		// Oracle has no ON UPDATE action at all
		state.warn(WarnPartialSupport, SeverityWarning,
			fmt.Sprintf("foreign key %s: ON UPDATE %s is not supported by %s and was dropped", fk.Name, fk.UpdateRule, r.dialect),
			"enforce the update behavior with a trigger if it is required")
	}
	state.addRule("render-foreign-key")
	return b.String()
}

func (r oracleRenderer) UniqueConstraint(uc UniqueConstraintDef, opts *ConversionOptions, state *conversionState) string {
	cols := strings.Join(quoteAll(r.dialect, uc.Columns), ", ")
	if uc.Primary && opts.SeparatePrimaryKey {
		// Primary key as an explicit unique index plus constraint, so the
		// index lands in the configured indexspace.
		idxName := uc.Name
		if idxName == "" {
			idxName = "PK_" + strings.ToUpper(uc.Table)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "CREATE UNIQUE INDEX %s ON %s (%s) TABLESPACE %s;\n",
			r.dialect.QuoteIdentifier(idxName), r.qualified(opts, uc.Table), cols, opts.indexspace())
		fmt.Fprintf(&b, "ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s) USING INDEX %s",
			r.qualified(opts, uc.Table), r.dialect.QuoteIdentifier(idxName), cols, r.dialect.QuoteIdentifier(idxName))
		state.addRule("separate-primary-key")
		return b.String()
	}
	keyword := "UNIQUE"
	if uc.Primary {
		keyword = "PRIMARY KEY"
	}
	name := uc.Name
	if name == "" {
		name = fmt.Sprintf("UQ_%s_%s", strings.ToUpper(uc.Table), strings.ToUpper(strings.Join(uc.Columns, "_")))
	}
	state.addRule("render-unique-constraint")
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s (%s)",
		r.qualified(opts, uc.Table), r.dialect.QuoteIdentifier(name), keyword, cols)
}

func (r oracleRenderer) CheckConstraint(cc CheckConstraintDef, opts *ConversionOptions, state *conversionState) string {
	state.addRule("render-check-constraint")
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)",
		r.qualified(opts, cc.Table), r.dialect.QuoteIdentifier(cc.Name), cc.Expression)
}

func (r oracleRenderer) Partition(p PartitionDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PARTITION BY %s (%s) (", strings.ToUpper(p.Type),
		strings.Join(quoteAll(r.dialect, p.Columns), ", "))
	for i, slice := range p.Partitions {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "PARTITION %s VALUES %s", r.dialect.QuoteIdentifier(slice.Name), slice.Values)
	}
	b.WriteString(")")
	state.addRule("render-partition")
	return b.String()
}

func (r oracleRenderer) Sequence(s SequenceDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE SEQUENCE %s START WITH %d INCREMENT BY %d", r.qualified(opts, s.Name), s.Start, s.Increment)
	if s.MinValue != nil {
		fmt.Fprintf(&b, " MINVALUE %d", *s.MinValue)
	}
	if s.MaxValue != nil {
		fmt.Fprintf(&b, " MAXVALUE %d", *s.MaxValue)
	}
	if s.Cache > 1 {
		fmt.Fprintf(&b, " CACHE %d", s.Cache)
	} else {
		b.WriteString(" NOCACHE")
	}
	if s.Cycle {
		b.WriteString(" CYCLE")
	}
	state.addRule("render-sequence")
	return b.String()
}

func (r oracleRenderer) Trigger(t TriggerDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE TRIGGER %s\n%s %s ON %s",
		r.qualified(opts, t.Name), t.Timing, strings.Join(t.Events, " OR "), r.qualified(opts, t.Table))
	if t.PerRow {
		b.WriteString("\nFOR EACH ROW")
	}
	if t.When != "" {
		fmt.Fprintf(&b, "\nWHEN (%s)", t.When)
	}
	b.WriteString("\nBEGIN\n")
	b.WriteString(strings.TrimSpace(t.Body))
	b.WriteString("\nEND")
	if r.dialect == Tibero {
		state.warn(WarnPartialSupport, SeverityInfo,
			"trigger body emitted as PL/SQL; Tibero tbPSM accepts this syntax but review vendor packages", "")
	}
	state.addRule("render-trigger")
	return b.String()
}

func (r oracleRenderer) Procedure(p ProcedureDef, opts *ConversionOptions, state *conversionState) string {
	kind := "PROCEDURE"
	if p.IsFunction {
		kind = "FUNCTION"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE %s %s", kind, r.qualified(opts, p.Name))
	if p.Params != "" {
		fmt.Fprintf(&b, " (%s)", p.Params)
	}
	if p.IsFunction && p.Returns != "" {
		fmt.Fprintf(&b, " RETURN %s", p.Returns)
	}
	b.WriteString(" AS\nBEGIN\n")
	b.WriteString(strings.TrimSpace(p.Body))
	b.WriteString("\nEND")
	state.warn(WarnPartialSupport, SeverityWarning,
		fmt.Sprintf("%s %s: procedural body was repackaged, not translated", strings.ToLower(kind), p.Name),
		"review variable declarations and control flow for PL/SQL compatibility")
	state.addRule("render-procedure")
	return b.String()
}

func (r oracleRenderer) MaterializedView(mv MaterializedViewDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE MATERIALIZED VIEW %s", r.qualified(opts, mv.Name))
	if mv.RefreshMode != "" {
		fmt.Fprintf(&b, "\nREFRESH %s", mv.RefreshMode)
		if mv.RefreshInterval != "" {
			fmt.Fprintf(&b, " NEXT %s", mv.RefreshInterval)
		}
	}
	fmt.Fprintf(&b, "\nAS %s", strings.TrimSpace(mv.Query))
	state.addRule("render-materialized-view")
	return b.String()
}

func (r oracleRenderer) FunctionIndex(fi FunctionIndexDef, opts *ConversionOptions, state *conversionState) string {
	unique := ""
	if fi.Unique {
		unique = "UNIQUE "
	}
	state.addRule("render-function-index")
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s) TABLESPACE %s",
		unique, r.dialect.QuoteIdentifier(fi.Name), r.qualified(opts, fi.Table), fi.Expression, opts.indexspace())
}
