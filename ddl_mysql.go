package sqlshift

import (
	"fmt"
	"strings"
)

// mysqlRenderer renders DDL records for MySQL targets. MySQL lacks native
// sequences, materialized views, multi-event triggers and INSTEAD OF
// triggers; gaps degrade to documented simulations or explicit diagnostics.
type mysqlRenderer struct{}

func (mysqlRenderer) ident(name string) string { return MySQL.QuoteIdentifier(name) }

func (r mysqlRenderer) ForeignKey(fk ForeignKeyDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		r.ident(fk.Table), r.ident(fk.Name),
		strings.Join(quoteAll(MySQL, fk.Columns), ", "),
		r.ident(fk.RefTable),
		strings.Join(quoteAll(MySQL, fk.RefColumns), ", "))
	if fk.UpdateRule != "" {
		fmt.Fprintf(&b, " ON UPDATE %s", fk.UpdateRule)
	}
	if fk.DeleteRule != "" {
		fmt.Fprintf(&b, " ON DELETE %s", fk.DeleteRule)
	}
	state.addRule("render-foreign-key")
	return b.String()
}

func (r mysqlRenderer) UniqueConstraint(uc UniqueConstraintDef, opts *ConversionOptions, state *conversionState) string {
	cols := strings.Join(quoteAll(MySQL, uc.Columns), ", ")
	state.addRule("render-unique-constraint")
	if uc.Primary {
		return fmt.Sprintf("ALTER TABLE %s ADD PRIMARY KEY (%s)", r.ident(uc.Table), cols)
	}
	name := uc.Name
	if name == "" {
		name = "uq_" + uc.Table + "_" + strings.Join(uc.Columns, "_")
	}
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s UNIQUE (%s)", r.ident(uc.Table), r.ident(name), cols)
}

func (r mysqlRenderer) CheckConstraint(cc CheckConstraintDef, opts *ConversionOptions, state *conversionState) string {
	state.addRule("render-check-constraint")
	state.warn(WarnPartialSupport, SeverityInfo,
		fmt.Sprintf("check constraint %s requires MySQL 8.0.16 or later", cc.Name), "")
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)",
		r.ident(cc.Table), r.ident(cc.Name), cc.Expression)
}

func (r mysqlRenderer) Partition(p PartitionDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PARTITION BY %s (%s) (", strings.ToUpper(p.Type),
		strings.Join(quoteAll(MySQL, p.Columns), ", "))
	for i, slice := range p.Partitions {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "PARTITION %s VALUES %s", r.ident(slice.Name), slice.Values)
	}
	b.WriteString(")")
	state.addRule("render-partition")
	return b.String()
}

func (r mysqlRenderer) Sequence(s SequenceDef, opts *ConversionOptions, state *conversionState) string {
	if opts.SkipUnsupportedFeatures {
		state.warn(WarnUnsupportedStatement, SeverityError,
			fmt.Sprintf("sequence %s: MySQL has no sequence objects; statement skipped", s.Name),
			"use an AUTO_INCREMENT column or the emulation table")
		return ""
	}
	// Emulation: a one-row counter table plus the conventional access
	// pattern in a comment. This is the documented simulation, not a
	// transparent replacement.
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (next_val BIGINT NOT NULL);\n", r.ident(s.Name))
	fmt.Fprintf(&b, "INSERT INTO %s VALUES (%d);\n", r.ident(s.Name), s.Start)
	fmt.Fprintf(&b, "-- obtain values with: UPDATE %s SET next_val = LAST_INSERT_ID(next_val + %d); SELECT LAST_INSERT_ID()",
		r.ident(s.Name), s.Increment)
	state.warn(WarnPartialSupport, SeverityWarning,
		fmt.Sprintf("sequence %s was emulated with a counter table; MySQL has no sequence objects", s.Name),
		"prefer AUTO_INCREMENT when the sequence feeds a single table's key")
	state.addRule("sequence-emulation")
	return b.String()
}

func (r mysqlRenderer) Trigger(t TriggerDef, opts *ConversionOptions, state *conversionState) string {
	if strings.EqualFold(t.Timing, "INSTEAD OF") {
		state.warn(WarnUnsupportedStatement, SeverityError,
			fmt.Sprintf("trigger %s: MySQL does not support INSTEAD OF triggers and no safe simulation exists", t.Name),
			"restructure the logic into the application or a view-backed procedure")
		return ""
	}
	// One trigger per event: MySQL triggers fire on exactly one event.
	var stmts []string
	for _, event := range t.Events {
		name := t.Name
		if len(t.Events) > 1 {
			name = t.Name + "_" + strings.ToLower(event)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "CREATE TRIGGER %s %s %s ON %s FOR EACH ROW\nBEGIN\n%s\nEND",
			r.ident(name), t.Timing, event, r.ident(t.Table), strings.TrimSpace(t.Body))
		stmts = append(stmts, b.String())
	}
	if len(t.Events) > 1 {
		state.warn(WarnPartialSupport, SeverityWarning,
			fmt.Sprintf("trigger %s fires on %d events; MySQL allows one event per trigger, so it was split into %d triggers",
				t.Name, len(t.Events), len(t.Events)), "")
		state.addRule("trigger-split-per-event")
	}
	if !t.PerRow {
		state.warn(WarnPartialSupport, SeverityWarning,
			fmt.Sprintf("trigger %s: MySQL only supports row-level triggers; statement-level semantics were downgraded", t.Name), "")
	}
	state.addRule("render-trigger")
	return strings.Join(stmts, ";\n")
}

func (r mysqlRenderer) Procedure(p ProcedureDef, opts *ConversionOptions, state *conversionState) string {
	kind := "PROCEDURE"
	if p.IsFunction {
		kind = "FUNCTION"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE %s %s(%s)", kind, r.ident(p.Name), p.Params)
	if p.IsFunction && p.Returns != "" {
		fmt.Fprintf(&b, " RETURNS %s", p.Returns)
	}
	fmt.Fprintf(&b, "\nBEGIN\n%s\nEND", strings.TrimSpace(p.Body))
	state.warn(WarnPartialSupport, SeverityWarning,
		fmt.Sprintf("%s %s: procedural body was repackaged, not translated", strings.ToLower(kind), p.Name),
		"review declarations and cursor syntax; remember DELIMITER handling when applying the script")
	state.addRule("render-procedure")
	return b.String()
}

func (r mysqlRenderer) MaterializedView(mv MaterializedViewDef, opts *ConversionOptions, state *conversionState) string {
	if opts.SkipUnsupportedFeatures {
		state.warn(WarnUnsupportedStatement, SeverityError,
			fmt.Sprintf("materialized view %s: MySQL has no materialized views; statement skipped", mv.Name), "")
		return ""
	}
	// Simulation: a plain table snapshot the caller must refresh.
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s AS %s", r.ident(mv.Name), strings.TrimSpace(mv.Query))
	state.warn(WarnPartialSupport, SeverityWarning,
		fmt.Sprintf("materialized view %s was emulated with a snapshot table; refresh it by re-running the query", mv.Name),
		"schedule a refresh job (e.g. an EVENT) that truncates and reloads the table")
	state.addRule("materialized-view-emulation")
	return b.String()
}

func (r mysqlRenderer) FunctionIndex(fi FunctionIndexDef, opts *ConversionOptions, state *conversionState) string {
	unique := ""
	if fi.Unique {
		unique = "UNIQUE "
	}
	state.warn(WarnPartialSupport, SeverityInfo,
		fmt.Sprintf("functional index %s requires MySQL 8.0.13 or later", fi.Name), "")
	state.addRule("render-function-index")
	return fmt.Sprintf("CREATE %sINDEX %s ON %s ((%s))",
		unique, r.ident(fi.Name), r.ident(fi.Table), fi.Expression)
}
