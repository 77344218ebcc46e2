package sqlshift

import (
	"fmt"
	"strings"
)

// postgresRenderer renders DDL records for PostgreSQL targets.
type postgresRenderer struct{}

func (postgresRenderer) ident(name string) string { return PostgreSQL.QuoteIdentifier(name) }

func (r postgresRenderer) ForeignKey(fk ForeignKeyDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		r.ident(fk.Table), r.ident(fk.Name),
		strings.Join(quoteAll(PostgreSQL, fk.Columns), ", "),
		r.ident(fk.RefTable),
		strings.Join(quoteAll(PostgreSQL, fk.RefColumns), ", "))
	if fk.UpdateRule != "" {
		fmt.Fprintf(&b, " ON UPDATE %s", fk.UpdateRule)
	}
	if fk.DeleteRule != "" {
		fmt.Fprintf(&b, " ON DELETE %s", fk.DeleteRule)
	}
	state.addRule("render-foreign-key")
	return b.String()
}

func (r postgresRenderer) UniqueConstraint(uc UniqueConstraintDef, opts *ConversionOptions, state *conversionState) string {
	keyword := "UNIQUE"
	if uc.Primary {
		keyword = "PRIMARY KEY"
	}
	name := uc.Name
	if name == "" {
		if uc.Primary {
			name = uc.Table + "_pkey"
		} else {
			name = uc.Table + "_" + strings.Join(uc.Columns, "_") + "_key"
		}
	}
	state.addRule("render-unique-constraint")
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s (%s)",
		r.ident(uc.Table), r.ident(name), keyword,
		strings.Join(quoteAll(PostgreSQL, uc.Columns), ", "))
}

func (r postgresRenderer) CheckConstraint(cc CheckConstraintDef, opts *ConversionOptions, state *conversionState) string {
	state.addRule("render-check-constraint")
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)",
		r.ident(cc.Table), r.ident(cc.Name), cc.Expression)
}

func (r postgresRenderer) Partition(p PartitionDef, opts *ConversionOptions, state *conversionState) string {
	// Declarative partitioning: the parent gets PARTITION BY, each slice
	// becomes its own table.
	var b strings.Builder
	fmt.Fprintf(&b, "PARTITION BY %s (%s)", strings.ToUpper(p.Type),
		strings.Join(quoteAll(PostgreSQL, p.Columns), ", "))
	for _, slice := range p.Partitions {
		fmt.Fprintf(&b, ";\nCREATE TABLE %s PARTITION OF %s FOR VALUES %s",
			r.ident(slice.Name), r.ident(p.Table), translatePartitionBound(p.Type, slice.Values))
	}
	state.addRule("render-partition")
	state.warn(WarnPartialSupport, SeverityWarning,
		"partition bounds were translated to declarative partitioning; verify range edges (PostgreSQL upper bounds are exclusive)", "")
	return b.String()
}

// translatePartitionBound maps Oracle-style VALUES clauses onto PostgreSQL
// FOR VALUES syntax.
func translatePartitionBound(ptype, values string) string {
	v := strings.TrimSpace(values)
	upper := strings.ToUpper(v)
	switch strings.ToUpper(ptype) {
	case "RANGE":
		if strings.HasPrefix(upper, "LESS THAN") {
			bound := strings.TrimSpace(v[len("LESS THAN"):])
			return "FROM (MINVALUE) TO " + bound
		}
	case "LIST":
		if strings.HasPrefix(upper, "IN") {
			return "IN " + strings.TrimSpace(v[len("IN"):])
		}
		return "IN (" + v + ")"
	}
	return v
}

func (r postgresRenderer) Sequence(s SequenceDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE SEQUENCE %s START WITH %d INCREMENT BY %d", r.ident(s.Name), s.Start, s.Increment)
	if s.MinValue != nil {
		fmt.Fprintf(&b, " MINVALUE %d", *s.MinValue)
	}
	if s.MaxValue != nil {
		fmt.Fprintf(&b, " MAXVALUE %d", *s.MaxValue)
	}
	if s.Cache > 1 {
		fmt.Fprintf(&b, " CACHE %d", s.Cache)
	}
	if s.Cycle {
		b.WriteString(" CYCLE")
	}
	state.addRule("render-sequence")
	return b.String()
}

func (r postgresRenderer) Trigger(t TriggerDef, opts *ConversionOptions, state *conversionState) string {
	// PostgreSQL triggers execute a function; the body moves into one.
	funcName := t.Name + "_fn"
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE OR REPLACE FUNCTION %s() RETURNS trigger AS $fn$\nBEGIN\n%s\nRETURN NEW;\nEND;\n$fn$ LANGUAGE plpgsql;\n",
		r.ident(funcName), strings.TrimSpace(t.Body))
	fmt.Fprintf(&b, "CREATE TRIGGER %s %s %s ON %s",
		r.ident(t.Name), t.Timing, strings.Join(t.Events, " OR "), r.ident(t.Table))
	if t.PerRow {
		b.WriteString(" FOR EACH ROW")
	}
	if t.When != "" {
		fmt.Fprintf(&b, " WHEN (%s)", t.When)
	}
	fmt.Fprintf(&b, " EXECUTE FUNCTION %s()", r.ident(funcName))
	state.warn(WarnPartialSupport, SeverityWarning,
		fmt.Sprintf("trigger %s: body moved into a plpgsql function; review :NEW/:OLD references (PostgreSQL uses NEW/OLD)", t.Name), "")
	state.addRule("render-trigger")
	return b.String()
}

func (r postgresRenderer) Procedure(p ProcedureDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	if p.IsFunction {
		returns := p.Returns
		if returns == "" {
			returns = "void"
		}
		fmt.Fprintf(&b, "CREATE OR REPLACE FUNCTION %s(%s) RETURNS %s AS $body$\nBEGIN\n%s\nEND;\n$body$ LANGUAGE plpgsql",
			r.ident(p.Name), p.Params, returns, strings.TrimSpace(p.Body))
	} else {
		fmt.Fprintf(&b, "CREATE OR REPLACE PROCEDURE %s(%s) AS $body$\nBEGIN\n%s\nEND;\n$body$ LANGUAGE plpgsql",
			r.ident(p.Name), p.Params, strings.TrimSpace(p.Body))
	}
	state.warn(WarnPartialSupport, SeverityWarning,
		fmt.Sprintf("procedure %s: body repackaged as plpgsql, not translated", p.Name),
		"review declarations, exception handling, and OUT parameters")
	state.addRule("render-procedure")
	return b.String()
}

func (r postgresRenderer) MaterializedView(mv MaterializedViewDef, opts *ConversionOptions, state *conversionState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE MATERIALIZED VIEW %s AS %s", r.ident(mv.Name), strings.TrimSpace(mv.Query))
	if mv.RefreshInterval != "" {
		state.warn(WarnPartialSupport, SeverityWarning,
			fmt.Sprintf("materialized view %s: PostgreSQL has no automatic refresh scheduling; the %s interval was dropped", mv.Name, mv.RefreshInterval),
			"schedule REFRESH MATERIALIZED VIEW via cron or pg_cron")
	}
	state.addRule("render-materialized-view")
	return b.String()
}

func (r postgresRenderer) FunctionIndex(fi FunctionIndexDef, opts *ConversionOptions, state *conversionState) string {
	unique := ""
	if fi.Unique {
		unique = "UNIQUE "
	}
	state.addRule("render-function-index")
	return fmt.Sprintf("CREATE %sINDEX %s ON %s ((%s))",
		unique, r.ident(fi.Name), r.ident(fi.Table), fi.Expression)
}
