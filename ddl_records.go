package sqlshift

// Dialect-neutral DDL intermediate records. Each record is immutable data
// constructed while converting a single DDL statement and discarded after
// rendering. Rendering lives in one renderer per target dialect so a new
// dialect adds one renderer instead of touching every record type.

// ForeignKeyDef is a referential constraint.
type ForeignKeyDef struct {
	Name       string
	Table      string
	Columns    []string
	RefTable   string
	RefColumns []string
	UpdateRule string // CASCADE, SET NULL, RESTRICT, NO ACTION; empty = default
	DeleteRule string
}

// UniqueConstraintDef is a unique or primary-key constraint.
type UniqueConstraintDef struct {
	Name    string
	Table   string
	Columns []string
	Primary bool
}

// CheckConstraintDef is a CHECK constraint with its raw expression.
type CheckConstraintDef struct {
	Name       string
	Table      string
	Expression string
}

// PartitionDef describes table partitioning.
type PartitionDef struct {
	Table      string
	Type       string // RANGE, LIST, HASH
	Columns    []string
	Partitions []PartitionSlice
}

// PartitionSlice is one named partition with its bound or value list.
type PartitionSlice struct {
	Name   string
	Values string // raw bound text, e.g. "LESS THAN (100)" or "IN ('a','b')"
}

// SequenceDef describes a sequence object.
type SequenceDef struct {
	Name      string
	Start     int64
	Increment int64
	MinValue  *int64
	MaxValue  *int64
	Cache     int64
	Cycle     bool
}

// TriggerDef describes a trigger. Events holds one or more of INSERT,
// UPDATE, DELETE.
type TriggerDef struct {
	Name    string
	Table   string
	Timing  string // BEFORE, AFTER, INSTEAD OF
	Events  []string
	PerRow  bool
	When    string // optional WHEN condition, raw text
	Body    string // raw body between BEGIN/END or the target action
}

// ProcedureDef describes a stored procedure or function header plus its raw
// body. Procedural-language bodies are never translated, only repackaged.
type ProcedureDef struct {
	Name       string
	IsFunction bool
	Params     string // raw parameter list without enclosing parens
	Returns    string // function return type, raw
	Body       string
}

// MaterializedViewDef describes a materialized view and its refresh policy.
type MaterializedViewDef struct {
	Name            string
	Query           string
	RefreshMode     string // COMPLETE, FAST, FORCE; empty = unspecified
	RefreshInterval string // raw NEXT/START WITH expression; empty = on demand
}

// FunctionIndexDef is a function-based (expression) index.
type FunctionIndexDef struct {
	Name       string
	Table      string
	Expression string
	Unique     bool
}

// ddlRenderer renders every record type for one target dialect. Renderers
// append diagnostics for capability gaps instead of failing.
type ddlRenderer interface {
	ForeignKey(fk ForeignKeyDef, opts *ConversionOptions, state *conversionState) string
	UniqueConstraint(uc UniqueConstraintDef, opts *ConversionOptions, state *conversionState) string
	CheckConstraint(cc CheckConstraintDef, opts *ConversionOptions, state *conversionState) string
	Partition(p PartitionDef, opts *ConversionOptions, state *conversionState) string
	Sequence(s SequenceDef, opts *ConversionOptions, state *conversionState) string
	Trigger(t TriggerDef, opts *ConversionOptions, state *conversionState) string
	Procedure(p ProcedureDef, opts *ConversionOptions, state *conversionState) string
	MaterializedView(mv MaterializedViewDef, opts *ConversionOptions, state *conversionState) string
	FunctionIndex(fi FunctionIndexDef, opts *ConversionOptions, state *conversionState) string
}

// rendererFor returns the renderer for a target dialect. Tibero shares the
// Oracle renderer parameterized by dialect.
func rendererFor(target Dialect) ddlRenderer {
	switch target {
	case MySQL:
		return mysqlRenderer{}
	case PostgreSQL:
		return postgresRenderer{}
	default:
		return oracleRenderer{dialect: target}
	}
}

// quoteAll quotes a column list for the target dialect.
func quoteAll(d Dialect, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = d.QuoteIdentifier(c)
	}
	return out
}
