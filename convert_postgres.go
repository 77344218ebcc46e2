package sqlshift

// PostgresConverter converts statements written in PostgreSQL syntax.
type PostgresConverter struct {
	functions *FunctionRegistry
}

// NewPostgresConverter builds the PostgreSQL-source converter over a
// function mapping registry.
func NewPostgresConverter(functions *FunctionRegistry) *PostgresConverter {
	return &PostgresConverter{functions: functions}
}

func (c *PostgresConverter) Source() Dialect { return PostgreSQL }

func (c *PostgresConverter) CanConvert(stmt *Statement, target Dialect) bool {
	return canConvertKind(stmt, target)
}

func (c *PostgresConverter) Convert(stmt *Statement, target Dialect,
	opts *ConversionOptions, state *conversionState) (string, error) {

	switch stmt.Kind {
	case KindSelect, KindInsert, KindUpdate, KindDelete:
		return convertDML(stmt, PostgreSQL, target, c.functions, opts, state)
	case KindCreateTable:
		// PostgreSQL DDL only yields a column specification when it also
		// parses under the structured grammar; otherwise the fallback path
		// carries it.
		return convertCreateTable(stmt, PostgreSQL, target, opts, state)
	case KindCreateIndex:
		return convertCreateIndex(stmt.Raw, target, opts, state)
	default:
		return convertProcedural(stmt, PostgreSQL, target, c.functions, opts, state)
	}
}
