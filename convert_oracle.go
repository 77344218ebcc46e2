package sqlshift

// OracleConverter converts statements written in Oracle syntax. The same
// converter backs Tibero input, which shares Oracle's grammar.
type OracleConverter struct {
	dialect   Dialect
	functions *FunctionRegistry
}

// NewOracleConverter builds the Oracle-source converter over a function
// mapping registry.
func NewOracleConverter(functions *FunctionRegistry) *OracleConverter {
	return &OracleConverter{dialect: Oracle, functions: functions}
}

func (c *OracleConverter) Source() Dialect { return c.dialect }

func (c *OracleConverter) CanConvert(stmt *Statement, target Dialect) bool {
	return canConvertKind(stmt, target)
}

func (c *OracleConverter) Convert(stmt *Statement, target Dialect,
	opts *ConversionOptions, state *conversionState) (string, error) {

	switch stmt.Kind {
	case KindSelect, KindInsert, KindUpdate, KindDelete:
		return convertDML(stmt, c.dialect, target, c.functions, opts, state)
	case KindCreateTable:
		// Oracle DDL rarely parses under the structured grammar; physical
		// clauses and VARCHAR2 types route it to the fallback path, where
		// the storage-clause strip rules take over.
		return convertCreateTable(stmt, c.dialect, target, opts, state)
	case KindCreateIndex:
		return convertCreateIndex(stmt.Raw, target, opts, state)
	default:
		return convertProcedural(stmt, c.dialect, target, c.functions, opts, state)
	}
}
