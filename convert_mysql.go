package sqlshift

// MySQLConverter converts statements written in MySQL syntax.
type MySQLConverter struct {
	functions *FunctionRegistry
}

// NewMySQLConverter builds the MySQL-source converter over a function
// mapping registry.
func NewMySQLConverter(functions *FunctionRegistry) *MySQLConverter {
	return &MySQLConverter{functions: functions}
}

func (c *MySQLConverter) Source() Dialect { return MySQL }

func (c *MySQLConverter) CanConvert(stmt *Statement, target Dialect) bool {
	return canConvertKind(stmt, target)
}

func (c *MySQLConverter) Convert(stmt *Statement, target Dialect,
	opts *ConversionOptions, state *conversionState) (string, error) {

	switch stmt.Kind {
	case KindSelect, KindInsert, KindUpdate, KindDelete:
		return convertDML(stmt, MySQL, target, c.functions, opts, state)
	case KindCreateTable:
		return convertCreateTable(stmt, MySQL, target, opts, state)
	case KindCreateIndex:
		return convertCreateIndex(stmt.Raw, target, opts, state)
	default:
		return convertProcedural(stmt, MySQL, target, c.functions, opts, state)
	}
}
