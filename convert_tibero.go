package sqlshift

// TiberoConverter converts statements written in Tibero syntax. Tibero is
// Oracle-compatible, so the converter shares the Oracle implementation and
// differs only in the source dialect it reports.
type TiberoConverter struct {
	OracleConverter
}

// NewTiberoConverter builds the Tibero-source converter over a function
// mapping registry.
func NewTiberoConverter(functions *FunctionRegistry) *TiberoConverter {
	return &TiberoConverter{OracleConverter{dialect: Tibero, functions: functions}}
}
