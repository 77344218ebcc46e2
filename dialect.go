package sqlshift

import (
	"fmt"
	"strings"
)

// Dialect identifies a supported SQL dialect.
type Dialect string

const (
	MySQL      Dialect = "mysql"
	PostgreSQL Dialect = "postgresql"
	Oracle     Dialect = "oracle"
	Tibero     Dialect = "tibero"
)

// AllDialects lists every supported dialect in a stable order.
var AllDialects = []Dialect{MySQL, PostgreSQL, Oracle, Tibero}

// ParseDialect normalizes a dialect name from config or CLI input.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgresql", "postgres", "pg":
		return PostgreSQL, nil
	case "oracle":
		return Oracle, nil
	case "tibero":
		return Tibero, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q (must be one of: mysql, postgresql, oracle, tibero)", s)
	}
}

// String implements fmt.Stringer.
func (d Dialect) String() string { return string(d) }

// QuoteChar returns the identifier quote character for the dialect.
func (d Dialect) QuoteChar() byte {
	if d == MySQL {
		return '`'
	}
	return '"'
}

// QuoteIdentifier quotes an identifier for the dialect, doubling any
// embedded quote characters.
func (d Dialect) QuoteIdentifier(name string) string {
	q := string(d.QuoteChar())
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// IsOracleFamily reports whether the dialect follows Oracle syntax
// conventions. Tibero is wire- and syntax-compatible with Oracle for
// everything this engine emits.
func (d Dialect) IsOracleFamily() bool {
	return d == Oracle || d == Tibero
}

// SupportedFunctions returns the set of built-in function names (upper-cased)
// the dialect understands natively. Used to decide whether a function call
// needs mapping or only a pass-through.
func (d Dialect) SupportedFunctions() map[string]struct{} {
	switch d {
	case MySQL:
		return mysqlFunctions
	case PostgreSQL:
		return postgresFunctions
	case Oracle, Tibero:
		return oracleFunctions
	default:
		return nil
	}
}

func functionSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToUpper(n)] = struct{}{}
	}
	return set
}

var (
	mysqlFunctions = functionSet(
		"NOW", "CURDATE", "CURTIME", "CURRENT_TIMESTAMP", "DATE_FORMAT",
		"STR_TO_DATE", "DATE_ADD", "DATE_SUB", "DATEDIFF", "IFNULL", "COALESCE",
		"IF", "CONCAT", "CONCAT_WS", "GROUP_CONCAT", "SUBSTRING", "SUBSTR",
		"LENGTH", "CHAR_LENGTH", "LOCATE", "INSTR", "REPLACE", "TRIM", "LTRIM",
		"RTRIM", "UPPER", "LOWER", "LPAD", "RPAD", "ROUND", "FLOOR", "CEIL",
		"CEILING", "ABS", "MOD", "POWER", "RAND", "TRUNCATE", "LAST_INSERT_ID",
		"UUID", "MD5", "SHA1", "SHA2", "JSON_EXTRACT", "JSON_OBJECT",
		"JSON_ARRAY", "REGEXP_LIKE", "REGEXP_REPLACE", "REGEXP_SUBSTR",
	)
	postgresFunctions = functionSet(
		"NOW", "CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME", "TO_CHAR",
		"TO_DATE", "TO_TIMESTAMP", "TO_NUMBER", "COALESCE", "NULLIF",
		"STRING_AGG", "ARRAY_AGG", "SUBSTRING", "SUBSTR", "LENGTH",
		"CHAR_LENGTH", "POSITION", "STRPOS", "REPLACE", "TRIM", "LTRIM",
		"RTRIM", "UPPER", "LOWER", "LPAD", "RPAD", "ROUND", "FLOOR", "CEIL",
		"CEILING", "ABS", "MOD", "POWER", "RANDOM", "TRUNC", "GEN_RANDOM_UUID",
		"MD5", "ROW_NUMBER", "RANK", "DENSE_RANK", "JSONB_EXTRACT_PATH",
		"JSON_BUILD_OBJECT", "JSON_BUILD_ARRAY", "REGEXP_REPLACE",
		"REGEXP_MATCHES", "DATE_TRUNC", "EXTRACT", "AGE",
	)
	oracleFunctions = functionSet(
		"SYSDATE", "SYSTIMESTAMP", "CURRENT_TIMESTAMP", "CURRENT_DATE",
		"TO_CHAR", "TO_DATE", "TO_TIMESTAMP", "TO_NUMBER", "NVL", "NVL2",
		"COALESCE", "DECODE", "NULLIF", "LISTAGG", "SUBSTR", "LENGTH", "INSTR",
		"REPLACE", "TRIM", "LTRIM", "RTRIM", "UPPER", "LOWER", "LPAD", "RPAD",
		"ROUND", "FLOOR", "CEIL", "ABS", "MOD", "POWER", "TRUNC", "ADD_MONTHS",
		"MONTHS_BETWEEN", "LAST_DAY", "NEXT_DAY", "EXTRACT", "GREATEST",
		"LEAST", "ROW_NUMBER", "RANK", "DENSE_RANK", "ROWNUM", "SYS_GUID",
		"REGEXP_LIKE", "REGEXP_REPLACE", "REGEXP_SUBSTR", "REGEXP_INSTR",
		"JSON_VALUE", "JSON_QUERY", "JSON_OBJECT", "JSON_ARRAY",
	)
)
