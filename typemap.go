package sqlshift

import (
	"fmt"
	"regexp"
	"strings"
)

// TypeSpec is a parsed column type: base name plus the numeric modifiers
// that decide the target mapping.
type TypeSpec struct {
	Name      string // upper-cased base name, e.g. "NUMBER", "VARCHAR2"
	Length    int    // character or byte length, 0 when absent
	Precision int    // numeric precision, 0 when absent
	Scale     int    // numeric scale, -1 when absent
	Unsigned  bool
	HasParens bool
}

// parseTypeSpec splits "varchar2(100 char)" style declarations into a
// TypeSpec. Unknown shapes come back with just the name.
func parseTypeSpec(raw string) TypeSpec {
	spec := TypeSpec{Scale: -1}
	raw = strings.TrimSpace(raw)
	base := raw
	if i := strings.IndexByte(raw, '('); i >= 0 {
		base = raw[:i]
		spec.HasParens = true
		inner := raw[i+1:]
		if j := strings.IndexByte(inner, ')'); j >= 0 {
			inner = inner[:j]
		}
		inner = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(
			strings.ToUpper(strings.TrimSpace(inner)), " BYTE"), " CHAR"))
		parts := strings.SplitN(inner, ",", 2)
		fmt.Sscanf(strings.TrimSpace(parts[0]), "%d", &spec.Length)
		spec.Precision = spec.Length
		if len(parts) == 2 {
			spec.Scale = 0
			fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &spec.Scale)
		}
	}
	fields := strings.Fields(strings.ToUpper(base))
	if len(fields) > 0 {
		spec.Name = fields[0]
		for _, f := range fields[1:] {
			if f == "UNSIGNED" {
				spec.Unsigned = true
			}
		}
	}
	if strings.Contains(strings.ToUpper(raw), "UNSIGNED") {
		spec.Unsigned = true
	}
	return spec
}

// mapDataType converts a column type declaration between dialects and
// records a DATA_TYPE_MISMATCH warning when precision or semantics shift.
func mapDataType(raw string, source, target Dialect, state *conversionState) string {
	if source == target || (source.IsOracleFamily() && target.IsOracleFamily()) {
		return raw
	}
	spec := parseTypeSpec(raw)
	var out string
	switch {
	case source.IsOracleFamily() && target == MySQL:
		out = oracleTypeToMySQL(spec, state)
	case source.IsOracleFamily() && target == PostgreSQL:
		out = oracleTypeToPostgres(spec, state)
	case source == MySQL && target.IsOracleFamily():
		out = mysqlTypeToOracle(spec, state)
	case source == MySQL && target == PostgreSQL:
		out = mysqlTypeToPostgres(spec, state)
	case source == PostgreSQL && target.IsOracleFamily():
		out = postgresTypeToOracle(spec, state)
	case source == PostgreSQL && target == MySQL:
		out = postgresTypeToMySQL(spec, state)
	}
	if out == "" {
		return raw
	}
	if out != strings.ToUpper(strings.TrimSpace(raw)) {
		state.addRule("datatype-mapping")
	}
	return out
}

// Source-only type names safe to rewrite in raw DDL text. Names shared
// across dialects (CHAR, DATE, TIMESTAMP, FLOAT) are deliberately absent:
// without column structure they cannot be told apart from identifiers.
var (
	reOracleTypeNames = regexp.MustCompile(
		`(?i)\b(NUMBER|NVARCHAR2|VARCHAR2|NCLOB|CLOB|BINARY_FLOAT|BINARY_DOUBLE|XMLTYPE|UROWID|ROWID|RAW)\b[ \t]*(\([^()]*\))?`)
	reMySQLTypeNames = regexp.MustCompile(
		`(?i)\b(TINYINT|MEDIUMINT|DATETIME|TINYTEXT|MEDIUMTEXT|LONGTEXT|TINYBLOB|MEDIUMBLOB|LONGBLOB|VARBINARY|ENUM)\b[ \t]*(\([^()]*\))?`)
	rePostgresTypeNames = regexp.MustCompile(
		`(?i)\b(BIGSERIAL|SERIAL|BYTEA|TIMESTAMPTZ|JSONB|INT2|INT4|INT8|FLOAT4|FLOAT8)\b[ \t]*(\([^()]*\))?`)
)

func typeNamePattern(source Dialect) *regexp.Regexp {
	switch {
	case source.IsOracleFamily():
		return reOracleTypeNames
	case source == MySQL:
		return reMySQLTypeNames
	default:
		return rePostgresTypeNames
	}
}

// substituteTypeNames rewrites source-only column types in raw DDL text,
// carrying parenthesized modifiers through mapDataType. It is the fallback
// path's stand-in for structured column mapping and never touches string
// literals.
func substituteTypeNames(sql string, source, target Dialect, state *conversionState) string {
	if source == target || (source.IsOracleFamily() && target.IsOracleFamily()) {
		return sql
	}
	masked := maskSingleQuoted(sql)
	locs := typeNamePattern(source).FindAllStringIndex(masked, -1)
	if len(locs) == 0 {
		return sql
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		seg := sql[loc[0]:loc[1]]
		spec := strings.TrimRight(seg, " \t")
		mapped := mapDataType(spec, source, target, state)
		b.WriteString(sql[last:loc[0]])
		if strings.EqualFold(mapped, spec) {
			b.WriteString(seg)
		} else {
			b.WriteString(mapped)
			b.WriteString(seg[len(spec):])
		}
		last = loc[1]
	}
	b.WriteString(sql[last:])
	return b.String()
}

func withLen(name string, n int) string {
	if n > 0 {
		return fmt.Sprintf("%s(%d)", name, n)
	}
	return name
}

// numberToMySQLInt buckets Oracle NUMBER(p) into the narrowest MySQL
// integer type that can hold p decimal digits.
func numberToMySQLInt(p int) string {
	switch {
	case p <= 3:
		return "TINYINT"
	case p <= 5:
		return "SMALLINT"
	case p <= 7:
		return "MEDIUMINT"
	case p <= 10:
		return "INT"
	case p <= 19:
		return "BIGINT"
	default:
		return fmt.Sprintf("DECIMAL(%d)", p)
	}
}

func oracleTypeToMySQL(spec TypeSpec, state *conversionState) string {
	switch spec.Name {
	case "NUMBER":
		if !spec.HasParens {
			state.warn(WarnDataTypeMismatch, SeverityWarning,
				"unscaled NUMBER mapped to DECIMAL(38,10); verify precision requirements", "")
			return "DECIMAL(38,10)"
		}
		if spec.Scale > 0 {
			return fmt.Sprintf("DECIMAL(%d,%d)", spec.Precision, spec.Scale)
		}
		return numberToMySQLInt(spec.Precision)
	case "VARCHAR2", "NVARCHAR2":
		return withLen("VARCHAR", spec.Length)
	case "CHAR", "NCHAR":
		return withLen("CHAR", spec.Length)
	case "CLOB", "NCLOB", "LONG":
		return "LONGTEXT"
	case "BLOB", "LONG RAW":
		return "LONGBLOB"
	case "RAW":
		return withLen("VARBINARY", spec.Length)
	case "DATE":
		state.warn(WarnDataTypeMismatch, SeverityInfo,
			"Oracle DATE carries a time component; mapped to DATETIME", "")
		return "DATETIME"
	case "TIMESTAMP":
		return withLen("TIMESTAMP", spec.Precision)
	case "BINARY_FLOAT":
		return "FLOAT"
	case "BINARY_DOUBLE":
		return "DOUBLE"
	case "FLOAT":
		return "DOUBLE"
	case "XMLTYPE":
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			"XMLTYPE mapped to LONGTEXT; XML functions are not available", "")
		return "LONGTEXT"
	case "ROWID", "UROWID":
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			spec.Name+" has no MySQL equivalent; mapped to VARCHAR(18)", "")
		return "VARCHAR(18)"
	}
	return ""
}

func oracleTypeToPostgres(spec TypeSpec, state *conversionState) string {
	switch spec.Name {
	case "NUMBER":
		if !spec.HasParens {
			return "NUMERIC"
		}
		if spec.Scale > 0 {
			return fmt.Sprintf("NUMERIC(%d,%d)", spec.Precision, spec.Scale)
		}
		switch {
		case spec.Precision <= 4:
			return "SMALLINT"
		case spec.Precision <= 9:
			return "INTEGER"
		case spec.Precision <= 18:
			return "BIGINT"
		default:
			return fmt.Sprintf("NUMERIC(%d)", spec.Precision)
		}
	case "VARCHAR2", "NVARCHAR2":
		return withLen("VARCHAR", spec.Length)
	case "CHAR", "NCHAR":
		return withLen("CHAR", spec.Length)
	case "CLOB", "NCLOB", "LONG":
		return "TEXT"
	case "BLOB", "RAW", "LONG RAW":
		return "BYTEA"
	case "DATE":
		state.warn(WarnDataTypeMismatch, SeverityInfo,
			"Oracle DATE carries a time component; mapped to TIMESTAMP", "")
		return "TIMESTAMP"
	case "TIMESTAMP":
		return withLen("TIMESTAMP", spec.Precision)
	case "BINARY_FLOAT":
		return "REAL"
	case "BINARY_DOUBLE", "FLOAT":
		return "DOUBLE PRECISION"
	case "XMLTYPE":
		return "XML"
	case "ROWID", "UROWID":
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			spec.Name+" has no PostgreSQL equivalent; mapped to VARCHAR(18)", "")
		return "VARCHAR(18)"
	}
	return ""
}

// oracleVarcharByteLimit is the widest VARCHAR2 Oracle accepts without
// extended string sizes.
const oracleVarcharByteLimit = 4000

func toOracleVarchar(n int, state *conversionState) string {
	if n <= 0 {
		return "VARCHAR2(255)"
	}
	if n > oracleVarcharByteLimit {
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			fmt.Sprintf("VARCHAR(%d) exceeds Oracle's 4000-byte VARCHAR2 limit; mapped to CLOB", n), "")
		return "CLOB"
	}
	// CHAR semantics keep multi-byte data from overflowing the byte limit.
	return fmt.Sprintf("VARCHAR2(%d CHAR)", n)
}

func mysqlTypeToOracle(spec TypeSpec, state *conversionState) string {
	switch spec.Name {
	case "TINYINT":
		if spec.Length == 1 {
			state.warn(WarnDataTypeMismatch, SeverityInfo,
				"TINYINT(1) mapped to NUMBER(1); boolean semantics are by convention only", "")
			return "NUMBER(1)"
		}
		return "NUMBER(3)"
	case "SMALLINT":
		return "NUMBER(5)"
	case "MEDIUMINT":
		return "NUMBER(7)"
	case "INT", "INTEGER":
		return "NUMBER(10)"
	case "BIGINT":
		if spec.Unsigned {
			return "NUMBER(20)"
		}
		return "NUMBER(19)"
	case "DECIMAL", "NUMERIC":
		if spec.Scale >= 0 {
			return fmt.Sprintf("NUMBER(%d,%d)", spec.Precision, spec.Scale)
		}
		return withLen("NUMBER", spec.Precision)
	case "FLOAT":
		return "BINARY_FLOAT"
	case "DOUBLE", "REAL":
		return "BINARY_DOUBLE"
	case "VARCHAR":
		return toOracleVarchar(spec.Length, state)
	case "CHAR":
		return withLen("CHAR", spec.Length)
	case "TINYTEXT", "TEXT", "MEDIUMTEXT", "LONGTEXT":
		return "CLOB"
	case "TINYBLOB", "BLOB", "MEDIUMBLOB", "LONGBLOB":
		return "BLOB"
	case "VARBINARY", "BINARY":
		return withLen("RAW", spec.Length)
	case "DATETIME", "TIMESTAMP":
		return "TIMESTAMP"
	case "DATE":
		return "DATE"
	case "TIME":
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			"TIME has no Oracle equivalent; mapped to INTERVAL DAY(0) TO SECOND", "")
		return "INTERVAL DAY(0) TO SECOND"
	case "YEAR":
		return "NUMBER(4)"
	case "JSON":
		state.warn(WarnDataTypeMismatch, SeverityInfo,
			"JSON mapped to CLOB; add an IS JSON check constraint to keep validation", "")
		return "CLOB"
	case "ENUM", "SET":
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			spec.Name+" has no Oracle equivalent; mapped to VARCHAR2 with a check constraint recommended", "")
		return "VARCHAR2(255 CHAR)"
	case "BOOLEAN", "BOOL":
		return "NUMBER(1)"
	case "BIT":
		return withLen("NUMBER", spec.Length)
	}
	return ""
}

func mysqlTypeToPostgres(spec TypeSpec, state *conversionState) string {
	switch spec.Name {
	case "TINYINT":
		if spec.Length == 1 {
			return "BOOLEAN"
		}
		return "SMALLINT"
	case "SMALLINT":
		if spec.Unsigned {
			return "INTEGER"
		}
		return "SMALLINT"
	case "MEDIUMINT":
		return "INTEGER"
	case "INT", "INTEGER":
		if spec.Unsigned {
			return "BIGINT"
		}
		return "INTEGER"
	case "BIGINT":
		if spec.Unsigned {
			return "NUMERIC(20)"
		}
		return "BIGINT"
	case "DECIMAL", "NUMERIC":
		if spec.Scale >= 0 {
			return fmt.Sprintf("NUMERIC(%d,%d)", spec.Precision, spec.Scale)
		}
		return withLen("NUMERIC", spec.Precision)
	case "FLOAT":
		return "REAL"
	case "DOUBLE", "REAL":
		return "DOUBLE PRECISION"
	case "VARCHAR":
		return withLen("VARCHAR", spec.Length)
	case "CHAR":
		return withLen("CHAR", spec.Length)
	case "TINYTEXT", "TEXT", "MEDIUMTEXT", "LONGTEXT":
		return "TEXT"
	case "TINYBLOB", "BLOB", "MEDIUMBLOB", "LONGBLOB", "VARBINARY", "BINARY":
		return "BYTEA"
	case "DATETIME":
		return "TIMESTAMP"
	case "TIMESTAMP":
		return "TIMESTAMPTZ"
	case "DATE":
		return "DATE"
	case "TIME":
		return "TIME"
	case "YEAR":
		return "SMALLINT"
	case "JSON":
		return "JSONB"
	case "ENUM", "SET":
		state.warn(WarnDataTypeMismatch, SeverityInfo,
			spec.Name+" mapped to TEXT; add a check constraint to keep the value list", "")
		return "TEXT"
	case "BOOLEAN", "BOOL":
		return "BOOLEAN"
	case "BIT":
		return withLen("BIT", spec.Length)
	}
	return ""
}

func postgresTypeToOracle(spec TypeSpec, state *conversionState) string {
	switch spec.Name {
	case "SMALLINT", "INT2":
		return "NUMBER(5)"
	case "INTEGER", "INT", "INT4":
		return "NUMBER(10)"
	case "BIGINT", "INT8":
		return "NUMBER(19)"
	case "SERIAL":
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			"SERIAL mapped to NUMBER(10); create a sequence and trigger or use IDENTITY", "")
		return "NUMBER(10) GENERATED BY DEFAULT AS IDENTITY"
	case "BIGSERIAL":
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			"BIGSERIAL mapped to NUMBER(19); create a sequence and trigger or use IDENTITY", "")
		return "NUMBER(19) GENERATED BY DEFAULT AS IDENTITY"
	case "NUMERIC", "DECIMAL":
		if spec.Scale >= 0 {
			return fmt.Sprintf("NUMBER(%d,%d)", spec.Precision, spec.Scale)
		}
		return withLen("NUMBER", spec.Precision)
	case "REAL", "FLOAT4":
		return "BINARY_FLOAT"
	case "DOUBLE", "FLOAT8":
		return "BINARY_DOUBLE"
	case "VARCHAR", "CHARACTER":
		return toOracleVarchar(spec.Length, state)
	case "CHAR":
		return withLen("CHAR", spec.Length)
	case "TEXT":
		return "CLOB"
	case "BYTEA":
		return "BLOB"
	case "TIMESTAMP", "TIMESTAMPTZ":
		if spec.Name == "TIMESTAMPTZ" {
			return "TIMESTAMP WITH TIME ZONE"
		}
		return withLen("TIMESTAMP", spec.Precision)
	case "DATE":
		return "DATE"
	case "BOOLEAN", "BOOL":
		state.warn(WarnDataTypeMismatch, SeverityInfo,
			"BOOLEAN mapped to NUMBER(1); 0/1 convention applies", "")
		return "NUMBER(1)"
	case "JSON", "JSONB":
		state.warn(WarnDataTypeMismatch, SeverityInfo,
			spec.Name+" mapped to CLOB; add an IS JSON check constraint to keep validation", "")
		return "CLOB"
	case "UUID":
		return "RAW(16)"
	case "XML":
		return "XMLTYPE"
	}
	return ""
}

func postgresTypeToMySQL(spec TypeSpec, state *conversionState) string {
	switch spec.Name {
	case "SMALLINT", "INT2":
		return "SMALLINT"
	case "INTEGER", "INT", "INT4":
		return "INT"
	case "BIGINT", "INT8":
		return "BIGINT"
	case "SERIAL":
		return "INT AUTO_INCREMENT"
	case "BIGSERIAL":
		return "BIGINT AUTO_INCREMENT"
	case "NUMERIC", "DECIMAL":
		if spec.Scale >= 0 {
			return fmt.Sprintf("DECIMAL(%d,%d)", spec.Precision, spec.Scale)
		}
		return withLen("DECIMAL", spec.Precision)
	case "REAL", "FLOAT4":
		return "FLOAT"
	case "DOUBLE", "FLOAT8":
		return "DOUBLE"
	case "VARCHAR", "CHARACTER":
		return withLen("VARCHAR", spec.Length)
	case "CHAR":
		return withLen("CHAR", spec.Length)
	case "TEXT":
		return "LONGTEXT"
	case "BYTEA":
		return "LONGBLOB"
	case "TIMESTAMPTZ":
		state.warn(WarnDataTypeMismatch, SeverityWarning,
			"TIMESTAMPTZ mapped to TIMESTAMP; MySQL normalizes to the session time zone", "")
		return "TIMESTAMP"
	case "TIMESTAMP":
		return "DATETIME"
	case "DATE":
		return "DATE"
	case "TIME":
		return "TIME"
	case "BOOLEAN", "BOOL":
		return "TINYINT(1)"
	case "JSON", "JSONB":
		return "JSON"
	case "UUID":
		return "CHAR(36)"
	case "XML":
		return "LONGTEXT"
	}
	return ""
}
