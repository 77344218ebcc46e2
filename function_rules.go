package sqlshift

// Built-in function mapping rules for every ordered dialect pair. The table
// is data, not branching code: the same rules drive the structured path and
// the fallback transformer.

func rename(src, tgt Dialect, from, to string) FunctionMappingRule {
	return FunctionMappingRule{Source: src, Target: tgt, SourceFunction: from, TargetFunction: to}
}

func renameSwap2(src, tgt Dialect, from, to string) FunctionMappingRule {
	r := rename(src, tgt, from, to)
	r.ParameterMappings = []int{1, 0}
	return r
}

func partial(src, tgt Dialect, from, to, message, suggestion string) FunctionMappingRule {
	return FunctionMappingRule{
		Source: src, Target: tgt,
		SourceFunction: from, TargetFunction: to,
		WarningKind:      WarnPartialSupport,
		WarningMessage:   message,
		Suggestion:       suggestion,
		IsPartialSupport: true,
	}
}

// flag keeps the original name but attaches a curated diagnostic, for
// functions with no mechanical rewrite.
func flag(src, tgt Dialect, name, message, suggestion string) FunctionMappingRule {
	return FunctionMappingRule{
		Source: src, Target: tgt,
		SourceFunction: name, TargetFunction: name,
		WarningKind:      WarnUnsupportedFunction,
		WarningMessage:   message,
		Suggestion:       suggestion,
		IsPartialSupport: true,
	}
}

// toOracleFamily duplicates a rule for both Oracle and Tibero targets.
func toOracleFamily(src Dialect, make func(tgt Dialect) FunctionMappingRule) []FunctionMappingRule {
	return []FunctionMappingRule{make(Oracle), make(Tibero)}
}

// fromOracleFamily duplicates a rule for both Oracle and Tibero sources.
func fromOracleFamily(tgt Dialect, make func(src Dialect) FunctionMappingRule) []FunctionMappingRule {
	return []FunctionMappingRule{make(Oracle), make(Tibero)}
}

const formatStringNote = "date format strings differ between dialects and are not translated"

func builtinFunctionRules() []FunctionMappingRule {
	var rules []FunctionMappingRule
	add := func(rs ...FunctionMappingRule) { rules = append(rules, rs...) }

	// Current date/time.
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return rename(MySQL, t, "NOW", "SYSDATE") })...)
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return rename(MySQL, t, "CURDATE", "TRUNC(SYSDATE)") })...)
	add(rename(MySQL, PostgreSQL, "CURDATE", "CURRENT_DATE"))
	add(rename(MySQL, PostgreSQL, "CURTIME", "CURRENT_TIME"))
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule {
		return partial(MySQL, t, "CURTIME", "TO_CHAR(SYSDATE,'HH24:MI:SS')",
			"CURTIME() returns a TIME value; the Oracle rendering is a formatted string", "")
	})...)
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule { return rename(s, MySQL, "SYSDATE", "NOW()") })...)
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule { return rename(s, PostgreSQL, "SYSDATE", "CURRENT_TIMESTAMP") })...)
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule { return rename(s, MySQL, "SYSTIMESTAMP", "CURRENT_TIMESTAMP") })...)
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule { return rename(s, PostgreSQL, "SYSTIMESTAMP", "CURRENT_TIMESTAMP") })...)

	// Date formatting and parsing. Format strings are never translated,
	// only flagged.
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule {
		return partial(MySQL, t, "DATE_FORMAT", "TO_CHAR", formatStringNote,
			"review the format string: MySQL '%Y-%m-%d' corresponds to Oracle 'YYYY-MM-DD'")
	})...)
	add(partial(MySQL, PostgreSQL, "DATE_FORMAT", "TO_CHAR", formatStringNote,
		"review the format string: MySQL '%Y-%m-%d' corresponds to PostgreSQL 'YYYY-MM-DD'"))
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule {
		return partial(s, MySQL, "TO_CHAR", "DATE_FORMAT", formatStringNote,
			"review the format string: Oracle 'YYYY-MM-DD' corresponds to MySQL '%Y-%m-%d'")
	})...)
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule {
		return partial(MySQL, t, "STR_TO_DATE", "TO_DATE", formatStringNote, "")
	})...)
	add(partial(MySQL, PostgreSQL, "STR_TO_DATE", "TO_TIMESTAMP", formatStringNote, ""))
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule {
		return partial(s, MySQL, "TO_DATE", "STR_TO_DATE", formatStringNote, "")
	})...)
	add(partial(PostgreSQL, MySQL, "TO_CHAR", "DATE_FORMAT", formatStringNote, ""))
	add(partial(PostgreSQL, MySQL, "TO_TIMESTAMP", "STR_TO_DATE", formatStringNote, ""))
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule {
		return flag(s, MySQL, "ADD_MONTHS", "ADD_MONTHS has no MySQL equivalent",
			"use DATE_ADD(date, INTERVAL n MONTH)")
	})...)
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule {
		return flag(s, PostgreSQL, "ADD_MONTHS", "ADD_MONTHS has no PostgreSQL equivalent",
			"use date + INTERVAL 'n months' arithmetic")
	})...)
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule {
		return flag(s, PostgreSQL, "MONTHS_BETWEEN", "MONTHS_BETWEEN has no PostgreSQL equivalent",
			"use AGE() and EXTRACT() arithmetic")
	})...)

	// Null handling. NVL2 and DECODE are structural expansions handled by
	// the converter before the registry is consulted.
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return rename(MySQL, t, "IFNULL", "NVL") })...)
	add(rename(MySQL, PostgreSQL, "IFNULL", "COALESCE"))
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule { return rename(s, MySQL, "NVL", "IFNULL") })...)
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule { return rename(s, PostgreSQL, "NVL", "COALESCE") })...)
	add(toOracleFamily(PostgreSQL, func(t Dialect) FunctionMappingRule { return rename(PostgreSQL, t, "COALESCE", "COALESCE") })...)

	// Aggregation.
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule {
		return partial(MySQL, t, "GROUP_CONCAT", "LISTAGG",
			"LISTAGG requires WITHIN GROUP (ORDER BY ...) and an explicit separator",
			"append WITHIN GROUP (ORDER BY ...) to the aggregate")
	})...)
	add(partial(MySQL, PostgreSQL, "GROUP_CONCAT", "STRING_AGG",
		"STRING_AGG requires an explicit separator argument; GROUP_CONCAT defaults to ','",
		"add ',' as the second argument if the default separator was relied on"))
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule {
		return partial(s, MySQL, "LISTAGG", "GROUP_CONCAT",
			"WITHIN GROUP ordering must move into GROUP_CONCAT(... ORDER BY ...)", "")
	})...)
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule {
		return partial(s, PostgreSQL, "LISTAGG", "STRING_AGG",
			"WITHIN GROUP ordering must move into STRING_AGG(... ORDER BY ...)", "")
	})...)
	add(partial(PostgreSQL, MySQL, "STRING_AGG", "GROUP_CONCAT",
		"GROUP_CONCAT uses SEPARATOR syntax instead of a second argument", ""))
	add(toOracleFamily(PostgreSQL, func(t Dialect) FunctionMappingRule {
		return partial(PostgreSQL, t, "STRING_AGG", "LISTAGG",
			"LISTAGG requires WITHIN GROUP (ORDER BY ...)", "")
	})...)

	// Strings.
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return rename(MySQL, t, "SUBSTRING", "SUBSTR") })...)
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return rename(MySQL, t, "CHAR_LENGTH", "LENGTH") })...)
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return renameSwap2(MySQL, t, "LOCATE", "INSTR") })...)
	add(renameSwap2(MySQL, PostgreSQL, "LOCATE", "STRPOS"))
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule { return rename(s, PostgreSQL, "INSTR", "STRPOS") })...)
	add(rename(PostgreSQL, MySQL, "STRPOS", "LOCATE"))
	add(toOracleFamily(PostgreSQL, func(t Dialect) FunctionMappingRule { return renameSwap2(PostgreSQL, t, "STRPOS", "INSTR") })...)

	// Math / misc.
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return rename(MySQL, t, "RAND", "DBMS_RANDOM.VALUE") })...)
	add(rename(MySQL, PostgreSQL, "RAND", "RANDOM()"))
	add(rename(PostgreSQL, MySQL, "RANDOM", "RAND()"))
	add(toOracleFamily(PostgreSQL, func(t Dialect) FunctionMappingRule { return rename(PostgreSQL, t, "RANDOM", "DBMS_RANDOM.VALUE") })...)
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return rename(MySQL, t, "TRUNCATE", "TRUNC") })...)
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule {
		return partial(s, MySQL, "TRUNC", "TRUNCATE",
			"Oracle TRUNC also accepts dates; TRUNCATE is numeric only", "use DATE() for date truncation")
	})...)
	add(fromOracleFamily(MySQL, func(s Dialect) FunctionMappingRule { return rename(s, MySQL, "SYS_GUID", "UUID()") })...)
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule { return rename(s, PostgreSQL, "SYS_GUID", "GEN_RANDOM_UUID()") })...)
	add(rename(MySQL, PostgreSQL, "UUID", "GEN_RANDOM_UUID()"))
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule { return rename(MySQL, t, "UUID", "SYS_GUID()") })...)
	add(rename(MySQL, PostgreSQL, "LAST_INSERT_ID", "LASTVAL()"))
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule {
		return flag(MySQL, t, "LAST_INSERT_ID", "LAST_INSERT_ID has no Oracle equivalent",
			"use <sequence>.CURRVAL for the owning sequence")
	})...)

	// JSON access.
	add(toOracleFamily(MySQL, func(t Dialect) FunctionMappingRule {
		return partial(MySQL, t, "JSON_EXTRACT", "JSON_VALUE",
			"JSON_VALUE returns scalars only; JSON_EXTRACT may return fragments",
			"use JSON_QUERY for object or array results")
	})...)
	add(partial(MySQL, PostgreSQL, "JSON_EXTRACT", "JSONB_EXTRACT_PATH",
		"path syntax differs: MySQL '$.a.b' becomes separate path arguments", ""))

	// Regular expressions.
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule {
		return flag(s, PostgreSQL, "REGEXP_LIKE", "REGEXP_LIKE has no direct PostgreSQL function",
			"use the ~ operator (or ~* for case-insensitive matching)")
	})...)
	add(fromOracleFamily(PostgreSQL, func(s Dialect) FunctionMappingRule {
		return partial(s, PostgreSQL, "REGEXP_SUBSTR", "SUBSTRING",
			"PostgreSQL uses SUBSTRING(string FROM pattern) for regex extraction", "")
	})...)

	return rules
}
