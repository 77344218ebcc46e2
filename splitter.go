package sqlshift

import "strings"

// SplitStatements splits SQL text on top-level semicolons, ignoring empty
// entries and semicolons inside single-quoted or double-quoted literals.
// Backslash escapes inside single quotes are honored because MySQL input
// may use them.
func SplitStatements(sql string) []string {
	var stmts []string
	var current strings.Builder
	var inSingle, inDouble bool

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case inSingle:
			current.WriteByte(c)
			switch c {
			case '\\':
				// consume the escaped byte
				if i+1 < len(sql) {
					current.WriteByte(sql[i+1])
					i++
				}
			case '\'':
				// doubled quote stays inside the literal
				if i+1 < len(sql) && sql[i+1] == '\'' {
					current.WriteByte('\'')
					i++
				} else {
					inSingle = false
				}
			}
		case inDouble:
			current.WriteByte(c)
			if c == '"' {
				if i+1 < len(sql) && sql[i+1] == '"' {
					current.WriteByte('"')
					i++
				} else {
					inDouble = false
				}
			}
		case c == '\'':
			inSingle = true
			current.WriteByte(c)
		case c == '"':
			inDouble = true
			current.WriteByte(c)
		case c == ';':
			if s := strings.TrimSpace(current.String()); s != "" {
				stmts = append(stmts, s)
			}
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	// Trailing statement without semicolon.
	if s := strings.TrimSpace(current.String()); s != "" {
		stmts = append(stmts, s)
	}

	return stmts
}
