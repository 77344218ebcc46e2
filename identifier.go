package sqlshift

import "strings"

// requoteIdentifiers rewrites identifier quoting between the back-tick and
// double-quote conventions, outside single-quoted literals. Embedded quote
// characters inside identifiers are doubled in the target convention.
func requoteIdentifiers(sql string, from, to byte) (string, bool) {
	if from == to {
		return sql, false
	}
	var b strings.Builder
	b.Grow(len(sql))
	changed := false
	inSingle := false

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if inSingle {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(sql) {
				b.WriteByte(sql[i+1])
				i++
				continue
			}
			if c == '\'' {
				if i+1 < len(sql) && sql[i+1] == '\'' {
					b.WriteByte('\'')
					i++
					continue
				}
				inSingle = false
			}
			continue
		}
		switch c {
		case '\'':
			inSingle = true
			b.WriteByte(c)
		case from:
			// copy the identifier up to the closing quote
			j := i + 1
			var ident strings.Builder
			for j < len(sql) {
				if sql[j] == from {
					if j+1 < len(sql) && sql[j+1] == from {
						ident.WriteByte(from)
						j += 2
						continue
					}
					break
				}
				ident.WriteByte(sql[j])
				j++
			}
			if j >= len(sql) {
				// unbalanced quote; leave the rest untouched
				b.WriteString(sql[i:])
				return b.String(), changed
			}
			name := strings.ReplaceAll(ident.String(), string(to), string(to)+string(to))
			b.WriteByte(to)
			b.WriteString(name)
			b.WriteByte(to)
			i = j
			changed = true
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), changed
}

// convertIdentifierQuoting applies the quote-character rewrite for a dialect
// pair and records the diagnostic the rewrite always carries.
func convertIdentifierQuoting(sql string, source, target Dialect, state *conversionState) string {
	from, to := source.QuoteChar(), target.QuoteChar()
	out, changed := requoteIdentifiers(sql, from, to)
	if changed {
		state.addRule("identifier-quoting")
		state.warn(WarnSyntaxDifference, SeverityInfo,
			"identifier quoting rewritten from "+string(from)+" to "+string(to), "")
	}
	return out
}
