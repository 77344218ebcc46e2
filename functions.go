package sqlshift

import (
	"regexp"
	"sort"
	"strings"
)

// Text-level function rewriting shared by the structured converters and the
// fallback transformer. All scans run against a literal-masked copy of the
// statement so nothing ever matches inside a string literal, while the
// rewrites splice the original text to preserve literal contents exactly.

// callSite locates one function call: name token plus balanced argument
// parentheses. Offsets index the original string.
type callSite struct {
	start     int // first byte of the name
	openParen int
	closeParen int // byte index of ')'
}

// findCall finds the first occurrence of name(...) at or after from.
// Matching is case-insensitive, word-bounded, and literal-safe. Bare names
// without parentheses are not matched here.
func findCall(sql, name string, from int) (callSite, bool) {
	masked := maskSingleQuoted(sql)
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\s*\(`)
	for {
		loc := re.FindStringIndex(masked[from:])
		if loc == nil {
			return callSite{}, false
		}
		start := from + loc[0]
		open := from + loc[1] - 1
		// reject qualified names like pkg.NAME( when name itself is unqualified
		if start > 0 && (masked[start-1] == '.' || masked[start-1] == '_') {
			from = open + 1
			continue
		}
		depth := 0
		for i := open; i < len(masked); i++ {
			switch masked[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return callSite{start: start, openParen: open, closeParen: i}, true
				}
			}
		}
		// unbalanced parens; give up rather than guess
		return callSite{}, false
	}
}

// splitTopLevelArgs splits an argument list on commas at parenthesis depth
// zero, outside string literals. Arguments keep their original spacing
// trimmed at both ends.
func splitTopLevelArgs(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	masked := maskSingleQuoted(args)
	var out []string
	depth, last := 0, 0
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(args[last:i]))
				last = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(args[last:]))
	return out
}

// rewriteCalls replaces every name(...) call using fn, which receives the
// split argument expressions and returns the replacement text. Returns the
// rewritten SQL and whether anything changed.
func rewriteCalls(sql, name string, fn func(args []string) string) (string, bool) {
	changed := false
	from := 0
	for {
		site, ok := findCall(sql, name, from)
		if !ok {
			return sql, changed
		}
		args := splitTopLevelArgs(sql[site.openParen+1 : site.closeParen])
		repl := fn(args)
		sql = sql[:site.start] + repl + sql[site.closeParen+1:]
		from = site.start + len(repl)
		changed = true
	}
}

// replaceBareKeyword replaces a keyword that is not followed by an opening
// parenthesis (SYSDATE, SYSTIMESTAMP), outside literals.
func replaceBareKeyword(sql, name, repl string) (string, bool) {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	masked := maskSingleQuoted(sql)
	changed := false
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(masked, -1) {
		// skip call forms; those are handled by rewriteCalls
		rest := strings.TrimLeft(masked[loc[1]:], " \t")
		if strings.HasPrefix(rest, "(") {
			continue
		}
		if loc[0] > 0 && (masked[loc[0]-1] == '.' || masked[loc[0]-1] == '_') {
			continue
		}
		b.WriteString(sql[last:loc[0]])
		b.WriteString(repl)
		last = loc[1]
		changed = true
	}
	if !changed {
		return sql, false
	}
	b.WriteString(sql[last:])
	return b.String(), true
}

// applyFunctionRule rewrites every occurrence of the rule's source function.
// Zero-argument calls and bare keywords are replaced by the target text
// verbatim; calls with arguments keep (optionally reordered) argument lists
// behind the target name.
func applyFunctionRule(sql string, rule FunctionMappingRule) (string, bool) {
	changed := false

	if out, ok := replaceBareKeyword(sql, rule.SourceFunction, rule.TargetFunction); ok {
		sql = out
		changed = true
	}

	out, ok := rewriteCalls(sql, rule.SourceFunction, func(args []string) string {
		if len(args) == 0 {
			return rule.TargetFunction
		}
		ordered := args
		if len(rule.ParameterMappings) > 0 {
			ordered = make([]string, 0, len(rule.ParameterMappings))
			for _, idx := range rule.ParameterMappings {
				if idx >= 0 && idx < len(args) {
					ordered = append(ordered, args[idx])
				}
			}
			// extra source arguments beyond the mapping carry through
			for i := len(rule.ParameterMappings); i < len(args); i++ {
				ordered = append(ordered, args[i])
			}
		}
		return rule.TargetFunction + "(" + strings.Join(ordered, ", ") + ")"
	})
	if ok {
		changed = true
	}
	return out, changed
}

// expandDecode rewrites DECODE(expr, v1, r1, ..., default) into a CASE
// expression. A literal NULL search value becomes WHEN expr IS NULL THEN,
// preserving DECODE's NULL-safe equality for that branch. NULL-valued bound
// expressions evaluated at runtime keep plain equality; that limitation is
// intentional.
func expandDecode(sql string, state *conversionState) string {
	out, changed := rewriteCalls(sql, "DECODE", func(args []string) string {
		if len(args) < 3 {
			return "DECODE(" + strings.Join(args, ", ") + ")"
		}
		expr := args[0]
		rest := args[1:]

		var b strings.Builder
		b.WriteString("CASE")
		i := 0
		for ; i+1 < len(rest); i += 2 {
			search, result := rest[i], rest[i+1]
			if strings.EqualFold(strings.TrimSpace(search), "NULL") {
				b.WriteString(" WHEN " + expr + " IS NULL THEN " + result)
			} else {
				b.WriteString(" WHEN " + expr + " = " + search + " THEN " + result)
			}
		}
		if i < len(rest) {
			b.WriteString(" ELSE " + rest[i])
		}
		b.WriteString(" END")
		return b.String()
	})
	if changed {
		state.addRule("decode-to-case")
	}
	return out
}

// expandNVL2 rewrites NVL2(expr, a, b) into CASE WHEN expr IS NOT NULL THEN
// a ELSE b END, carrying the argument subexpressions through unmodified.
func expandNVL2(sql string, state *conversionState) string {
	out, changed := rewriteCalls(sql, "NVL2", func(args []string) string {
		if len(args) != 3 {
			return "NVL2(" + strings.Join(args, ", ") + ")"
		}
		return "CASE WHEN " + args[0] + " IS NOT NULL THEN " + args[1] + " ELSE " + args[2] + " END"
	})
	if changed {
		state.addRule("nvl2-to-case")
	}
	return out
}

// concatToPipes rewrites CONCAT(a, b, c) into a || b || c for targets where
// CONCAT takes only two arguments.
func concatToPipes(sql string, state *conversionState) string {
	out, changed := rewriteCalls(sql, "CONCAT", func(args []string) string {
		if len(args) < 2 {
			return "CONCAT(" + strings.Join(args, ", ") + ")"
		}
		return strings.Join(args, " || ")
	})
	if changed {
		state.addRule("concat-to-pipes")
	}
	return out
}

// applyFunctionMappings runs every registry rule for the pair against the
// statement text, logging rules and curated warnings as they fire.
func applyFunctionMappings(sql string, reg *FunctionRegistry, opts *ConversionOptions, source, target Dialect, state *conversionState) string {
	// custom mappings are consulted before the built-in table, in sorted
	// order so overlapping rules resolve the same way on every run
	if opts != nil && len(opts.CustomMappings) > 0 {
		names := make([]string, 0, len(opts.CustomMappings))
		for from := range opts.CustomMappings {
			names = append(names, from)
		}
		sort.Strings(names)
		for _, from := range names {
			to := opts.CustomMappings[from]
			out, changed := applyFunctionRule(sql, FunctionMappingRule{
				Source: source, Target: target, SourceFunction: from, TargetFunction: to,
			})
			if changed {
				sql = out
				state.addRule("custom-function:" + strings.ToUpper(from) + "->" + to)
			}
		}
	}

	for _, rule := range reg.RulesFor(source, target) {
		if opts != nil {
			if _, overridden := opts.CustomMappings[strings.ToUpper(rule.SourceFunction)]; overridden {
				continue
			}
		}
		out, changed := applyFunctionRule(sql, rule)
		if !changed {
			continue
		}
		sql = out
		state.addRule("function:" + strings.ToUpper(rule.SourceFunction) + "->" + rule.TargetFunction)
		if rule.WarningMessage != "" {
			severity := SeverityWarning
			if opts != nil && opts.StrictMode && rule.IsPartialSupport {
				severity = SeverityError
			}
			state.warn(rule.WarningKind, severity, rule.WarningMessage, rule.Suggestion)
		}
	}
	return sql
}

// warnUnmappedFunctions logs a warning for every source-dialect function the
// target does not support and no rule rewrote.
func warnUnmappedFunctions(sql string, source, target Dialect, state *conversionState) {
	masked := maskSingleQuoted(sql)
	sourceFuncs := source.SupportedFunctions()
	targetFuncs := target.SupportedFunctions()
	seen := make(map[string]bool)
	for _, m := range reWordFunc.FindAllStringSubmatch(masked, -1) {
		name := strings.ToUpper(m[1])
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, inSource := sourceFuncs[name]; !inSource {
			continue
		}
		if _, inTarget := targetFuncs[name]; inTarget {
			continue
		}
		state.warn(WarnUnsupportedFunction, SeverityWarning,
			"no conversion rule for "+name+" when targeting "+target.String(),
			"review the call manually")
	}
}
