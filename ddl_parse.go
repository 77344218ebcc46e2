package sqlshift

import (
	"regexp"
	"strconv"
	"strings"
)

// Procedural statements (triggers, sequences, procedures, materialized
// views) are not covered by the structured parser, so their clauses are
// extracted from the raw text with anchored patterns. Extraction failure
// returns false and routes the statement to the fallback path.

var (
	reSequenceName = regexp.MustCompile(`(?is)CREATE\s+SEQUENCE\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w".]+)`)
	reSeqStart     = regexp.MustCompile(`(?i)START\s+WITH\s+(-?\d+)`)
	reSeqIncrement = regexp.MustCompile(`(?i)INCREMENT\s+BY\s+(-?\d+)`)
	reSeqMinValue  = regexp.MustCompile(`(?i)\bMINVALUE\s+(-?\d+)`)
	reSeqMaxValue  = regexp.MustCompile(`(?i)\bMAXVALUE\s+(-?\d+)`)
	reSeqCache     = regexp.MustCompile(`(?i)\bCACHE\s+(\d+)`)
	reSeqCycle     = regexp.MustCompile(`(?i)\bCYCLE\b`)
	reSeqNoCycle   = regexp.MustCompile(`(?i)\bNO\s*CYCLE\b`)

	reTriggerHead = regexp.MustCompile(
		`(?is)CREATE\s+(?:OR\s+REPLACE\s+)?TRIGGER\s+([\w".]+)\s+` +
			`(BEFORE|AFTER|INSTEAD\s+OF)\s+` +
			`(INSERT|UPDATE|DELETE)((?:\s+OR\s+(?:INSERT|UPDATE|DELETE))*)` +
			`(?:\s+OF\s+[\w",.\s]+?)?` +
			`\s+ON\s+([\w".]+)`)
	reTriggerPerRow = regexp.MustCompile(`(?i)FOR\s+EACH\s+ROW`)
	reTriggerWhen   = regexp.MustCompile(`(?is)\bWHEN\s*\((.*?)\)\s*(?:BEGIN|DECLARE)`)
	reTriggerBody   = regexp.MustCompile(`(?is)\b(BEGIN|DECLARE)\b(.*)$`)
	reTriggerEvent  = regexp.MustCompile(`(?i)INSERT|UPDATE|DELETE`)

	reProcedureHead = regexp.MustCompile(
		`(?is)CREATE\s+(?:OR\s+REPLACE\s+)?(PROCEDURE|FUNCTION)\s+([\w".]+)\s*(?:\((.*?)\))?`)
	reProcReturns = regexp.MustCompile(`(?is)\)?\s*RETURNS?\s+([\w()., ]+?)\s+(?:IS|AS|BEGIN|DETERMINISTIC|LANGUAGE)`)
	reProcBody    = regexp.MustCompile(`(?is)\b(?:IS|AS)\b(.*)$|\bBEGIN\b(.*)$`)

	reMatViewHead = regexp.MustCompile(
		`(?is)CREATE\s+MATERIALIZED\s+VIEW\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w".]+)`)
	reMatViewQuery   = regexp.MustCompile(`(?is)\bAS\s+(SELECT\b.*)$`)
	reMatViewRefresh = regexp.MustCompile(`(?i)REFRESH\s+(FAST|COMPLETE|FORCE)`)
	reMatViewNext    = regexp.MustCompile(`(?is)\bNEXT\s+(.+?)\s+AS\b`)

	reCommentOn = regexp.MustCompile(
		`(?is)^\s*COMMENT\s+ON\s+(TABLE|COLUMN)\s+([\w".]+)\s+IS\s+('(?:[^']|'')*')`)
)

func unquoteName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, "\"`")
	return name
}

// lastNamePart drops a schema qualifier, "owner.seq" becoming "seq".
func lastNamePart(name string) string {
	name = unquoteName(name)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return unquoteName(name[i+1:])
	}
	return name
}

func parseSequence(raw string) (SequenceDef, bool) {
	m := reSequenceName.FindStringSubmatch(raw)
	if m == nil {
		return SequenceDef{}, false
	}
	def := SequenceDef{Name: lastNamePart(m[1]), Start: 1, Increment: 1}
	masked := maskSingleQuoted(raw)
	if s := reSeqStart.FindStringSubmatch(masked); s != nil {
		def.Start, _ = strconv.ParseInt(s[1], 10, 64)
	}
	if s := reSeqIncrement.FindStringSubmatch(masked); s != nil {
		def.Increment, _ = strconv.ParseInt(s[1], 10, 64)
	}
	if s := reSeqMinValue.FindStringSubmatch(masked); s != nil {
		v, _ := strconv.ParseInt(s[1], 10, 64)
		def.MinValue = &v
	}
	if s := reSeqMaxValue.FindStringSubmatch(masked); s != nil {
		v, _ := strconv.ParseInt(s[1], 10, 64)
		def.MaxValue = &v
	}
	if s := reSeqCache.FindStringSubmatch(masked); s != nil {
		def.Cache, _ = strconv.ParseInt(s[1], 10, 64)
	}
	def.Cycle = reSeqCycle.MatchString(masked) && !reSeqNoCycle.MatchString(masked)
	return def, true
}

func parseTrigger(raw string) (TriggerDef, bool) {
	m := reTriggerHead.FindStringSubmatch(raw)
	if m == nil {
		return TriggerDef{}, false
	}
	def := TriggerDef{
		Name:   lastNamePart(m[1]),
		Timing: strings.ToUpper(regexp.MustCompile(`\s+`).ReplaceAllString(m[2], " ")),
		Table:  lastNamePart(m[5]),
	}
	def.Events = append(def.Events, strings.ToUpper(m[3]))
	for _, extra := range reTriggerEvent.FindAllString(m[4], -1) {
		def.Events = append(def.Events, strings.ToUpper(extra))
	}
	def.PerRow = reTriggerPerRow.MatchString(raw)
	if w := reTriggerWhen.FindStringSubmatch(raw); w != nil {
		def.When = strings.TrimSpace(w[1])
	}
	if b := reTriggerBody.FindStringSubmatch(raw); b != nil {
		body := b[2]
		if strings.EqualFold(b[1], "DECLARE") {
			body = "DECLARE" + body
		}
		body = strings.TrimSpace(body)
		body = strings.TrimSuffix(body, ";")
		body = strings.TrimSpace(strings.TrimSuffix(body, "/"))
		// Strip the outer BEGIN...END pair when the head keyword was BEGIN.
		if strings.EqualFold(b[1], "BEGIN") {
			body = trimBlockEnd(body)
		}
		def.Body = body
	}
	if def.Body == "" {
		return TriggerDef{}, false
	}
	return def, true
}

var reBlockEnd = regexp.MustCompile(`(?is)\bEND(?:\s+[\w"]+)?\s*;?\s*$`)

// trimBlockEnd removes a trailing "END" or "END <name>" from a block body.
func trimBlockEnd(body string) string {
	trimmed := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(body), ";"))
	if loc := reBlockEnd.FindStringIndex(trimmed); loc != nil {
		return strings.TrimSpace(trimmed[:loc[0]])
	}
	return strings.TrimSpace(body)
}

func parseProcedure(raw string) (ProcedureDef, bool) {
	m := reProcedureHead.FindStringSubmatch(raw)
	if m == nil {
		return ProcedureDef{}, false
	}
	def := ProcedureDef{
		Name:       lastNamePart(m[2]),
		IsFunction: strings.EqualFold(m[1], "FUNCTION"),
		Params:     strings.TrimSpace(m[3]),
	}
	if def.IsFunction {
		if r := reProcReturns.FindStringSubmatch(raw); r != nil {
			def.Returns = strings.TrimSpace(r[1])
		}
	}
	if b := reProcBody.FindStringSubmatch(raw); b != nil {
		body := b[1]
		if body == "" {
			body = b[2]
		}
		body = strings.TrimSpace(body)
		body = strings.TrimSuffix(body, ";")
		body = strings.TrimSpace(strings.TrimSuffix(body, "/"))
		if i := strings.Index(strings.ToUpper(body), "BEGIN"); i >= 0 {
			head := strings.TrimSpace(body[:i])
			inner := trimBlockEnd(body[i+5:])
			if head != "" {
				def.Body = "DECLARE\n" + head + "\n" + inner
			} else {
				def.Body = inner
			}
		} else {
			def.Body = trimBlockEnd(body)
		}
	}
	if def.Body == "" {
		return ProcedureDef{}, false
	}
	return def, true
}

func parseMaterializedView(raw string) (MaterializedViewDef, bool) {
	m := reMatViewHead.FindStringSubmatch(raw)
	if m == nil {
		return MaterializedViewDef{}, false
	}
	def := MaterializedViewDef{Name: lastNamePart(m[1])}
	if q := reMatViewQuery.FindStringSubmatch(raw); q != nil {
		def.Query = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(q[1]), ";"))
	}
	if def.Query == "" {
		return MaterializedViewDef{}, false
	}
	if r := reMatViewRefresh.FindStringSubmatch(raw); r != nil {
		def.RefreshMode = strings.ToUpper(r[1])
	}
	if n := reMatViewNext.FindStringSubmatch(raw); n != nil {
		def.RefreshInterval = strings.TrimSpace(n[1])
	}
	return def, true
}

// commentOnDef is a parsed COMMENT ON TABLE/COLUMN statement.
type commentOnDef struct {
	Kind    string // "TABLE" or "COLUMN"
	Target  string // possibly qualified name, quoting removed
	Comment string // quoted literal, quotes included
}

func parseCommentOn(raw string) (commentOnDef, bool) {
	m := reCommentOn.FindStringSubmatch(raw)
	if m == nil {
		return commentOnDef{}, false
	}
	return commentOnDef{
		Kind:    strings.ToUpper(m[1]),
		Target:  unquoteName(m[2]),
		Comment: m[3],
	}, true
}
