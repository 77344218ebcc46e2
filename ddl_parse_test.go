package sqlshift

import (
	"reflect"
	"testing"
)

func TestParseSequence(t *testing.T) {
	min, max := int64(1), int64(999999)
	tests := []struct {
		name string
		sql  string
		want SequenceDef
		ok   bool
	}{
		{
			"defaults",
			"CREATE SEQUENCE seq_orders",
			SequenceDef{Name: "seq_orders", Start: 1, Increment: 1},
			true,
		},
		{
			"all options",
			"CREATE SEQUENCE hr.seq_emp START WITH 100 INCREMENT BY 5 MINVALUE 1 MAXVALUE 999999 CACHE 20 CYCLE",
			SequenceDef{Name: "seq_emp", Start: 100, Increment: 5, MinValue: &min, MaxValue: &max, Cache: 20, Cycle: true},
			true,
		},
		{
			"nocycle wins",
			"CREATE SEQUENCE s NOCYCLE",
			SequenceDef{Name: "s", Start: 1, Increment: 1},
			true,
		},
		{
			"quoted qualified name",
			`CREATE SEQUENCE "HR"."SEQ_X" START WITH 7`,
			SequenceDef{Name: "SEQ_X", Start: 7, Increment: 1},
			true,
		},
		{
			"not a sequence",
			"CREATE TABLE t (a INT)",
			SequenceDef{},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSequence(tt.sql)
			if ok != tt.ok {
				t.Fatalf("parseSequence(%q) ok = %v, want %v", tt.sql, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Name != tt.want.Name || got.Start != tt.want.Start ||
				got.Increment != tt.want.Increment || got.Cache != tt.want.Cache ||
				got.Cycle != tt.want.Cycle {
				t.Errorf("parseSequence(%q) = %+v, want %+v", tt.sql, got, tt.want)
			}
			if (got.MinValue == nil) != (tt.want.MinValue == nil) ||
				(got.MinValue != nil && *got.MinValue != *tt.want.MinValue) {
				t.Errorf("MinValue mismatch: %v", got.MinValue)
			}
			if (got.MaxValue == nil) != (tt.want.MaxValue == nil) ||
				(got.MaxValue != nil && *got.MaxValue != *tt.want.MaxValue) {
				t.Errorf("MaxValue mismatch: %v", got.MaxValue)
			}
		})
	}
}

func TestParseTrigger(t *testing.T) {
	sql := `CREATE OR REPLACE TRIGGER trg_audit
BEFORE INSERT OR UPDATE ON hr.employees
FOR EACH ROW
BEGIN
  :NEW.updated_at := SYSDATE;
END;`
	def, ok := parseTrigger(sql)
	if !ok {
		t.Fatalf("parseTrigger failed")
	}
	if def.Name != "trg_audit" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.Timing != "BEFORE" {
		t.Errorf("Timing = %q", def.Timing)
	}
	if !reflect.DeepEqual(def.Events, []string{"INSERT", "UPDATE"}) {
		t.Errorf("Events = %v", def.Events)
	}
	if def.Table != "employees" {
		t.Errorf("Table = %q", def.Table)
	}
	if !def.PerRow {
		t.Errorf("PerRow = false")
	}
	if def.Body != ":NEW.updated_at := SYSDATE;" {
		t.Errorf("Body = %q", def.Body)
	}
}

func TestParseTriggerInsteadOf(t *testing.T) {
	sql := `CREATE TRIGGER trg_view INSTEAD OF INSERT ON v_emp FOR EACH ROW BEGIN INSERT INTO emp VALUES (:NEW.id); END;`
	def, ok := parseTrigger(sql)
	if !ok {
		t.Fatalf("parseTrigger failed")
	}
	if def.Timing != "INSTEAD OF" {
		t.Errorf("Timing = %q", def.Timing)
	}
	if len(def.Events) != 1 || def.Events[0] != "INSERT" {
		t.Errorf("Events = %v", def.Events)
	}
}

func TestParseTriggerWhenClause(t *testing.T) {
	sql := `CREATE TRIGGER trg_big AFTER UPDATE ON orders FOR EACH ROW WHEN (NEW.total > 1000) BEGIN INSERT INTO audit VALUES (1); END;`
	def, ok := parseTrigger(sql)
	if !ok {
		t.Fatalf("parseTrigger failed")
	}
	if def.When != "NEW.total > 1000" {
		t.Errorf("When = %q", def.When)
	}
}

func TestParseTriggerRejectsMalformed(t *testing.T) {
	if _, ok := parseTrigger("CREATE TRIGGER broken ON t"); ok {
		t.Errorf("malformed trigger accepted")
	}
}

func TestParseProcedure(t *testing.T) {
	sql := `CREATE OR REPLACE PROCEDURE raise_salary(p_id IN NUMBER, p_pct IN NUMBER) AS
BEGIN
  UPDATE emp SET sal = sal * (1 + p_pct / 100) WHERE id = p_id;
END;`
	def, ok := parseProcedure(sql)
	if !ok {
		t.Fatalf("parseProcedure failed")
	}
	if def.Name != "raise_salary" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.IsFunction {
		t.Errorf("IsFunction = true for a procedure")
	}
	if def.Params != "p_id IN NUMBER, p_pct IN NUMBER" {
		t.Errorf("Params = %q", def.Params)
	}
	if def.Body != "UPDATE emp SET sal = sal * (1 + p_pct / 100) WHERE id = p_id;" {
		t.Errorf("Body = %q", def.Body)
	}
}

func TestParseFunction(t *testing.T) {
	sql := `CREATE FUNCTION get_bonus(p_id NUMBER) RETURN NUMBER IS
BEGIN
  RETURN 100;
END;`
	def, ok := parseProcedure(sql)
	if !ok {
		t.Fatalf("parseProcedure failed")
	}
	if !def.IsFunction {
		t.Errorf("IsFunction = false")
	}
	if def.Returns != "NUMBER" {
		t.Errorf("Returns = %q", def.Returns)
	}
	if def.Body != "RETURN 100;" {
		t.Errorf("Body = %q", def.Body)
	}
}

func TestParseProcedureWithDeclarations(t *testing.T) {
	sql := `CREATE PROCEDURE count_rows AS
  v_count NUMBER;
BEGIN
  SELECT COUNT(*) INTO v_count FROM emp;
END;`
	def, ok := parseProcedure(sql)
	if !ok {
		t.Fatalf("parseProcedure failed")
	}
	if def.Body != "DECLARE\nv_count NUMBER;\nSELECT COUNT(*) INTO v_count FROM emp;" {
		t.Errorf("Body = %q", def.Body)
	}
}

func TestParseMaterializedView(t *testing.T) {
	sql := `CREATE MATERIALIZED VIEW mv_sales
REFRESH COMPLETE NEXT SYSDATE + 1 AS
SELECT region, SUM(amount) FROM sales GROUP BY region;`
	def, ok := parseMaterializedView(sql)
	if !ok {
		t.Fatalf("parseMaterializedView failed")
	}
	if def.Name != "mv_sales" {
		t.Errorf("Name = %q", def.Name)
	}
	if def.RefreshMode != "COMPLETE" {
		t.Errorf("RefreshMode = %q", def.RefreshMode)
	}
	if def.RefreshInterval != "SYSDATE + 1" {
		t.Errorf("RefreshInterval = %q", def.RefreshInterval)
	}
	if def.Query != "SELECT region, SUM(amount) FROM sales GROUP BY region" {
		t.Errorf("Query = %q", def.Query)
	}
}

func TestParseMaterializedViewNoQuery(t *testing.T) {
	if _, ok := parseMaterializedView("CREATE MATERIALIZED VIEW mv_x"); ok {
		t.Errorf("materialized view without a query accepted")
	}
}

func TestParseCommentOn(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want commentOnDef
		ok   bool
	}{
		{
			"table comment",
			"COMMENT ON TABLE employees IS 'staff records'",
			commentOnDef{Kind: "TABLE", Target: "employees", Comment: "'staff records'"},
			true,
		},
		{
			"column comment",
			"COMMENT ON COLUMN employees.name IS 'full name'",
			commentOnDef{Kind: "COLUMN", Target: "employees.name", Comment: "'full name'"},
			true,
		},
		{
			"doubled quotes kept",
			"COMMENT ON TABLE t IS 'it''s here'",
			commentOnDef{Kind: "TABLE", Target: "t", Comment: "'it''s here'"},
			true,
		},
		{
			"not a comment statement",
			"SELECT 1",
			commentOnDef{},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCommentOn(tt.sql)
			if ok != tt.ok {
				t.Fatalf("parseCommentOn(%q) ok = %v, want %v", tt.sql, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseCommentOn(%q) = %+v, want %+v", tt.sql, got, tt.want)
			}
		})
	}
}

func TestTrimBlockEnd(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain end", "x := 1;\nEND", "x := 1;"},
		{"named end", "x := 1;\nEND trg_audit", "x := 1;"},
		{"end with semicolon", "x := 1;\nEND;", "x := 1;"},
		{"end inside identifier kept", "v_suspend := 1;", "v_suspend := 1;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trimBlockEnd(tt.body)
			if got != tt.want {
				t.Errorf("trimBlockEnd(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
