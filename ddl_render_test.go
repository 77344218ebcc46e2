package sqlshift

import (
	"strings"
	"testing"
)

func TestMySQLSequenceEmulation(t *testing.T) {
	state := newConversionState()
	got := mysqlRenderer{}.Sequence(SequenceDef{Name: "seq_orders", Start: 100, Increment: 5}, DefaultOptions(), state)

	if !strings.Contains(got, "CREATE TABLE `seq_orders` (next_val BIGINT NOT NULL)") {
		t.Errorf("missing counter table: %q", got)
	}
	if !strings.Contains(got, "INSERT INTO `seq_orders` VALUES (100)") {
		t.Errorf("missing seed row: %q", got)
	}
	if !strings.Contains(got, "LAST_INSERT_ID(next_val + 5)") {
		t.Errorf("missing access pattern: %q", got)
	}
	if !state.seen["sequence-emulation"] {
		t.Errorf("sequence-emulation rule not recorded: %v", state.rules)
	}
}

func TestMySQLSequenceSkipped(t *testing.T) {
	opts := DefaultOptions()
	opts.SkipUnsupportedFeatures = true
	state := newConversionState()
	got := mysqlRenderer{}.Sequence(SequenceDef{Name: "s", Start: 1, Increment: 1}, opts, state)
	if got != "" {
		t.Errorf("skipped sequence produced output: %q", got)
	}
	if len(state.warnings) == 0 || state.warnings[0].Severity != SeverityError {
		t.Errorf("expected ERROR warning, got %v", state.warnings)
	}
}

func TestMySQLTriggerSplitPerEvent(t *testing.T) {
	state := newConversionState()
	def := TriggerDef{
		Name: "trg_audit", Table: "emp", Timing: "BEFORE",
		Events: []string{"INSERT", "UPDATE"}, PerRow: true,
		Body: "SET NEW.updated_at = NOW();",
	}
	got := mysqlRenderer{}.Trigger(def, DefaultOptions(), state)

	if !strings.Contains(got, "CREATE TRIGGER `trg_audit_insert` BEFORE INSERT ON `emp`") {
		t.Errorf("missing insert trigger: %q", got)
	}
	if !strings.Contains(got, "CREATE TRIGGER `trg_audit_update` BEFORE UPDATE ON `emp`") {
		t.Errorf("missing update trigger: %q", got)
	}
	if !state.seen["trigger-split-per-event"] {
		t.Errorf("trigger-split-per-event rule not recorded: %v", state.rules)
	}
}

func TestMySQLTriggerSingleEventKeepsName(t *testing.T) {
	state := newConversionState()
	def := TriggerDef{Name: "trg_one", Table: "t", Timing: "AFTER", Events: []string{"DELETE"}, PerRow: true, Body: "SET @x = 1;"}
	got := mysqlRenderer{}.Trigger(def, DefaultOptions(), state)
	if !strings.Contains(got, "CREATE TRIGGER `trg_one` AFTER DELETE ON `t`") {
		t.Errorf("single-event trigger renamed: %q", got)
	}
}

func TestMySQLInsteadOfTriggerRefused(t *testing.T) {
	state := newConversionState()
	def := TriggerDef{Name: "trg_v", Table: "v", Timing: "INSTEAD OF", Events: []string{"INSERT"}, Body: "x"}
	got := mysqlRenderer{}.Trigger(def, DefaultOptions(), state)
	if got != "" {
		t.Errorf("INSTEAD OF trigger produced output: %q", got)
	}
	if len(state.warnings) == 0 || state.warnings[0].Severity != SeverityError {
		t.Errorf("expected ERROR warning, got %v", state.warnings)
	}
}

func TestMySQLMaterializedViewSnapshot(t *testing.T) {
	state := newConversionState()
	def := MaterializedViewDef{Name: "mv_sales", Query: "SELECT region FROM sales"}
	got := mysqlRenderer{}.MaterializedView(def, DefaultOptions(), state)
	if got != "CREATE TABLE `mv_sales` AS SELECT region FROM sales" {
		t.Errorf("MaterializedView = %q", got)
	}
	if !state.seen["materialized-view-emulation"] {
		t.Errorf("materialized-view-emulation rule not recorded: %v", state.rules)
	}
}

func TestPostgresTriggerWrapsFunction(t *testing.T) {
	state := newConversionState()
	def := TriggerDef{
		Name: "trg_audit", Table: "emp", Timing: "BEFORE",
		Events: []string{"INSERT", "UPDATE"}, PerRow: true,
		Body: "NEW.updated_at := now();",
	}
	got := postgresRenderer{}.Trigger(def, DefaultOptions(), state)

	if !strings.Contains(got, `CREATE OR REPLACE FUNCTION "trg_audit_fn"() RETURNS trigger`) {
		t.Errorf("missing trigger function: %q", got)
	}
	if !strings.Contains(got, `CREATE TRIGGER "trg_audit" BEFORE INSERT OR UPDATE ON "emp" FOR EACH ROW`) {
		t.Errorf("missing trigger statement: %q", got)
	}
	if !strings.Contains(got, `EXECUTE FUNCTION "trg_audit_fn"()`) {
		t.Errorf("missing EXECUTE FUNCTION: %q", got)
	}
}

func TestPostgresSequence(t *testing.T) {
	min, max := int64(1), int64(5000)
	state := newConversionState()
	def := SequenceDef{Name: "seq_x", Start: 10, Increment: 2, MinValue: &min, MaxValue: &max, Cache: 20, Cycle: true}
	got := postgresRenderer{}.Sequence(def, DefaultOptions(), state)
	want := `CREATE SEQUENCE "seq_x" START WITH 10 INCREMENT BY 2 MINVALUE 1 MAXVALUE 5000 CACHE 20 CYCLE`
	if got != want {
		t.Errorf("Sequence = %q, want %q", got, want)
	}
}

func TestTranslatePartitionBound(t *testing.T) {
	tests := []struct {
		name   string
		ptype  string
		values string
		want   string
	}{
		{"range less than", "RANGE", "LESS THAN (100)", "FROM (MINVALUE) TO (100)"},
		{"list in", "LIST", "IN ('a', 'b')", "IN ('a', 'b')"},
		{"list bare values", "LIST", "'x', 'y'", "IN ('x', 'y')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translatePartitionBound(tt.ptype, tt.values)
			if got != tt.want {
				t.Errorf("translatePartitionBound(%q, %q) = %q, want %q", tt.ptype, tt.values, got, tt.want)
			}
		})
	}
}

func TestOracleSeparatePrimaryKey(t *testing.T) {
	state := newConversionState()
	def := UniqueConstraintDef{Table: "emp", Columns: []string{"id"}, Primary: true}
	got := oracleRenderer{dialect: Oracle}.UniqueConstraint(def, DefaultOptions(), state)

	if !strings.Contains(got, `CREATE UNIQUE INDEX "PK_EMP" ON "APP_OWNER"."emp" ("id") TABLESPACE INDX`) {
		t.Errorf("missing unique index: %q", got)
	}
	if !strings.Contains(got, `ADD CONSTRAINT "PK_EMP" PRIMARY KEY ("id") USING INDEX "PK_EMP"`) {
		t.Errorf("missing constraint: %q", got)
	}
	if !state.seen["separate-primary-key"] {
		t.Errorf("separate-primary-key rule not recorded: %v", state.rules)
	}
}

func TestOracleInlinePrimaryKeyWhenDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.SeparatePrimaryKey = false
	state := newConversionState()
	def := UniqueConstraintDef{Table: "emp", Columns: []string{"id"}, Primary: true}
	got := oracleRenderer{dialect: Oracle}.UniqueConstraint(def, opts, state)
	if !strings.Contains(got, "PRIMARY KEY") || strings.Contains(got, "CREATE UNIQUE INDEX") {
		t.Errorf("expected a single ALTER TABLE constraint: %q", got)
	}
}

func TestOracleForeignKeyDropsOnUpdate(t *testing.T) {
	state := newConversionState()
	def := ForeignKeyDef{
		Name: "fk_emp_dept", Table: "emp", Columns: []string{"dept_id"},
		RefTable: "dept", RefColumns: []string{"id"},
		UpdateRule: "CASCADE", DeleteRule: "CASCADE",
	}
	got := oracleRenderer{dialect: Oracle}.ForeignKey(def, DefaultOptions(), state)

	if strings.Contains(got, "ON UPDATE") {
		t.Errorf("ON UPDATE survived: %q", got)
	}
	if !strings.Contains(got, "ON DELETE CASCADE") {
		t.Errorf("ON DELETE missing: %q", got)
	}
	found := false
	for _, w := range state.warnings {
		if w.Kind == WarnPartialSupport && strings.Contains(w.Message, "ON UPDATE") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ON UPDATE warning, got %v", state.warnings)
	}
}

func TestOracleSequenceNocacheDefault(t *testing.T) {
	state := newConversionState()
	got := oracleRenderer{dialect: Oracle}.Sequence(SequenceDef{Name: "s", Start: 1, Increment: 1}, DefaultOptions(), state)
	if !strings.Contains(got, "NOCACHE") {
		t.Errorf("expected NOCACHE for uncached sequence: %q", got)
	}
}

func TestRendererFor(t *testing.T) {
	if _, ok := rendererFor(MySQL).(mysqlRenderer); !ok {
		t.Errorf("rendererFor(MySQL) wrong type")
	}
	if _, ok := rendererFor(PostgreSQL).(postgresRenderer); !ok {
		t.Errorf("rendererFor(PostgreSQL) wrong type")
	}
	if r, ok := rendererFor(Tibero).(oracleRenderer); !ok || r.dialect != Tibero {
		t.Errorf("rendererFor(Tibero) = %+v", rendererFor(Tibero))
	}
}
