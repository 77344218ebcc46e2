package sqlshift

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSameDialectIdentity(t *testing.T) {
	e := NewEngine()
	sql := "SELECT IFNULL(a, 0) FROM t LIMIT 10;\nSELECT 2;"
	res := e.Convert(sql, MySQL, MySQL, nil)
	require.NotNil(t, res)
	assert.True(t, res.Success)
	assert.Equal(t, sql, res.ConvertedSQL)
	assert.Empty(t, res.Warnings)
}

func TestConvertSelectMySQLToOracle(t *testing.T) {
	e := NewEngine()
	res := e.Convert("SELECT IFNULL(name, 'x') FROM users LIMIT 10", MySQL, Oracle, nil)
	require.True(t, res.Success)
	assert.Equal(t, "SELECT NVL(name, 'x') FROM users FETCH FIRST 10 ROWS ONLY;", res.ConvertedSQL)
	assert.Contains(t, res.AppliedRules, "function:IFNULL->NVL")
}

func TestConvertExpressionSelectGainsDual(t *testing.T) {
	e := NewEngine()
	res := e.Convert("SELECT NOW()", MySQL, Oracle, nil)
	require.True(t, res.Success)
	assert.Equal(t, "SELECT SYSDATE FROM DUAL;", res.ConvertedSQL)
}

func TestConvertBatchIsolation(t *testing.T) {
	e := NewEngine()
	res := e.Convert("SELECT 1; CREATE GARBAGE NONSENSE; SELECT 2;", MySQL, PostgreSQL, nil)
	require.NotNil(t, res)
	assert.False(t, res.Success, "a failed statement must fail the batch")
	assert.Contains(t, res.ConvertedSQL, "SELECT 1;")
	assert.Contains(t, res.ConvertedSQL, "SELECT 2;")
	assert.Contains(t, res.ConvertedSQL, failedMarker)
	assert.Contains(t, res.ConvertedSQL, "CREATE GARBAGE NONSENSE",
		"original text must survive behind the marker")
	assert.True(t, res.HasErrors())
}

func TestConvertFallbackOnUnparsableSelect(t *testing.T) {
	e := NewEngine()
	// The (+) outer-join notation is rejected by the structured parser, so
	// the statement must travel the pattern-based path instead of failing.
	sql := "SELECT e.name FROM emp e, dept d WHERE e.deptno = d.deptno (+) AND ROWNUM <= 5"
	res := e.Convert(sql, Oracle, PostgreSQL, nil)
	require.True(t, res.Success)
	assert.Contains(t, res.ConvertedSQL, "LIMIT 5")
	assert.NotContains(t, res.ConvertedSQL, "ROWNUM")

	found := false
	for _, w := range res.Warnings {
		if w.Severity == SeverityInfo && strings.Contains(w.Message, "structured conversion unavailable") {
			found = true
		}
	}
	assert.True(t, found, "fallback use must be reported: %v", res.Warnings)
}

func TestConvertCustomMappingPrecedence(t *testing.T) {
	e := NewEngine()
	opts := DefaultOptions()
	opts.CustomMappings = map[string]string{"IFNULL": "COALESCE"}
	res := e.Convert("SELECT IFNULL(a, 0) FROM t", MySQL, Oracle, opts)
	require.True(t, res.Success)
	assert.Equal(t, "SELECT COALESCE(a, 0) FROM t;", res.ConvertedSQL)
	assert.Contains(t, res.AppliedRules, "custom-function:IFNULL->COALESCE")
	assert.NotContains(t, res.AppliedRules, "function:IFNULL->NVL")
}

func TestConvertWithFunctionRules(t *testing.T) {
	e := NewEngine(WithFunctionRules([]FunctionMappingRule{
		{Source: MySQL, Target: PostgreSQL, SourceFunction: "FOO", TargetFunction: "BAR"},
		{Source: MySQL, Target: Oracle, SourceFunction: "NOW", TargetFunction: "CURRENT_TIMESTAMP"},
	}))

	res := e.Convert("SELECT FOO(1) FROM t", MySQL, PostgreSQL, nil)
	require.True(t, res.Success)
	assert.Equal(t, "SELECT BAR(1) FROM t;", res.ConvertedSQL)

	// The NOW rule collides with a built-in and must replace it.
	res = e.Convert("SELECT NOW()", MySQL, Oracle, nil)
	require.True(t, res.Success)
	assert.Equal(t, "SELECT CURRENT_TIMESTAMP FROM DUAL;", res.ConvertedSQL)
}

func TestConvertSuppressedWarnings(t *testing.T) {
	e := NewEngine()
	opts := DefaultOptions()
	opts.IncludeWarnings = false
	res := e.Convert("SELECT DATE_FORMAT(created_at, '%Y-%m-%d') FROM t", MySQL, Oracle, opts)
	require.True(t, res.Success)
	assert.Contains(t, res.ConvertedSQL, "TO_CHAR")
	assert.Nil(t, res.Warnings)
	assert.NotEmpty(t, res.AppliedRules, "applied rules are kept even without warnings")
}

func TestConvertComplexityLimit(t *testing.T) {
	e := NewEngine()
	opts := DefaultOptions()
	opts.MaxComplexityScore = 1
	sql := "SELECT a FROM t1 JOIN t2 ON t1.id = t2.id"
	res := e.Convert(sql, MySQL, PostgreSQL, opts)
	assert.False(t, res.Success)
	assert.Contains(t, res.ConvertedSQL, failedMarker)
	assert.Contains(t, res.ConvertedSQL, sql)

	w := findWarning(res.Warnings, "complexity")
	require.NotNil(t, w, "complexity rejection must be explained: %v", res.Warnings)
	assert.Equal(t, SeverityWarning, w.Severity,
		"a budget rejection is advisory unless strict mode asks for errors")

	opts.StrictMode = true
	res = e.Convert(sql, MySQL, PostgreSQL, opts)
	w = findWarning(res.Warnings, "complexity")
	require.NotNil(t, w)
	assert.Equal(t, SeverityError, w.Severity)
}

func findWarning(warnings []ConversionWarning, substr string) *ConversionWarning {
	for i := range warnings {
		if strings.Contains(warnings[i].Message, substr) {
			return &warnings[i]
		}
	}
	return nil
}

func TestConvertInvalidDialect(t *testing.T) {
	e := NewEngine()
	res := e.Convert("SELECT 1", Dialect("sybase"), MySQL, nil)
	assert.False(t, res.Success)
	assert.Equal(t, "SELECT 1", res.ConvertedSQL, "failed requests echo the input")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, SeverityError, res.Warnings[0].Severity)
	assert.Contains(t, res.Warnings[0].Message, "unsupported source dialect")
}

func TestConvertFormatOutputKeepsLiteralContents(t *testing.T) {
	e := NewEngine()
	opts := DefaultOptions()
	opts.FormatOutput = true
	res := e.Convert("SELECT   'a  b'   FROM t", MySQL, PostgreSQL, opts)
	require.True(t, res.Success)
	assert.Equal(t, "SELECT 'a  b' FROM t;", res.ConvertedSQL,
		"formatting must collapse whitespace around a literal, never inside it")
}

func TestConvertEmptyInput(t *testing.T) {
	e := NewEngine()
	res := e.Convert("  \n\t ", MySQL, PostgreSQL, nil)
	assert.True(t, res.Success)
	assert.Empty(t, res.ConvertedSQL)
}

func TestConvertCreateTableMySQLToOracle(t *testing.T) {
	e := NewEngine()
	sql := "CREATE TABLE users (id INT NOT NULL AUTO_INCREMENT, name VARCHAR(100), PRIMARY KEY (id))"
	res := e.Convert(sql, MySQL, Oracle, nil)
	require.True(t, res.Success, "warnings: %v", res.Warnings)
	assert.Contains(t, res.ConvertedSQL, "NUMBER(10)")
	assert.Contains(t, res.ConvertedSQL, "GENERATED BY DEFAULT AS IDENTITY")
	assert.Contains(t, res.ConvertedSQL, "VARCHAR2(100 CHAR)")
	assert.Contains(t, res.ConvertedSQL, "TABLESPACE")
	assert.Contains(t, res.ConvertedSQL, `"PK_USERS"`, "primary key is emitted separately by default")
}

func TestConvertCommentOnToMySQL(t *testing.T) {
	e := NewEngine()
	res := e.Convert("COMMENT ON TABLE users IS 'app users'", Oracle, MySQL, nil)
	require.True(t, res.Success)
	assert.Equal(t, "ALTER TABLE `users` COMMENT = 'app users';", res.ConvertedSQL)
}

func TestConvertMetadataStamped(t *testing.T) {
	e := NewEngine()
	res := e.Convert("SELECT a FROM t WHERE b IN (SELECT b FROM u)", MySQL, PostgreSQL, nil)
	require.NotNil(t, res.Metadata)
	assert.Equal(t, MySQL, res.Metadata.SourceDialect)
	assert.Equal(t, PostgreSQL, res.Metadata.TargetDialect)
	assert.Equal(t, 1, res.Metadata.SubqueryCount)
	assert.Positive(t, res.Metadata.ComplexityScore)
}

type captureMetrics struct {
	requests  int
	successes int
	errors    int
	elapsed   time.Duration
}

func (m *captureMetrics) RecordRequest(_, _ Dialect) { m.requests++ }
func (m *captureMetrics) RecordSuccess(_, _ Dialect) { m.successes++ }
func (m *captureMetrics) RecordError(_, _ Dialect)   { m.errors++ }
func (m *captureMetrics) RecordDuration(_, _ Dialect, elapsed time.Duration) {
	m.elapsed = elapsed
}

func TestConvertRecordsMetrics(t *testing.T) {
	rec := &captureMetrics{}
	e := NewEngine(WithMetrics(rec))

	res := e.Convert("SELECT 1 FROM t; SELECT 2 FROM t;", MySQL, PostgreSQL, nil)
	require.True(t, res.Success)
	assert.Equal(t, 1, rec.requests)
	assert.Equal(t, 1, rec.successes)
	assert.Zero(t, rec.errors)

	res = e.Convert("CREATE GARBAGE NONSENSE", MySQL, PostgreSQL, nil)
	require.False(t, res.Success)
	assert.Equal(t, 2, rec.requests)
	assert.Equal(t, 1, rec.successes)
	assert.Equal(t, 1, rec.errors)
}

type panickyMetrics struct{}

func (panickyMetrics) RecordRequest(Dialect, Dialect)                 { panic("recorder") }
func (panickyMetrics) RecordSuccess(Dialect, Dialect)                 { panic("recorder") }
func (panickyMetrics) RecordError(Dialect, Dialect)                   { panic("recorder") }
func (panickyMetrics) RecordDuration(Dialect, Dialect, time.Duration) { panic("recorder") }

func TestConvertSurvivesPanickingRecorder(t *testing.T) {
	e := NewEngine(WithMetrics(panickyMetrics{}))
	res := e.Convert("SELECT 1 FROM t", MySQL, PostgreSQL, nil)
	assert.True(t, res.Success)
	assert.Equal(t, "SELECT 1 FROM t;", res.ConvertedSQL)
}

func TestConvertConcurrentUse(t *testing.T) {
	e := NewEngine()
	done := make(chan *ConversionResult, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- e.Convert("SELECT IFNULL(a, 0) FROM t LIMIT 3", MySQL, Oracle, nil)
		}()
	}
	for i := 0; i < 8; i++ {
		res := <-done
		require.True(t, res.Success)
		assert.Equal(t, "SELECT NVL(a, 0) FROM t FETCH FIRST 3 ROWS ONLY;", res.ConvertedSQL)
	}
}
