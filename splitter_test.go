package sqlshift

import (
	"reflect"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"two statements", "SELECT 1; SELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"trailing without semicolon", "SELECT 1; SELECT 2", []string{"SELECT 1", "SELECT 2"}},
		{"semicolon inside literal", "INSERT INTO t VALUES ('a;b'); SELECT 1;", []string{"INSERT INTO t VALUES ('a;b')", "SELECT 1"}},
		{"doubled quote inside literal", "SELECT 'it''s;fine'; SELECT 2;", []string{"SELECT 'it''s;fine'", "SELECT 2"}},
		{"backslash escape inside literal", `SELECT 'a\';b'; SELECT 2;`, []string{`SELECT 'a\';b'`, "SELECT 2"}},
		{"semicolon inside quoted identifier", `SELECT "a;b" FROM t;`, []string{`SELECT "a;b" FROM t`}},
		{"empty entries dropped", ";;  ;SELECT 1;;", []string{"SELECT 1"}},
		{"whitespace only", "   \n\t ", nil},
		{"single statement", "SELECT 1", []string{"SELECT 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitStatements(tt.sql)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitStatements(%q) = %v, want %v", tt.sql, got, tt.want)
			}
		})
	}
}

func TestMaskSingleQuoted(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"plain", "SELECT 1", "SELECT 1"},
		{"masks literal body", "SELECT 'abc' FROM t", "SELECT '   ' FROM t"},
		{"doubled quote stays inside", "SELECT 'a''b'", "SELECT ' '  '"},
		{"backslash escape masked", `SELECT 'a\'b'`, `SELECT '    '`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maskSingleQuoted(tt.sql)
			if got != tt.want {
				t.Errorf("maskSingleQuoted(%q) = %q, want %q", tt.sql, got, tt.want)
			}
			if len(got) != len(tt.sql) {
				t.Errorf("maskSingleQuoted(%q) changed length: %d != %d", tt.sql, len(got), len(tt.sql))
			}
		})
	}
}
