package sqlshift

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "SELECT  a,\t\tb   FROM t", "SELECT a, b FROM t"},
		{"literal spacing kept", "SELECT  'a  b'  FROM t", "SELECT 'a  b' FROM t"},
		{"tab inside literal kept", "SELECT 'a\tb'   FROM t", "SELECT 'a\tb' FROM t"},
		{"doubled quote literal", "SELECT 'it''s  fine'  FROM t", "SELECT 'it''s  fine' FROM t"},
		{"backslash escape kept", "SELECT 'a\\'  b'  FROM t", "SELECT 'a\\'  b' FROM t"},
		{"line breaks kept", "SELECT a  \nFROM   t", "SELECT a\nFROM t"},
		{"leading space dropped", "   SELECT 1", "SELECT 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeWhitespace(tc.in); got != tc.want {
				t.Errorf("normalizeWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
