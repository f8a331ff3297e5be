package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestShowTable(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	var buf bytes.Buffer
	ShowTable(&buf, "users", []string{"user_id", "name", "score"}, [][]interface{}{
		{int64(1), "Alice", 9.5},
		{int64(2), "Bob", nil},
	})

	out := buf.String()
	for _, want := range []string{"users", "user_id", "name", "Alice", "9.5", "NULL", "(2 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowTableEmpty(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	var buf bytes.Buffer
	ShowTable(&buf, "empty", []string{"a"}, nil)

	if !strings.Contains(buf.String(), "(0 rows)") {
		t.Errorf("expected row count footer, got:\n%s", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, "NULL"},
		{[]byte("raw"), "raw"},
		{3.0, "3"},
		{int64(7), "7"},
		{"text", "text"},
	}
	for _, c := range cases {
		if got := formatValue(c.in); got != c.want {
			t.Errorf("formatValue(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
