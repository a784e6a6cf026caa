package jsast

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		q    byte
		want string
	}{
		{"plain", "abc", '"', `"abc"`},
		{"double quote escaped", `a"b`, '"', `"a\"b"`},
		{"single quote kept in double", `a'b`, '"', `"a'b"`},
		{"single quote escaped", `it's`, '\'', `'it\'s'`},
		{"backslash", `a\b`, '\'', `'a\\b'`},
		{"newline and tab", "a\nb\tc", '"', `"a\nb\tc"`},
		{"control char", "a\x01b", '"', `"a\u0001b"`},
		{"line separator", "a\u2028b", '"', `"a\u2028b"`},
		{"unicode kept", "首页", '\'', `'首页'`},
		{"invalid utf8", "a\xffb", '"', `"a\uFFFDb"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.in, tt.q))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"path", "_x", "$ref", "a1"} {
		assert.True(t, IsIdentifier(s), s)
	}
	for _, s := range []string{"", "1a", "data-id", "a b", "ü"} {
		assert.False(t, IsIdentifier(s), s)
	}
}

func TestPrintImport(t *testing.T) {
	got := Print(Import{Comment: "webpackChunkName", Chunk: "pages", Specifier: "../pages/home/index"})
	assert.Equal(t, `import(/* webpackChunkName: "pages" */'../pages/home/index')`, got)

	got = Print(Import{Specifier: "../pages/it's"})
	assert.Equal(t, `import('../pages/it\'s')`, got)
}

func TestPrintArrow(t *testing.T) {
	assert.Equal(t, "() => []", Print(Arrow{Body: Array{}}))
	assert.Equal(t, "() => ({})", Print(Arrow{Body: Object{}}))

	got := Print(Arrow{Body: Array{
		Import{Comment: "webpackChunkName", Chunk: "models", Specifier: "../pages/home/models/m.js"},
	}})
	want := "() => [\n" +
		"  import(/* webpackChunkName: \"models\" */'../pages/home/models/m.js'),\n" +
		"]"
	assert.Equal(t, want, got)
}

func TestPrintObject(t *testing.T) {
	obj := Object{
		{Key: "path", Value: String("/")},
		{Key: "exact", Value: Bool(true)},
		{Key: "data-id", Value: Number("3")},
		{Key: "meta", Value: Null{}},
		{Key: "routes", Value: Array{Object{{Key: "to", Value: String("/a")}}}},
	}
	want := `{
  path: "/",
  exact: true,
  "data-id": 3,
  meta: null,
  routes: [
    {
      to: "/a",
    },
  ],
}`
	assert.Equal(t, want, Print(obj))
}

func TestStringThatLooksLikeCodeStaysAString(t *testing.T) {
	got := Print(Object{{Key: "title", Value: String(`() => import("x")`)}})
	assert.Equal(t, "{\n  title: \"() => import(\\\"x\\\")\",\n}", got)
}

func TestValueOf(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"string", "x", `"x"`},
		{"bool", false, "false"},
		{"int", 3, "3"},
		{"int64", int64(-4), "-4"},
		{"uint64", uint64(5), "5"},
		{"float", 1.5, "1.5"},
		{"json number", json.Number("12.50"), "12.50"},
		{"time", ts, `"2024-05-01T10:00:00Z"`},
		{"list", []any{"a", 1}, "[\n  \"a\",\n  1,\n]"},
		{"map sorted", map[string]any{"b": 1, "a": true}, "{\n  a: true,\n  b: 1,\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ValueOf(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Print(e))
		})
	}
}

func TestValueOfUnsupported(t *testing.T) {
	_, err := ValueOf(struct{}{})
	assert.Error(t, err)

	_, err = ValueOf(math.Inf(1))
	assert.Error(t, err)

	_, err = ValueOf(map[string]any{"nested": []any{make(chan int)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested: [0]")
}
