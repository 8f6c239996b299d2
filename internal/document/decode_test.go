package document

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PreservesOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"name":"fony-package","version":"1.0.0","dependencies":{"zeta":"1","alpha":"2"}}`))
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"name", "version", "dependencies"}, doc.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	deps, ok := doc.GetIn("dependencies")
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha"}, deps.(*Document).Keys())
}

func TestParse_ValueTypes(t *testing.T) {
	doc, err := Parse([]byte(`{
		"s": "text",
		"n": 1.50,
		"i": -3,
		"e": 1e10,
		"t": true,
		"f": false,
		"z": null,
		"a": [1, "two", {"three": 3}, []],
		"o": {}
	}`))
	require.NoError(t, err)

	s, _ := doc.Get("s")
	assert.Equal(t, "text", s)

	n, _ := doc.Get("n")
	assert.Equal(t, json.Number("1.50"), n)

	i, _ := doc.Get("i")
	assert.Equal(t, json.Number("-3"), i)

	e, _ := doc.Get("e")
	assert.Equal(t, json.Number("1e10"), e)

	tv, _ := doc.Get("t")
	assert.Equal(t, true, tv)

	fv, _ := doc.Get("f")
	assert.Equal(t, false, fv)

	z, ok := doc.Get("z")
	assert.True(t, ok)
	assert.Nil(t, z)

	a, _ := doc.Get("a")
	arr, ok := a.([]any)
	require.True(t, ok)
	require.Len(t, arr, 4)
	assert.Equal(t, json.Number("1"), arr[0])
	assert.Equal(t, "two", arr[1])
	assert.IsType(t, &Document{}, arr[2])
	assert.Equal(t, []any{}, arr[3])

	o, _ := doc.Get("o")
	assert.Equal(t, 0, o.(*Document).Len())
}

func TestParse_DuplicateKeys(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, doc.Keys())
	a, _ := doc.Get("a")
	assert.Equal(t, json.Number("3"), a)
}

func TestParse_Escapes(t *testing.T) {
	doc, err := Parse([]byte(`{"kéy":"line\nbreak \"quoted\" ☃"}`))
	require.NoError(t, err)

	v, ok := doc.Get("kéy")
	require.True(t, ok)
	assert.Equal(t, "line\nbreak \"quoted\" ☃", v)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{"empty", "", io.ErrUnexpectedEOF},
		{"whitespace", "  \n ", io.ErrUnexpectedEOF},
		{"array root", `["a"]`, ErrNotObject},
		{"string root", `"name"`, ErrNotObject},
		{"number root", `42`, ErrNotObject},
		{"null root", `null`, ErrNotObject},
		{"second object", `{}{}`, ErrTrailingData},
		{"truncated", `{"name":`, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	inputs := map[string]string{
		"missing comma":  `{"a":1 "b":2}`,
		"trailing comma": `{"a":1,}`,
		"single quotes":  `{'a':1}`,
		"garbage after":  `{} x`,
		"unquoted key":   `{a:1}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			require.Error(t, err)
			var syntaxErr *json.SyntaxError
			assert.True(t, errors.As(err, &syntaxErr), "expected *json.SyntaxError, got %T: %v", err, err)
		})
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue([]byte(`"^1.0.0"`))
	require.NoError(t, err)
	assert.Equal(t, "^1.0.0", v)

	v, err = ParseValue([]byte(`[true, null]`))
	require.NoError(t, err)
	assert.Equal(t, []any{true, nil}, v)

	_, err = ParseValue([]byte(`1 2`))
	assert.ErrorIs(t, err, ErrTrailingData)
}
