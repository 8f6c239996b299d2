package document

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	doc := New()
	require.NotNil(t, doc)
	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, doc.Keys())
}

func TestDocument_ZeroValue(t *testing.T) {
	var doc Document
	doc.Set("name", "zero")

	v, ok := doc.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "zero", v)
}

func TestDocument_NilReceiver(t *testing.T) {
	var doc *Document
	assert.Equal(t, 0, doc.Len())
	assert.Nil(t, doc.Keys())
	assert.False(t, doc.Has("x"))
	assert.False(t, doc.Delete("x"))
	_, ok := doc.Get("x")
	assert.False(t, ok)
	assert.Nil(t, doc.Clone())
}

func TestDocument_SetKeepsInsertionOrder(t *testing.T) {
	doc := New().
		Set("name", "fony-package").
		Set("version", "1.0.0").
		Set("dependencies", New())

	assert.Equal(t, []string{"name", "version", "dependencies"}, doc.Keys())

	// Replacing keeps the original position
	doc.Set("name", "renamed")
	assert.Equal(t, []string{"name", "version", "dependencies"}, doc.Keys())
	v, _ := doc.Get("name")
	assert.Equal(t, "renamed", v)
}

func TestDocument_Delete(t *testing.T) {
	doc := New().Set("a", 1).Set("b", 2).Set("c", 3)

	assert.True(t, doc.Delete("b"))
	assert.False(t, doc.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, doc.Keys())
	assert.False(t, doc.Has("b"))

	doc.Set("b", 4)
	assert.Equal(t, []string{"a", "c", "b"}, doc.Keys())
}

func TestDocument_KeysIsCopy(t *testing.T) {
	doc := New().Set("a", 1)
	keys := doc.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, doc.Keys())
}

func TestDocument_Range(t *testing.T) {
	doc := New().Set("a", "1").Set("b", "2").Set("c", "3")

	var visited []string
	doc.Range(func(key string, value any) bool {
		visited = append(visited, key+"="+value.(string))
		return key != "b"
	})
	assert.Equal(t, []string{"a=1", "b=2"}, visited)
}

func TestDocument_CloneIsDeep(t *testing.T) {
	orig, err := Parse([]byte(`{"deps":{"a":"^1.0.0"},"files":["index.js"]}`))
	require.NoError(t, err)

	clone := orig.Clone()
	require.True(t, orig.Equal(clone))

	deps, _ := clone.Get("deps")
	deps.(*Document).Set("b", "^2.0.0")
	files, _ := clone.Get("files")
	files.([]any)[0] = "main.js"

	origDeps, _ := orig.Get("deps")
	assert.Equal(t, 1, origDeps.(*Document).Len())
	origFiles, _ := orig.Get("files")
	assert.Equal(t, "index.js", origFiles.([]any)[0])
	assert.False(t, orig.Equal(clone))
}

func TestDocument_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a     *Document
		b     *Document
		equal bool
	}{
		{"both empty", New(), New(), true},
		{"nil and empty", nil, New(), true},
		{"same members", New().Set("a", "x"), New().Set("a", "x"), true},
		{"different order", New().Set("a", "x").Set("b", "y"), New().Set("b", "y").Set("a", "x"), false},
		{"different value", New().Set("a", "x"), New().Set("a", "y"), false},
		{"number and int", New().Set("n", json.Number("2")), New().Set("n", 2), true},
		{"number text differs", New().Set("n", json.Number("2.0")), New().Set("n", 2), false},
		{"nested", New().Set("d", New().Set("k", true)), New().Set("d", New().Set("k", true)), true},
		{"nested differs", New().Set("d", New().Set("k", true)), New().Set("d", New().Set("k", false)), false},
		{"arrays", New().Set("l", []any{"a", nil}), New().Set("l", []string{"a"}), false},
		{"string slice", New().Set("l", []any{"a", "b"}), New().Set("l", []string{"a", "b"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
		})
	}
}

func TestDocument_JSONMarshalers(t *testing.T) {
	type wrapper struct {
		Manifest *Document `json:"manifest"`
	}

	in := wrapper{Manifest: New().Set("z", 1).Set("a", 2)}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"manifest":{"z":1,"a":2}}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	if diff := cmp.Diff(in.Manifest, out.Manifest); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_UnmarshalJSONRejectsArray(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`[1,2]`), &doc)
	assert.ErrorIs(t, err, ErrNotObject)
}
