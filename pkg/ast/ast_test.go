package ast

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/praetorian-inc/loosejson/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v int64) *NumberNode {
	return &NumberNode{Raw: strconv.FormatInt(v, 10), Value: IntNumber(v)}
}

func str(v string) *StringNode {
	return &StringNode{Raw: `"` + v + `"`, Value: v}
}

func TestNode_Kinds(t *testing.T) {
	nodes := map[Kind]Node{
		KindNull:    &NullNode{Raw: "null"},
		KindBoolean: &BooleanNode{Raw: "true", Value: true},
		KindNumber:  num(1),
		KindString:  str("s"),
		KindArray:   &ArrayNode{Raw: "[]"},
		KindObject:  &ObjectNode{Raw: "{}"},
	}
	for kind, n := range nodes {
		assert.Equal(t, kind, n.Kind())
	}
}

func TestNode_SourceAccessors(t *testing.T) {
	span := types.NewSpan(types.StartPosition(), types.StartPosition().AddColumns(4))
	n := &NullNode{Span: span, Raw: "null"}
	assert.Equal(t, span, n.SourceSpan())
	assert.Equal(t, "null", n.SourceText())
}

func TestObjectNode_Set(t *testing.T) {
	obj := &ObjectNode{}
	obj.Set("b", num(1))
	obj.Set("a", num(2))
	obj.Set("b", num(3))

	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, []string{"b", "a"}, obj.Keys)

	v, ok := obj.Get("b")
	require.True(t, ok)
	assert.Equal(t, IntNumber(3), v.(*NumberNode).Value)

	_, ok = obj.Get("missing")
	assert.False(t, ok)
}

func TestParseNumber(t *testing.T) {
	n, err := ParseNumber("42")
	require.NoError(t, err)
	assert.True(t, n.IsInt())
	assert.Equal(t, int64(42), n.Int)
	assert.Equal(t, int64(42), n.Value())
	assert.Equal(t, "42", n.String())

	n, err = ParseNumber("2.50")
	require.NoError(t, err)
	assert.False(t, n.IsInt())
	assert.Equal(t, 2.5, n.Float)
	assert.Equal(t, 2.5, n.Float64())
	assert.Equal(t, "2.5", n.String())

	n, err = ParseNumber("9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), n.Int)
}

func TestParseNumber_OutOfRange(t *testing.T) {
	_, err := ParseNumber("9223372036854775808")
	require.Error(t, err)
	assert.True(t, errors.Is(err, strconv.ErrRange))

	_, err = ParseNumber("1" + strings.Repeat("0", 400) + ".0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, strconv.ErrRange))
}

func TestEqual(t *testing.T) {
	a := &ObjectNode{}
	a.Set("x", &ArrayNode{Elements: []Node{num(1), str("two"), &NullNode{}}})
	a.Set("y", &BooleanNode{Value: true})

	b := &ObjectNode{}
	b.Set("y", &BooleanNode{Raw: "true", Value: true, Span: types.EmptySpan()})
	b.Set("x", &ArrayNode{Raw: "[1,'two',null]", Elements: []Node{num(1), str("two"), &NullNode{}}})

	assert.True(t, Equal(a, b), "spans, raw text and key order are ignored")

	c := &ObjectNode{}
	c.Set("x", &ArrayNode{Elements: []Node{num(1), str("three"), &NullNode{}}})
	c.Set("y", &BooleanNode{Value: true})
	assert.False(t, Equal(a, c))

	assert.False(t, Equal(num(1), &NumberNode{Value: FloatNumber(1)}), "int and float differ")
	assert.False(t, Equal(num(1), str("1")))
	assert.False(t, Equal(&ArrayNode{Elements: []Node{num(1)}}, &ArrayNode{}))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(num(1), nil))
}

func TestWalk(t *testing.T) {
	root := &ObjectNode{}
	root.Set("list", &ArrayNode{Elements: []Node{num(1), num(2)}})
	root.Set("name", str("n"))

	var visited []Kind
	Walk(root, func(n Node) bool {
		visited = append(visited, n.Kind())
		return true
	})
	assert.Equal(t, []Kind{KindObject, KindArray, KindNumber, KindNumber, KindString}, visited)
	assert.Equal(t, 5, Count(root))

	// Returning false prunes the subtree.
	visited = nil
	Walk(root, func(n Node) bool {
		visited = append(visited, n.Kind())
		return n.Kind() != KindArray
	})
	assert.Equal(t, []Kind{KindObject, KindArray, KindString}, visited)
}

func TestToValue(t *testing.T) {
	root := &ObjectNode{}
	root.Set("a", &ArrayNode{Elements: []Node{num(1), &NumberNode{Value: FloatNumber(1.5)}, &NullNode{}}})
	root.Set("b", &BooleanNode{Value: false})
	root.Set("c", str("x"))

	assert.Equal(t, map[string]any{
		"a": []any{int64(1), 1.5, nil},
		"b": false,
		"c": "x",
	}, ToValue(root))
}
