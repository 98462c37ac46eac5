package parser

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/praetorian-inc/loosejson/pkg/ast"
	"github.com/praetorian-inc/loosejson/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()
	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

func pos(cursor, line, column int) types.Position {
	return types.Position{Cursor: cursor, Line: line, Column: column}
}

func requireSyntaxError(t *testing.T, err error, found types.TokenKind, expected ...types.TokenKind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnexpectedToken), "got %v", err)

	var synErr *types.SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, found, synErr.Found)
	assert.Equal(t, expected, synErr.Expected)
}

func TestParseValue_Null(t *testing.T) {
	n, err := newParser(t).ParseValue("null")
	require.NoError(t, err)

	null, ok := n.(*ast.NullNode)
	require.True(t, ok)
	assert.Equal(t, "null", null.Raw)
	assert.Equal(t, pos(0, 1, 0), null.Span.Start)
	assert.Equal(t, pos(4, 1, 4), null.Span.End)
}

func TestParseValue_Scalars(t *testing.T) {
	p := newParser(t)

	n, err := p.ParseValue("true")
	require.NoError(t, err)
	assert.Equal(t, true, n.(*ast.BooleanNode).Value)

	n, err = p.ParseValue("false")
	require.NoError(t, err)
	assert.Equal(t, false, n.(*ast.BooleanNode).Value)

	n, err = p.ParseValue("12")
	require.NoError(t, err)
	assert.Equal(t, ast.IntNumber(12), n.(*ast.NumberNode).Value)

	n, err = p.ParseValue("1.25")
	require.NoError(t, err)
	assert.Equal(t, ast.FloatNumber(1.25), n.(*ast.NumberNode).Value)

	n, err = p.ParseValue(`'single'`)
	require.NoError(t, err)
	assert.Equal(t, "single", n.(*ast.StringNode).Value)
	assert.Equal(t, `'single'`, n.(*ast.StringNode).Raw)
}

func TestParse_RootRestriction(t *testing.T) {
	for _, src := range []string{"null", "true", "1", `"s"`} {
		t.Run(src, func(t *testing.T) {
			_, err := newParser(t).Parse(src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrExpectedArrayOrObjectRoot), "got %v", err)
			assert.False(t, errors.Is(err, types.ErrUnexpectedToken))
		})
	}

	_, err := newParser(t).Parse("")
	assert.True(t, errors.Is(err, types.ErrExpectedArrayOrObjectRoot))
}

func TestParse_Document(t *testing.T) {
	src := `{
    "key1": "value",
    "key2": null,
    "key3": false,
    "key4": [
        "value1",
        'value2',
        3.5
    ]
}`
	n, err := newParser(t).Parse(src)
	require.NoError(t, err)

	obj, ok := n.(*ast.ObjectNode)
	require.True(t, ok)
	assert.Equal(t, src, obj.Raw)
	assert.Equal(t, []string{"key1", "key2", "key3", "key4"}, obj.Keys)
	assert.Equal(t, map[string]any{
		"key1": "value",
		"key2": nil,
		"key3": false,
		"key4": []any{"value1", "value2", 3.5},
	}, ast.ToValue(obj))

	arr, ok := obj.Get("key4")
	require.True(t, ok)
	assert.Equal(t, 3, arr.(*ast.ArrayNode).Len())
	assert.Equal(t, 5, arr.SourceSpan().Start.Line)
	assert.Equal(t, 9, arr.SourceSpan().End.Line)
}

func TestParse_EmptyContainers(t *testing.T) {
	n, err := newParser(t).Parse("[]")
	require.NoError(t, err)
	arr := n.(*ast.ArrayNode)
	assert.NotNil(t, arr.Elements)
	assert.Empty(t, arr.Elements)
	assert.Equal(t, "[]", arr.Raw)

	n, err = newParser(t).Parse("{ }")
	require.NoError(t, err)
	obj := n.(*ast.ObjectNode)
	assert.Equal(t, 0, obj.Len())
	assert.Equal(t, "{ }", obj.Raw)
	assert.Equal(t, types.NewSpan(pos(0, 1, 0), pos(3, 1, 3)), obj.Span)
}

func TestParse_TrailingComma(t *testing.T) {
	p := newParser(t)
	for _, src := range []string{"[1,2,3,]", "[1,2,3]"} {
		t.Run(src, func(t *testing.T) {
			n, err := p.Parse(src)
			require.NoError(t, err)

			arr := n.(*ast.ArrayNode)
			require.Len(t, arr.Elements, 3)
			for i, elem := range arr.Elements {
				number, ok := elem.(*ast.NumberNode)
				require.True(t, ok)
				assert.Equal(t, ast.IntNumber(int64(i+1)), number.Value)
			}
		})
	}

	n, err := p.Parse(`{"a": 1,}`)
	require.NoError(t, err)
	assert.Equal(t, 1, n.(*ast.ObjectNode).Len())
}

func TestParse_DuplicateKeyOverwrite(t *testing.T) {
	n, err := newParser(t).Parse(`{"a":1,"a":2}`)
	require.NoError(t, err)

	obj := n.(*ast.ObjectNode)
	assert.Len(t, obj.Members, 1)
	assert.Equal(t, []string{"a"}, obj.Keys)

	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, ast.IntNumber(2), v.(*ast.NumberNode).Value)
	assert.Equal(t, "2", v.SourceText())
}

func TestParse_KeysKeepFirstAppearanceOrder(t *testing.T) {
	n, err := newParser(t).Parse(`{"z": 1, "a": 2, "m": 3, "z": 4}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, n.(*ast.ObjectNode).Keys)
}

func TestParse_CommentTransparency(t *testing.T) {
	withComments, err := newParser(t, WithComments(true)).Parse(`{"k": 1 /* c */ }`)
	require.NoError(t, err)

	plain, err := newParser(t).Parse(`{"k":1}`)
	require.NoError(t, err)

	assert.True(t, ast.Equal(withComments, plain))
}

func TestParse_CommentRejection(t *testing.T) {
	inputs := []string{
		"// c\n[]",
		"[1, // c\n 2]",
		`{"k": /* c */ 1}`,
		"[]/**/",
	}
	p := newParser(t, WithComments(false))
	for _, src := range inputs {
		t.Run(src, func(t *testing.T) {
			_, err := p.Parse(src)
			assert.True(t, errors.Is(err, types.ErrCommentsNotSupported), "got %v", err)
		})
	}
}

func TestConstructors(t *testing.T) {
	with, err := NewWithComments()
	require.NoError(t, err)
	_, err = with.Parse("[1 // c\n]")
	require.NoError(t, err)

	without, err := NewWithoutComments()
	require.NoError(t, err)
	_, err = without.Parse("[1 // c\n]")
	assert.True(t, errors.Is(err, types.ErrCommentsNotSupported))
}

func TestParse_LineTracking(t *testing.T) {
	n, err := newParser(t).Parse("{\n  \"k\"\n  : 1\n}")
	require.NoError(t, err)

	v, ok := n.(*ast.ObjectNode).Get("k")
	require.True(t, ok)
	assert.Equal(t, 3, v.SourceSpan().Start.Line)
	assert.Equal(t, 4, v.SourceSpan().Start.Column)
}

func TestParse_LineTrackingAcrossBlockComments(t *testing.T) {
	src := "{\n  /* one\n     two */ \"k\": [\n    1]\n}"
	n, err := newParser(t, WithComments(true)).Parse(src)
	require.NoError(t, err)

	v, _ := n.(*ast.ObjectNode).Get("k")
	arr := v.(*ast.ArrayNode)
	assert.Equal(t, 3, arr.Span.Start.Line)
	assert.Equal(t, 4, arr.Elements[0].SourceSpan().Start.Line)
	assert.Equal(t, 4, arr.Elements[0].SourceSpan().Start.Column)
}

func TestParse_RawMatchesSpan(t *testing.T) {
	srcs := []string{
		`{"a": [1, 2.5, {"b": null}], 'c' : true , "d":'x'}`,
		"[\n\t{ \"k\" : [ ] },\r\n\tfalse\n]",
		"[/* leading */ 1, // trailing\n 'two' /* after */]",
	}
	p := newParser(t, WithComments(true))

	for _, src := range srcs {
		n, err := p.Parse(src)
		require.NoError(t, err)

		ast.Walk(n, func(node ast.Node) bool {
			span := node.SourceSpan()
			assert.Equal(t, span.Slice(src), node.SourceText(), "node %s at %s", node.Kind(), span)
			assert.GreaterOrEqual(t, span.End.Cursor, span.Start.Cursor)
			assert.True(t, n.SourceSpan().Contains(span))
			return true
		})
	}
}

func TestParse_MissingColon(t *testing.T) {
	_, err := newParser(t).Parse(`{"k" 1}`)
	requireSyntaxError(t, err, types.TokenNumberLiteral, types.TokenColon)
	assert.Contains(t, err.Error(), "found `NumberLiteral`, expected `Colon`")
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		found    types.TokenKind
		expected []types.TokenKind
	}{
		{name: "unterminated array", src: "[1, 2", found: types.TokenEndOfInput, expected: []types.TokenKind{types.TokenComma}},
		{name: "unterminated object", src: `{"a": 1`, found: types.TokenEndOfInput, expected: []types.TokenKind{types.TokenComma}},
		{name: "unterminated after comma", src: "[1,", found: types.TokenEndOfInput, expected: []types.TokenKind{types.TokenClosedSquareBracket}},
		{name: "keyword after number", src: "[1null]", found: types.TokenNullLiteral, expected: []types.TokenKind{types.TokenComma}},
		{name: "boolean after number", src: "[1true]", found: types.TokenBooleanLiteral, expected: []types.TokenKind{types.TokenComma}},
		{name: "boolean after decimal", src: "[2.5false]", found: types.TokenBooleanLiteral, expected: []types.TokenKind{types.TokenComma}},
		{name: "missing comma in array", src: "[1 2]", found: types.TokenNumberLiteral, expected: []types.TokenKind{types.TokenComma}},
		{name: "missing comma in object", src: `{"a": 1 "b": 2}`, found: types.TokenStringLiteral, expected: []types.TokenKind{types.TokenComma}},
		{name: "non string key", src: `{1: 2}`, found: types.TokenNumberLiteral, expected: []types.TokenKind{types.TokenStringLiteral}},
		{name: "mismatched close", src: "[1}", found: types.TokenClosedCurlyBrace, expected: []types.TokenKind{types.TokenComma}},
		{name: "leading comma", src: "[,]", found: types.TokenComma},
		{name: "missing value", src: `{"k":}`, found: types.TokenClosedCurlyBrace},
		{name: "colon in array", src: "[:]", found: types.TokenColon},
		{name: "double comma", src: "[1,,2]", found: types.TokenComma},
		{name: "unterminated nested", src: `{"a": [`, found: types.TokenEndOfInput, expected: []types.TokenKind{types.TokenClosedSquareBracket}},
	}

	p := newParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.src)
			requireSyntaxError(t, err, tt.found, tt.expected...)
			assert.False(t, errors.Is(err, types.ErrInternalInconsistency))
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := newParser(t).Parse("[\n  1\n  2]")
	require.Error(t, err)

	p, ok := types.ErrorPosition(err)
	require.True(t, ok)
	assert.Equal(t, pos(8, 3, 2), p)
	assert.Contains(t, err.Error(), "line 3, col 2")
}

func TestParse_TrailingContentIgnored(t *testing.T) {
	p := newParser(t)

	n, err := p.Parse("[1] {}")
	require.NoError(t, err)
	assert.Equal(t, "[1]", n.SourceText())

	n, err = p.Parse("[1] 2")
	require.NoError(t, err)
	assert.Equal(t, "[1]", n.SourceText())

	n, err = p.ParseValue("null null")
	require.NoError(t, err)
	assert.Equal(t, ast.KindNull, n.Kind())
}

func TestParse_StrictEnd(t *testing.T) {
	p := newParser(t, WithStrictEnd(true))

	_, err := p.Parse("[] []")
	requireSyntaxError(t, err, types.TokenOpenSquareBracket, types.TokenEndOfInput)

	_, err = p.Parse("[1] 2")
	requireSyntaxError(t, err, types.TokenNumberLiteral, types.TokenEndOfInput)
	assert.Contains(t, err.Error(), "line 1, col 4")

	n, err := p.Parse("[1] // done")
	require.Error(t, err, "comments are rejected by default")
	assert.Nil(t, n)

	n, err = newParser(t, WithStrictEnd(true), WithComments(true)).Parse("[1] // done\n")
	require.NoError(t, err)
	assert.Equal(t, "[1]", n.SourceText())
}

func TestParse_MaxDepth(t *testing.T) {
	p := newParser(t, WithMaxDepth(3))

	_, err := p.Parse("[[[1]]]")
	require.NoError(t, err)

	_, err = p.Parse(`[[{"a": []}]]`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMaxDepthExceeded), "got %v", err)
	assert.Equal(t, pos(8, 1, 8), err.(*types.ParseError).Pos)

	_, err = p.ParseValue("[[[[")
	assert.True(t, errors.Is(err, types.ErrMaxDepthExceeded))
}

func TestParse_DeepNestingReportsError(t *testing.T) {
	src := strings.Repeat("[", DefaultMaxDepth+1) + strings.Repeat("]", DefaultMaxDepth+1)
	_, err := newParser(t).Parse(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMaxDepthExceeded))

	src = strings.Repeat("[", DefaultMaxDepth) + strings.Repeat("]", DefaultMaxDepth)
	_, err = newParser(t).Parse(src)
	require.NoError(t, err)
}

func TestParse_TokenizerErrorsSurface(t *testing.T) {
	_, err := newParser(t).Parse("[1, @]")
	assert.True(t, errors.Is(err, types.ErrUnrecognizedToken))

	var lexErr *types.LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, "@]", lexErr.Remainder)
}

func TestParse_NumberOverflow(t *testing.T) {
	_, err := newParser(t).Parse("[9223372036854775808]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNumberOverflow), "got %v", err)
	assert.Equal(t, pos(1, 1, 1), err.(*types.ParseError).Pos)

	n, err := newParser(t).Parse("[9223372036854775807, -0]")
	require.Error(t, err, "negative literals are not part of the grammar")
	assert.Nil(t, n)

	n, err = newParser(t).Parse("[9223372036854775807]")
	require.NoError(t, err)
	assert.Equal(t, ast.IntNumber(9223372036854775807), n.(*ast.ArrayNode).Elements[0].(*ast.NumberNode).Value)
}

func TestParse_Nested(t *testing.T) {
	n, err := newParser(t).Parse(`[[[]], {"a": {"b": [{}]}}]`)
	require.NoError(t, err)
	assert.Equal(t, 7, ast.Count(n))
}

func TestParse_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := newParser(t, WithLogger(zap.New(core)))

	_, err := p.Parse(`{"a": [1, 2]}`)
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterMessage("tokenized").Len())
	parsed := logs.FilterMessage("parsed").All()
	require.Len(t, parsed, 1)
	assert.Equal(t, "object", parsed[0].ContextMap()["root"])
}

func TestParse_ConcurrentCalls(t *testing.T) {
	p := newParser(t, WithComments(true))
	inputs := []string{
		`{"a": [1, 2, 3]}`,
		"[\n  'x', // c\n  null\n]",
		`{"nested": {"deep": [true, false, 1.5]}}`,
	}
	want := make([]ast.Node, len(inputs))
	for i, src := range inputs {
		n, err := p.Parse(src)
		require.NoError(t, err)
		want[i] = n
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for n := 0; n < 64; n++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := p.Parse(inputs[i])
			if err != nil {
				errs <- err
				return
			}
			if !assert.ObjectsAreEqual(want[i], got) {
				errs <- errors.New("tree differs between calls")
			}
		}(n % len(inputs))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestState_PeekOutOfRange(t *testing.T) {
	s := &state{tokens: []types.Token{types.NewToken(types.TokenEndOfInput, "", types.CollapsedSpan(pos(3, 1, 3)))}}

	_, err := s.peek(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInternalInconsistency))
	assert.Equal(t, pos(3, 1, 3), err.(*types.InternalError).Pos)

	tok, err := s.peek(0)
	require.NoError(t, err)
	assert.Equal(t, types.TokenEndOfInput, tok.Kind)
}

func TestState_LayoutTokenIsInternalError(t *testing.T) {
	// The lexer never lets layout through; a stream that carries it anyway
	// is an internal defect, not a syntax error.
	s := &state{
		src: " ",
		tokens: []types.Token{
			types.NewToken(types.TokenWhiteSpace, " ", types.NewSpan(pos(0, 1, 0), pos(1, 1, 1))),
			types.NewToken(types.TokenEndOfInput, "", types.CollapsedSpan(pos(1, 1, 1))),
		},
	}
	_, err := s.parseValue()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInternalInconsistency))
	assert.False(t, errors.Is(err, types.ErrUnexpectedToken))
}

func TestState_ConsumeStaysOnEndOfInput(t *testing.T) {
	s := &state{tokens: []types.Token{types.NewToken(types.TokenEndOfInput, "", types.EmptySpan())}}
	for i := 0; i < 3; i++ {
		_, err := s.consume(types.TokenEndOfInput)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, s.index)
}
