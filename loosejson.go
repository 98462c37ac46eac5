// Package loosejson parses a relaxed superset of JSON.
//
// On top of standard JSON the accepted language allows single-quoted
// strings, trailing commas in arrays and objects, and optionally line
// (//) and block (/* */) comments. Every node of the resulting tree keeps
// the exact source text it was parsed from and its span in the input.
//
// # Basic Usage
//
//	root, err := loosejson.ParseString(`{'name': "titan", 'tags': [1, 2,],}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	obj := root.(*loosejson.ObjectNode)
//	for _, key := range obj.Keys {
//	    v, _ := obj.Get(key)
//	    fmt.Printf("%s at %s\n", key, v.SourceSpan())
//	}
//
// # Comments
//
// Comments are rejected unless enabled:
//
//	root, err := loosejson.ParseString(src, loosejson.WithComments())
//
// # Errors
//
// Every error matches one of the Err* kinds with errors.Is and carries the
// position where it was detected:
//
//	if errors.Is(err, loosejson.ErrCommentsNotSupported) {
//	    pos, _ := loosejson.ErrorPosition(err)
//	    fmt.Printf("comment at line %d\n", pos.Line)
//	}
package loosejson

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/loosejson/pkg/ast"
	"github.com/praetorian-inc/loosejson/pkg/lexer"
	"github.com/praetorian-inc/loosejson/pkg/parser"
	"github.com/praetorian-inc/loosejson/pkg/types"
	"go.uber.org/zap"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/loosejson" without subpackages.
type (
	// Node is any parsed value.
	Node = ast.Node

	NullNode    = ast.NullNode
	BooleanNode = ast.BooleanNode
	NumberNode  = ast.NumberNode
	StringNode  = ast.StringNode
	ArrayNode   = ast.ArrayNode
	ObjectNode  = ast.ObjectNode

	// Token is a lexical unit produced by Tokenize.
	Token = types.Token

	// Position is a point in the source: byte offset, 1-based line, 0-based column.
	Position = types.Position

	// Span is the half-open source range a token or node covers.
	Span = types.Span

	// Parser is a reusable parser configured once with options.
	Parser = parser.Parser
)

// Re-export error kinds.
var (
	ErrUnrecognizedToken         = types.ErrUnrecognizedToken
	ErrCommentsNotSupported      = types.ErrCommentsNotSupported
	ErrUnexpectedToken           = types.ErrUnexpectedToken
	ErrExpectedArrayOrObjectRoot = types.ErrExpectedArrayOrObjectRoot
	ErrNumberOverflow            = types.ErrNumberOverflow
	ErrInternalInconsistency     = types.ErrInternalInconsistency
	ErrMaxDepthExceeded          = types.ErrMaxDepthExceeded
)

// ErrorPosition returns the source position carried by err.
func ErrorPosition(err error) (Position, bool) {
	return types.ErrorPosition(err)
}

// options holds facade configuration.
type options struct {
	comments  bool
	strictEnd bool
	maxDepth  int
	logger    *zap.Logger
}

// Option configures parsing.
type Option func(*options)

// WithComments skips // and /* */ comments instead of rejecting them.
func WithComments() Option {
	return func(o *options) {
		o.comments = true
	}
}

// WithStrictEnd rejects tokens after the root value. Without it they are
// ignored.
func WithStrictEnd() Option {
	return func(o *options) {
		o.strictEnd = true
	}
}

// WithMaxDepth limits array and object nesting. Deeper input fails with
// ErrMaxDepthExceeded.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithLogger sets the logger for debug events. The default discards them.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// NewParser creates a Parser that may be reused, including from several
// goroutines at once.
//
// Example:
//
//	p, err := loosejson.NewParser(loosejson.WithComments())
//	if err != nil {
//	    return err
//	}
//	for _, doc := range docs {
//	    root, err := p.Parse(doc)
//	    ...
//	}
func NewParser(opts ...Option) (*Parser, error) {
	o := buildOptions(opts)
	return parser.New(
		parser.WithComments(o.comments),
		parser.WithStrictEnd(o.strictEnd),
		parser.WithMaxDepth(o.maxDepth),
		parser.WithLogger(o.logger),
	)
}

// Parse parses a document whose root is an array or an object.
func Parse(src string, opts ...Option) (Node, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse(src)
}

// ParseString is an alias of Parse.
func ParseString(src string, opts ...Option) (Node, error) {
	return Parse(src, opts...)
}

// ParseBytes parses a document held in a byte slice.
func ParseBytes(src []byte, opts ...Option) (Node, error) {
	return Parse(string(src), opts...)
}

// ParseFile reads and parses a document.
//
// Example:
//
//	root, err := loosejson.ParseFile("settings.jsonc", loosejson.WithComments())
func ParseFile(path string, opts ...Option) (Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return ParseBytes(content, opts...)
}

// ParseValue parses a document whose root may be any value, such as a bare
// null or a number.
func ParseValue(src string, opts ...Option) (Node, error) {
	p, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseValue(src)
}

// Tokenize returns the token stream the parser would see: layout removed,
// comments removed or rejected, and a final EndOfInput token.
func Tokenize(src string, opts ...Option) ([]Token, error) {
	o := buildOptions(opts)
	t, err := lexer.New(lexer.Config{
		Comments: o.comments,
		Logger:   o.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tokenizer: %w", err)
	}
	return t.Tokenize(src)
}

// ToValue converts a tree to plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func ToValue(n Node) any {
	return ast.ToValue(n)
}
