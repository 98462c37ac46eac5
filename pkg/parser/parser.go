// Package parser builds an ast.Node tree from source text with a single
// token of lookahead over the lexer's token stream.
package parser

import (
	"fmt"

	"github.com/praetorian-inc/loosejson/pkg/ast"
	"github.com/praetorian-inc/loosejson/pkg/lexer"
	"github.com/praetorian-inc/loosejson/pkg/types"
	"go.uber.org/zap"
)

// Parser is immutable after New. Parse keeps its token cursor in
// call-local state, so one Parser may be shared between goroutines.
type Parser struct {
	tokenizer *lexer.Tokenizer
	config    config
}

// New creates a Parser with the given options.
func New(opts ...Option) (*Parser, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.maxDepth < 1 {
		cfg.maxDepth = DefaultMaxDepth
	}

	tokenizer, err := lexer.New(lexer.Config{
		Comments: cfg.comments,
		Logger:   cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tokenizer: %w", err)
	}

	return &Parser{tokenizer: tokenizer, config: cfg}, nil
}

// NewWithComments creates a Parser that skips comments.
func NewWithComments() (*Parser, error) {
	return New(WithComments(true))
}

// NewWithoutComments creates a Parser that rejects comments.
func NewWithoutComments() (*Parser, error) {
	return New(WithComments(false))
}

// Parse parses a document. The root must be an array or an object, so the
// returned node is always an *ast.ArrayNode or an *ast.ObjectNode.
// Errors match one of the types.Err* kinds with errors.Is.
func (p *Parser) Parse(src string) (ast.Node, error) {
	s, err := p.begin(src)
	if err != nil {
		return nil, err
	}

	var root ast.Node
	switch tok := s.current(); tok.Kind {
	case types.TokenOpenSquareBracket:
		root, err = s.parseArrayLiteral()
	case types.TokenOpenCurlyBrace:
		root, err = s.parseObjectLiteral()
	default:
		return nil, types.NewRootError(tok)
	}
	if err != nil {
		return nil, err
	}
	return p.finish(s, root)
}

// ParseValue parses a document whose root may be any value, including a
// bare scalar such as null.
func (p *Parser) ParseValue(src string) (ast.Node, error) {
	s, err := p.begin(src)
	if err != nil {
		return nil, err
	}

	root, err := s.parseValue()
	if err != nil {
		return nil, err
	}
	return p.finish(s, root)
}

func (p *Parser) begin(src string) (*state, error) {
	tokens, err := p.tokenizer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return &state{src: src, tokens: tokens, maxDepth: p.config.maxDepth}, nil
}

func (p *Parser) finish(s *state, root ast.Node) (ast.Node, error) {
	if p.config.strictEnd {
		if _, err := s.consume(types.TokenEndOfInput); err != nil {
			return nil, err
		}
	}
	p.config.logger.Debug("parsed",
		zap.String("root", string(root.Kind())),
		zap.Int("tokens", len(s.tokens)),
	)
	return root, nil
}

// state is the cursor over one call's token stream.
type state struct {
	src      string
	tokens   []types.Token
	index    int
	depth    int
	maxDepth int
}

// peek returns the token offset positions ahead of the cursor. Every loop
// stops at EndOfInput, so running off the end is a parser defect.
func (s *state) peek(offset int) (types.Token, error) {
	i := s.index + offset
	if i < 0 || i >= len(s.tokens) {
		var at types.Position
		if n := len(s.tokens); n > 0 {
			at = s.tokens[n-1].Span.End
		}
		return types.Token{}, types.NewInternalError(at, "peek at token %d of %d", i, len(s.tokens))
	}
	return s.tokens[i], nil
}

// current returns the token under the cursor. The stream always ends with
// EndOfInput and consume never moves past it.
func (s *state) current() types.Token {
	return s.tokens[s.index]
}

// consume returns the current token and advances if it has the expected
// kind.
func (s *state) consume(kind types.TokenKind) (types.Token, error) {
	tok, err := s.peek(0)
	if err != nil {
		return types.Token{}, err
	}
	if tok.Kind != kind {
		return types.Token{}, types.NewUnexpectedTokenError(tok, kind)
	}
	if tok.Kind != types.TokenEndOfInput {
		s.index++
	}
	return tok, nil
}

func (s *state) raw(start, end types.Position) string {
	return s.src[start.Cursor:end.Cursor]
}

func (s *state) parseValue() (ast.Node, error) {
	tok := s.current()
	switch tok.Kind {
	case types.TokenNullLiteral:
		return s.parseNullLiteral()
	case types.TokenBooleanLiteral:
		return s.parseBooleanLiteral()
	case types.TokenNumberLiteral:
		return s.parseNumberLiteral()
	case types.TokenStringLiteral:
		return s.parseStringLiteral()
	case types.TokenOpenSquareBracket:
		return s.parseArrayLiteral()
	case types.TokenOpenCurlyBrace:
		return s.parseObjectLiteral()
	case types.TokenEndOfInput, types.TokenComma, types.TokenColon,
		types.TokenClosedSquareBracket, types.TokenClosedCurlyBrace:
		// Reachable from input such as "[,]" or "{"k":}".
		return nil, types.NewUnexpectedTokenError(tok)
	default:
		return nil, types.NewInternalError(tok.Span.Start, "token %s reached a value position", tok.Kind)
	}
}

func (s *state) parseObjectLiteral() (*ast.ObjectNode, error) {
	open, err := s.consume(types.TokenOpenCurlyBrace)
	if err != nil {
		return nil, err
	}
	if err := s.descend(open); err != nil {
		return nil, err
	}
	defer s.ascend()

	obj := &ast.ObjectNode{Members: make(map[string]ast.Node)}
	for !s.at(types.TokenClosedCurlyBrace) && !s.at(types.TokenEndOfInput) {
		key, err := s.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		if _, err := s.consume(types.TokenColon); err != nil {
			return nil, err
		}
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		obj.Set(key.Value, value)

		if !s.at(types.TokenClosedCurlyBrace) {
			if _, err := s.consume(types.TokenComma); err != nil {
				return nil, err
			}
		}
	}

	closing, err := s.consume(types.TokenClosedCurlyBrace)
	if err != nil {
		return nil, err
	}

	obj.Span = types.NewSpan(open.Span.Start, closing.Span.End)
	obj.Raw = s.raw(open.Span.Start, closing.Span.End)
	return obj, nil
}

func (s *state) parseArrayLiteral() (*ast.ArrayNode, error) {
	open, err := s.consume(types.TokenOpenSquareBracket)
	if err != nil {
		return nil, err
	}
	if err := s.descend(open); err != nil {
		return nil, err
	}
	defer s.ascend()

	elements := []ast.Node{}
	for !s.at(types.TokenClosedSquareBracket) && !s.at(types.TokenEndOfInput) {
		value, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		elements = append(elements, value)

		if !s.at(types.TokenClosedSquareBracket) {
			if _, err := s.consume(types.TokenComma); err != nil {
				return nil, err
			}
		}
	}

	closing, err := s.consume(types.TokenClosedSquareBracket)
	if err != nil {
		return nil, err
	}

	return &ast.ArrayNode{
		Span:     types.NewSpan(open.Span.Start, closing.Span.End),
		Raw:      s.raw(open.Span.Start, closing.Span.End),
		Elements: elements,
	}, nil
}

func (s *state) parseStringLiteral() (*ast.StringNode, error) {
	tok, err := s.consume(types.TokenStringLiteral)
	if err != nil {
		return nil, err
	}
	if len(tok.Raw) < 2 {
		return nil, types.NewInternalError(tok.Span.Start, "string literal %q has no quotes", tok.Raw)
	}
	return &ast.StringNode{
		Span:  tok.Span,
		Raw:   tok.Raw,
		Value: tok.Raw[1 : len(tok.Raw)-1],
	}, nil
}

func (s *state) parseNumberLiteral() (*ast.NumberNode, error) {
	tok, err := s.consume(types.TokenNumberLiteral)
	if err != nil {
		return nil, err
	}
	value, err := ast.ParseNumber(tok.Raw)
	if err != nil {
		return nil, types.NewNumberOverflowError(tok, err)
	}
	return &ast.NumberNode{
		Span:  tok.Span,
		Raw:   tok.Raw,
		Value: value,
	}, nil
}

func (s *state) parseBooleanLiteral() (*ast.BooleanNode, error) {
	tok, err := s.consume(types.TokenBooleanLiteral)
	if err != nil {
		return nil, err
	}
	var value bool
	switch tok.Raw {
	case "true":
		value = true
	case "false":
		value = false
	default:
		return nil, types.NewInternalError(tok.Span.Start, "boolean literal %q", tok.Raw)
	}
	return &ast.BooleanNode{
		Span:  tok.Span,
		Raw:   tok.Raw,
		Value: value,
	}, nil
}

func (s *state) parseNullLiteral() (*ast.NullNode, error) {
	tok, err := s.consume(types.TokenNullLiteral)
	if err != nil {
		return nil, err
	}
	return &ast.NullNode{
		Span: tok.Span,
		Raw:  tok.Raw,
	}, nil
}

// descend enters a container opened by tok, failing once the nesting limit
// is passed so deep input cannot exhaust the goroutine stack.
func (s *state) descend(tok types.Token) error {
	if s.depth >= s.maxDepth {
		return types.NewMaxDepthError(tok, s.maxDepth)
	}
	s.depth++
	return nil
}

func (s *state) ascend() { s.depth-- }

func (s *state) at(kind types.TokenKind) bool {
	return s.current().Kind == kind
}
