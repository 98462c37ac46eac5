package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Error kinds. Every error returned by the lexer and parser matches exactly
// one of these with errors.Is.
var (
	ErrUnrecognizedToken         = errors.New("unrecognized token")
	ErrCommentsNotSupported      = errors.New("comments are not supported")
	ErrUnexpectedToken           = errors.New("unexpected token")
	ErrExpectedArrayOrObjectRoot = errors.New("expected array or object root")
	ErrNumberOverflow            = errors.New("number literal out of range")
	ErrInternalInconsistency     = errors.New("internal inconsistency")
	ErrMaxDepthExceeded          = errors.New("maximum nesting depth exceeded")
)

// ParseError is the base error type for all lexer and parser errors.
type ParseError struct {
	Kind    error
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, msg)
	}
	return msg
}

func (e *ParseError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Position returns where the error was detected.
func (e *ParseError) Position() Position { return e.Pos }

// ErrorPosition extracts the source position from any error produced by the
// lexer or parser.
func ErrorPosition(err error) (Position, bool) {
	var positioned interface{ Position() Position }
	if errors.As(err, &positioned) {
		return positioned.Position(), true
	}
	return Position{}, false
}

// LexError is raised by the tokenizer.
// Remainder holds a bounded prefix of the input that was not consumed.
type LexError struct {
	ParseError
	Remainder string
}

// SyntaxError is raised when the parser finds a token it cannot accept.
// An empty Expected list means any value was acceptable.
type SyntaxError struct {
	ParseError
	Found    TokenKind
	Expected []TokenKind
}

// InternalError signals a state the parser can only reach through a defect
// in its own control flow, never through bad input.
type InternalError struct{ ParseError }

// maxRemainder bounds the unconsumed input quoted in lexer errors.
const maxRemainder = 40

// NewUnrecognizedTokenError reports that no recognizer matched at pos.
func NewUnrecognizedTokenError(pos Position, rest string) *LexError {
	remainder := rest
	if len(remainder) > maxRemainder {
		n := maxRemainder
		for n > 0 && !utf8.RuneStart(remainder[n]) {
			n--
		}
		remainder = remainder[:n] + "..."
	}
	return &LexError{
		ParseError: ParseError{
			Kind:    ErrUnrecognizedToken,
			Message: fmt.Sprintf("unrecognized token: rest of input was '%s'", remainder),
			Pos:     pos,
		},
		Remainder: remainder,
	}
}

// NewCommentsNotSupportedError reports a comment found while comments are
// disabled.
func NewCommentsNotSupportedError(pos Position) *LexError {
	return &LexError{
		ParseError: ParseError{
			Kind:    ErrCommentsNotSupported,
			Message: "comments are not supported",
			Pos:     pos,
		},
	}
}

// NewUnexpectedTokenError reports tok where one of expected was required.
func NewUnexpectedTokenError(tok Token, expected ...TokenKind) *SyntaxError {
	return &SyntaxError{
		ParseError: ParseError{
			Kind:    ErrUnexpectedToken,
			Message: fmt.Sprintf("unexpected token: found `%s`, expected %s", tok.Kind, describeExpected(expected)),
			Pos:     tok.Span.Start,
		},
		Found:    tok.Kind,
		Expected: expected,
	}
}

// NewRootError reports a document whose first token does not open an array
// or an object.
func NewRootError(tok Token) *SyntaxError {
	return &SyntaxError{
		ParseError: ParseError{
			Kind:    ErrExpectedArrayOrObjectRoot,
			Message: fmt.Sprintf("unexpected token: must be array literal or object literal, found `%s`", tok.Kind),
			Pos:     tok.Span.Start,
		},
		Found:    tok.Kind,
		Expected: []TokenKind{TokenOpenSquareBracket, TokenOpenCurlyBrace},
	}
}

// NewNumberOverflowError reports a numeric literal that does not fit its
// target type.
func NewNumberOverflowError(tok Token, cause error) *ParseError {
	return &ParseError{
		Kind:    ErrNumberOverflow,
		Message: fmt.Sprintf("number literal %s is out of range", tok.Raw),
		Pos:     tok.Span.Start,
		Cause:   cause,
	}
}

// NewMaxDepthError reports an array or object opened by tok beyond the
// configured nesting limit.
func NewMaxDepthError(tok Token, limit int) *ParseError {
	return &ParseError{
		Kind:    ErrMaxDepthExceeded,
		Message: fmt.Sprintf("maximum nesting depth of %d exceeded by `%s`", limit, tok.Kind),
		Pos:     tok.Span.Start,
	}
}

// NewInternalError reports a broken parser invariant.
func NewInternalError(pos Position, format string, args ...any) *InternalError {
	return &InternalError{ParseError{
		Kind:    ErrInternalInconsistency,
		Message: "internal inconsistency: " + fmt.Sprintf(format, args...),
		Pos:     pos,
	}}
}

func describeExpected(kinds []TokenKind) string {
	if len(kinds) == 0 {
		return "a value"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = "`" + k.String() + "`"
	}
	return strings.Join(names, " or ")
}
