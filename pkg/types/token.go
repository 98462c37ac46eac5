package types

import "fmt"

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEndOfInput TokenKind = iota
	TokenNewLine
	TokenWhiteSpace
	TokenLineComment          // // ...
	TokenBlockComment         // /* ... */
	TokenComma                // ,
	TokenColon                // :
	TokenOpenSquareBracket    // [
	TokenClosedSquareBracket  // ]
	TokenOpenCurlyBrace       // {
	TokenClosedCurlyBrace     // }
	TokenNullLiteral          // null
	TokenBooleanLiteral       // true, false
	TokenNumberLiteral        // 12, 1.5
	TokenStringLiteral        // "..." or '...'
)

var tokenNames = map[TokenKind]string{
	TokenEndOfInput:          "EndOfInput",
	TokenNewLine:             "NewLine",
	TokenWhiteSpace:          "WhiteSpace",
	TokenLineComment:         "LineComment",
	TokenBlockComment:        "BlockComment",
	TokenComma:               "Comma",
	TokenColon:               "Colon",
	TokenOpenSquareBracket:   "OpenSquareBracket",
	TokenClosedSquareBracket: "ClosedSquareBracket",
	TokenOpenCurlyBrace:      "OpenCurlyBrace",
	TokenClosedCurlyBrace:    "ClosedCurlyBrace",
	TokenNullLiteral:         "NullLiteral",
	TokenBooleanLiteral:      "BooleanLiteral",
	TokenNumberLiteral:       "NumberLiteral",
	TokenStringLiteral:       "StringLiteral",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsTrivia reports whether the kind is layout the parser never sees.
func (k TokenKind) IsTrivia() bool {
	return k == TokenNewLine || k == TokenWhiteSpace
}

// IsComment reports whether the kind is a line or block comment.
func (k TokenKind) IsComment() bool {
	return k == TokenLineComment || k == TokenBlockComment
}

// ParseTokenKind returns the kind whose String form is name.
func ParseTokenKind(name string) (TokenKind, error) {
	for kind, n := range tokenNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown token kind %q", name)
}

// Token is a single lexical unit: its kind, the exact text matched and
// where it was found.
type Token struct {
	Kind TokenKind
	Raw  string
	Span Span
}

// NewToken creates a token.
func NewToken(kind TokenKind, raw string, span Span) Token {
	return Token{Kind: kind, Raw: raw, Span: span}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Raw, t.Span)
}
