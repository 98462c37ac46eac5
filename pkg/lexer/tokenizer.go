// Package lexer turns source text into a flat token stream by trying an
// ordered table of recognizers at each scan position.
package lexer

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/loosejson/pkg/grammar"
	"github.com/praetorian-inc/loosejson/pkg/types"
	"go.uber.org/zap"
)

// compiledRecognizer is a table entry with its pattern ready to run.
type compiledRecognizer struct {
	grammar.Recognizer
	re *regexp2.Regexp
}

// Tokenizer scans source text with an ordered recognizer table.
//
// A Tokenizer is immutable after New. Each Tokenize call keeps its scan
// position in call-local state, so one Tokenizer may be shared between
// goroutines.
type Tokenizer struct {
	recognizers []compiledRecognizer
	comments    bool
	logger      *zap.Logger
}

// New compiles the recognizer table and returns a Tokenizer.
func New(cfg Config) (*Tokenizer, error) {
	table := cfg.Recognizers
	if table == nil {
		var err error
		table, err = grammar.Builtin()
		if err != nil {
			return nil, fmt.Errorf("loading builtin recognizers: %w", err)
		}
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no recognizers provided")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tokenizer{
		recognizers: make([]compiledRecognizer, 0, len(table)),
		comments:    cfg.Comments,
		logger:      logger,
	}
	for _, r := range table {
		re, err := r.Compile(cfg.MatchTimeout)
		if err != nil {
			return nil, err
		}
		t.recognizers = append(t.recognizers, compiledRecognizer{Recognizer: r, re: re})
	}
	return t, nil
}

// CommentsAllowed reports whether comments are dropped rather than rejected.
func (t *Tokenizer) CommentsAllowed() bool {
	return t.comments
}

// Tokenize converts src into tokens. NewLine and WhiteSpace tokens are
// dropped, comments are dropped or rejected depending on configuration, and
// the result always ends with an EndOfInput token collapsed at the final
// position.
func (t *Tokenizer) Tokenize(src string) ([]types.Token, error) {
	s := newScan(src)

	var tokens []types.Token
	for !s.done() {
		tok, err := t.next(s)
		if err != nil {
			return nil, err
		}

		switch {
		case tok.Kind.IsTrivia():
			continue
		case tok.Kind.IsComment():
			if !t.comments {
				return nil, types.NewCommentsNotSupportedError(tok.Span.Start)
			}
			continue
		}

		tokens = append(tokens, tok)
	}

	tokens = append(tokens, types.NewToken(types.TokenEndOfInput, "", types.CollapsedSpan(s.pos)))

	t.logger.Debug("tokenized",
		zap.Int("bytes", len(src)),
		zap.Int("tokens", len(tokens)),
		zap.Bool("comments", t.comments),
	)
	return tokens, nil
}

// Scan returns every token including layout and comments, without the
// filtering Tokenize applies. The EndOfInput token is still appended.
func (t *Tokenizer) Scan(src string) ([]types.Token, error) {
	s := newScan(src)

	var tokens []types.Token
	for !s.done() {
		tok, err := t.next(s)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return append(tokens, types.NewToken(types.TokenEndOfInput, "", types.CollapsedSpan(s.pos))), nil
}

// next matches one token at the scan position and advances past it.
func (t *Tokenizer) next(s *scan) (types.Token, error) {
	start := s.pos
	for i := range t.recognizers {
		r := &t.recognizers[i]

		// Patterns see only the unconsumed input, so a leading \b always
		// holds at the scan position.
		m, err := r.re.FindRunesMatchStartingAt(s.runes[s.runeIdx:], 0)
		if err != nil {
			return types.Token{}, fmt.Errorf("matching recognizer %s at %s: %w", r.Name, start, err)
		}
		if m == nil || m.Index != 0 || m.Length == 0 {
			continue
		}

		raw := s.text(s.runeIdx, s.runeIdx+m.Length)
		s.advance(raw, m.Length, r.Multiline)
		return types.NewToken(r.Kind, raw, types.NewSpan(start, s.pos)), nil
	}

	return types.Token{}, types.NewUnrecognizedTokenError(start, s.src[start.Cursor:])
}

// scan is the state of one Tokenize call. Patterns run over runes while
// positions count bytes, so offsets maps each rune index to its byte offset.
type scan struct {
	src     string
	runes   []rune
	offsets []int
	runeIdx int
	pos     types.Position
}

func newScan(src string) *scan {
	offsets := make([]int, 0, len(src)+1)
	for i := range src {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(src))

	return &scan{
		src:     src,
		runes:   []rune(src),
		offsets: offsets,
		pos:     types.StartPosition(),
	}
}

// text returns the source bytes between two rune indexes.
func (s *scan) text(from, to int) string {
	return s.src[s.offsets[from]:s.offsets[to]]
}

func (s *scan) done() bool {
	return s.pos.Cursor >= len(s.src)
}

// advance moves past raw, which spans n runes. Multiline matches are
// advanced line-break aware, the rest by columns only.
func (s *scan) advance(raw string, n int, multiline bool) {
	s.runeIdx += n
	if multiline {
		s.pos = s.pos.Advance(raw)
		return
	}
	s.pos = s.pos.AddColumns(len(raw))
}
