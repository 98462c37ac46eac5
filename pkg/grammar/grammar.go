// Package grammar holds the ordered table of token recognizers used by the
// lexer. The table is data: the built-in one is an embedded YAML file whose
// list order is the match priority (first match wins, not longest match).
package grammar

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/loosejson/pkg/types"
)

// Recognizer pairs a token kind with a pattern that must match at the
// current scan position.
type Recognizer struct {
	Name             string          // e.g. "decimal-number"
	Kind             types.TokenKind // kind of token produced
	Pattern          string          // regexp2 pattern, unanchored
	Multiline        bool            // matches may contain line breaks
	Description      string          // optional
	Examples         []string        // inputs matched in full
	NegativeExamples []string        // inputs not matched at all
}

// Compile compiles the recognizer's pattern anchored at the starting
// position passed to the match call.
// timeout of zero means no match timeout.
func (r Recognizer) Compile(timeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(`\G(?:`+r.Pattern+`)`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q for recognizer %s: %w", r.Pattern, r.Name, err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re, nil
}

var builtin = sync.OnceValues(func() ([]Recognizer, error) {
	return NewLoader().LoadBuiltin()
})

// Builtin returns a copy of the built-in recognizer table.
// The embedded file is decoded once per process.
func Builtin() ([]Recognizer, error) {
	table, err := builtin()
	if err != nil {
		return nil, err
	}
	out := make([]Recognizer, len(table))
	copy(out, table)
	return out, nil
}
