package lexer

import (
	"time"

	"github.com/praetorian-inc/loosejson/pkg/grammar"
	"go.uber.org/zap"
)

// Config for tokenizer initialization.
type Config struct {
	// Comments drops // and /* */ comments when true. When false the first
	// comment aborts tokenizing with a CommentsNotSupported error.
	Comments bool

	// Recognizers overrides the built-in table. Order is match priority.
	Recognizers []grammar.Recognizer

	// MatchTimeout bounds a single pattern match (0 = no timeout).
	MatchTimeout time.Duration

	// Logger receives debug events. Defaults to a no-op logger.
	Logger *zap.Logger
}
