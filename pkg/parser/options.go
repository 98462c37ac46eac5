package parser

import "go.uber.org/zap"

// config holds parser configuration.
type config struct {
	comments  bool
	strictEnd bool
	maxDepth  int
	logger    *zap.Logger
}

// DefaultMaxDepth is the nesting limit used when WithMaxDepth is not given.
const DefaultMaxDepth = 10000

// Option configures a Parser.
type Option func(*config)

// WithComments controls whether // and /* */ comments are skipped (true) or
// rejected (false, the default).
func WithComments(allowed bool) Option {
	return func(c *config) {
		c.comments = allowed
	}
}

// WithStrictEnd requires the root value to be followed by end of input.
// By default tokens after the root are ignored; with strict set they fail
// with an UnexpectedToken error expecting EndOfInput. The whole input is
// still tokenized either way.
func WithStrictEnd(strict bool) Option {
	return func(c *config) {
		c.strictEnd = strict
	}
}

// WithMaxDepth bounds how deeply arrays and objects may nest. Values below
// one select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
