//go:build wasm

package main

import (
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/loosejson"
	"github.com/praetorian-inc/loosejson/pkg/ast"
)

var (
	parsers   = make(map[int]*loosejson.Parser)
	parsersMu sync.RWMutex
	nextID    int
)

// ParserOptions is the JSON options object accepted by LooseJSONNewParser.
type ParserOptions struct {
	Comments  bool `json:"comments"`
	StrictEnd bool `json:"strictEnd"`
	MaxDepth  int  `json:"maxDepth"`
}

// ParseResult is returned by LooseJSONParse as JSON.
type ParseResult struct {
	Kind  string         `json:"kind,omitempty"`
	Span  loosejson.Span `json:"span"`
	Value any            `json:"value"`
	Error *ErrorInfo     `json:"error,omitempty"`
}

// ErrorInfo describes a rejected document.
type ErrorInfo struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
}

func (o ParserOptions) toOptions() []loosejson.Option {
	var opts []loosejson.Option
	if o.Comments {
		opts = append(opts, loosejson.WithComments())
	}
	if o.StrictEnd {
		opts = append(opts, loosejson.WithStrictEnd())
	}
	if o.MaxDepth > 0 {
		opts = append(opts, loosejson.WithMaxDepth(o.MaxDepth))
	}
	return opts
}

func decodeOptions(args []js.Value, i int) (ParserOptions, error) {
	var o ParserOptions
	if len(args) <= i || args[i].IsUndefined() || args[i].IsNull() {
		return o, nil
	}
	err := json.Unmarshal([]byte(args[i].String()), &o)
	return o, err
}

// newParser creates a parser with the given options JSON.
// JS: LooseJSONNewParser(optionsJSON?) -> handle (int) or error
func newParser(this js.Value, args []js.Value) interface{} {
	opts, err := decodeOptions(args, 0)
	if err != nil {
		return map[string]interface{}{"error": "failed to parse options JSON: " + err.Error()}
	}

	p, err := loosejson.NewParser(opts.toOptions()...)
	if err != nil {
		return map[string]interface{}{"error": "failed to create parser: " + err.Error()}
	}

	// Register parser
	parsersMu.Lock()
	id := nextID
	nextID++
	parsers[id] = p
	parsersMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// parse parses one document.
// JS: LooseJSONParse(handle, source) -> JSON ParseResult or error
func parse(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and source arguments required"}
	}

	handle := args[0].Int()
	source := args[1].String()

	parsersMu.RLock()
	p, ok := parsers[handle]
	parsersMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid parser handle"}
	}

	return marshalResult(buildResult(p.Parse(source)))
}

// tokenize returns the token stream of a document.
// JS: LooseJSONTokenize(source, optionsJSON?) -> JSON token array or error
func tokenize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "source argument required"}
	}

	opts, err := decodeOptions(args, 1)
	if err != nil {
		return map[string]interface{}{"error": "failed to parse options JSON: " + err.Error()}
	}

	tokens, err := loosejson.Tokenize(args[0].String(), opts.toOptions()...)
	if err != nil {
		return marshalResult(buildResult(nil, err))
	}

	type tokenJSON struct {
		Kind string         `json:"kind"`
		Raw  string         `json:"raw"`
		Span loosejson.Span `json:"span"`
	}
	out := make([]tokenJSON, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenJSON{Kind: tok.Kind.String(), Raw: tok.Raw, Span: tok.Span}
	}

	jsonBytes, err := json.Marshal(out)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal tokens: " + err.Error()}
	}
	return string(jsonBytes)
}

// closeParser releases a parser handle.
// JS: LooseJSONCloseParser(handle)
func closeParser(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	parsersMu.Lock()
	_, ok := parsers[handle]
	if ok {
		delete(parsers, handle)
	}
	parsersMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid parser handle"}
	}

	return nil
}

func buildResult(root ast.Node, err error) *ParseResult {
	if err != nil {
		info := &ErrorInfo{Message: err.Error()}
		if pos, ok := loosejson.ErrorPosition(err); ok {
			info.Line, info.Column, info.Offset = pos.Line, pos.Column, pos.Cursor
		}
		return &ParseResult{Error: info}
	}
	return &ParseResult{
		Kind:  string(root.Kind()),
		Span:  root.SourceSpan(),
		Value: loosejson.ToValue(root),
	}
}

func marshalResult(r *ParseResult) interface{} {
	jsonBytes, err := json.Marshal(r)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}
	return string(jsonBytes)
}
