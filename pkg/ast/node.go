// Package ast defines the syntax tree produced by the parser.
//
// Node is a closed sum type over six variants. Every variant records the
// span it covers and the exact source text of that span; leaves also carry
// their decoded value.
package ast

import "github.com/praetorian-inc/loosejson/pkg/types"

// Kind discriminates the Node variants.
type Kind string

const (
	KindNull    Kind = "null"
	KindBoolean Kind = "boolean"
	KindNumber  Kind = "number"
	KindString  Kind = "string"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Node is implemented only by the six node types of this package.
type Node interface {
	Kind() Kind
	SourceSpan() types.Span
	SourceText() string
	node()
}

// NullNode is the literal null.
type NullNode struct {
	Span types.Span
	Raw  string // always "null"
}

// BooleanNode is true or false.
type BooleanNode struct {
	Span  types.Span
	Raw   string
	Value bool
}

// NumberNode is an integer or decimal literal.
type NumberNode struct {
	Span  types.Span
	Raw   string
	Value Number
}

// StringNode is a single or double quoted literal.
// Value is Raw without its quotes; escapes are not interpreted.
type StringNode struct {
	Span  types.Span
	Raw   string // includes the quotes
	Value string
}

// ArrayNode holds its elements in source order.
type ArrayNode struct {
	Span     types.Span
	Raw      string // includes the brackets
	Elements []Node
}

// ObjectNode maps keys to values. A key that appears more than once keeps
// the last value. Keys lists every distinct key once, in order of first
// appearance.
type ObjectNode struct {
	Span    types.Span
	Raw     string // includes the braces
	Members map[string]Node
	Keys    []string
}

func (*NullNode) Kind() Kind    { return KindNull }
func (*BooleanNode) Kind() Kind { return KindBoolean }
func (*NumberNode) Kind() Kind  { return KindNumber }
func (*StringNode) Kind() Kind  { return KindString }
func (*ArrayNode) Kind() Kind   { return KindArray }
func (*ObjectNode) Kind() Kind  { return KindObject }

func (n *NullNode) SourceSpan() types.Span    { return n.Span }
func (n *BooleanNode) SourceSpan() types.Span { return n.Span }
func (n *NumberNode) SourceSpan() types.Span  { return n.Span }
func (n *StringNode) SourceSpan() types.Span  { return n.Span }
func (n *ArrayNode) SourceSpan() types.Span   { return n.Span }
func (n *ObjectNode) SourceSpan() types.Span  { return n.Span }

func (n *NullNode) SourceText() string    { return n.Raw }
func (n *BooleanNode) SourceText() string { return n.Raw }
func (n *NumberNode) SourceText() string  { return n.Raw }
func (n *StringNode) SourceText() string  { return n.Raw }
func (n *ArrayNode) SourceText() string   { return n.Raw }
func (n *ObjectNode) SourceText() string  { return n.Raw }

func (*NullNode) node()    {}
func (*BooleanNode) node() {}
func (*NumberNode) node()  {}
func (*StringNode) node()  {}
func (*ArrayNode) node()   {}
func (*ObjectNode) node()  {}

// Len returns the number of elements.
func (n *ArrayNode) Len() int { return len(n.Elements) }

// Len returns the number of distinct keys.
func (n *ObjectNode) Len() int { return len(n.Members) }

// Get returns the value stored under key.
func (n *ObjectNode) Get(key string) (Node, bool) {
	v, ok := n.Members[key]
	return v, ok
}

// Set stores value under key, keeping the position of a key already present.
func (n *ObjectNode) Set(key string, value Node) {
	if n.Members == nil {
		n.Members = make(map[string]Node)
	}
	if _, exists := n.Members[key]; !exists {
		n.Keys = append(n.Keys, key)
	}
	n.Members[key] = value
}
