package ast

// ToValue converts a tree into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func ToValue(n Node) any {
	switch n := n.(type) {
	case *NullNode:
		return nil
	case *BooleanNode:
		return n.Value
	case *NumberNode:
		return n.Value.Value()
	case *StringNode:
		return n.Value
	case *ArrayNode:
		out := make([]any, len(n.Elements))
		for i, elem := range n.Elements {
			out[i] = ToValue(elem)
		}
		return out
	case *ObjectNode:
		out := make(map[string]any, len(n.Members))
		for key, value := range n.Members {
			out[key] = ToValue(value)
		}
		return out
	}
	return nil
}
