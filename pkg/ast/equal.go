package ast

// Equal reports whether a and b are the same tree, ignoring spans, raw text
// and object key order.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a := a.(type) {
	case *NullNode:
		return true
	case *BooleanNode:
		return a.Value == b.(*BooleanNode).Value
	case *NumberNode:
		return a.Value == b.(*NumberNode).Value
	case *StringNode:
		return a.Value == b.(*StringNode).Value
	case *ArrayNode:
		other := b.(*ArrayNode)
		if len(a.Elements) != len(other.Elements) {
			return false
		}
		for i := range a.Elements {
			if !Equal(a.Elements[i], other.Elements[i]) {
				return false
			}
		}
		return true
	case *ObjectNode:
		other := b.(*ObjectNode)
		if len(a.Members) != len(other.Members) {
			return false
		}
		for key, value := range a.Members {
			v, ok := other.Members[key]
			if !ok || !Equal(value, v) {
				return false
			}
		}
		return true
	}
	return false
}
