package ast

// Walk visits n and its descendants depth first, parents before children.
// Array elements are visited in order, object members in Keys order.
// Returning false from fn skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *ArrayNode:
		for _, elem := range n.Elements {
			Walk(elem, fn)
		}
	case *ObjectNode:
		for _, key := range orderedKeys(n) {
			Walk(n.Members[key], fn)
		}
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}

// orderedKeys returns Keys when it describes Members, otherwise the map
// keys in unspecified order (for objects built by hand).
func orderedKeys(n *ObjectNode) []string {
	if len(n.Keys) == len(n.Members) {
		return n.Keys
	}
	keys := make([]string, 0, len(n.Members))
	for k := range n.Members {
		keys = append(keys, k)
	}
	return keys
}
