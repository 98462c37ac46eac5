package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/praetorian-inc/loosejson/pkg/ast"
	"github.com/praetorian-inc/loosejson/pkg/types"
)

// =============================================================================
// TREE
// =============================================================================

// renderTree draws n with one line per node: kind, value and span.
func renderTree(w io.Writer, n ast.Node, s *styles) error {
	root := buildTreeNode("", n, s)
	var out string
	if t, ok := root.(*tree.Tree); ok {
		out = t.String()
	} else {
		out = root.(string)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// buildTreeNode returns a subtree for non-empty containers and a plain
// label for everything else.
func buildTreeNode(prefix string, n ast.Node, s *styles) any {
	label := prefix + nodeLabel(n, s)

	var children []any
	switch n := n.(type) {
	case *ast.ArrayNode:
		for i, elem := range n.Elements {
			children = append(children, buildTreeNode(s.span.Sprintf("[%d] ", i), elem, s))
		}
	case *ast.ObjectNode:
		for _, key := range n.Keys {
			children = append(children, buildTreeNode(s.key.Sprintf("%q: ", key), n.Members[key], s))
		}
	}
	if len(children) == 0 {
		return label
	}
	return tree.Root(label).Child(children...)
}

func nodeLabel(n ast.Node, s *styles) string {
	var value string
	switch n := n.(type) {
	case *ast.NullNode:
		value = s.literal.Sprint("null")
	case *ast.BooleanNode:
		value = s.literal.Sprint(n.Value)
	case *ast.NumberNode:
		value = s.number.Sprintf("%s (%s)", n.Value, n.Value.Kind)
	case *ast.StringNode:
		value = s.str.Sprintf("%q", n.Value)
	case *ast.ArrayNode:
		value = fmt.Sprintf("len=%d", n.Len())
	case *ast.ObjectNode:
		value = fmt.Sprintf("len=%d", n.Len())
	}
	return fmt.Sprintf("%s %s %s", s.kind.Sprint(n.Kind()), value, s.span.Sprint(n.SourceSpan()))
}

// =============================================================================
// JSON
// =============================================================================

// renderJSON writes n as standard JSON, members in source order.
func renderJSON(w io.Writer, n ast.Node) error {
	var b strings.Builder
	if err := writeJSON(&b, n, 0); err != nil {
		return err
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(b *strings.Builder, n ast.Node, depth int) error {
	switch n := n.(type) {
	case *ast.NullNode:
		b.WriteString("null")
	case *ast.BooleanNode:
		fmt.Fprint(b, n.Value)
	case *ast.NumberNode:
		b.WriteString(n.Value.String())
	case *ast.StringNode:
		return writeJSONString(b, n.Value)
	case *ast.ArrayNode:
		if n.Len() == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteString("[\n")
		for i, elem := range n.Elements {
			indent(b, depth+1)
			if err := writeJSON(b, elem, depth+1); err != nil {
				return err
			}
			if i < len(n.Elements)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(']')
	case *ast.ObjectNode:
		if n.Len() == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteString("{\n")
		for i, key := range n.Keys {
			indent(b, depth+1)
			if err := writeJSONString(b, key); err != nil {
				return err
			}
			b.WriteString(": ")
			if err := writeJSON(b, n.Members[key], depth+1); err != nil {
				return err
			}
			if i < len(n.Keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte('}')
	default:
		return fmt.Errorf("unsupported node %T", n)
	}
	return nil
}

func writeJSONString(b *strings.Builder, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	b.Write(data)
	return nil
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

// =============================================================================
// DIAGNOSTICS
// =============================================================================

// renderDiagnostic writes err with the offending source line and a caret
// under the reported column.
func renderDiagnostic(w io.Writer, name, src string, err error, s *styles) {
	fmt.Fprintf(w, "%s %s\n", s.errLabel.Sprint("error:"), err)

	pos, ok := types.ErrorPosition(err)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %s %s\n", s.span.Sprint("-->"), s.location.Sprintf("%s:%d:%d", name, pos.Line, pos.Column))

	line := sourceLine(src, pos)
	gutter := fmt.Sprintf("%d", pos.Line)
	pad := strings.Repeat(" ", len(gutter))

	fmt.Fprintf(w, "%s %s\n", pad, s.span.Sprint("|"))
	fmt.Fprintf(w, "%s %s %s\n", s.span.Sprint(gutter), s.span.Sprint("|"), line)
	fmt.Fprintf(w, "%s %s %s%s\n", pad, s.span.Sprint("|"), caretIndent(line, pos.Column), s.caret.Sprint("^"))
}

// sourceLine returns the text of the line containing pos, without its
// line break.
func sourceLine(src string, pos types.Position) string {
	start := pos.Cursor - pos.Column
	if start < 0 || start > len(src) {
		return ""
	}
	rest := src[start:]
	if end := strings.IndexAny(rest, "\r\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

// caretIndent keeps tabs so the caret lines up under tab-indented text.
func caretIndent(line string, column int) string {
	if column > len(line) {
		column = len(line)
	}
	var b strings.Builder
	for i := 0; i < column; i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
