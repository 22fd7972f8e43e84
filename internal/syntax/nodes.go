package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Keyword returns the keyword token kw of n: n itself when n is that token,
// otherwise the first direct anonymous child of that type. It returns nil
// when n carries no such keyword.
func Keyword(n *sitter.Node, kw string) *sitter.Node {
	if n == nil {
		return nil
	}

	if !n.IsNamed() && n.Type() == kw {
		return n
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == kw {
			return child
		}
	}

	return nil
}

// Children returns all children of n, named and anonymous, without comments.
func Children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}

	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}

	return out
}

// NamedChildren returns the named children of n without comments.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}

	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}

	return out
}

// Field returns the first non-nil child for the given field names.
func Field(n *sitter.Node, names ...string) *sitter.Node {
	if n == nil {
		return nil
	}

	for _, name := range names {
		if child := n.ChildByFieldName(name); child != nil {
			return child
		}
	}

	return nil
}

// FirstOfType returns the first named child of n with one of the given types.
func FirstOfType(n *sitter.Node, types ...string) *sitter.Node {
	for _, child := range NamedChildren(n) {
		for _, typ := range types {
			if child.Type() == typ {
				return child
			}
		}
	}

	return nil
}

// Name returns the declared name node of n: its "name" field or, for grammar
// versions without that field, its first identifier child.
func Name(n *sitter.Node) *sitter.Node {
	if name := Field(n, "name"); name != nil {
		return name
	}

	return FirstOfType(n, "identifier")
}

// Identifier returns the plain identifier text of a simple or generic name.
func (t *Tree) Identifier(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	switch n.Type() {
	case "generic_name":
		return t.Identifier(FirstOfType(n, "identifier"))
	case "qualified_name", "alias_qualified_name":
		children := NamedChildren(n)
		if len(children) == 0 {
			return ""
		}
		return t.Identifier(children[len(children)-1])
	default:
		return t.Content(n)
	}
}

// TypeText returns the source text of a type node with whitespace collapsed.
func (t *Tree) TypeText(n *sitter.Node) string {
	return strings.Join(strings.Fields(t.Content(n)), " ")
}

// Modifiers returns the modifier keywords attached to a declaration.
func (t *Tree) Modifiers(n *sitter.Node) []string {
	var out []string
	for _, child := range Children(n) {
		switch child.Type() {
		case "modifier", "parameter_modifier":
			out = append(out, strings.TrimSpace(t.Content(child)))
		}
	}

	return out
}

// HasModifier reports whether declaration n carries modifier m.
func (t *Tree) HasModifier(n *sitter.Node, m string) bool {
	for _, mod := range t.Modifiers(n) {
		if mod == m {
			return true
		}
	}

	return false
}
