package syntax

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// Tree is a parsed C# source file. It is immutable once Parse returns and
// may be shared between goroutines.
type Tree struct {
	Path   string
	Source []byte

	tree   *sitter.Tree
	errors []SyntaxError
}

// SyntaxError is a parser-reported problem: either an ERROR node covering
// text the grammar could not match, or a MISSING token the parser inserted.
type SyntaxError struct {
	Location Location
	Missing  bool
}

// Parse parses C# source code. A new parser is created per call because
// tree-sitter parsers must not be shared between goroutines.
func Parse(ctx context.Context, path string, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}

	t := &Tree{Path: path, Source: src, tree: tree}
	t.errors = t.collectErrors(tree.RootNode(), nil)

	return t, nil
}

// ParseFile reads and parses a single source file.
func ParseFile(ctx context.Context, path string) (*Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return Parse(ctx, path, src)
}

// Root returns the compilation_unit node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Content returns the source text of n.
func (t *Tree) Content(n *sitter.Node) string {
	if n == nil {
		return ""
	}

	return n.Content(t.Source)
}

// Errors returns the syntax errors of the file in source order.
func (t *Tree) Errors() []SyntaxError {
	return t.errors
}

// HasErrorsIn reports whether any syntax error overlaps the byte range
// [start, end). Zero-width MISSING tokens count when they lie inside the range.
func (t *Tree) HasErrorsIn(start, end uint32) bool {
	for _, e := range t.errors {
		s, f := e.Location.StartByte, e.Location.EndByte
		if s == f {
			if s >= start && s <= end {
				return true
			}

			continue
		}

		if s < end && f > start {
			return true
		}
	}

	return false
}

var generatedSuffixes = []string{".g.cs", ".g.i.cs", ".designer.cs", ".generated.cs"}

// Generated reports whether the file is generated code, judged by its file
// name or an <auto-generated> marker in the leading comments.
func (t *Tree) Generated() bool {
	name := strings.ToLower(filepath.Base(t.Path))
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	root := t.Root()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil || child.Type() != "comment" {
			break
		}

		if strings.Contains(t.Content(child), "<auto-generated") {
			return true
		}
	}

	return false
}

func (t *Tree) collectErrors(n *sitter.Node, acc []SyntaxError) []SyntaxError {
	if n == nil {
		return acc
	}

	// A missing token can surface as an erroneous leaf without the missing flag.
	if n.IsMissing() || (n.HasError() && n.ChildCount() == 0 && n.Type() != "ERROR") {
		return append(acc, SyntaxError{Location: NodeLocation(t, n), Missing: true})
	}

	if n.Type() == "ERROR" {
		return append(acc, SyntaxError{Location: NodeLocation(t, n)})
	}

	if !n.HasError() {
		return acc
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		acc = t.collectErrors(n.Child(i), acc)
	}

	return acc
}
