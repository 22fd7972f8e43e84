// Package keyword locates the keyword of a control construct, the span a
// diagnostic about the construct underlines.
//
// Unlike identifier resolution, locating is assertive: callers know which
// construct they hold, so an operation without a keyword mapping is a bug in
// the caller or in this table. Such calls panic with an error wrapping
// ErrUnreachable.
package keyword

import (
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/semantic"
	"guidelint/internal/syntax"
)

// ErrUnreachable is wrapped by the panic value of a failed lookup.
var ErrUnreachable = errors.New("unreachable keyword lookup")

// Strategy picks between the two keywords of a do/while loop. It has no
// effect on other constructs.
type Strategy uint8

const (
	// PreferLeadingKeyword selects "do".
	PreferLeadingKeyword Strategy = iota
	// PreferTrailingKeyword selects "while".
	PreferTrailingKeyword
)

func (s Strategy) String() string {
	switch s {
	case PreferLeadingKeyword:
		return "leading"
	case PreferTrailingKeyword:
		return "trailing"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// Locate returns the keyword location of op under PreferLeadingKeyword.
func Locate(op semantic.Operation) syntax.Location {
	return LocateWith(op, PreferLeadingKeyword)
}

// LocateWith returns the keyword location of op. Yield statements span both
// keywords, "yield return" and "yield break"; everything else is a single
// token.
func LocateWith(op semantic.Operation, strategy Strategy) syntax.Location {
	if op == nil {
		unreachable("nil operation")
	}

	switch op := op.(type) {
	case *semantic.If:
		return single(op, "if")
	case *semantic.WhileLoop:
		return single(op, "while")
	case *semantic.ForLoop:
		return single(op, "for")
	case *semantic.ForEachLoop:
		return single(op, "foreach")
	case *semantic.DoLoop:
		if strategy == PreferTrailingKeyword {
			return single(op, "while")
		}
		return single(op, "do")
	case *semantic.Using:
		return single(op, "using")
	case *semantic.Lock:
		return single(op, "lock")
	case *semantic.Switch:
		return single(op, "switch")
	case *semantic.SingleValueCaseClause:
		return label(op, "case")
	case *semantic.DefaultCaseClause:
		return label(op, "default")
	case *semantic.Return:
		if op.Yield {
			return span(op, "yield", "return")
		}
		return single(op, "return")
	case *semantic.YieldBreak:
		return span(op, "yield", "break")
	case *semantic.Throw:
		return single(op, "throw")
	case *semantic.PatternCaseClause:
		unreachable("pattern case clauses have no keyword mapping")
	}

	unreachable("no keyword mapping for %s", op.Kind())

	return syntax.Location{}
}

func unreachable(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrUnreachable, fmt.Sprintf(format, args...)))
}

func origin(op semantic.Operation) *sitter.Node {
	n := op.Syntax()
	if n == nil || op.Tree() == nil {
		unreachable("%s has no syntax", op.Kind())
	}

	return n
}

func find(op semantic.Operation, n *sitter.Node, kw string) *sitter.Node {
	tok := syntax.Keyword(n, kw)
	if tok == nil {
		unreachable("%s syntax %s has no %q keyword", op.Kind(), n.Type(), kw)
	}

	return tok
}

func single(op semantic.Operation, kw string) syntax.Location {
	tok := find(op, origin(op), kw)

	return syntax.NodeLocation(op.Tree(), tok)
}

func span(op semantic.Operation, first, second string) syntax.Location {
	n := origin(op)
	from, to := find(op, n, first), find(op, n, second)

	return syntax.SpanLocation(op.Tree(), from, to)
}

// label finds the keyword of a case label. Grammars without label nodes give
// the clause the label's value or keyword token as syntax, in which case the
// keyword is the nearest preceding sibling of that type.
func label(op semantic.Operation, kw string) syntax.Location {
	n := origin(op)
	if tok := syntax.Keyword(n, kw); tok != nil {
		return syntax.NodeLocation(op.Tree(), tok)
	}

	for prev := n.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if !prev.IsNamed() && prev.Type() == kw {
			return syntax.NodeLocation(op.Tree(), prev)
		}
	}

	unreachable("%s syntax %s has no %q keyword", op.Kind(), n.Type(), kw)

	return syntax.Location{}
}
