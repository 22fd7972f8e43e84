// Package semantictest builds compilations from inline C# for tests.
package semantictest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"guidelint/internal/semantic"
	"guidelint/internal/syntax"
)

// Compile parses each source as File<i>.cs and binds them together.
func Compile(t testing.TB, sources ...string) (*semantic.Compilation, []*syntax.Tree) {
	t.Helper()

	trees := make([]*syntax.Tree, 0, len(sources))
	for i, src := range sources {
		tree, err := syntax.Parse(context.Background(), fmt.Sprintf("File%d.cs", i), []byte(src))
		require.NoError(t, err)
		trees = append(trees, tree)
	}

	return semantic.NewCompilation(trees...), trees
}

// All returns every operation of kind in the compilation, in tree order.
func All(comp *semantic.Compilation, kind semantic.OperationKind) []semantic.Operation {
	var out []semantic.Operation
	for _, tree := range comp.Trees() {
		for _, root := range comp.Operations(tree) {
			semantic.Inspect(root, func(op semantic.Operation) bool {
				if op.Kind() == kind {
					out = append(out, op)
				}
				return true
			})
		}
	}

	return out
}

// Find returns the operation of kind whose source text is text.
func Find(t testing.TB, comp *semantic.Compilation, kind semantic.OperationKind, text string) semantic.Operation {
	t.Helper()

	for _, op := range All(comp, kind) {
		if op.Syntax() != nil && op.Tree().Content(op.Syntax()) == text {
			return op
		}
	}

	require.Failf(t, "operation not found", "no %s with text %q", kind, text)

	return nil
}

// First returns the first operation of kind.
func First(t testing.TB, comp *semantic.Compilation, kind semantic.OperationKind) semantic.Operation {
	t.Helper()

	ops := All(comp, kind)
	require.NotEmpty(t, ops, "no %s operation", kind)

	return ops[0]
}
