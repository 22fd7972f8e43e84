package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidelint/internal/semantic"
	"guidelint/internal/semantic/semantictest"
)

const widget = `
namespace Shop.Inventory
{
    using System;

    public partial class Widget : Base, IDisposable
    {
        private int count;
        public static readonly string Label = "widget";
        public string Name { get; set; }
        public event EventHandler Changed;

        public Widget(int initial) { count = initial; }

        public void Add(int amount, ref string note, params object[] tags) { }

        public static Widget operator +(Widget a, Widget b) => a;

        ~Widget() { }

        public class Part { public int Size; }
    }

    public partial class Widget
    {
        public void Reset() { }
    }

    public record Point(int X, int Y);

    public enum Color { Red, Green }
}
`

func TestCompilation_Declarations(t *testing.T) {
	comp, trees := semantictest.Compile(t, widget)

	w := comp.LookupType("Widget")
	require.NotNil(t, w)
	assert.Equal(t, "Shop.Inventory", w.Namespace())
	assert.Equal(t, semantic.TypeClass, w.TypeKind())
	assert.Equal(t, []string{"Base", "IDisposable"}, w.Bases())
	assert.Len(t, comp.TypesIn(trees[0]), len(comp.Types()))

	t.Run("Partial Declarations Merge", func(t *testing.T) {
		var names []string
		for _, m := range w.Members() {
			names = append(names, m.Name())
		}
		assert.Contains(t, names, "count")
		assert.Contains(t, names, "Reset")
	})

	t.Run("Member Kinds", func(t *testing.T) {
		kinds := make(map[string]semantic.SymbolKind)
		for _, m := range w.Members() {
			kinds[m.Name()] = m.Kind()
		}
		assert.Equal(t, semantic.Field, kinds["count"])
		assert.Equal(t, semantic.Field, kinds["Label"])
		assert.Equal(t, semantic.Property, kinds["Name"])
		assert.Equal(t, semantic.Event, kinds["Changed"])
		assert.Equal(t, semantic.Constructor, kinds["Widget"])
		assert.Equal(t, semantic.Method, kinds["Add"])
		assert.Equal(t, semantic.Operator, kinds["operator +"])
		assert.Equal(t, semantic.Destructor, kinds["~Widget"])
	})

	t.Run("Display Strings", func(t *testing.T) {
		for _, m := range w.Members() {
			switch m.Name() {
			case "count":
				assert.Equal(t, "Widget.count", m.Display())
			case "Add":
				assert.Equal(t, "Widget.Add(int, ref string, params object[])", m.Display())
			}
		}

		part := comp.LookupType("Part")
		require.NotNil(t, part)
		assert.Equal(t, "Widget.Part", part.Display())
	})

	t.Run("Records And Enums", func(t *testing.T) {
		point := comp.LookupType("Point")
		require.NotNil(t, point)
		assert.Equal(t, semantic.TypeRecord, point.TypeKind())
		require.Len(t, point.Members(), 2)
		assert.Equal(t, semantic.Property, point.Members()[0].Kind())

		color := comp.LookupType("Color")
		require.NotNil(t, color)
		assert.Equal(t, semantic.TypeEnum, color.TypeKind())
		assert.Empty(t, color.Members())
	})

	assert.Nil(t, comp.LookupType("Missing"))
	assert.Same(t, w, comp.LookupType("Shop.Inventory.Widget"))
	assert.Same(t, w, comp.LookupType("Widget?"))
}

func TestCompilation_CrossFileLookup(t *testing.T) {
	comp, trees := semantictest.Compile(t,
		`class Counter { public int Total; }`,
		`class User { int Read(Counter c) { return c.Total; } }`,
	)

	require.Len(t, comp.Operations(trees[0]), 0)
	ref := semantictest.First(t, comp, semantic.KindFieldReference).(*semantic.FieldReference)
	assert.Equal(t, "Counter.Total", ref.Member().Display())
	require.NotNil(t, ref.Instance())
	assert.Equal(t, semantic.KindParameterReference, ref.Instance().Kind())
}

func TestCompilation_OperationsAreStable(t *testing.T) {
	comp, trees := semantictest.Compile(t, `class C { void M() { } void N() => M(); }`)

	first := comp.Operations(trees[0])
	second := comp.Operations(trees[0])
	require.Len(t, first, 2)
	for i := range first {
		assert.Same(t, first[i], second[i])
	}

	assert.Nil(t, comp.Operations(nil))
}

func TestCompilation_HasErrors(t *testing.T) {
	comp, trees := semantictest.Compile(t, `
class C
{
    int Good() { return 1; }
    int Bad() { return 1 +; }
}`)

	roots := comp.Operations(trees[0])
	require.Len(t, roots, 2)
	assert.False(t, comp.HasErrors(roots[0]))
	assert.True(t, comp.HasErrors(roots[1]))

	assert.True(t, comp.HasErrors(nil), "a missing operation counts as erroneous")

	// the receiver implied by an unqualified member has no syntax
	comp, _ = semantictest.Compile(t, `class D { int n; int Get() { return n; } }`)
	ref := semantictest.First(t, comp, semantic.KindFieldReference).(*semantic.FieldReference)
	require.NotNil(t, ref.Instance())
	assert.True(t, ref.Instance().IsImplicit())
	assert.True(t, comp.HasErrors(ref.Instance()))
	assert.False(t, comp.HasErrors(ref))
}
