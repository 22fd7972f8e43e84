package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidelint/internal/diagnostic"
	"guidelint/internal/keyword"
	"guidelint/internal/semantic"
	"guidelint/internal/semantic/semantictest"
)

// funcRule adapts closures to Rule.
type funcRule struct {
	desc diagnostic.Descriptor
	init func(r Registrar, d diagnostic.Descriptor)
}

func (f funcRule) Descriptor() diagnostic.Descriptor { return f.desc }
func (f funcRule) Initialize(r Registrar)            { f.init(r, f.desc) }

func ifRule(id string) Rule {
	return funcRule{
		desc: diagnostic.Descriptor{ID: id, MessageFormat: "if found", Category: diagnostic.Maintainability, Severity: diagnostic.SevWarning},
		init: func(r Registrar, d diagnostic.Descriptor) {
			r.RegisterOperationAction(func(c *OperationContext) {
				c.Report(d.New(keyword.Locate(c.Operation)))
			}, semantic.KindIf)
		},
	}
}

func typeRule(id string) Rule {
	return funcRule{
		desc: diagnostic.Descriptor{ID: id, MessageFormat: "type %s", Category: diagnostic.ClassDesign},
		init: func(r Registrar, d diagnostic.Descriptor) {
			r.RegisterSymbolAction(func(c *SymbolContext) {
				c.Report(d.New(c.Symbol.Location(), c.Symbol.Name()))
			}, semantic.TypeClass, semantic.TypeStruct)
		},
	}
}

const sources = `
class B
{
    void M(bool x)
    {
        if (x) { }
        if (!x) { }
    }
}
`

const other = `
struct A
{
    void N(bool y) { if (y) { } }
}
`

func TestAnalyzer_Run(t *testing.T) {
	comp, _ := semantictest.Compile(t, sources, other)

	a := NewAnalyzer([]Rule{ifRule("T002"), typeRule("T001")}, WithWorkers(2))
	diags, err := a.Run(context.Background(), comp)
	require.NoError(t, err)
	require.Len(t, diags, 5)

	// File0.cs sorts before File1.cs; within a file by offset.
	assert.Equal(t, "File0.cs", diags[0].Location.Path)
	assert.Equal(t, "T001", diags[0].Rule)
	assert.Equal(t, "type B", diags[0].Message)
	assert.Equal(t, "T002", diags[1].Rule)
	assert.Equal(t, "T002", diags[2].Rule)
	assert.Less(t, diags[1].Location.StartByte, diags[2].Location.StartByte)

	assert.Equal(t, "File1.cs", diags[3].Location.Path)
	assert.Equal(t, "type A", diags[3].Message)
	assert.Equal(t, "T002", diags[4].Rule)
}

func TestAnalyzer_Options(t *testing.T) {
	comp, _ := semantictest.Compile(t, sources)

	t.Run("disabled rules", func(t *testing.T) {
		a := NewAnalyzer([]Rule{ifRule("T002"), typeRule("T001")}, WithDisabled("T002"))
		require.Len(t, a.Rules(), 1)

		diags, err := a.Run(context.Background(), comp)
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Equal(t, "T001", diags[0].Rule)
	})

	t.Run("severity override", func(t *testing.T) {
		a := NewAnalyzer([]Rule{ifRule("T002")}, WithSeverity("T002", diagnostic.SevError))
		diags, err := a.Run(context.Background(), comp)
		require.NoError(t, err)
		require.NotEmpty(t, diags)
		for _, d := range diags {
			assert.Equal(t, diagnostic.SevError, d.Severity)
		}
	})
}

func TestAnalyzer_GeneratedFiles(t *testing.T) {
	comp, _ := semantictest.Compile(t, "// <auto-generated />\n"+sources)

	diags, err := NewAnalyzer([]Rule{ifRule("T002")}).Run(context.Background(), comp)
	require.NoError(t, err)
	assert.Empty(t, diags)

	diags, err = NewAnalyzer([]Rule{ifRule("T002")}, WithGenerated(true)).Run(context.Background(), comp)
	require.NoError(t, err)
	assert.Len(t, diags, 2)
}

func TestAnalyzer_RulePanicBecomesError(t *testing.T) {
	comp, _ := semantictest.Compile(t, `
class C
{
    int M(object o)
    {
        switch (o)
        {
            case string s: return 1;
            default: return 0;
        }
    }
}`)

	broken := funcRule{
		desc: diagnostic.Descriptor{ID: "T900", MessageFormat: "clause"},
		init: func(r Registrar, d diagnostic.Descriptor) {
			r.RegisterOperationAction(func(c *OperationContext) {
				c.Report(d.New(keyword.Locate(c.Operation)))
			}, semantic.KindPatternCaseClause)
		},
	}

	_, err := NewAnalyzer([]Rule{broken}).Run(context.Background(), comp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, keyword.ErrUnreachable))
	assert.Contains(t, err.Error(), "T900")
	assert.Contains(t, err.Error(), "File0.cs")
}

func TestAnalyzer_PanicSurvivesLaterSiblings(t *testing.T) {
	comp, _ := semantictest.Compile(t, `
class C
{
    void M(bool a, bool b)
    {
        if (a) { }
        if (b) { }
    }
}`)

	var visited []string
	firstOnly := funcRule{
		desc: diagnostic.Descriptor{ID: "T901", MessageFormat: "if"},
		init: func(r Registrar, d diagnostic.Descriptor) {
			r.RegisterOperationAction(func(c *OperationContext) {
				text := c.Operation.Tree().Content(c.Operation.Syntax())
				visited = append(visited, text)
				if text == "if (a) { }" {
					panic(keyword.ErrUnreachable)
				}
				c.Report(d.New(keyword.Locate(c.Operation)))
			}, semantic.KindIf)
		},
	}

	diags, err := NewAnalyzer([]Rule{firstOnly}, WithWorkers(1)).Run(context.Background(), comp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, keyword.ErrUnreachable))
	assert.Contains(t, err.Error(), "T901")
	assert.Nil(t, diags)
	assert.Equal(t, []string{"if (a) { }"}, visited, "no action runs after a failure")
}

func TestAnalyzer_Cancelled(t *testing.T) {
	comp, _ := semantictest.Compile(t, sources)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAnalyzer([]Rule{ifRule("T002")}).Run(ctx, comp)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzer_Empty(t *testing.T) {
	diags, err := NewAnalyzer(nil).Run(context.Background(), semantic.NewCompilation())
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestSkipInvalid(t *testing.T) {
	comp, _ := semantictest.Compile(t, `
class C
{
    void Good(bool x) { if (x) { } }
    void Bad(bool x) { if (x) { int y = ; } }
}`)

	var seen int
	action := SkipInvalid(func(c *OperationContext) { seen++ })
	for _, op := range semantictest.All(comp, semantic.KindIf) {
		action(&OperationContext{Compilation: comp, Operation: op})
	}

	assert.Equal(t, 1, seen)
}

func TestSkipEmptyName(t *testing.T) {
	var seen int
	action := SkipEmptyName(func(c *SymbolContext) { seen++ })

	comp, _ := semantictest.Compile(t, `class Named { }`)
	action(&SymbolContext{Compilation: comp, Symbol: comp.LookupType("Named")})

	assert.Equal(t, 1, seen)
}
