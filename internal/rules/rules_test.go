package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidelint/internal/analysis"
	"guidelint/internal/diagnostic"
	"guidelint/internal/semantic/semantictest"
)

func run(t *testing.T, rule analysis.Rule, src string) []diagnostic.Diagnostic {
	t.Helper()

	comp, _ := semantictest.Compile(t, src)
	diags, err := analysis.NewAnalyzer([]analysis.Rule{rule}).Run(context.Background(), comp)
	require.NoError(t, err)

	return diags
}

func texts(src string, diags []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Location.Text([]byte(src)))
	}

	return out
}

func messages(diags []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}

	return out
}

func TestAll(t *testing.T) {
	seen := make(map[string]bool)
	var prev string
	for _, r := range All() {
		d := r.Descriptor()
		assert.False(t, seen[d.ID], "duplicate %s", d.ID)
		assert.Greater(t, d.ID, prev)
		assert.NotEmpty(t, d.HelpLink(), d.ID)
		seen[d.ID] = true
		prev = d.ID
	}
	assert.Len(t, seen, 6)
}

func TestTypeNameContainsAnd(t *testing.T) {
	src := `
class OrderAndInvoice { }
class Android { }
interface IReadAndWrite { }
struct Band { }
`
	diags := run(t, TypeNameContainsAnd{}, src)

	assert.Equal(t, []string{
		"Type 'OrderAndInvoice' contains the word 'and'.",
		"Type 'IReadAndWrite' contains the word 'and'.",
	}, messages(diags))
	assert.Equal(t, []string{"OrderAndInvoice", "IReadAndWrite"}, texts(src, diags))
	assert.Equal(t, diagnostic.ClassDesign, diags[0].Category)
}

func TestNullReturnedForCollection(t *testing.T) {
	src := `
using System.Collections.Generic;
using System.Threading.Tasks;

class Repo
{
    public string Name() { return null; }
    public int[] Ids() { return null; }
    public List<int> Items() { return null; }
    public Task Save() { return null; }
    public object Any() { return null; }
    public string Empty() { return ""; }
    public IEnumerable<int> Lazy() { yield return 1; }
    public string Title { get { return null; } }

    void Local()
    {
        string Inner() { return null; }
        Inner();
    }

    System.Func<string> Lambda()
    {
        return () => { return null; };
    }
}
`
	diags := run(t, NullReturnedForCollection{}, src)

	require.Len(t, diags, 6)
	for _, text := range texts(src, diags) {
		assert.Equal(t, "return", text)
	}
	assert.Equal(t,
		"null is returned from Repo.Name() which has return type of string, collection or task.",
		diags[0].Message)
	assert.Contains(t, diags[4].Message, "Repo.Title")
	assert.Contains(t, diags[5].Message, "Inner()")
}

func TestDoubleNegativeCondition(t *testing.T) {
	src := `
class Shipment
{
    bool IsNotShipped;
    bool NoItems { get; }
    bool Ready;

    bool HasNoLabel() => false;
    bool Nothing() => true;

    void M(bool notFound, Shipment other)
    {
        if (!IsNotShipped) { }
        if (!NoItems) { }
        if (!Ready) { }
        if (!notFound) { }
        if (!HasNoLabel()) { }
        if (!other.IsNotShipped) { }
        if (!Nothing()) { }
    }
}
`
	diags := run(t, DoubleNegativeCondition{}, src)

	assert.Equal(t, []string{
		"Logical not operator is applied on field 'Shipment.IsNotShipped', which has a negation in its name.",
		"Logical not operator is applied on property 'Shipment.NoItems', which has a negation in its name.",
		"Logical not operator is applied on parameter 'notFound', which has a negation in its name.",
		"Logical not operator is applied on method 'Shipment.HasNoLabel()', which has a negation in its name.",
		"Logical not operator is applied on field 'Shipment.IsNotShipped', which has a negation in its name.",
	}, messages(diags))
	require.NotEmpty(t, diags)
	assert.Equal(t, "!IsNotShipped", texts(src, diags)[0])
}

func TestMissingBlock(t *testing.T) {
	src := `
class Flow
{
    void M(int x, int[] items)
    {
        if (x > 0) x++;
        if (x > 1) { } else x--;
        if (x > 2) { } else if (x > 3) { } else { }
        while (x > 0) x--;
        do x++; while (x < 10);
        for (int i = 0; i < x; i++) x++;
        foreach (var item in items) x += item;
        switch (x)
        {
            case 1: x++; break;
            case 2: { x--; break; }
            default: break;
        }
        switch ((object)x)
        {
            case int n when n > 0: break;
        }
    }
}
`
	diags := run(t, MissingBlock{}, src)

	assert.Equal(t,
		[]string{"if", "else", "while", "do", "for", "foreach", "case", "default"},
		texts(src, diags))
	require.NotEmpty(t, diags)
	assert.Equal(t, "The if statement should be followed by a block.", diags[0].Message)
	assert.Equal(t, "The else statement should be followed by a block.", diags[1].Message)
}

func TestMissingBlock_StackedLabels(t *testing.T) {
	src := `
class Flow
{
    void M(int x)
    {
        switch (x)
        {
            case 1:
            case 2: x++; break;
        }
        switch ((object)x)
        {
            case 3:
            case int n when n > 5: x--; break;
        }
    }
}
`
	diags := run(t, MissingBlock{}, src)

	require.Len(t, diags, 2)
	assert.Equal(t, []string{"case", "case"}, texts(src, diags))
	assert.Equal(t, uint32(strings.Index(src, "case 1")), diags[0].Location.StartByte)
	assert.Equal(t, uint32(strings.Index(src, "case 3")), diags[1].Location.StartByte)
}

func TestMissingDefaultClause(t *testing.T) {
	src := `
class Choice
{
    void M(int x, object o)
    {
        switch (x)
        {
            case 1: { break; }
        }
        switch (x)
        {
            case 1: { break; }
            default: { break; }
        }
        switch (o)
        {
            case string s: { break; }
        }
    }
}
`
	diags := run(t, MissingDefaultClause{}, src)

	require.Len(t, diags, 2)
	assert.Equal(t, []string{"switch", "switch"}, texts(src, diags))
	assert.Equal(t, "Missing default clause in switch statement.", diags[0].Message)
	assert.Less(t, diags[0].Location.Start.Line, diags[1].Location.Start.Line)
}

func TestComplexCondition(t *testing.T) {
	src := `
class Cond
{
    bool A;
    bool B;
    bool C;
    bool D;

    bool Run(System.Func<bool> f) => f();

    void M()
    {
        if (A && B || C) { }
        if (A && B || C && D) { }
        while (A || B || C || D) { }
        do { } while (A && B && C && !D);
        for (int i = 0; A && B && C && i < 3; i++) { }
        if (Run(() => A && B && C && D)) { }
    }
}
`
	diags := run(t, ComplexCondition{}, src)

	assert.Equal(t, []string{"if", "while", "while", "for"}, texts(src, diags))
	require.Len(t, diags, 4)
	assert.Equal(t,
		"Condition of if statement contains 3 logical operators. Extract it into a well-named member.",
		diags[0].Message)
	assert.Contains(t, diags[2].Message, "while statement")
	assert.Greater(t, diags[2].Location.StartByte, diags[1].Location.StartByte)
}
