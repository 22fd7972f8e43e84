package keyword

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidelint/internal/semantic"
	"guidelint/internal/semantic/semantictest"
	"guidelint/internal/syntax"
)

const source = `
using System.Collections.Generic;

class Constructs
{
    private readonly object gate = new object();

    IEnumerable<int> Items(int max)
    {
        foreach (var x in new int[0]) { }
        for (int i = 0; i < max; i++)
        {
            if (i > 5) yield break;
            yield return i;
        }
    }

    int Work(bool flag, object o)
    {
        do
        {
            flag = !flag;
        }
        while (flag);

        while (flag) { }
        lock (gate) { }
        using (var r = new System.IO.MemoryStream()) { }

        switch (o)
        {
            case 1:
                break;
            case string s:
                break;
            default:
                break;
        }

        string name = o as string ?? throw new System.Exception();
        return 42;
    }
}
`

func compile(t *testing.T) *semantic.Compilation {
	t.Helper()

	comp, _ := semantictest.Compile(t, source)

	return comp
}

func text(op semantic.Operation, loc syntax.Location) string {
	return loc.Text(op.Tree().Source)
}

func TestLocate_SingleKeywords(t *testing.T) {
	comp := compile(t)

	tests := []struct {
		kind semantic.OperationKind
		want string
	}{
		{semantic.KindIf, "if"},
		{semantic.KindWhileLoop, "while"},
		{semantic.KindForLoop, "for"},
		{semantic.KindForEachLoop, "foreach"},
		{semantic.KindLock, "lock"},
		{semantic.KindUsing, "using"},
		{semantic.KindSwitch, "switch"},
		{semantic.KindSingleValueCaseClause, "case"},
		{semantic.KindDefaultCaseClause, "default"},
		{semantic.KindThrow, "throw"},
		{semantic.KindReturn, "return"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			op := semantictest.First(t, comp, tt.kind)
			loc := Locate(op)
			assert.Equal(t, tt.want, text(op, loc))
			assert.Equal(t, op.Tree().Path, loc.Path)
		})
	}
}

func TestLocate_DoLoopStrategy(t *testing.T) {
	comp := compile(t)
	loop := semantictest.First(t, comp, semantic.KindDoLoop)

	leading := LocateWith(loop, PreferLeadingKeyword)
	assert.Equal(t, "do", text(loop, leading))
	assert.Equal(t, leading, Locate(loop), "leading is the default")

	trailing := LocateWith(loop, PreferTrailingKeyword)
	assert.Equal(t, "while", text(loop, trailing))
	assert.Greater(t, trailing.Start.Line, leading.Start.Line)
}

func TestLocate_StrategyOnlyAffectsDoLoops(t *testing.T) {
	comp := compile(t)

	for _, kind := range []semantic.OperationKind{semantic.KindWhileLoop, semantic.KindIf, semantic.KindReturn} {
		op := semantictest.First(t, comp, kind)
		assert.Equal(t, LocateWith(op, PreferLeadingKeyword), LocateWith(op, PreferTrailingKeyword))
	}
}

func TestLocate_Yield(t *testing.T) {
	comp := compile(t)

	ret := semantictest.First(t, comp, semantic.KindYieldReturn)
	loc := Locate(ret)
	assert.Equal(t, "yield return", text(ret, loc))
	assert.Equal(t, ret.Syntax().StartByte(), loc.StartByte)

	brk := semantictest.First(t, comp, semantic.KindYieldBreak)
	assert.Equal(t, "yield break", text(brk, Locate(brk)))
}

func TestLocate_PlainReturnCoversKeywordOnly(t *testing.T) {
	comp := compile(t)

	ret := semantictest.Find(t, comp, semantic.KindReturn, "return 42;")
	loc := Locate(ret)
	assert.Equal(t, "return", text(ret, loc))
	assert.Equal(t, uint32(len("return")), loc.EndByte-loc.StartByte)
}

func TestLocate_Idempotent(t *testing.T) {
	comp := compile(t)

	for _, kind := range []semantic.OperationKind{semantic.KindDoLoop, semantic.KindYieldReturn, semantic.KindSwitch} {
		op := semantictest.First(t, comp, kind)
		for _, s := range []Strategy{PreferLeadingKeyword, PreferTrailingKeyword} {
			assert.Equal(t, LocateWith(op, s), LocateWith(op, s))
		}
	}
}

func TestLocate_Unreachable(t *testing.T) {
	comp := compile(t)

	assertUnreachable := func(t *testing.T, op semantic.Operation) {
		t.Helper()

		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a panic")
			err, ok := r.(error)
			require.True(t, ok, "panic value should be an error, got %T", r)
			assert.True(t, errors.Is(err, ErrUnreachable))
		}()

		loc := Locate(op)
		t.Errorf("unexpected location %v", loc)
	}

	t.Run("pattern case clause", func(t *testing.T) {
		assertUnreachable(t, semantictest.First(t, comp, semantic.KindPatternCaseClause))
	})

	t.Run("unsupported kinds", func(t *testing.T) {
		for _, kind := range []semantic.OperationKind{semantic.KindBlock, semantic.KindLiteral, semantic.KindInvocation} {
			ops := semantictest.All(comp, kind)
			if len(ops) == 0 {
				continue
			}
			t.Run(kind.String(), func(t *testing.T) {
				assertUnreachable(t, ops[0])
			})
		}
	})

	t.Run("nil", func(t *testing.T) {
		assertUnreachable(t, nil)
	})
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "leading", PreferLeadingKeyword.String())
	assert.Equal(t, "trailing", PreferTrailingKeyword.String())
	assert.Equal(t, "Strategy(9)", fmt.Sprint(Strategy(9)))
}
