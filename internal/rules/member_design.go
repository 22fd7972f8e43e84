package rules

import (
	"guidelint/internal/analysis"
	"guidelint/internal/diagnostic"
	"guidelint/internal/keyword"
	"guidelint/internal/semantic"
)

var nullReturnedForCollection = diagnostic.Descriptor{
	ID:            "AV1135",
	Title:         "Do not return null for strings, collections or tasks",
	MessageFormat: "null is returned from %s which has return type of string, collection or task.",
	Category:      diagnostic.MemberDesign,
	Severity:      diagnostic.SevWarning,
	Description:   "Callers do not expect null from a member returning a string, a collection or a task.",
}

var nonNullableReturnTypes = map[string]bool{
	"string":               true,
	"String":               true,
	"Task":                 true,
	"ValueTask":            true,
	"IEnumerable":          true,
	"IAsyncEnumerable":     true,
	"ICollection":          true,
	"IList":                true,
	"IDictionary":          true,
	"IReadOnlyCollection":  true,
	"IReadOnlyList":        true,
	"IReadOnlyDictionary":  true,
	"ISet":                 true,
	"IReadOnlySet":         true,
	"List":                 true,
	"HashSet":              true,
	"SortedSet":            true,
	"Dictionary":           true,
	"SortedDictionary":     true,
	"Queue":                true,
	"Stack":                true,
	"LinkedList":           true,
	"Collection":           true,
	"ReadOnlyCollection":   true,
	"ImmutableArray":       true,
	"ImmutableList":        true,
	"ImmutableDictionary":  true,
	"ObservableCollection": true,
}

// NullReturnedForCollection reports "return null" from members whose callers
// expect an empty value instead.
type NullReturnedForCollection struct{}

func (NullReturnedForCollection) Descriptor() diagnostic.Descriptor { return nullReturnedForCollection }

func (r NullReturnedForCollection) Initialize(reg analysis.Registrar) {
	reg.RegisterOperationAction(analysis.SkipInvalid(r.analyzeReturn), semantic.KindReturn)
}

func (NullReturnedForCollection) analyzeReturn(c *analysis.OperationContext) {
	ret, ok := c.Operation.(*semantic.Return)
	if !ok || ret.Yield {
		return
	}
	if lit, ok := ret.Value.(*semantic.Literal); !ok || !lit.Null {
		return
	}

	owner, typ, ok := returningFunction(ret)
	if !ok || !isNonNullableReturn(typ) {
		return
	}

	c.Report(nullReturnedForCollection.New(keyword.Locate(ret), owner))
}

// returningFunction finds the function a return statement exits and its
// declared return type. Lambdas have no declared type and are not reported.
func returningFunction(op semantic.Operation) (string, semantic.Type, bool) {
	switch fn := semantic.Enclosing(op).(type) {
	case *semantic.MethodBody:
		if fn.Owner == nil {
			return "", semantic.Type{}, false
		}
		return fn.Owner.Display(), fn.ReturnType, true
	case *semantic.LocalFunctionOperation:
		if fn.Symbol == nil {
			return "", semantic.Type{}, false
		}
		return fn.Symbol.Display(), fn.Symbol.ReturnType(), true
	}

	return "", semantic.Type{}, false
}

func isNonNullableReturn(t semantic.Type) bool {
	if !t.IsValid() {
		return false
	}
	if t.IsArray() {
		return true
	}

	return nonNullableReturnTypes[t.BaseName()]
}
