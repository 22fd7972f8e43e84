package rules

import (
	"guidelint/internal/analysis"
	"guidelint/internal/diagnostic"
	"guidelint/internal/semantic"
)

var typeNameContainsAnd = diagnostic.Descriptor{
	ID:            "AV1000",
	Title:         "Type contains the word 'and'",
	MessageFormat: "Type '%s' contains the word 'and'.",
	Category:      diagnostic.ClassDesign,
	Severity:      diagnostic.SevWarning,
	Description:   "A class or interface should have a single purpose.",
}

var blacklistedTypeWords = []string{"And"}

// TypeNameContainsAnd reports types whose name joins two concepts with "and".
type TypeNameContainsAnd struct{}

func (TypeNameContainsAnd) Descriptor() diagnostic.Descriptor { return typeNameContainsAnd }

func (r TypeNameContainsAnd) Initialize(reg analysis.Registrar) {
	reg.RegisterSymbolAction(analysis.SkipEmptyName(r.analyzeType),
		semantic.TypeClass, semantic.TypeStruct, semantic.TypeInterface, semantic.TypeRecord, semantic.TypeEnum)
}

func (TypeNameContainsAnd) analyzeType(c *analysis.SymbolContext) {
	if _, ok := containsWord(c.Symbol.Name(), blacklistedTypeWords, true); ok {
		c.Report(typeNameContainsAnd.New(c.Symbol.Location(), c.Symbol.Name()))
	}
}
