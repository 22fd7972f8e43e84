// Package rules is the guideline catalog. Each rule resolves what it flags
// through the identifier resolver and where it points through the keyword
// resolver.
package rules

import (
	"guidelint/internal/analysis"
	"guidelint/internal/semantic"
)

// All returns the catalog in rule id order.
func All() []analysis.Rule {
	return []analysis.Rule{
		TypeNameContainsAnd{},
		NullReturnedForCollection{},
		DoubleNegativeCondition{},
		MissingBlock{},
		MissingDefaultClause{},
		ComplexCondition{},
	}
}

// statementKeyword names the construct a control-flow operation comes from.
func statementKeyword(kind semantic.OperationKind) string {
	switch kind {
	case semantic.KindIf:
		return "if"
	case semantic.KindWhileLoop:
		return "while"
	case semantic.KindDoLoop:
		return "do"
	case semantic.KindForLoop:
		return "for"
	case semantic.KindForEachLoop:
		return "foreach"
	case semantic.KindSwitch:
		return "switch"
	}
	return kind.String()
}
