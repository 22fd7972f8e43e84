package analysis

import (
	"context"

	"guidelint/internal/diagnostic"
	"guidelint/internal/semantic"
)

// Rule is one guideline check. Initialize registers the actions the rule
// wants invoked; it is called once per run.
type Rule interface {
	Descriptor() diagnostic.Descriptor
	Initialize(r Registrar)
}

// OperationAction is invoked for each operation of a registered kind.
type OperationAction func(c *OperationContext)

// SymbolAction is invoked for each declared type of a registered kind.
type SymbolAction func(c *SymbolContext)

// Registrar collects the actions of a rule.
type Registrar interface {
	RegisterOperationAction(action OperationAction, kinds ...semantic.OperationKind)
	RegisterSymbolAction(action SymbolAction, kinds ...semantic.TypeKind)
}

// OperationContext is handed to an OperationAction.
type OperationContext struct {
	Context     context.Context
	Compilation *semantic.Compilation
	Operation   semantic.Operation

	report func(diagnostic.Diagnostic)
}

// Report records a diagnostic.
func (c *OperationContext) Report(d diagnostic.Diagnostic) {
	c.report(d)
}

// SymbolContext is handed to a SymbolAction.
type SymbolContext struct {
	Context     context.Context
	Compilation *semantic.Compilation
	Symbol      *semantic.TypeSymbol

	report func(diagnostic.Diagnostic)
}

// Report records a diagnostic.
func (c *SymbolContext) Report(d diagnostic.Diagnostic) {
	c.report(d)
}

// SkipInvalid wraps action so it is not invoked on operations whose source
// overlaps a syntax error.
func SkipInvalid(action OperationAction) OperationAction {
	return func(c *OperationContext) {
		if c.Compilation.HasErrors(c.Operation) {
			return
		}
		action(c)
	}
}

// SkipEmptyName wraps action so it is not invoked on types without a name,
// which the parser produces while recovering from errors.
func SkipEmptyName(action SymbolAction) SymbolAction {
	return func(c *SymbolContext) {
		if c.Symbol.Name() == "" {
			return
		}
		action(c)
	}
}

type operationEntry struct {
	rule   string
	action OperationAction
}

type symbolEntry struct {
	rule   string
	action SymbolAction
}

// registry is the Registrar implementation. Actions are keyed by kind.
type registry struct {
	current    string
	operations map[semantic.OperationKind][]operationEntry
	symbols    map[semantic.TypeKind][]symbolEntry
}

func newRegistry() *registry {
	return &registry{
		operations: make(map[semantic.OperationKind][]operationEntry),
		symbols:    make(map[semantic.TypeKind][]symbolEntry),
	}
}

func (r *registry) RegisterOperationAction(action OperationAction, kinds ...semantic.OperationKind) {
	for _, kind := range kinds {
		r.operations[kind] = append(r.operations[kind], operationEntry{rule: r.current, action: action})
	}
}

func (r *registry) RegisterSymbolAction(action SymbolAction, kinds ...semantic.TypeKind) {
	for _, kind := range kinds {
		r.symbols[kind] = append(r.symbols[kind], symbolEntry{rule: r.current, action: action})
	}
}
