package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/syntax"
)

// Operation is a node of the bound tree. The set of implementations is
// closed: every variant is declared in this package and embeds operation.
type Operation interface {
	Kind() OperationKind
	// Syntax is the originating syntax node, nil for implicit operations.
	Syntax() *sitter.Node
	Tree() *syntax.Tree
	Parent() Operation
	Children() []Operation
	IsImplicit() bool

	base() *operation
}

type operation struct {
	syntax   *sitter.Node
	tree     *syntax.Tree
	parent   Operation
	children []Operation
}

func (o *operation) Syntax() *sitter.Node    { return o.syntax }
func (o *operation) Tree() *syntax.Tree      { return o.tree }
func (o *operation) Parent() Operation       { return o.parent }
func (o *operation) Children() []Operation   { return o.children }
func (o *operation) IsImplicit() bool        { return o.syntax == nil }
func (o *operation) base() *operation        { return o }

// adopt appends the non-nil children to parent in the given order.
func adopt(parent Operation, children ...Operation) {
	p := parent.base()
	for _, child := range children {
		if child == nil {
			continue
		}
		child.base().parent = parent
		p.children = append(p.children, child)
	}
}

// Unrecognized is syntax the binder does not model.
type Unrecognized struct{ operation }

func (*Unrecognized) Kind() OperationKind { return KindNone }

// Invalid is code that failed to bind: unknown names, calls to methods
// outside the compilation and member accesses on unknown types.
type Invalid struct{ operation }

func (*Invalid) Kind() OperationKind { return KindInvalid }

// MethodBody is the root of a bound member body.
type MethodBody struct {
	operation
	Owner      Symbol
	ReturnType Type
	Body       Operation
}

func (*MethodBody) Kind() OperationKind { return KindMethodBody }

type Block struct {
	operation
	Operations []Operation
}

func (*Block) Kind() OperationKind { return KindBlock }

type ExpressionStatement struct {
	operation
	Operation Operation
}

func (*ExpressionStatement) Kind() OperationKind { return KindExpressionStatement }

type VariableDeclaration struct {
	operation
	Locals []*LocalSymbol
}

func (*VariableDeclaration) Kind() OperationKind { return KindVariableDeclaration }

type LocalFunctionOperation struct {
	operation
	Symbol *MethodSymbol
	Body   Operation
}

func (*LocalFunctionOperation) Kind() OperationKind { return KindLocalFunction }

// AnonymousFunction is a lambda or anonymous method.
type AnonymousFunction struct {
	operation
	Parameters []*ParameterSymbol
	Body       Operation
}

func (*AnonymousFunction) Kind() OperationKind { return KindAnonymousFunction }

type Literal struct {
	operation
	Type Type
	Null bool
}

func (*Literal) Kind() OperationKind { return KindLiteral }

type LocalReference struct {
	operation
	Local *LocalSymbol
}

func (*LocalReference) Kind() OperationKind { return KindLocalReference }

type ParameterReference struct {
	operation
	Parameter *ParameterSymbol
}

func (*ParameterReference) Kind() OperationKind { return KindParameterReference }

// MemberReference is implemented by the field, property and event references.
type MemberReference interface {
	Operation
	Member() *MemberSymbol
	// Instance is the receiver, nil for static members.
	Instance() Operation
}

type memberReference struct {
	operation
	member   *MemberSymbol
	instance Operation
}

func (r *memberReference) Member() *MemberSymbol { return r.member }
func (r *memberReference) Instance() Operation   { return r.instance }

type FieldReference struct{ memberReference }

func (*FieldReference) Kind() OperationKind { return KindFieldReference }

type PropertyReference struct{ memberReference }

func (*PropertyReference) Kind() OperationKind { return KindPropertyReference }

type EventReference struct{ memberReference }

func (*EventReference) Kind() OperationKind { return KindEventReference }

// InstanceReference is this or base, explicit or implied by a member access.
type InstanceReference struct {
	operation
	Type *TypeSymbol
}

func (*InstanceReference) Kind() OperationKind { return KindInstanceReference }

type Invocation struct {
	operation
	TargetMethod *MethodSymbol
	Instance     Operation
	Arguments    []Operation
}

func (*Invocation) Kind() OperationKind { return KindInvocation }

type ObjectCreation struct {
	operation
	Type        Type
	Constructor *MethodSymbol
	Arguments   []Operation
}

func (*ObjectCreation) Kind() OperationKind { return KindObjectCreation }

type UnaryOperator struct {
	operation
	OperatorKind UnaryOperatorKind
	Operand      Operation
}

func (*UnaryOperator) Kind() OperationKind { return KindUnaryOperator }

type BinaryOperator struct {
	operation
	OperatorKind BinaryOperatorKind
	Left, Right  Operation
}

func (*BinaryOperator) Kind() OperationKind { return KindBinaryOperator }

type If struct {
	operation
	Condition Operation
	WhenTrue  Operation
	WhenFalse Operation
}

func (*If) Kind() OperationKind { return KindIf }

type WhileLoop struct {
	operation
	Condition Operation
	Body      Operation
}

func (*WhileLoop) Kind() OperationKind { return KindWhileLoop }

// DoLoop is a do/while loop. Its syntax carries two keywords, do and while.
type DoLoop struct {
	operation
	Body      Operation
	Condition Operation
}

func (*DoLoop) Kind() OperationKind { return KindDoLoop }

type ForLoop struct {
	operation
	Condition Operation
	Body      Operation
}

func (*ForLoop) Kind() OperationKind { return KindForLoop }

type ForEachLoop struct {
	operation
	Local      *LocalSymbol
	Collection Operation
	Body       Operation
}

func (*ForEachLoop) Kind() OperationKind { return KindForEachLoop }

// Using is a using statement with a resource and a body.
type Using struct {
	operation
	Resources Operation
	Body      Operation
}

func (*Using) Kind() OperationKind { return KindUsing }

type Lock struct {
	operation
	LockedValue Operation
	Body        Operation
}

func (*Lock) Kind() OperationKind { return KindLock }

type Switch struct {
	operation
	Value    Operation
	Sections []*SwitchSection
}

func (*Switch) Kind() OperationKind { return KindSwitch }

// HasDefault reports whether any section carries a default label.
func (s *Switch) HasDefault() bool {
	for _, section := range s.Sections {
		for _, clause := range section.Clauses {
			if clause.Kind() == KindDefaultCaseClause {
				return true
			}
		}
	}

	return false
}

type SwitchSection struct {
	operation
	Clauses []CaseClause
	Body    []Operation
}

func (*SwitchSection) Kind() OperationKind { return KindSwitchSection }

// CaseClause is one label of a switch section.
type CaseClause interface {
	Operation
	caseClause()
}

// SingleValueCaseClause is "case <constant>:".
type SingleValueCaseClause struct {
	operation
	Value Operation
}

func (*SingleValueCaseClause) Kind() OperationKind { return KindSingleValueCaseClause }
func (*SingleValueCaseClause) caseClause()         {}

type DefaultCaseClause struct{ operation }

func (*DefaultCaseClause) Kind() OperationKind { return KindDefaultCaseClause }
func (*DefaultCaseClause) caseClause()         {}

// PatternCaseClause is "case <pattern> [when <guard>]:".
type PatternCaseClause struct {
	operation
	Pattern *sitter.Node
	Guard   Operation
}

func (*PatternCaseClause) Kind() OperationKind { return KindPatternCaseClause }
func (*PatternCaseClause) caseClause()         {}

// Return is a return statement or, when Yield is set, a yield return.
type Return struct {
	operation
	Value Operation
	Yield bool
}

func (r *Return) Kind() OperationKind {
	if r.Yield {
		return KindYieldReturn
	}

	return KindReturn
}

type YieldBreak struct{ operation }

func (*YieldBreak) Kind() OperationKind { return KindYieldBreak }

// Throw is a throw statement or a throw expression.
type Throw struct {
	operation
	Exception Operation
}

func (*Throw) Kind() OperationKind { return KindThrow }

// Inspect traverses the tree rooted at op in pre-order. If fn returns false,
// the children of the current operation are skipped.
func Inspect(op Operation, fn func(Operation) bool) {
	if op == nil || !fn(op) {
		return
	}

	for _, child := range op.Children() {
		Inspect(child, fn)
	}
}

// Enclosing returns the nearest ancestor of op that is a function body:
// a MethodBody, LocalFunction or AnonymousFunction.
func Enclosing(op Operation) Operation {
	for p := op.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case KindMethodBody, KindLocalFunction, KindAnonymousFunction:
			return p
		}
	}

	return nil
}
