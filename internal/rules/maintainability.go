package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/analysis"
	"guidelint/internal/diagnostic"
	"guidelint/internal/identifier"
	"guidelint/internal/keyword"
	"guidelint/internal/semantic"
	"guidelint/internal/syntax"
)

var doubleNegativeCondition = diagnostic.Descriptor{
	ID:            "AV1502",
	Title:         "Logical not operator is applied on a member which has a negation in its name.",
	MessageFormat: "Logical not operator is applied on %s '%s', which has a negation in its name.",
	Category:      diagnostic.Maintainability,
	Severity:      diagnostic.SevWarning,
	Description:   "Double negatives are harder to read than the positive form.",
}

var negatingWords = []string{"No", "Not"}

// DoubleNegativeCondition reports "!" applied to a member named like IsNotFound.
type DoubleNegativeCondition struct{}

func (DoubleNegativeCondition) Descriptor() diagnostic.Descriptor { return doubleNegativeCondition }

func (r DoubleNegativeCondition) Initialize(reg analysis.Registrar) {
	reg.RegisterOperationAction(analysis.SkipInvalid(r.analyzeUnary), semantic.KindUnaryOperator)
}

func (DoubleNegativeCondition) analyzeUnary(c *analysis.OperationContext) {
	unary, ok := c.Operation.(*semantic.UnaryOperator)
	if !ok || unary.OperatorKind != semantic.UnaryLogicalNot {
		return
	}

	info, ok := identifier.Resolve(unary.Operand)
	if !ok {
		return
	}
	if _, ok := containsWord(info.Name.Short, negatingWords, true); !ok {
		return
	}

	loc := syntax.NodeLocation(unary.Tree(), unary.Syntax())
	c.Report(doubleNegativeCondition.New(loc, info.Kind.String(), info.Name.Display))
}

var missingBlock = diagnostic.Descriptor{
	ID:            "AV1535",
	Title:         "Add a block after all flow control keywords, even if it is empty",
	MessageFormat: "The %s statement should be followed by a block.",
	Category:      diagnostic.Maintainability,
	Severity:      diagnostic.SevWarning,
	Description:   "A nested statement without braces invites mistakes when another statement is added.",
}

// MissingBlock reports flow control statements whose body is not a block.
type MissingBlock struct{}

func (MissingBlock) Descriptor() diagnostic.Descriptor { return missingBlock }

func (r MissingBlock) Initialize(reg analysis.Registrar) {
	reg.RegisterOperationAction(analysis.SkipInvalid(r.analyzeIf), semantic.KindIf)
	reg.RegisterOperationAction(analysis.SkipInvalid(r.analyzeLoop),
		semantic.KindWhileLoop, semantic.KindDoLoop, semantic.KindForLoop, semantic.KindForEachLoop)
	reg.RegisterOperationAction(analysis.SkipInvalid(r.analyzeSection), semantic.KindSwitchSection)
}

func (MissingBlock) analyzeIf(c *analysis.OperationContext) {
	stmt, ok := c.Operation.(*semantic.If)
	if !ok {
		return
	}

	if !isBlock(stmt.WhenTrue) {
		c.Report(missingBlock.New(keyword.Locate(stmt), "if"))
	}

	if stmt.WhenFalse == nil || isBlock(stmt.WhenFalse) || stmt.WhenFalse.Kind() == semantic.KindIf {
		return
	}
	if kw := elseKeyword(stmt.Syntax()); kw != nil {
		c.Report(missingBlock.New(syntax.NodeLocation(stmt.Tree(), kw), "else"))
	}
}

func (MissingBlock) analyzeLoop(c *analysis.OperationContext) {
	var body semantic.Operation
	switch loop := c.Operation.(type) {
	case *semantic.WhileLoop:
		body = loop.Body
	case *semantic.DoLoop:
		body = loop.Body
	case *semantic.ForLoop:
		body = loop.Body
	case *semantic.ForEachLoop:
		body = loop.Body
	default:
		return
	}

	if !isBlock(body) {
		c.Report(missingBlock.New(keyword.Locate(c.Operation), statementKeyword(c.Operation.Kind())))
	}
}

func (MissingBlock) analyzeSection(c *analysis.OperationContext) {
	section, ok := c.Operation.(*semantic.SwitchSection)
	if !ok || len(section.Body) == 0 {
		return
	}
	if len(section.Body) == 1 && isBlock(section.Body[0]) {
		return
	}

	// Pattern clauses have no single keyword to point at.
	for _, clause := range section.Clauses {
		switch clause.Kind() {
		case semantic.KindSingleValueCaseClause:
			c.Report(missingBlock.New(keyword.Locate(clause), "case"))
			return
		case semantic.KindDefaultCaseClause:
			c.Report(missingBlock.New(keyword.Locate(clause), "default"))
			return
		}
	}
}

func isBlock(op semantic.Operation) bool {
	return op != nil && op.Kind() == semantic.KindBlock
}

// elseKeyword finds the else token of an if statement, either directly on
// the statement or inside an else_clause.
func elseKeyword(n *sitter.Node) *sitter.Node {
	if kw := syntax.Keyword(n, "else"); kw != nil {
		return kw
	}

	return syntax.Keyword(syntax.FirstOfType(n, "else_clause"), "else")
}

var missingDefaultClause = diagnostic.Descriptor{
	ID:            "AV1536",
	Title:         "Always add a default block after the last case in a switch statement",
	MessageFormat: "Missing default clause in %s statement.",
	Category:      diagnostic.Maintainability,
	Severity:      diagnostic.SevWarning,
	Description:   "A default clause documents that the remaining values were considered.",
}

// MissingDefaultClause reports switch statements without a default label.
type MissingDefaultClause struct{}

func (MissingDefaultClause) Descriptor() diagnostic.Descriptor { return missingDefaultClause }

func (r MissingDefaultClause) Initialize(reg analysis.Registrar) {
	reg.RegisterOperationAction(analysis.SkipInvalid(r.analyzeSwitch), semantic.KindSwitch)
}

func (MissingDefaultClause) analyzeSwitch(c *analysis.OperationContext) {
	sw, ok := c.Operation.(*semantic.Switch)
	if !ok || sw.HasDefault() {
		return
	}

	c.Report(missingDefaultClause.New(keyword.Locate(sw), "switch"))
}

var complexCondition = diagnostic.Descriptor{
	ID:            "AV1547",
	Title:         "Encapsulate complex expressions in a property, method or local function",
	MessageFormat: "Condition of %s statement contains %d logical operators. Extract it into a well-named member.",
	Category:      diagnostic.Maintainability,
	Severity:      diagnostic.SevWarning,
	Description:   "Conditions with many logical operators are hard to read.",
}

const maxLogicalOperators = 2

// ComplexCondition reports conditions with more than two && or || operators.
type ComplexCondition struct{}

func (ComplexCondition) Descriptor() diagnostic.Descriptor { return complexCondition }

func (r ComplexCondition) Initialize(reg analysis.Registrar) {
	reg.RegisterOperationAction(analysis.SkipInvalid(r.analyzeCondition),
		semantic.KindIf, semantic.KindWhileLoop, semantic.KindDoLoop, semantic.KindForLoop)
}

func (ComplexCondition) analyzeCondition(c *analysis.OperationContext) {
	var (
		cond     semantic.Operation
		strategy = keyword.PreferLeadingKeyword
	)
	switch stmt := c.Operation.(type) {
	case *semantic.If:
		cond = stmt.Condition
	case *semantic.WhileLoop:
		cond = stmt.Condition
	case *semantic.DoLoop:
		// The condition follows the while keyword.
		cond, strategy = stmt.Condition, keyword.PreferTrailingKeyword
	case *semantic.ForLoop:
		cond = stmt.Condition
	default:
		return
	}

	n := countLogicalOperators(cond)
	if n <= maxLogicalOperators {
		return
	}

	name := statementKeyword(c.Operation.Kind())
	if strategy == keyword.PreferTrailingKeyword {
		name = "while"
	}
	c.Report(complexCondition.New(keyword.LocateWith(c.Operation, strategy), name, n))
}

// countLogicalOperators counts && and || in op, not descending into lambdas.
func countLogicalOperators(op semantic.Operation) int {
	var n int
	semantic.Inspect(op, func(o semantic.Operation) bool {
		switch o := o.(type) {
		case *semantic.AnonymousFunction:
			return false
		case *semantic.BinaryOperator:
			if o.OperatorKind == semantic.BinaryConditionalAnd || o.OperatorKind == semantic.BinaryConditionalOr {
				n++
			}
		}
		return true
	})

	return n
}
