package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/syntax"
)

// patternTypes are the syntax kinds that make a case label a pattern rather
// than a constant.
var patternTypes = map[string]bool{
	"declaration_pattern":   true,
	"recursive_pattern":     true,
	"type_pattern":          true,
	"relational_pattern":    true,
	"var_pattern":           true,
	"discard":               true,
	"and_pattern":           true,
	"or_pattern":            true,
	"negated_pattern":       true,
	"parenthesized_pattern": true,
	"list_pattern":          true,
	"positional_pattern":    true,
	"property_pattern":      true,
}

func (b *binder) bindSwitch(n *sitter.Node) Operation {
	body := syntax.Field(n, "body")
	if body == nil {
		body = syntax.FirstOfType(n, "switch_body")
	}
	value := syntax.Field(n, "value")
	if value == nil {
		for _, child := range syntax.NamedChildren(n) {
			if child.Type() != "switch_body" {
				value = child
				break
			}
		}
	}

	op := &Switch{operation: b.op(n)}
	op.Value = b.bind(value)
	adopt(op, op.Value)

	var nodes []*sitter.Node
	for _, child := range syntax.NamedChildren(body) {
		if child.Type() == "switch_section" {
			nodes = append(nodes, child)
		}
	}

	// The grammar gives each label of "case 1: case 2: stmt" its own
	// section; labels without statements join the next section.
	var carried []CaseClause
	for i, child := range nodes {
		section := b.bindSection(child, carried)
		if len(section.Body) == 0 && i < len(nodes)-1 {
			carried = section.Clauses
			continue
		}
		carried = nil
		op.Sections = append(op.Sections, section)
		adopt(op, section)
	}

	return op
}

// bindSection handles both label layouts: label nodes wrapping each case, and
// bare case/default tokens terminated by a colon. Carried clauses come from
// preceding label-only sections and are placed first.
func (b *binder) bindSection(n *sitter.Node, carried []CaseClause) *SwitchSection {
	b.push()
	defer b.pop()

	section := &SwitchSection{operation: b.op(n)}
	addClause := func(c CaseClause) {
		section.Clauses = append(section.Clauses, c)
		adopt(section, c)
	}
	for _, c := range carried {
		addClause(c)
	}

	var (
		inLabel bool
		label   []*sitter.Node
		guard   *sitter.Node
	)
	for _, child := range syntax.Children(n) {
		switch {
		case !child.IsNamed() && child.Type() == "case":
			inLabel, label, guard = true, nil, nil
		case !child.IsNamed() && child.Type() == "default":
			addClause(&DefaultCaseClause{operation: b.op(child)})
		case !child.IsNamed() && child.Type() == ":":
			if inLabel && len(label) > 0 {
				addClause(b.caseClause(label[0], label[0], guard))
			}
			inLabel = false
		case inLabel && child.Type() == "when_clause":
			guard = child
		case inLabel && child.IsNamed():
			label = append(label, child)
		case child.Type() == "case_switch_label":
			addClause(b.caseClause(child, firstNamed(child), syntax.FirstOfType(child, "when_clause")))
		case child.Type() == "case_pattern_switch_label":
			addClause(b.patternClause(child, firstNamed(child), syntax.FirstOfType(child, "when_clause")))
		case child.Type() == "default_switch_label":
			addClause(&DefaultCaseClause{operation: b.op(child)})
		case child.IsNamed():
			if stmt := b.bind(child); stmt != nil {
				section.Body = append(section.Body, stmt)
				adopt(section, stmt)
			}
		}
	}

	return section
}

// caseClause classifies a label value. Guards and pattern syntax make a
// pattern clause; anything else is a constant. n is the label node, or the
// value itself when the grammar has no label nodes.
func (b *binder) caseClause(n, value, guard *sitter.Node) CaseClause {
	if value == nil || guard != nil || patternTypes[value.Type()] {
		return b.patternClause(n, value, guard)
	}

	clause := &SingleValueCaseClause{operation: b.op(n)}
	clause.Value = b.bind(value)
	adopt(clause, clause.Value)

	return clause
}

func (b *binder) patternClause(n, pattern, guard *sitter.Node) CaseClause {
	if n == nil {
		n = pattern
	}

	clause := &PatternCaseClause{operation: b.op(n), Pattern: pattern}
	if pattern != nil {
		adopt(clause, b.bind(pattern))
	}
	if guard != nil {
		clause.Guard = b.bindInner(guard)
		adopt(clause, clause.Guard)
	}

	return clause
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if named := syntax.NamedChildren(n); len(named) > 0 {
		return named[0]
	}

	return nil
}
