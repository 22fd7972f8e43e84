package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/syntax"
)

// binder lowers the syntax of one member body into operations.
type binder struct {
	declarer

	container      *TypeSymbol
	scope          *scope
	localFunctions map[uint32]*MethodSymbol
}

func (c *Compilation) bindBody(t *syntax.Tree, pb pendingBody) Operation {
	b := &binder{
		declarer:       declarer{comp: c, tree: t},
		container:      pb.container,
		scope:          newScope(nil),
		localFunctions: make(map[uint32]*MethodSymbol),
	}
	for _, p := range pb.params {
		b.scope.declare(p)
	}

	root := &MethodBody{
		operation:  b.op(pb.node),
		Owner:      pb.owner,
		ReturnType: pb.returnType,
	}
	root.Body = b.bind(pb.node)
	adopt(root, root.Body)

	return root
}

func (b *binder) op(n *sitter.Node) operation {
	return operation{syntax: n, tree: b.tree}
}

func (b *binder) push() { b.scope = newScope(b.scope) }
func (b *binder) pop()  { b.scope = b.scope.parent }

// bind dispatches on the syntax node type. Statements and expressions share
// one entry point since C# nests them freely.
func (b *binder) bind(n *sitter.Node) Operation {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "block":
		return b.bindBlock(n)
	case "arrow_expression_clause", "parenthesized_expression", "equals_value_clause", "argument", "constant_pattern":
		return b.bindInner(n)
	case "expression_statement":
		stmt := &ExpressionStatement{operation: b.op(n)}
		stmt.Operation = b.bindInner(n)
		adopt(stmt, stmt.Operation)
		return stmt
	case "local_declaration_statement":
		return b.bindVariableDeclaration(syntax.FirstOfType(n, "variable_declaration"), n)
	case "variable_declaration":
		return b.bindVariableDeclaration(n, n)
	case "local_function_statement":
		return b.bindLocalFunction(n)
	case "if_statement":
		return b.bindIf(n)
	case "while_statement":
		return b.bindWhile(n)
	case "do_statement":
		return b.bindDo(n)
	case "for_statement":
		return b.bindFor(n)
	case "for_each_statement", "foreach_statement":
		return b.bindForEach(n)
	case "using_statement":
		return b.bindUsing(n)
	case "lock_statement":
		return b.bindLock(n)
	case "switch_statement":
		return b.bindSwitch(n)
	case "return_statement":
		ret := &Return{operation: b.op(n)}
		ret.Value = b.bindInner(n)
		adopt(ret, ret.Value)
		return ret
	case "yield_statement":
		return b.bindYield(n)
	case "throw_statement", "throw_expression":
		throw := &Throw{operation: b.op(n)}
		throw.Exception = b.bindInner(n)
		adopt(throw, throw.Exception)
		return throw
	case "catch_clause":
		return b.bindCatch(n)
	default:
		return b.bindExpression(n)
	}
}

// bindInner binds the last named child of a wrapper node, skipping argument
// names such as "name:".
func (b *binder) bindInner(n *sitter.Node) Operation {
	children := syntax.NamedChildren(n)
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].Type() == "name_colon" {
			continue
		}
		return b.bind(children[i])
	}

	return nil
}

// generic binds all named children under an Unrecognized operation.
func (b *binder) generic(n *sitter.Node) Operation {
	op := &Unrecognized{operation: b.op(n)}
	for _, child := range syntax.NamedChildren(n) {
		adopt(op, b.bind(child))
	}

	return op
}

func (b *binder) bindBlock(n *sitter.Node) Operation {
	b.push()
	defer b.pop()

	// Local functions are in scope throughout their block.
	statements := syntax.NamedChildren(n)
	for _, stmt := range statements {
		if stmt.Type() == "local_function_statement" {
			b.declareLocalFunction(stmt)
		}
	}

	block := &Block{operation: b.op(n)}
	for _, stmt := range statements {
		if op := b.bind(stmt); op != nil {
			block.Operations = append(block.Operations, op)
			adopt(block, op)
		}
	}

	return block
}

func (b *binder) bindVariableDeclaration(decl, n *sitter.Node) Operation {
	op := &VariableDeclaration{operation: b.op(n)}
	if decl == nil {
		return op
	}

	typeNode := syntax.Field(decl, "type")
	declared := b.typeOf(typeNode)
	implicit := typeNode == nil || typeNode.Type() == "implicit_type" || declared.Name == "var"

	for _, v := range syntax.NamedChildren(decl) {
		if v.Type() != "variable_declarator" {
			continue
		}

		var init Operation
		if initNode := initializer(v); initNode != nil {
			init = b.bind(initNode)
		}

		nameNode := syntax.Name(v)
		if nameNode == nil {
			adopt(op, init)
			continue
		}

		typ := declared
		if implicit {
			if typ = inferType(init); !typ.IsValid() {
				typ = implicitType
			}
		}

		local := &LocalSymbol{name: b.tree.Content(nameNode), typ: typ, location: syntax.NodeLocation(b.tree, nameNode)}
		b.scope.declare(local)
		op.Locals = append(op.Locals, local)
		adopt(op, init)
	}

	return op
}

func (b *binder) declareLocalFunction(n *sitter.Node) *MethodSymbol {
	if m, ok := b.localFunctions[n.StartByte()]; ok {
		return m
	}

	nameNode := syntax.Name(n)
	if nameNode == nil {
		nameNode = n
	}
	m := &MethodSymbol{
		name:       b.tree.Content(nameNode),
		kind:       LocalFunction,
		returnType: b.typeOf(syntax.Field(n, "returns", "type")),
		static:     b.tree.HasModifier(n, "static"),
		container:  b.container,
		params:     b.parameters(parameterList(n)),
		location:   syntax.NodeLocation(b.tree, nameNode),
	}
	b.localFunctions[n.StartByte()] = m
	b.scope.declare(m)

	return m
}

func (b *binder) bindLocalFunction(n *sitter.Node) Operation {
	m := b.declareLocalFunction(n)

	b.push()
	defer b.pop()
	for _, p := range m.params {
		b.scope.declare(p)
	}

	fn := &LocalFunctionOperation{operation: b.op(n), Symbol: m}
	fn.Body = b.bind(bodyOf(n))
	adopt(fn, fn.Body)

	return fn
}

func (b *binder) bindIf(n *sitter.Node) Operation {
	cond := syntax.Field(n, "condition")
	then := syntax.Field(n, "consequence")
	alt := syntax.Field(n, "alternative")
	if cond == nil || then == nil {
		named := syntax.NamedChildren(n)
		if len(named) < 2 {
			return b.generic(n)
		}
		cond, then = named[0], named[1]
		if len(named) > 2 {
			alt = named[2]
		}
	}
	if alt != nil && alt.Type() == "else_clause" {
		if named := syntax.NamedChildren(alt); len(named) > 0 {
			alt = named[0]
		} else {
			alt = nil
		}
	}

	op := &If{operation: b.op(n)}
	op.Condition = b.bind(cond)
	op.WhenTrue = b.bind(then)
	op.WhenFalse = b.bind(alt)
	adopt(op, op.Condition, op.WhenTrue, op.WhenFalse)

	return op
}

// conditionAndBody resolves the condition and body of while and do loops,
// falling back to child order when the grammar has no field names.
func conditionAndBody(n *sitter.Node, bodyFirst bool) (cond, body *sitter.Node) {
	cond, body = syntax.Field(n, "condition"), syntax.Field(n, "body")
	if cond != nil && body != nil {
		return cond, body
	}

	named := syntax.NamedChildren(n)
	if len(named) < 2 {
		return nil, nil
	}
	if bodyFirst {
		return named[len(named)-1], named[0]
	}

	return named[0], named[len(named)-1]
}

func (b *binder) bindWhile(n *sitter.Node) Operation {
	cond, body := conditionAndBody(n, false)
	if cond == nil {
		return b.generic(n)
	}

	op := &WhileLoop{operation: b.op(n)}
	op.Condition = b.bind(cond)
	op.Body = b.bind(body)
	adopt(op, op.Condition, op.Body)

	return op
}

func (b *binder) bindDo(n *sitter.Node) Operation {
	cond, body := conditionAndBody(n, true)
	if cond == nil {
		return b.generic(n)
	}

	op := &DoLoop{operation: b.op(n)}
	op.Body = b.bind(body)
	op.Condition = b.bind(cond)
	adopt(op, op.Body, op.Condition)

	return op
}

func (b *binder) bindFor(n *sitter.Node) Operation {
	named := syntax.NamedChildren(n)
	if len(named) == 0 {
		return b.generic(n)
	}

	body := syntax.Field(n, "body")
	if body == nil {
		body = named[len(named)-1]
	}
	cond := syntax.Field(n, "condition")

	b.push()
	defer b.pop()

	op := &ForLoop{operation: b.op(n)}
	for _, child := range named {
		if child.StartByte() == body.StartByte() && child.Type() == body.Type() {
			continue
		}

		bound := b.bind(child)
		if cond != nil && child.StartByte() == cond.StartByte() && child.Type() == cond.Type() {
			op.Condition = bound
		}
		adopt(op, bound)
	}
	op.Body = b.bind(body)
	adopt(op, op.Body)

	return op
}

func (b *binder) bindForEach(n *sitter.Node) Operation {
	named := syntax.NamedChildren(n)
	if len(named) < 2 {
		return b.generic(n)
	}

	typeNode := syntax.Field(n, "type")
	left := syntax.Field(n, "left")
	right := syntax.Field(n, "right")
	body := syntax.Field(n, "body")
	if body == nil {
		body = named[len(named)-1]
	}
	if right == nil {
		right = named[len(named)-2]
	}
	if left == nil && len(named) >= 4 {
		typeNode, left = named[0], named[1]
	}

	op := &ForEachLoop{operation: b.op(n)}
	op.Collection = b.bind(right)

	b.push()
	defer b.pop()

	if left != nil && left.Type() == "identifier" {
		typ := b.typeOf(typeNode)
		if typeNode == nil {
			typ = implicitType
		}
		op.Local = &LocalSymbol{name: b.tree.Content(left), typ: typ, location: syntax.NodeLocation(b.tree, left)}
		b.scope.declare(op.Local)
	}

	op.Body = b.bind(body)
	adopt(op, op.Collection, op.Body)

	return op
}

func (b *binder) bindUsing(n *sitter.Node) Operation {
	named := syntax.NamedChildren(n)
	if len(named) == 0 {
		return b.generic(n)
	}

	body := syntax.Field(n, "body")
	if body == nil {
		body = named[len(named)-1]
	}
	resource := syntax.Field(n, "declaration", "expression")
	if resource == nil && len(named) > 1 {
		resource = named[0]
	}

	b.push()
	defer b.pop()

	op := &Using{operation: b.op(n)}
	op.Resources = b.bind(resource)
	op.Body = b.bind(body)
	adopt(op, op.Resources, op.Body)

	return op
}

func (b *binder) bindLock(n *sitter.Node) Operation {
	named := syntax.NamedChildren(n)
	if len(named) < 2 {
		return b.generic(n)
	}

	op := &Lock{operation: b.op(n)}
	op.LockedValue = b.bind(named[0])
	op.Body = b.bind(named[len(named)-1])
	adopt(op, op.LockedValue, op.Body)

	return op
}

func (b *binder) bindYield(n *sitter.Node) Operation {
	if syntax.Keyword(n, "break") != nil {
		return &YieldBreak{operation: b.op(n)}
	}

	ret := &Return{operation: b.op(n), Yield: true}
	ret.Value = b.bindInner(n)
	adopt(ret, ret.Value)

	return ret
}

func (b *binder) bindCatch(n *sitter.Node) Operation {
	b.push()
	defer b.pop()

	if decl := syntax.FirstOfType(n, "catch_declaration"); decl != nil {
		typeNode := syntax.Field(decl, "type")
		nameNode := syntax.Field(decl, "name")
		named := syntax.NamedChildren(decl)
		if typeNode == nil && len(named) > 0 {
			typeNode = named[0]
		}
		if nameNode == nil && len(named) > 1 {
			nameNode = named[1]
		}
		if nameNode != nil {
			b.scope.declare(&LocalSymbol{name: b.tree.Content(nameNode), typ: b.typeOf(typeNode), location: syntax.NodeLocation(b.tree, nameNode)})
		}
	}

	op := &Unrecognized{operation: b.op(n)}
	for _, child := range syntax.NamedChildren(n) {
		if child.Type() == "catch_declaration" {
			continue
		}
		adopt(op, b.bind(child))
	}

	return op
}
