package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/syntax"
)

var literalTypes = map[string]string{
	"string_literal":                 "string",
	"verbatim_string_literal":        "string",
	"raw_string_literal":             "string",
	"interpolated_string_expression": "string",
	"integer_literal":                "int",
	"real_literal":                   "double",
	"boolean_literal":                "bool",
	"character_literal":              "char",
}

func (b *binder) bindExpression(n *sitter.Node) Operation {
	switch n.Type() {
	case "identifier", "generic_name":
		return b.bindName(n)
	case "this_expression", "this":
		return &InstanceReference{operation: b.op(n), Type: b.container}
	case "base_expression", "base":
		return &InstanceReference{operation: b.op(n), Type: b.baseType()}
	case "member_access_expression":
		return b.bindMemberAccess(n)
	case "invocation_expression":
		return b.bindInvocation(n)
	case "object_creation_expression":
		return b.bindObjectCreation(n)
	case "prefix_unary_expression":
		return b.bindUnary(n)
	case "binary_expression":
		return b.bindBinary(n)
	case "null_literal":
		return &Literal{operation: b.op(n), Null: true}
	case "lambda_expression", "anonymous_method_expression":
		return b.bindAnonymousFunction(n)
	case "declaration_expression", "declaration_pattern":
		return b.bindDeclarationExpression(n)
	}

	if typ, ok := literalTypes[n.Type()]; ok {
		lit := &Literal{operation: b.op(n), Type: Type{Name: typ}}
		for _, child := range syntax.NamedChildren(n) {
			if child.Type() == "interpolation" {
				adopt(lit, b.generic(child))
			}
		}
		return lit
	}

	return b.generic(n)
}

func (b *binder) invalid(n *sitter.Node, children ...Operation) Operation {
	op := &Invalid{operation: b.op(n)}
	adopt(op, children...)

	return op
}

// lookupName resolves a simple name against locals, then members of the
// containing type and its bases.
func (b *binder) lookupName(name string) []Symbol {
	if syms := b.scope.lookup(name); len(syms) > 0 {
		return syms
	}

	return b.comp.lookupMember(b.container, name)
}

// implicitThis is the receiver implied by an unqualified instance member.
func (b *binder) implicitThis(static bool) Operation {
	if static || b.container == nil {
		return nil
	}

	return &InstanceReference{operation: operation{tree: b.tree}, Type: b.container}
}

func (b *binder) baseType() *TypeSymbol {
	if b.container == nil {
		return nil
	}

	for _, name := range b.container.bases {
		if t := b.comp.LookupType(name); t != nil && t.kind != TypeInterface {
			return t
		}
	}

	return b.container
}

func (b *binder) bindName(n *sitter.Node) Operation {
	name := b.tree.Identifier(n)

	for _, sym := range b.lookupName(name) {
		switch sym := sym.(type) {
		case *LocalSymbol:
			return &LocalReference{operation: b.op(n), Local: sym}
		case *ParameterSymbol:
			return &ParameterReference{operation: b.op(n), Parameter: sym}
		case *MemberSymbol:
			return b.memberReference(n, sym, b.implicitThis(sym.static))
		case *MethodSymbol:
			// method group
			return &Unrecognized{operation: b.op(n)}
		}
	}

	if b.comp.LookupType(name) != nil {
		return &Unrecognized{operation: b.op(n)}
	}

	return b.invalid(n)
}

func (b *binder) memberReference(n *sitter.Node, m *MemberSymbol, instance Operation) Operation {
	ref := memberReference{operation: b.op(n), member: m, instance: instance}

	var op Operation
	switch m.kind {
	case Event:
		op = &EventReference{ref}
	case Property:
		op = &PropertyReference{ref}
	default:
		op = &FieldReference{ref}
	}
	adopt(op, instance)

	return op
}

// bindReceiver binds the left side of a member access. A receiver naming a
// type yields a nil operation with static set.
func (b *binder) bindReceiver(n *sitter.Node) (recv Operation, typ *TypeSymbol, static bool) {
	switch n.Type() {
	case "identifier", "generic_name":
		name := b.tree.Identifier(n)
		if len(b.lookupName(name)) == 0 {
			if t := b.comp.LookupType(name); t != nil {
				return nil, t, true
			}
		}
	}

	recv = b.bind(n)
	if t := inferType(recv); t.IsValid() {
		typ = b.comp.LookupType(t.Name)
	}

	return recv, typ, false
}

// memberAccessParts returns the receiver and name of a member access.
func memberAccessParts(n *sitter.Node) (expr, name *sitter.Node) {
	expr, name = syntax.Field(n, "expression"), syntax.Field(n, "name")
	if expr != nil && name != nil {
		return expr, name
	}

	named := syntax.NamedChildren(n)
	if len(named) < 2 {
		return nil, nil
	}

	return named[0], named[len(named)-1]
}

func (b *binder) bindMemberAccess(n *sitter.Node) Operation {
	exprNode, nameNode := memberAccessParts(n)
	if exprNode == nil {
		return b.generic(n)
	}

	recv, typ, _ := b.bindReceiver(exprNode)
	name := b.tree.Identifier(nameNode)

	for _, sym := range b.comp.lookupMember(typ, name) {
		if m, ok := sym.(*MemberSymbol); ok {
			if m.static {
				// static members ignore any receiver expression
				op := b.memberReference(n, m, nil)
				adopt(op, recv)
				return op
			}
			return b.memberReference(n, m, recv)
		}
	}

	return b.invalid(n, recv)
}

func (b *binder) bindArguments(list *sitter.Node) []Operation {
	var args []Operation
	for _, arg := range syntax.NamedChildren(list) {
		if arg.Type() != "argument" {
			continue
		}
		if op := b.bind(arg); op != nil {
			args = append(args, op)
		} else {
			args = append(args, b.invalid(arg))
		}
	}

	return args
}

// pickMethod returns the first method among syms that accepts argc arguments.
func pickMethod(syms []Symbol, argc int) *MethodSymbol {
	for _, sym := range syms {
		if m, ok := sym.(*MethodSymbol); ok && m.accepts(argc) {
			return m
		}
	}

	return nil
}

func (b *binder) bindInvocation(n *sitter.Node) Operation {
	fn := syntax.Field(n, "function")
	list := syntax.Field(n, "arguments")
	if fn == nil || list == nil {
		named := syntax.NamedChildren(n)
		if len(named) < 2 {
			return b.generic(n)
		}
		fn, list = named[0], named[len(named)-1]
	}

	args := b.bindArguments(list)

	var (
		target   *MethodSymbol
		instance Operation
	)
	switch fn.Type() {
	case "identifier", "generic_name":
		target = pickMethod(b.lookupName(b.tree.Identifier(fn)), len(args))
		if target != nil && target.kind != LocalFunction {
			instance = b.implicitThis(target.static)
		}
	case "member_access_expression":
		exprNode, nameNode := memberAccessParts(fn)
		if exprNode == nil {
			return b.invalid(n, args...)
		}
		recv, typ, static := b.bindReceiver(exprNode)
		target = pickMethod(b.comp.lookupMember(typ, b.tree.Identifier(nameNode)), len(args))
		if target == nil {
			return b.invalid(n, append([]Operation{recv}, args...)...)
		}
		if !static {
			instance = recv
		}
	default:
		callee := b.bind(fn)
		return b.invalid(n, append([]Operation{callee}, args...)...)
	}

	if target == nil {
		return b.invalid(n, args...)
	}

	call := &Invocation{operation: b.op(n), TargetMethod: target, Instance: instance, Arguments: args}
	adopt(call, instance)
	adopt(call, args...)

	return call
}

func (b *binder) bindObjectCreation(n *sitter.Node) Operation {
	typeNode := syntax.Field(n, "type")
	list := syntax.Field(n, "arguments")
	if list == nil {
		list = syntax.FirstOfType(n, "argument_list")
	}

	op := &ObjectCreation{operation: b.op(n)}
	if typeNode != nil {
		op.Type = b.typeOf(typeNode)
	}
	op.Arguments = b.bindArguments(list)
	if typeNode != nil {
		if t := b.comp.LookupType(op.Type.Name); t != nil {
			var ctors []Symbol
			for _, m := range t.members {
				if m.Kind() == Constructor {
					ctors = append(ctors, m)
				}
			}
			op.Constructor = pickMethod(ctors, len(op.Arguments))
		}
	}
	adopt(op, op.Arguments...)

	if init := syntax.Field(n, "initializer"); init != nil {
		adopt(op, b.generic(init))
	}

	return op
}

func (b *binder) bindUnary(n *sitter.Node) Operation {
	token := ""
	for _, child := range syntax.Children(n) {
		if !child.IsNamed() {
			token = child.Type()
			break
		}
	}

	operand := syntax.Field(n, "operand")
	if operand == nil {
		named := syntax.NamedChildren(n)
		if len(named) == 0 {
			return b.generic(n)
		}
		operand = named[len(named)-1]
	}

	op := &UnaryOperator{operation: b.op(n), OperatorKind: unaryOperatorKind(token)}
	op.Operand = b.bind(operand)
	adopt(op, op.Operand)

	return op
}

func (b *binder) bindBinary(n *sitter.Node) Operation {
	left, right := syntax.Field(n, "left"), syntax.Field(n, "right")
	if left == nil || right == nil {
		named := syntax.NamedChildren(n)
		if len(named) < 2 {
			return b.generic(n)
		}
		left, right = named[0], named[len(named)-1]
	}

	token := ""
	if opNode := syntax.Field(n, "operator"); opNode != nil {
		token = b.tree.Content(opNode)
	} else {
		for _, child := range syntax.Children(n) {
			if !child.IsNamed() && child.StartByte() >= left.EndByte() && child.EndByte() <= right.StartByte() {
				token = child.Type()
				break
			}
		}
	}

	op := &BinaryOperator{operation: b.op(n), OperatorKind: binaryOperatorKind(token)}
	op.Left = b.bind(left)
	op.Right = b.bind(right)
	adopt(op, op.Left, op.Right)

	return op
}

func (b *binder) bindAnonymousFunction(n *sitter.Node) Operation {
	list := syntax.Field(n, "parameters")
	if list == nil {
		list = syntax.FirstOfType(n, "parameter_list", "implicit_parameter_list", "identifier")
	}
	body := syntax.Field(n, "body")
	if body == nil {
		named := syntax.NamedChildren(n)
		if len(named) == 0 {
			return b.generic(n)
		}
		body = named[len(named)-1]
	}

	var params []*ParameterSymbol
	if list != nil && list.Type() == "implicit_parameter_list" {
		for _, id := range syntax.NamedChildren(list) {
			params = append(params, b.parameters(id)...)
		}
	} else if list != nil && list.StartByte() != body.StartByte() {
		params = b.parameters(list)
	}

	b.push()
	defer b.pop()
	for _, p := range params {
		b.scope.declare(p)
	}

	fn := &AnonymousFunction{operation: b.op(n), Parameters: params}
	fn.Body = b.bind(body)
	adopt(fn, fn.Body)

	return fn
}

// bindDeclarationExpression declares the local of "out var x" and
// "is T x" forms.
func (b *binder) bindDeclarationExpression(n *sitter.Node) Operation {
	op := &VariableDeclaration{operation: b.op(n)}

	typeNode := syntax.Field(n, "type")
	nameNode := syntax.Field(n, "name")
	named := syntax.NamedChildren(n)
	if typeNode == nil && len(named) > 0 {
		typeNode = named[0]
	}
	if nameNode == nil && len(named) > 1 {
		nameNode = named[len(named)-1]
	}
	if nameNode == nil || nameNode.Type() != "identifier" {
		return op
	}

	local := &LocalSymbol{name: b.tree.Content(nameNode), typ: b.typeOf(typeNode), location: syntax.NodeLocation(b.tree, nameNode)}
	b.scope.declare(local)
	op.Locals = append(op.Locals, local)

	return op
}

// inferType returns the static type of op when the binder knows it.
func inferType(op Operation) Type {
	switch op := op.(type) {
	case *Literal:
		return op.Type
	case *LocalReference:
		return op.Local.typ
	case *ParameterReference:
		return op.Parameter.typ
	case *FieldReference:
		return op.member.typ
	case *PropertyReference:
		return op.member.typ
	case *EventReference:
		return op.member.typ
	case *Invocation:
		return op.TargetMethod.returnType
	case *ObjectCreation:
		return op.Type
	case *InstanceReference:
		if op.Type != nil {
			return op.Type.Type()
		}
	}

	return Type{}
}
