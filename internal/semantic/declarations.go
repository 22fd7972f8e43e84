package semantic

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/syntax"
)

// declarer collects the type and member declarations of one file and queues
// the member bodies for binding.
type declarer struct {
	comp *Compilation
	tree *syntax.Tree
	file *file
}

var typeKinds = map[string]TypeKind{
	"class_declaration":         TypeClass,
	"struct_declaration":        TypeStruct,
	"interface_declaration":     TypeInterface,
	"record_declaration":        TypeRecord,
	"record_struct_declaration": TypeRecord,
	"enum_declaration":          TypeEnum,
}

func (d *declarer) declareScope(n *sitter.Node, namespace string, container *TypeSymbol) {
	for _, child := range syntax.NamedChildren(n) {
		switch child.Type() {
		case "namespace_declaration":
			ns := joinNamespace(namespace, d.tree.TypeText(syntax.Name(child)))
			body := syntax.Field(child, "body")
			if body == nil {
				body = syntax.FirstOfType(child, "declaration_list")
			}
			d.declareScope(body, ns, nil)

		case "file_scoped_namespace_declaration":
			// Depending on the grammar version the declarations are children
			// of this node or its following siblings.
			namespace = joinNamespace(namespace, d.tree.TypeText(syntax.Name(child)))
			d.declareScope(child, namespace, nil)

		case "declaration_list":
			d.declareScope(child, namespace, container)

		default:
			if kind, ok := typeKinds[child.Type()]; ok {
				d.declareType(child, kind, namespace, container)
				continue
			}

			if container != nil {
				d.declareMember(child, container)
			}
		}
	}
}

func joinNamespace(outer, inner string) string {
	if outer == "" {
		return inner
	}

	return outer + "." + inner
}

func (d *declarer) declareType(n *sitter.Node, kind TypeKind, namespace string, container *TypeSymbol) {
	nameNode := syntax.Name(n)
	if nameNode == nil {
		return
	}
	name := d.tree.Identifier(nameNode)

	t := d.comp.partialType(name, namespace, container)
	if t == nil || !d.tree.HasModifier(n, "partial") {
		t = &TypeSymbol{
			name:      name,
			kind:      kind,
			namespace: namespace,
			container: container,
			location:  syntax.NodeLocation(d.tree, nameNode),
			tree:      d.tree,
			decl:      n,
		}
		d.comp.addType(t, d.file)
	}

	if bases := syntax.FirstOfType(n, "base_list"); bases != nil {
		for _, base := range syntax.NamedChildren(bases) {
			if base.Type() == "primary_constructor_base_type" {
				if inner := syntax.NamedChildren(base); len(inner) > 0 {
					base = inner[0]
				}
			}
			t.bases = append(t.bases, d.tree.Identifier(base))
		}
	}

	if kind == TypeRecord {
		// Positional record parameters declare properties.
		for _, p := range d.parameters(parameterList(n)) {
			t.addMember(&MemberSymbol{name: p.name, kind: Property, typ: p.typ, container: t, location: p.location})
		}
	}

	if kind == TypeEnum {
		return
	}

	body := syntax.Field(n, "body")
	if body == nil {
		body = syntax.FirstOfType(n, "declaration_list")
	}
	d.declareScope(body, namespace, t)
}

func (d *declarer) declareMember(n *sitter.Node, t *TypeSymbol) {
	static := d.tree.HasModifier(n, "static") || d.tree.HasModifier(n, "const")

	switch n.Type() {
	case "field_declaration", "event_field_declaration":
		kind := Field
		if n.Type() == "event_field_declaration" {
			kind = Event
		}
		d.declareVariables(n, t, kind, static)

	case "property_declaration":
		d.declareProperty(n, t, Property, static, nil)

	case "indexer_declaration":
		params := d.parameters(syntax.Field(n, "parameters"))
		if params == nil {
			params = d.parameters(syntax.FirstOfType(n, "bracketed_parameter_list"))
		}
		d.declareProperty(n, t, Property, static, params)

	case "event_declaration":
		d.declareProperty(n, t, Event, static, nil)

	case "method_declaration":
		nameNode := syntax.Name(n)
		if nameNode == nil {
			return
		}
		m := &MethodSymbol{
			name:       d.tree.Identifier(nameNode),
			kind:       Method,
			returnType: d.typeOf(syntax.Field(n, "returns", "type")),
			static:     static,
			container:  t,
			params:     d.parameters(parameterList(n)),
			location:   syntax.NodeLocation(d.tree, nameNode),
		}
		t.addMember(m)
		d.queue(m, t, m.params, m.returnType, bodyOf(n))

	case "constructor_declaration", "destructor_declaration":
		kind, name := Constructor, t.name
		switch {
		case n.Type() == "destructor_declaration":
			kind, name = Destructor, "~"+t.name
		case static:
			kind = StaticConstructor
		}

		nameNode := syntax.Name(n)
		if nameNode == nil {
			nameNode = n
		}
		m := &MethodSymbol{
			name:       name,
			kind:       kind,
			returnType: Void,
			static:     static,
			container:  t,
			params:     d.parameters(parameterList(n)),
			location:   syntax.NodeLocation(d.tree, nameNode),
		}
		t.addMember(m)
		d.queue(m, t, m.params, Void, bodyOf(n))

	case "operator_declaration", "conversion_operator_declaration":
		kind, name := Operator, "operator "+d.operatorToken(n)
		returnType := d.typeOf(syntax.Field(n, "type", "returns"))
		if n.Type() == "conversion_operator_declaration" {
			kind = Conversion
			direction := "implicit"
			if syntax.Keyword(n, "explicit") != nil {
				direction = "explicit"
			}
			name = direction + " operator " + returnType.Name
		}

		m := &MethodSymbol{
			name:       name,
			kind:       kind,
			returnType: returnType,
			static:     true,
			container:  t,
			params:     d.parameters(parameterList(n)),
			location:   syntax.NodeLocation(d.tree, n),
		}
		t.addMember(m)
		d.queue(m, t, m.params, returnType, bodyOf(n))
	}
}

func (d *declarer) declareVariables(n *sitter.Node, t *TypeSymbol, kind SymbolKind, static bool) {
	decl := syntax.FirstOfType(n, "variable_declaration")
	if decl == nil {
		return
	}

	typ := d.typeOf(syntax.Field(decl, "type"))
	for _, v := range syntax.NamedChildren(decl) {
		if v.Type() != "variable_declarator" {
			continue
		}

		nameNode := syntax.Name(v)
		if nameNode == nil {
			continue
		}

		m := &MemberSymbol{
			name:      d.tree.Content(nameNode),
			kind:      kind,
			typ:       typ,
			static:    static,
			container: t,
			location:  syntax.NodeLocation(d.tree, nameNode),
		}
		t.addMember(m)

		if init := initializer(v); init != nil {
			d.queue(m, t, nil, typ, init)
		}
	}
}

// declareProperty handles properties, indexers and events with accessors.
func (d *declarer) declareProperty(n *sitter.Node, t *TypeSymbol, kind SymbolKind, static bool, indexerParams []*ParameterSymbol) {
	nameNode := syntax.Name(n)
	name := "this"
	if n.Type() != "indexer_declaration" && nameNode != nil {
		name = d.tree.Content(nameNode)
	}
	if nameNode == nil {
		nameNode = n
	}

	m := &MemberSymbol{
		name:      name,
		kind:      kind,
		typ:       d.typeOf(syntax.Field(n, "type")),
		static:    static,
		container: t,
		location:  syntax.NodeLocation(d.tree, nameNode),
	}
	t.addMember(m)

	if arrow := syntax.FirstOfType(n, "arrow_expression_clause"); arrow != nil {
		d.queue(m, t, indexerParams, m.typ, arrow)
		return
	}

	accessors := syntax.Field(n, "accessors")
	if accessors == nil {
		accessors = syntax.FirstOfType(n, "accessor_list")
	}
	for _, acc := range syntax.NamedChildren(accessors) {
		if acc.Type() != "accessor_declaration" {
			continue
		}

		body := bodyOf(acc)
		if body == nil {
			continue
		}

		params, returnType := indexerParams, m.typ
		if isMutator(acc) {
			value := &ParameterSymbol{name: "value", typ: m.typ, ordinal: len(params), implicit: true, location: syntax.NodeLocation(d.tree, acc)}
			params = append(append([]*ParameterSymbol(nil), params...), value)
			returnType = Void
		}
		d.queue(m, t, params, returnType, body)
	}
}

func isMutator(acc *sitter.Node) bool {
	for _, kw := range []string{"set", "init", "add", "remove"} {
		if syntax.Keyword(acc, kw) != nil {
			return true
		}
	}

	if name := syntax.Field(acc, "name"); name != nil {
		switch name.Type() {
		case "set", "init", "add", "remove":
			return true
		}
	}

	return false
}

func (d *declarer) queue(owner Symbol, t *TypeSymbol, params []*ParameterSymbol, returnType Type, body *sitter.Node) {
	if body == nil {
		return
	}

	d.file.pending = append(d.file.pending, pendingBody{
		owner:      owner,
		container:  t,
		params:     params,
		returnType: returnType,
		node:       body,
	})
}

// parameters reads a parameter_list, bracketed_parameter_list or a lambda's
// implicit parameter identifier.
func (d *declarer) parameters(list *sitter.Node) []*ParameterSymbol {
	if list == nil {
		return nil
	}

	if list.Type() == "identifier" {
		return []*ParameterSymbol{{
			name:     d.tree.Content(list),
			typ:      implicitType,
			location: syntax.NodeLocation(d.tree, list),
		}}
	}

	var out []*ParameterSymbol
	for _, p := range syntax.NamedChildren(list) {
		switch p.Type() {
		case "parameter", "parameter_array":
		default:
			continue
		}

		nameNode := syntax.Field(p, "name")
		if nameNode == nil {
			for _, child := range syntax.NamedChildren(p) {
				if child.Type() == "identifier" {
					nameNode = child
				}
			}
		}
		if nameNode == nil {
			continue
		}

		typeNode := syntax.Field(p, "type")
		if typeNode == nil && p.Type() == "parameter_array" {
			typeNode = syntax.FirstOfType(p, "array_type", "nullable_type")
		}

		ref := RefNone
		if p.Type() == "parameter_array" {
			ref = RefParams
		}
		for _, child := range syntax.Children(p) {
			if child.StartByte() >= nameNode.StartByte() {
				break
			}
			word := child.Type()
			if child.IsNamed() {
				if fields := strings.Fields(d.tree.Content(child)); len(fields) > 0 {
					word = fields[0]
				}
			}
			if r, ok := parseRefKind(word); ok {
				ref = r
				break
			}
		}

		typ := d.typeOf(typeNode)
		if typeNode == nil {
			typ = implicitType
		}

		out = append(out, &ParameterSymbol{
			name:     d.tree.Content(nameNode),
			typ:      typ,
			ref:      ref,
			ordinal:  len(out),
			location: syntax.NodeLocation(d.tree, nameNode),
		})
	}

	// The grammar inlines a params array into the list itself.
	if nameNode := syntax.Field(list, "name"); nameNode != nil {
		typ := implicitType
		if typeNode := syntax.Field(list, "type"); typeNode != nil {
			typ = d.typeOf(typeNode)
		}
		out = append(out, &ParameterSymbol{
			name:     d.tree.Content(nameNode),
			typ:      typ,
			ref:      RefParams,
			ordinal:  len(out),
			location: syntax.NodeLocation(d.tree, nameNode),
		})
	}

	return out
}

func (d *declarer) typeOf(n *sitter.Node) Type {
	if n == nil {
		return Void
	}

	return Type{Name: d.tree.TypeText(n)}
}

func (d *declarer) operatorToken(n *sitter.Node) string {
	if op := syntax.Field(n, "operator"); op != nil {
		return d.tree.Content(op)
	}

	children := syntax.Children(n)
	for i, child := range children {
		if child.Type() == "operator" && i+1 < len(children) {
			return d.tree.Content(children[i+1])
		}
	}

	return "?"
}

func parameterList(n *sitter.Node) *sitter.Node {
	if list := syntax.Field(n, "parameters"); list != nil {
		return list
	}

	return syntax.FirstOfType(n, "parameter_list")
}

// bodyOf returns the block or expression body of a member or accessor.
func bodyOf(n *sitter.Node) *sitter.Node {
	if body := syntax.Field(n, "body"); body != nil {
		return body
	}

	return syntax.FirstOfType(n, "block", "arrow_expression_clause")
}

// initializer returns the initial value expression of a variable declarator.
func initializer(v *sitter.Node) *sitter.Node {
	if eq := syntax.FirstOfType(v, "equals_value_clause"); eq != nil {
		children := syntax.NamedChildren(eq)
		if len(children) == 0 {
			return nil
		}
		return children[len(children)-1]
	}

	// Newer grammars inline "= value" into the declarator.
	children := syntax.Children(v)
	for i, child := range children {
		if child.Type() == "=" && i+1 < len(children) {
			return children[i+1]
		}
	}

	return nil
}
