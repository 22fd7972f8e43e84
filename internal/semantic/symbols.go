package semantic

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/syntax"
)

// Type is the static type of an entity as written in source. Implicitly
// typed locals carry the type inferred from their initializer when it is
// evident, "var" otherwise.
type Type struct {
	Name string
}

// Void is the return type of constructors, destructors and void methods.
var Void = Type{Name: "void"}

var implicitType = Type{Name: "var"}

func (t Type) String() string {
	return t.Name
}

// IsValid reports whether the type is known.
func (t Type) IsValid() bool {
	return t.Name != ""
}

// BaseName strips namespace qualification, generic arguments, array ranks
// and nullability, so "System.Collections.Generic.List<int>?" becomes "List".
func (t Type) BaseName() string {
	name := strings.TrimSuffix(t.Name, "?")
	if i := strings.IndexAny(name, "<["); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}

	return strings.TrimSpace(name)
}

// IsArray reports whether the type is an array type.
func (t Type) IsArray() bool {
	return strings.HasSuffix(strings.TrimSuffix(t.Name, "?"), "]")
}

// Symbol is a named entity that references can bind to.
type Symbol interface {
	// Name is the identifier as written in source.
	Name() string
	Kind() SymbolKind
	// Display renders the symbol the way compiler error messages do:
	// qualified by containing types, methods with parameter types, and
	// parameters as their type only.
	Display() string
	Location() syntax.Location
	symbol()
}

// TypeSymbol is a class, struct, interface, record or enum declaration.
type TypeSymbol struct {
	name      string
	kind      TypeKind
	namespace string
	container *TypeSymbol
	bases     []string
	location  syntax.Location
	tree      *syntax.Tree
	decl      *sitter.Node

	members []Symbol
	byName  map[string][]Symbol
}

func (t *TypeSymbol) Name() string              { return t.name }
func (t *TypeSymbol) TypeKind() TypeKind        { return t.kind }
func (t *TypeSymbol) Namespace() string         { return t.namespace }
func (t *TypeSymbol) Container() *TypeSymbol    { return t.container }
func (t *TypeSymbol) Location() syntax.Location { return t.location }
func (t *TypeSymbol) Tree() *syntax.Tree        { return t.tree }
func (t *TypeSymbol) Syntax() *sitter.Node      { return t.decl }

// Bases returns the type names listed in the base list.
func (t *TypeSymbol) Bases() []string { return t.bases }

// Members returns the declared members in declaration order.
func (t *TypeSymbol) Members() []Symbol { return t.members }

// Display returns the name qualified by containing types.
func (t *TypeSymbol) Display() string {
	if t.container == nil {
		return t.name
	}

	return t.container.Display() + "." + t.name
}

// Type returns the type that instances of t have.
func (t *TypeSymbol) Type() Type {
	return Type{Name: t.name}
}

func (t *TypeSymbol) addMember(s Symbol) {
	if t.byName == nil {
		t.byName = make(map[string][]Symbol)
	}
	t.members = append(t.members, s)
	t.byName[s.Name()] = append(t.byName[s.Name()], s)
}

// MemberSymbol is a field, property or event.
type MemberSymbol struct {
	name      string
	kind      SymbolKind
	typ       Type
	static    bool
	container *TypeSymbol
	location  syntax.Location
}

func (m *MemberSymbol) Name() string              { return m.name }
func (m *MemberSymbol) Kind() SymbolKind          { return m.kind }
func (m *MemberSymbol) Type() Type                { return m.typ }
func (m *MemberSymbol) IsStatic() bool            { return m.static }
func (m *MemberSymbol) Container() *TypeSymbol    { return m.container }
func (m *MemberSymbol) Location() syntax.Location { return m.location }
func (m *MemberSymbol) Display() string           { return m.container.Display() + "." + m.name }
func (*MemberSymbol) symbol()                     {}

// MethodSymbol is any invocable member: methods, constructors, destructors,
// operators and local functions.
type MethodSymbol struct {
	name       string
	kind       SymbolKind
	returnType Type
	static     bool
	container  *TypeSymbol
	params     []*ParameterSymbol
	location   syntax.Location
}

func (m *MethodSymbol) Name() string                   { return m.name }
func (m *MethodSymbol) Kind() SymbolKind               { return m.kind }
func (m *MethodSymbol) ReturnType() Type               { return m.returnType }
func (m *MethodSymbol) IsStatic() bool                 { return m.static }
func (m *MethodSymbol) Container() *TypeSymbol         { return m.container }
func (m *MethodSymbol) Parameters() []*ParameterSymbol { return m.params }
func (m *MethodSymbol) Location() syntax.Location      { return m.location }
func (*MethodSymbol) symbol()                          {}

func (m *MethodSymbol) Display() string {
	var sb strings.Builder
	if m.container != nil && m.kind != LocalFunction {
		sb.WriteString(m.container.Display())
		sb.WriteByte('.')
	}
	sb.WriteString(m.name)
	sb.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Display())
	}
	sb.WriteByte(')')

	return sb.String()
}

// accepts reports whether a call with argc arguments can target m.
func (m *MethodSymbol) accepts(argc int) bool {
	n := len(m.params)
	if n > 0 && m.params[n-1].ref == RefParams {
		return argc >= n-1
	}

	return argc == n
}

// ParameterSymbol is a method, local function, lambda or accessor parameter.
type ParameterSymbol struct {
	name     string
	typ      Type
	ref      RefKind
	ordinal  int
	implicit bool
	location syntax.Location
}

func (p *ParameterSymbol) Name() string              { return p.name }
func (p *ParameterSymbol) Kind() SymbolKind          { return p.ref.symbolKind() }
func (p *ParameterSymbol) Type() Type                { return p.typ }
func (p *ParameterSymbol) RefKind() RefKind          { return p.ref }
func (p *ParameterSymbol) Ordinal() int              { return p.ordinal }
func (p *ParameterSymbol) Location() syntax.Location { return p.location }
func (*ParameterSymbol) symbol()                     {}

// IsImplicit reports whether the parameter has no declaration, like the
// value parameter of a property setter.
func (p *ParameterSymbol) IsImplicit() bool { return p.implicit }

// Display renders the parameter as its passing mode and type, without the
// name, matching how parameters appear inside method signatures.
func (p *ParameterSymbol) Display() string {
	if kw := p.ref.Keyword(); kw != "" {
		return kw + " " + p.typ.Name
	}

	return p.typ.Name
}

// LocalSymbol is a local variable, including foreach, catch and pattern variables.
type LocalSymbol struct {
	name     string
	typ      Type
	location syntax.Location
}

func (l *LocalSymbol) Name() string              { return l.name }
func (*LocalSymbol) Kind() SymbolKind            { return Variable }
func (l *LocalSymbol) Type() Type                { return l.typ }
func (l *LocalSymbol) Location() syntax.Location { return l.location }
func (l *LocalSymbol) Display() string           { return l.name }
func (*LocalSymbol) symbol()                     {}
