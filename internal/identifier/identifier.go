// Package identifier resolves bound operations to the entity they name.
//
// Resolve is total over operation kinds: anything that is not a reference to
// a named entity resolves to ok == false. Rules rely on this to probe
// arbitrary sub-expressions without checking kinds first.
package identifier

import (
	"guidelint/internal/semantic"
)

// Name is the pair of forms an identifier is reported with.
type Name struct {
	// Short is the identifier as written in source.
	Short string `json:"short"`
	// Display is the rendering used in diagnostic messages.
	Display string `json:"display"`
}

// Info describes the entity an operation refers to. A successful Resolve
// populates every field.
type Info struct {
	Name         Name                `json:"name"`
	DeclaredType semantic.Type       `json:"declared_type"`
	Kind         semantic.SymbolKind `json:"kind"`
}

// Resolve returns the identifier information for op. It reports false for
// a nil operation and for every kind other than local, parameter, member and
// invocation references.
func Resolve(op semantic.Operation) (Info, bool) {
	switch op := op.(type) {
	case *semantic.LocalReference:
		if op == nil || op.Local == nil {
			return Info{}, false
		}
		return fromSymbol(op.Local, op.Local.Type())
	case *semantic.ParameterReference:
		if op == nil {
			return Info{}, false
		}
		return fromParameter(op.Parameter)
	case *semantic.FieldReference:
		if op == nil {
			return Info{}, false
		}
		return fromMember(op)
	case *semantic.PropertyReference:
		if op == nil {
			return Info{}, false
		}
		return fromMember(op)
	case *semantic.EventReference:
		if op == nil {
			return Info{}, false
		}
		return fromMember(op)
	case *semantic.Invocation:
		if op == nil || op.TargetMethod == nil {
			return Info{}, false
		}
		return fromSymbol(op.TargetMethod, op.TargetMethod.ReturnType())
	}

	return Info{}, false
}

// fromMember covers field, property and event references alike.
func fromMember(ref semantic.MemberReference) (Info, bool) {
	m := ref.Member()
	if m == nil {
		return Info{}, false
	}

	return fromSymbol(m, m.Type())
}

// fromParameter reports the raw name as the display form. A parameter's
// symbol display is its type alone, which reads badly in a message.
func fromParameter(p *semantic.ParameterSymbol) (Info, bool) {
	if p == nil {
		return Info{}, false
	}

	return complete(Info{
		Name:         Name{Short: p.Name(), Display: p.Name()},
		DeclaredType: p.Type(),
		Kind:         p.Kind(),
	})
}

func fromSymbol(sym semantic.Symbol, typ semantic.Type) (Info, bool) {
	return complete(Info{
		Name:         Name{Short: sym.Name(), Display: sym.Display()},
		DeclaredType: typ,
		Kind:         sym.Kind(),
	})
}

// complete rejects partially populated results.
func complete(info Info) (Info, bool) {
	if info.Name.Short == "" || info.Name.Display == "" || !info.DeclaredType.IsValid() {
		return Info{}, false
	}

	return info, true
}
