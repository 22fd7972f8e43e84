package semantic

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"guidelint/internal/syntax"
)

// Compilation binds a set of parsed files. Declarations of all files are
// collected up front so references may cross file boundaries; member bodies
// are bound lazily per file, once.
//
// A Compilation is safe for concurrent use once NewCompilation returns.
type Compilation struct {
	trees  []*syntax.Tree
	types  []*TypeSymbol
	byName map[string][]*TypeSymbol
	files  map[*syntax.Tree]*file
}

type file struct {
	types   []*TypeSymbol
	pending []pendingBody

	once  sync.Once
	roots []Operation
}

// pendingBody is a member body awaiting binding.
type pendingBody struct {
	owner      Symbol
	container  *TypeSymbol
	params     []*ParameterSymbol
	returnType Type
	node       *sitter.Node
}

// NewCompilation collects the declarations of all trees.
func NewCompilation(trees ...*syntax.Tree) *Compilation {
	c := &Compilation{
		trees:  trees,
		byName: make(map[string][]*TypeSymbol),
		files:  make(map[*syntax.Tree]*file, len(trees)),
	}

	for _, t := range trees {
		f := &file{}
		c.files[t] = f
		d := declarer{comp: c, tree: t, file: f}
		d.declareScope(t.Root(), "", nil)
	}

	return c
}

// Trees returns the files of the compilation in the order given.
func (c *Compilation) Trees() []*syntax.Tree {
	return c.trees
}

// Types returns all declared types.
func (c *Compilation) Types() []*TypeSymbol {
	return c.types
}

// TypesIn returns the types whose first declaration is in t.
func (c *Compilation) TypesIn(t *syntax.Tree) []*TypeSymbol {
	if f, ok := c.files[t]; ok {
		return f.types
	}

	return nil
}

// LookupType finds a declared type by simple name.
func (c *Compilation) LookupType(name string) *TypeSymbol {
	if types := c.byName[Type{Name: name}.BaseName()]; len(types) > 0 {
		return types[0]
	}

	return nil
}

// Operations returns the bound member bodies of t in declaration order.
// Each root is a *MethodBody.
func (c *Compilation) Operations(t *syntax.Tree) []Operation {
	f, ok := c.files[t]
	if !ok {
		return nil
	}

	f.once.Do(func() {
		f.roots = make([]Operation, 0, len(f.pending))
		for _, pb := range f.pending {
			f.roots = append(f.roots, c.bindBody(t, pb))
		}
	})

	return f.roots
}

// HasErrors reports whether the source span of op overlaps a syntax error.
// Operations without syntax count as erroneous.
func (c *Compilation) HasErrors(op Operation) bool {
	if op == nil {
		return true
	}

	n, t := op.Syntax(), op.Tree()
	if n == nil || t == nil {
		return true
	}

	return t.HasErrorsIn(n.StartByte(), n.EndByte())
}

// lookupMember finds members named name in t and its base types.
func (c *Compilation) lookupMember(t *TypeSymbol, name string) []Symbol {
	seen := make(map[*TypeSymbol]bool)

	var walk func(t *TypeSymbol) []Symbol
	walk = func(t *TypeSymbol) []Symbol {
		if t == nil || seen[t] {
			return nil
		}
		seen[t] = true

		if syms := t.byName[name]; len(syms) > 0 {
			return syms
		}

		for _, base := range t.bases {
			if syms := walk(c.LookupType(base)); len(syms) > 0 {
				return syms
			}
		}

		return nil
	}

	return walk(t)
}

func (c *Compilation) addType(t *TypeSymbol, f *file) {
	c.types = append(c.types, t)
	c.byName[t.name] = append(c.byName[t.name], t)
	f.types = append(f.types, t)
}

// partialType returns an existing declaration t continues, if any.
func (c *Compilation) partialType(name, namespace string, container *TypeSymbol) *TypeSymbol {
	for _, t := range c.byName[name] {
		if t.namespace == namespace && t.container == container {
			return t
		}
	}

	return nil
}
