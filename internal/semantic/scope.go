package semantic

// scope is one level of the local name chain: a block, a loop header, a
// catch clause or a function's parameter list.
type scope struct {
	parent  *scope
	symbols map[string][]Symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent}
}

func (s *scope) declare(sym Symbol) {
	if s.symbols == nil {
		s.symbols = make(map[string][]Symbol)
	}
	s.symbols[sym.Name()] = append(s.symbols[sym.Name()], sym)
}

// lookup returns the symbols named name in the innermost scope declaring it.
func (s *scope) lookup(name string) []Symbol {
	for ; s != nil; s = s.parent {
		if syms := s.symbols[name]; len(syms) > 0 {
			return syms
		}
	}

	return nil
}
