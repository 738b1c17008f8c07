package llvm

import "github.com/llir/llvm/ir/value"

// binding is one slot in the IR-level scope stack: the alloca backing a
// name, plus its HULK static type — needed to pick the right llvmType
// when the value is later loaded or stored. Every binding, including
// self and function/method/constructor parameters, goes through an
// alloca (see bindParam) so identifier reads and destructive assignment
// both reduce to "look up the slot, then load or store through it".
type binding struct {
	slot value.Value // an *ir.InstAlloca
	typ  string
}

// irScope is a stack of maps from identifier to (IR value, IR type)
// (spec C5 "Scope management"). Entering a block, let, function body, or
// if/while/for body pushes a frame; exiting pops by simply discarding
// the reference and resuming the outer scope.
type irScope struct {
	vars  map[string]*binding
	outer *irScope
}

func newIRScope(outer *irScope) *irScope {
	return &irScope{vars: map[string]*binding{}, outer: outer}
}

func (s *irScope) define(name string, slot value.Value, typ string) {
	s.vars[name] = &binding{slot: slot, typ: typ}
}

func (s *irScope) lookup(name string) (*binding, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if b, ok := cur.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}
