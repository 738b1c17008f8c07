package semantic

// Scope is one frame of the lexical scope stack consulted during Pass B.
// Frames link to their enclosing scope rather than living in a single
// mutable slice, so entering/leaving a `let` or block is O(1) and
// shadowing falls naturally out of the lookup walk (spec §9: "a stack of
// immutable frames linked to a parent, not a single mutable map").
type Scope struct {
	vars  map[string]string // name -> resolved type
	outer *Scope
}

// NewScope creates a scope enclosed by outer (nil for the outermost
// frame of a function/method/top-level body).
func NewScope(outer *Scope) *Scope {
	return &Scope{vars: make(map[string]string), outer: outer}
}

// Define binds name to typ in this frame, shadowing any binding of the
// same name in an enclosing frame.
func (s *Scope) Define(name, typ string) {
	s.vars[name] = typ
}

// Lookup resolves name by walking outward through enclosing frames.
func (s *Scope) Lookup(name string) (string, bool) {
	for f := s; f != nil; f = f.outer {
		if t, ok := f.vars[name]; ok {
			return t, true
		}
	}
	return "", false
}
