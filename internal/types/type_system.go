// Package types implements the HULK type environment (spec C4): the
// registry of declared types and global functions, and the subtype/LCA/
// member-lookup queries the semantic analyzer and code generator consult.
package types

import (
	"fmt"
	"sort"
)

// Well-known primitive type names. These are disjoint leaves in the
// lattice: they are never subtypes of Object or of each other.
const (
	Number  = "Number"
	Boolean = "Boolean"
	String  = "String"
	Object  = "Object"
)

// IsPrimitive reports whether name is one of the three disjoint leaf
// types. Object is the root of the user-type lattice, not a primitive.
func IsPrimitive(name string) bool {
	return name == Number || name == Boolean || name == String
}

// Param is a single constructor/function/method parameter: a name and
// its declared type name.
type Param struct {
	Name string
	Type string
}

// AttributeInfo describes one type attribute: its declared type and the
// slot index it occupies in the emitted struct layout (declaration
// order, parent attributes first).
type AttributeInfo struct {
	Name  string
	Type  string
	Index int
}

// MethodInfo describes one resolved method signature.
type MethodInfo struct {
	Name       string
	Params     []Param
	ReturnType string
	// OwnerType is the type whose definition declares this method: the
	// overriding type for an override, the ancestor for an inherited,
	// non-overridden method. The code generator uses it to pick the
	// function a vtable slot points at and the type the receiver is
	// bitcast to; the slot index itself is Slot.
	OwnerType string
	// Slot is the vtable slot index, assigned once per method name the
	// first time it appears in a hierarchy; overrides reuse it.
	Slot int
}

// FunctionInfo describes a global function signature.
type FunctionInfo struct {
	Name       string
	Params     []Param
	ReturnType string
}

// ClassRecord is the full declaration of one user type: its parent,
// constructor parameters, attributes (in layout order) and methods.
// Once declaration (Pass A) completes the record is treated as
// immutable by the rest of the pipeline.
type ClassRecord struct {
	Name            string
	Parent          string // "" means the implicit parent is Object
	CtorParams      []Param
	ParentArgsCount int // arity of the `inherits Parent(args)` call, if any
	Attributes      map[string]*AttributeInfo
	AttributeOrder  []string // declaration order == struct layout order
	Methods         map[string]*MethodInfo
	MethodOrder     []string // order methods were declared, for vtable growth
}

func newClassRecord(name string) *ClassRecord {
	return &ClassRecord{
		Name:       name,
		Attributes: make(map[string]*AttributeInfo),
		Methods:    make(map[string]*MethodInfo),
	}
}

// Env is the type registry populated during semantic Pass A and
// consulted read-only afterwards by Pass B and the code generator.
type Env struct {
	classes   map[string]*ClassRecord
	functions map[string]*FunctionInfo
}

// NewEnv creates an empty type environment.
func NewEnv() *Env {
	return &Env{
		classes:   make(map[string]*ClassRecord),
		functions: make(map[string]*FunctionInfo),
	}
}

// DeclareType registers a new user type header. It returns an error if
// the name is already declared (Object and the primitives are reserved
// and cannot be redeclared).
func (e *Env) DeclareType(name string) (*ClassRecord, error) {
	if name == Object || IsPrimitive(name) {
		return nil, fmt.Errorf("type %q is reserved", name)
	}
	if _, exists := e.classes[name]; exists {
		return nil, fmt.Errorf("type %q already defined", name)
	}
	rec := newClassRecord(name)
	e.classes[name] = rec
	return rec, nil
}

// DeclareFunction registers a global function signature. It returns an
// error if a function with the same name already exists.
func (e *Env) DeclareFunction(fn *FunctionInfo) error {
	if _, exists := e.functions[fn.Name]; exists {
		return fmt.Errorf("function %q already defined", fn.Name)
	}
	e.functions[fn.Name] = fn
	return nil
}

// LookupType returns the class record for name, or ok=false if name is
// not a declared user type (this also returns false for Object and the
// primitives, which have no ClassRecord).
func (e *Env) LookupType(name string) (*ClassRecord, bool) {
	rec, ok := e.classes[name]
	return rec, ok
}

// LookupFunction returns the signature of a declared global function.
func (e *Env) LookupFunction(name string) (*FunctionInfo, bool) {
	fn, ok := e.functions[name]
	return fn, ok
}

// Types returns the record of every declared user type, sorted by name,
// for deterministic iteration (e.g. emitting struct/vtable globals in a
// stable order).
func (e *Env) Types() []*ClassRecord {
	out := make([]*ClassRecord, 0, len(e.classes))
	for _, rec := range e.classes {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// parentOf returns the declared parent name of a user type, defaulting
// to Object when no `inherits` clause was given.
func (e *Env) parentOf(name string) string {
	rec, ok := e.classes[name]
	if !ok || rec.Parent == "" {
		return Object
	}
	return rec.Parent
}

// ancestors returns name and every ancestor up to and including Object,
// in order from name to the root. It is safe to call even when the
// parent graph contains a cycle: traversal stops once it revisits a
// name (the cycle itself is reported separately by the semantic
// analyzer's declaration pass).
func (e *Env) ancestors(name string) []string {
	if IsPrimitive(name) {
		return []string{name}
	}
	seen := map[string]bool{}
	chain := []string{}
	cur := name
	for {
		if seen[cur] {
			break
		}
		seen[cur] = true
		chain = append(chain, cur)
		if cur == Object {
			break
		}
		if _, ok := e.classes[cur]; !ok {
			chain = append(chain, Object)
			break
		}
		cur = e.parentOf(cur)
	}
	return chain
}

// Subtype reports whether a is the same type as b, or descends from b
// through the parent chain. Object is an ancestor of every user type
// but not of Number/Boolean/String, which are disjoint from it and from
// each other.
func (e *Env) Subtype(a, b string) bool {
	if a == b {
		return true
	}
	if IsPrimitive(a) || IsPrimitive(b) {
		return false
	}
	for _, anc := range e.ancestors(a) {
		if anc == b {
			return true
		}
	}
	return false
}

// LCA returns the least common ancestor of a and b in the type lattice.
// For two primitives of different kinds, or a primitive paired with a
// user type, no type in this lattice lies above both; LCA returns Object
// in that case, the same fallback it uses for user types whose ancestor
// chains share nothing below Object. The semantic analyzer calls it to
// type if/elif/else chains, whatever the branch types are.
func (e *Env) LCA(a, b string) string {
	if a == b {
		return a
	}
	if IsPrimitive(a) && IsPrimitive(b) {
		return Object
	}
	if IsPrimitive(a) || IsPrimitive(b) {
		return Object
	}
	chainA := e.ancestors(a)
	inA := map[string]bool{}
	for _, t := range chainA {
		inA[t] = true
	}
	for _, t := range e.ancestors(b) {
		if inA[t] {
			return t
		}
	}
	return Object
}

// MethodOf resolves method name on typeName, walking the parent chain.
// It returns the most specific (closest-to-typeName) declaration.
func (e *Env) MethodOf(typeName, name string) (*MethodInfo, bool) {
	for _, t := range e.ancestors(typeName) {
		rec, ok := e.classes[t]
		if !ok {
			continue
		}
		if m, ok := rec.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// AttributeOf resolves attribute name on typeName, walking the parent
// chain.
func (e *Env) AttributeOf(typeName, name string) (*AttributeInfo, bool) {
	for _, t := range e.ancestors(typeName) {
		rec, ok := e.classes[t]
		if !ok {
			continue
		}
		if a, ok := rec.Attributes[name]; ok {
			return a, true
		}
	}
	return nil, false
}

// AncestorAttributeCount returns how many attribute slots are already
// occupied by parentName and its own ancestors — the struct-layout
// offset a descendant type's own attributes start after.
func (e *Env) AncestorAttributeCount(parentName string) int {
	if parentName == "" || parentName == Object {
		return 0
	}
	count := 0
	for _, t := range e.ancestors(parentName) {
		if rec, ok := e.classes[t]; ok {
			count += len(rec.AttributeOrder)
		}
	}
	return count
}

// NextMethodSlot returns the vtable slot to assign to a brand-new
// (non-overriding) method introduced at or below parentName.
func (e *Env) NextMethodSlot(parentName string) int {
	if parentName == "" || parentName == Object {
		return 0
	}
	max := -1
	for _, t := range e.ancestors(parentName) {
		rec, ok := e.classes[t]
		if !ok {
			continue
		}
		for _, name := range rec.MethodOrder {
			if m := rec.Methods[name]; m.Slot > max {
				max = m.Slot
			}
		}
	}
	return max + 1
}

// FlattenedAttributes returns every attribute reachable on typeName, in
// struct-layout order (root ancestor's attributes first, typeName's own
// last) — exactly the field order the code generator lays out `%T`.
func (e *Env) FlattenedAttributes(typeName string) []*AttributeInfo {
	chain := e.ancestors(typeName)
	var out []*AttributeInfo
	for i := len(chain) - 1; i >= 0; i-- {
		rec, ok := e.classes[chain[i]]
		if !ok {
			continue
		}
		for _, name := range rec.AttributeOrder {
			out = append(out, rec.Attributes[name])
		}
	}
	return out
}

// VtableSlots returns the most-specific MethodInfo for every vtable slot
// reachable on typeName, indexed by slot number (slot i is out[i]). A
// child's override replaces its ancestor's entry at the same slot,
// reflecting the stable-slot invariant.
func (e *Env) VtableSlots(typeName string) []*MethodInfo {
	chain := e.ancestors(typeName)
	bySlot := map[int]*MethodInfo{}
	max := -1
	for i := len(chain) - 1; i >= 0; i-- {
		rec, ok := e.classes[chain[i]]
		if !ok {
			continue
		}
		for _, name := range rec.MethodOrder {
			m := rec.Methods[name]
			bySlot[m.Slot] = m
			if m.Slot > max {
				max = m.Slot
			}
		}
	}
	out := make([]*MethodInfo, max+1)
	for slot, m := range bySlot {
		out[slot] = m
	}
	return out
}

// HasCycle reports whether the parent chain starting at name revisits a
// name before reaching Object — i.e. the type graph is not a forest.
func (e *Env) HasCycle(name string) bool {
	seen := map[string]bool{}
	cur := name
	for {
		if seen[cur] {
			return true
		}
		seen[cur] = true
		if cur == Object {
			return false
		}
		rec, ok := e.classes[cur]
		if !ok {
			return false
		}
		if rec.Parent == "" {
			return false
		}
		cur = rec.Parent
	}
}
