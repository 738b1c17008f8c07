package semantic

import (
	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
	"github.com/hulklang/hulkc/internal/types"
)

// passA is declaration collection: register every type header and
// global function signature, validate parent references, detect
// inheritance cycles, then — parent before child — assign attribute
// layout indices and method vtable slots and validate overrides.
func (a *Analyzer) passA(prog *ast.Program) {
	for _, fn := range prog.Functions {
		a.declareFunction(fn)
	}
	for _, td := range prog.Types {
		a.declareTypeHeader(td)
	}
	for _, td := range prog.Types {
		a.validateParent(td)
	}
	for _, td := range prog.Types {
		if a.env.HasCycle(td.Name) {
			a.errorf(errors.KindInheritanceCycle, td.Pos(), "type %q participates in an inheritance cycle", td.Name)
		}
	}
	for _, fn := range prog.Functions {
		a.validateSignatureTypes(fn.Params, fn.ReturnType, fn.Token.Pos)
	}
	for _, td := range prog.Types {
		a.validateSignatureTypes(td.CtorParams, "", td.Pos())
		for _, name := range td.MethodOrder {
			m := td.Methods[name]
			a.validateSignatureTypes(m.Params, m.ReturnType, m.Pos())
		}
	}

	resolved := map[string]bool{}
	for _, td := range prog.Types {
		a.resolveLayout(td.Name, resolved, map[string]bool{})
	}
}

// isKnownType reports whether name is a primitive, Object, or a
// declared user type.
func (a *Analyzer) isKnownType(name string) bool {
	if name == types.Object || types.IsPrimitive(name) {
		return true
	}
	_, ok := a.env.LookupType(name)
	return ok
}

func (a *Analyzer) declareFunction(fn *ast.FunctionDecl) {
	params := make([]types.Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = types.Param{Name: p.Name, Type: p.Type}
	}
	info := &types.FunctionInfo{Name: fn.Name, Params: params, ReturnType: fn.ReturnType}
	if err := a.env.DeclareFunction(info); err != nil {
		a.errorf(errors.KindRedeclaration, fn.Pos(), "%s", err)
		return
	}
	a.fnDecls[fn.Name] = fn
}

func (a *Analyzer) declareTypeHeader(td *ast.TypeDecl) {
	rec, err := a.env.DeclareType(td.Name)
	if err != nil {
		a.errorf(errors.KindRedeclaration, td.Pos(), "%s", err)
		return
	}
	rec.Parent = td.Parent
	rec.ParentArgsCount = len(td.ParentArgs)
	rec.CtorParams = make([]types.Param, len(td.CtorParams))
	for i, p := range td.CtorParams {
		rec.CtorParams[i] = types.Param{Name: p.Name, Type: p.Type}
	}
	a.typeDecls[td.Name] = td
}

func (a *Analyzer) validateParent(td *ast.TypeDecl) {
	if td.Parent == "" || td.Parent == types.Object {
		return
	}
	if types.IsPrimitive(td.Parent) {
		a.errorf(errors.KindUnknownName, td.Pos(), "type %q cannot inherit from primitive type %q", td.Name, td.Parent)
		return
	}
	if _, ok := a.env.LookupType(td.Parent); !ok {
		a.errorf(errors.KindUnknownName, td.Pos(), "unknown parent type %q for type %q", td.Parent, td.Name)
	}
}

// validateSignatureTypes checks that every parameter and (if non-empty)
// the return type name a declared user type or a primitive.
func (a *Analyzer) validateSignatureTypes(params []ast.Param, returnType string, pos lexer.Position) {
	for _, p := range params {
		if !a.isKnownType(p.Type) {
			a.errorf(errors.KindUnknownName, p.Span, "unknown type %q for parameter %q", p.Type, p.Name)
		}
	}
	if returnType != "" && !a.isKnownType(returnType) {
		a.errorf(errors.KindUnknownName, pos, "unknown return type %q", returnType)
	}
}

// resolveLayout finalizes rec.AttributeOrder/Attributes (indices only —
// Types are filled in by Pass B once initializers are analyzed) and
// rec.MethodOrder/Methods (slots, plus override validation) for name,
// recursing into the parent first so inherited slots/offsets are stable.
func (a *Analyzer) resolveLayout(name string, resolved, visiting map[string]bool) {
	if resolved[name] || visiting[name] {
		return
	}
	visiting[name] = true

	td, ok := a.typeDecls[name]
	if !ok {
		resolved[name] = true
		return
	}
	rec, _ := a.env.LookupType(name)

	parent := rec.Parent
	if parent != "" && parent != types.Object {
		if _, ok := a.env.LookupType(parent); ok {
			a.resolveLayout(parent, resolved, visiting)
		} else {
			parent = "" // unknown parent already reported; treat as Object here
		}
	}

	baseIndex := a.env.AncestorAttributeCount(parent)
	for i, attr := range td.Attributes {
		if _, dup := rec.Attributes[attr.Name]; dup {
			continue // parser already reported the duplicate
		}
		if parent != "" {
			if _, ok := a.env.AttributeOf(parent, attr.Name); ok {
				a.errorf(errors.KindRedeclaration, attr.Span, "attribute %q of type %q collides with an inherited attribute", attr.Name, name)
			}
		}
		info := &types.AttributeInfo{Name: attr.Name, Index: baseIndex + i}
		rec.Attributes[attr.Name] = info
		rec.AttributeOrder = append(rec.AttributeOrder, attr.Name)
	}

	nextSlot := a.env.NextMethodSlot(parent)
	for _, name := range td.MethodOrder {
		m := td.Methods[name]
		a.declareMethod(rec, parent, m, &nextSlot)
	}

	resolved[name] = true
}

func (a *Analyzer) declareMethod(rec *types.ClassRecord, parent string, m *ast.FunctionDecl, nextSlot *int) {
	if _, dup := rec.Methods[m.Name]; dup {
		return // parser already reported the duplicate
	}

	params := make([]types.Param, len(m.Params))
	for i, p := range m.Params {
		params[i] = types.Param{Name: p.Name, Type: p.Type}
	}

	info := &types.MethodInfo{Name: m.Name, Params: params, ReturnType: m.ReturnType, OwnerType: rec.Name}

	if parent != "" {
		if parentMethod, ok := a.env.MethodOf(parent, m.Name); ok {
			if !sameOverrideShape(parentMethod, params) {
				a.errorf(errors.KindInvalidOverride, m.Pos(), "method %q on type %q does not match parameter types of the overridden method", m.Name, rec.Name)
			} else if !a.env.Subtype(m.ReturnType, parentMethod.ReturnType) {
				a.errorf(errors.KindInvalidOverride, m.Pos(), "method %q on type %q must return a subtype of %q", m.Name, rec.Name, parentMethod.ReturnType)
			}
			info.Slot = parentMethod.Slot
			rec.Methods[m.Name] = info
			rec.MethodOrder = append(rec.MethodOrder, m.Name)
			return
		}
	}

	info.Slot = *nextSlot
	*nextSlot++
	rec.Methods[m.Name] = info
	rec.MethodOrder = append(rec.MethodOrder, m.Name)
}

func sameOverrideShape(parent *types.MethodInfo, childParams []types.Param) bool {
	if len(parent.Params) != len(childParams) {
		return false
	}
	for i, p := range parent.Params {
		if p.Type != childParams[i].Type {
			return false
		}
	}
	return true
}
