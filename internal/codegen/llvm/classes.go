package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	hulktypes "github.com/hulklang/hulkc/internal/types"
)

// declareCtorSignatures declares `@T_new(params...) -> %T*` for every
// user type, ahead of any body, so constructors can call a parent
// constructor declared later in iteration order.
func (g *Generator) declareCtorSignatures() {
	for _, rec := range g.env.Types() {
		st := g.structTypes[rec.Name]
		params := make([]*ir.Param, len(rec.CtorParams))
		for i, p := range rec.CtorParams {
			params[i] = ir.NewParam(p.Name, g.llvmType(p.Type))
		}
		fn := g.module.NewFunc(ctorName(rec.Name), types.NewPointer(st), params...)
		g.ctors[rec.Name] = fn
	}
}

// declareMethodSignatures declares `@T_methodName(%T* %self, params...)`
// for every method whose OwnerType is exactly T — an inherited,
// non-overridden method is never redeclared by a descendant, since
// dispatch always calls the declaring type's own function with the
// receiver bitcast down to that type (spec C5 "Method lowering").
func (g *Generator) declareMethodSignatures() {
	for _, rec := range g.env.Types() {
		for _, name := range rec.MethodOrder {
			m := rec.Methods[name]
			if m.OwnerType != rec.Name {
				continue
			}
			selfType := types.NewPointer(g.structTypes[rec.Name])
			params := make([]*ir.Param, len(m.Params)+1)
			params[0] = ir.NewParam("self", selfType)
			for i, p := range m.Params {
				params[i+1] = ir.NewParam(p.Name, g.llvmType(p.Type))
			}
			fn := g.module.NewFunc(methodFuncName(rec.Name, m.Name), g.llvmType(m.ReturnType), params...)
			g.methods[rec.Name+"."+m.Name] = fn
		}
	}
}

// emitCtorBody lowers @T_new's body per spec C5 "Constructor synthesis":
// allocate the struct, store the vtable pointer, invoke and flatten the
// parent constructor's fields (if any), evaluate this type's own
// attribute initializers in a scope of ctor params + self, return self.
func (g *Generator) emitCtorBody(rec *hulktypes.ClassRecord) {
	fn := g.ctors[rec.Name]
	st := g.structTypes[rec.Name]
	block := fn.NewBlock("entry")
	g.curFunc, g.curBlock, g.tmp = fn, block, 0
	g.curSelfType = rec.Name

	sizePtr := constant.NewGetElementPtr(st, constant.NewNull(types.NewPointer(st)), constant.NewInt(types.I32, 1))
	size := constant.NewPtrToInt(sizePtr, types.I64)
	raw := g.curBlock.NewCall(g.runtime.malloc, size)
	self := g.curBlock.NewBitCast(raw, types.NewPointer(st))
	self.SetName("self")

	vtablePtrField := g.curBlock.NewGetElementPtr(st, self, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
	vtableCast := g.curBlock.NewBitCast(g.vtables[rec.Name], types.NewPointer(types.I8))
	g.curBlock.NewStore(vtableCast, vtablePtrField)

	scope := newIRScope(nil)
	for i, p := range rec.CtorParams {
		g.bindParam(scope, p.Name, fn.Params[i], p.Type)
	}
	g.bindParam(scope, "self", self, rec.Name)
	g.curScope = scope

	baseIndex := g.constructParentPrefix(rec, self, scope)
	g.assignOwnAttributes(rec, self, baseIndex, scope)

	g.curBlock.NewRet(self)
	g.curSelfType = ""
}

// constructParentPrefix invokes the parent constructor (if any) with the
// `inherits(...)` arguments evaluated under the current constructor's
// parameter scope, then copies each resulting field into self's shared
// prefix. Returns the attribute index self's own fields should start at.
func (g *Generator) constructParentPrefix(rec *hulktypes.ClassRecord, self value.Value, scope *irScope) int {
	if rec.Parent == "" || rec.Parent == hulktypes.Object {
		return 0
	}
	td := g.typeDecls[rec.Name]

	args := make([]value.Value, len(td.ParentArgs))
	for i, argExpr := range td.ParentArgs {
		args[i] = g.emitExprIn(argExpr, scope)
	}
	parentPtr := g.curBlock.NewCall(g.ctors[rec.Parent], args...)

	parentAttrs := g.env.FlattenedAttributes(rec.Parent)
	st := g.structTypes[rec.Name]
	parentSt := g.structTypes[rec.Parent]
	for i, attr := range parentAttrs {
		srcField := g.curBlock.NewGetElementPtr(parentSt, parentPtr,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(i+1)))
		fieldVal := g.curBlock.NewLoad(g.llvmType(attr.Type), srcField)
		dstField := g.curBlock.NewGetElementPtr(st, self,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(i+1)))
		g.curBlock.NewStore(fieldVal, dstField)
	}

	return len(parentAttrs)
}

// assignOwnAttributes evaluates this type's own attribute initializers,
// in declaration order, under a scope of the constructor parameters plus
// self, storing each result into its struct-layout field.
func (g *Generator) assignOwnAttributes(rec *hulktypes.ClassRecord, self value.Value, baseIndex int, scope *irScope) {
	td := g.typeDecls[rec.Name]
	st := g.structTypes[rec.Name]
	for i, attr := range td.Attributes {
		val := g.emitExprIn(attr.Init, scope)
		field := g.curBlock.NewGetElementPtr(st, self,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(baseIndex+i+1)))
		g.curBlock.NewStore(val, field)
	}
}

// emitMethodBody lowers a single method's body with a fresh scope of
// self + parameters (spec C5 "Method lowering").
func (g *Generator) emitMethodBody(rec *hulktypes.ClassRecord, m *hulktypes.MethodInfo) {
	fn := g.methods[rec.Name+"."+m.Name]
	td := g.typeDecls[rec.Name]
	decl := td.Methods[m.Name]

	block := fn.NewBlock("entry")
	g.curFunc, g.curBlock, g.tmp = fn, block, 0
	g.curSelfType = rec.Name

	scope := newIRScope(nil)
	g.bindParam(scope, "self", fn.Params[0], rec.Name)
	for i, p := range m.Params {
		g.bindParam(scope, p.Name, fn.Params[i+1], p.Type)
	}
	g.curScope = scope

	result := g.emitExprIn(decl.Body, scope)
	g.curBlock.NewRet(result)
	g.curSelfType = ""
}
