package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	hulktypes "github.com/hulklang/hulkc/internal/types"
)

// declareStructTypes registers an empty named struct type `%T` for every
// user type before any fields are filled in, so that attribute types
// referencing other user types (forward or cyclic through pointers) can
// already resolve to a pointer-to-named-struct.
func (g *Generator) declareStructTypes() {
	for _, rec := range g.env.Types() {
		st := types.NewStruct()
		g.module.NewTypeDef(rec.Name, st)
		g.structTypes[rec.Name] = st
	}
}

// fillStructFields lays out every user type's fields: a leading i8*
// vtable-pointer slot (uniformly typed across every type so a child
// struct's pointer trivially upcasts to its parent's), followed by every
// attribute reachable on the type in struct-layout order.
func (g *Generator) fillStructFields() {
	for _, rec := range g.env.Types() {
		st := g.structTypes[rec.Name]
		fields := []types.Type{types.NewPointer(types.I8)}
		for _, attr := range g.env.FlattenedAttributes(rec.Name) {
			fields = append(fields, g.llvmType(attr.Type))
		}
		st.Fields = fields
	}
}

// declareVtables builds one global constant array of bitcast'd i8*
// function pointers per user type, one slot per method reachable on
// that type (spec C5 "Vtables"). Every slot is typed i8* uniformly —
// grounded on the pack's existing vtable emitter, which casts every
// method to i8* "to avoid type matching issues in global initializers" —
// so a descendant's vtable can replace an ancestor's slot in place
// without the array's element type depending on any one method's exact
// signature.
func (g *Generator) declareVtables() {
	for _, rec := range g.env.Types() {
		slots := g.env.VtableSlots(rec.Name)
		arrType := types.NewArray(uint64(len(slots)), types.NewPointer(types.I8))
		name := rec.Name + "_vtable"
		global := g.module.NewGlobalDef(name, constant.NewZeroInitializer(arrType))
		global.Immutable = true
		g.vtables[rec.Name] = global
	}
}

// vtableInit is called once every method function is declared, filling
// each vtable global with bitcast'd pointers to the owning type's
// function (an inherited, non-overridden slot points at the ancestor's
// own function — dispatch from a descendant still calls the method that
// declares it, receiving the descendant pointer bitcast down to the
// declaring type).
func (g *Generator) vtableInit() {
	for _, rec := range g.env.Types() {
		slots := g.env.VtableSlots(rec.Name)
		arrType := types.NewArray(uint64(len(slots)), types.NewPointer(types.I8))
		elems := make([]constant.Constant, len(slots))
		for i, m := range slots {
			fn := g.methods[m.OwnerType+"."+m.Name]
			elems[i] = constant.NewBitCast(fn, types.NewPointer(types.I8))
		}
		g.vtables[rec.Name].Init = constant.NewArray(arrType, elems...)
	}
}
