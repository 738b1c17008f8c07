package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// runtimeDecls holds the external declarations for the fixed helper ABI
// (spec §6 "Runtime helper ABI") that every emitted module links
// against. Grounded on the pack's LLVM codegen example, which
// pre-declares its GC and builtin functions once up front before any
// function body is generated.
type runtimeDecls struct {
	concat    *ir.Func
	numToStr  *ir.Func
	boolToStr *ir.Func
	printNum  *ir.Func
	printBool *ir.Func
	printStr  *ir.Func
	malloc    *ir.Func
	pow       *ir.Func // llvm.pow.f64 intrinsic, backing the `^` operator
}

func declareRuntime(m *ir.Module) *runtimeDecls {
	i8ptr := types.NewPointer(types.I8)

	r := &runtimeDecls{}
	r.concat = m.NewFunc("hulk_concat", i8ptr, ir.NewParam("a", i8ptr), ir.NewParam("b", i8ptr))
	r.numToStr = m.NewFunc("hulk_num_to_str", i8ptr, ir.NewParam("n", types.Double))
	r.boolToStr = m.NewFunc("hulk_bool_to_str", i8ptr, ir.NewParam("b", types.I1))
	r.printNum = m.NewFunc("hulk_print_num", types.Void, ir.NewParam("n", types.Double))
	r.printBool = m.NewFunc("hulk_print_bool", types.Void, ir.NewParam("b", types.I1))
	r.printStr = m.NewFunc("hulk_print_str", types.Void, ir.NewParam("s", i8ptr))
	r.malloc = m.NewFunc("hulk_malloc", i8ptr, ir.NewParam("size", types.I64))
	r.pow = m.NewFunc("llvm.pow.f64", types.Double, ir.NewParam("x", types.Double), ir.NewParam("y", types.Double))

	// None of these ever get a Blocks entry, so llir/llvm prints each as
	// an external "declare", matching the runtime ABI's actual linkage.
	return r
}
