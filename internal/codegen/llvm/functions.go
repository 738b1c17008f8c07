package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/hulklang/hulkc/internal/ast"
)

// declareFunctionSignatures declares every global HULK function ahead of
// any body, so forward calls between functions resolve regardless of
// declaration order.
func (g *Generator) declareFunctionSignatures(prog *ast.Program) {
	for _, fn := range prog.Functions {
		params := make([]*ir.Param, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = ir.NewParam(p.Name, g.llvmType(p.Type))
		}
		g.functions[fn.Name] = g.module.NewFunc(fn.Name, g.llvmType(fn.ReturnType), params...)
	}
}

// emitFunctionBody lowers a single global function with a fresh scope of
// just its parameters (no self).
func (g *Generator) emitFunctionBody(fn *ast.FunctionDecl) {
	llvmFn := g.functions[fn.Name]
	block := llvmFn.NewBlock("entry")
	g.curFunc, g.curBlock, g.tmp = llvmFn, block, 0

	scope := newIRScope(nil)
	for i, p := range fn.Params {
		g.bindParam(scope, p.Name, llvmFn.Params[i], p.Type)
	}

	result := g.emitExprIn(fn.Body, scope)
	g.curBlock.NewRet(result)
}

// emitMain assembles `define i32 @main()`, running every top-level
// expression in source order and discarding its value, then returning 0
// (spec C5 "Entry point").
func (g *Generator) emitMain(prog *ast.Program) {
	mainFn := g.module.NewFunc("main", types.I32)
	block := mainFn.NewBlock("entry")
	g.curFunc, g.curBlock, g.tmp = mainFn, block, 0

	for _, expr := range prog.Exprs {
		g.emitExprIn(expr, newIRScope(nil))
	}

	g.curBlock.NewRet(constant.NewInt(types.I32, 0))
}
