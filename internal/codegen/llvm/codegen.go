// Package llvm lowers an analyzed HULK program (spec C5) into an LLVM IR
// module built through github.com/llir/llvm's typed object graph rather
// than hand-formatted text. The generator reads the AST's resolved-type
// slots and the type environment only; it never re-derives anything the
// analyzer has already settled.
package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/hulklang/hulkc/internal/ast"
	hulktypes "github.com/hulklang/hulkc/internal/types"
)

// Generator owns the module under construction plus the lookup tables
// built once up front: struct types and vtable globals per user type,
// declared functions, and the runtime helper externs.
type Generator struct {
	module *ir.Module
	env    *hulktypes.Env

	structTypes map[string]*types.StructType
	vtables     map[string]*ir.Global
	ctors       map[string]*ir.Func
	methods     map[string]*ir.Func // keyed by "TypeName.methodName"
	functions   map[string]*ir.Func // global HULK functions, keyed by name
	typeDecls   map[string]*ast.TypeDecl

	runtime *runtimeDecls

	tmp int // monotonic counter for unnamed temporaries within the function being built

	// State local to whichever function body is currently being emitted.
	curFunc     *ir.Func
	curBlock    *ir.Block
	curScope    *irScope
	curSelfType string // "" outside a method body
}

// Generate lowers prog under env into a complete LLVM IR module. It
// assumes prog has already passed semantic analysis with zero errors —
// code generation has no user-facing error path (spec §7).
func Generate(prog *ast.Program, env *hulktypes.Env) (*ir.Module, error) {
	g := &Generator{
		module:      ir.NewModule(),
		env:         env,
		structTypes: map[string]*types.StructType{},
		vtables:     map[string]*ir.Global{},
		ctors:       map[string]*ir.Func{},
		methods:     map[string]*ir.Func{},
		functions:   map[string]*ir.Func{},
		typeDecls:   map[string]*ast.TypeDecl{},
	}
	for _, td := range prog.Types {
		g.typeDecls[td.Name] = td
	}

	g.runtime = declareRuntime(g.module)

	g.declareStructTypes()
	g.fillStructFields()
	g.declareVtables()

	g.declareFunctionSignatures(prog)
	g.declareCtorSignatures()
	g.declareMethodSignatures()
	g.vtableInit()

	for _, rec := range g.env.Types() {
		g.emitCtorBody(rec)
		for _, name := range rec.MethodOrder {
			if rec.Methods[name].OwnerType == rec.Name {
				g.emitMethodBody(rec, rec.Methods[name])
			}
		}
	}
	for _, fn := range prog.Functions {
		g.emitFunctionBody(fn)
	}

	g.emitMain(prog)

	return g.module, nil
}

// llvmType maps a HULK static type name to its LLVM value representation
// (spec C5 "Value representation").
func (g *Generator) llvmType(name string) types.Type {
	switch name {
	case hulktypes.Number:
		return types.Double
	case hulktypes.Boolean:
		return types.I1
	case hulktypes.String:
		return types.NewPointer(types.I8)
	case hulktypes.Object, "":
		return types.NewPointer(types.I8)
	default:
		st, ok := g.structTypes[name]
		if !ok {
			panic(fmt.Sprintf("internal: unknown user type %q has no struct layout", name))
		}
		return types.NewPointer(st)
	}
}

// next returns a fresh local temporary name, unique within the function
// currently being emitted.
func (g *Generator) next(prefix string) string {
	g.tmp++
	return fmt.Sprintf("%s%d", prefix, g.tmp)
}

// bindParam gives an incoming value (a constructor/method/function
// parameter, or self) a stack slot of its own and registers that slot
// in scope, so every named binding — parameters included — is loaded
// and stored through uniformly with let-bound locals and loop variables.
func (g *Generator) bindParam(scope *irScope, name string, val value.Value, typ string) {
	slot := g.curBlock.NewAlloca(g.llvmType(typ))
	slot.SetName(name)
	g.curBlock.NewStore(val, slot)
	scope.define(name, slot, typ)
}

func ctorName(typeName string) string { return typeName + "_new" }

func methodFuncName(typeName, methodName string) string { return typeName + "_" + methodName }
