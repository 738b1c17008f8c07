package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/hulklang/hulkc/internal/ast"
	hulktypes "github.com/hulklang/hulkc/internal/types"
)

// emitExprIn lowers expr under scope, dispatching on its concrete AST
// variant (spec C5 "Expression lowering (by variant)").
func (g *Generator) emitExprIn(expr ast.Expr, scope *irScope) value.Value {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return constant.NewFloat(types.Double, e.Value)
	case *ast.BoolLiteral:
		if e.Value {
			return constant.NewInt(types.I1, 1)
		}
		return constant.NewInt(types.I1, 0)
	case *ast.StringLiteral:
		return g.emitStringLiteral(e.Value)
	case *ast.Identifier:
		b, _ := scope.lookup(e.Name)
		return g.curBlock.NewLoad(g.llvmType(b.typ), b.slot)
	case *ast.UnaryExpr:
		return g.emitUnary(e, scope)
	case *ast.BinaryExpr:
		return g.emitBinary(e, scope)
	case *ast.CallExpr:
		return g.emitCall(e, scope)
	case *ast.MemberAccessExpr:
		return g.emitMemberAccess(e, scope)
	case *ast.MethodCallExpr:
		return g.emitMethodCall(e, scope)
	case *ast.NewExpr:
		return g.emitNew(e, scope)
	case *ast.PrintExpr:
		return g.emitPrint(e, scope)
	case *ast.AssignExpr:
		return g.emitAssign(e, scope)
	case *ast.IfExpr:
		return g.emitIf(e, scope)
	case *ast.WhileExpr:
		return g.emitWhile(e, scope)
	case *ast.ForExpr:
		return g.emitFor(e, scope)
	case *ast.LetExpr:
		return g.emitLet(e, scope)
	case *ast.BlockExpr:
		return g.emitBlock(e, scope)
	default:
		panic("internal: unhandled expression node in code generation")
	}
}

func (g *Generator) emitStringLiteral(s string) value.Value {
	data := constant.NewCharArrayFromString(s + "\x00")
	global := g.module.NewGlobalDef(g.next("str"), data)
	global.Immutable = true
	zero := constant.NewInt(types.I64, 0)
	return g.curBlock.NewGetElementPtr(data.Type(), global, zero, zero)
}

func (g *Generator) emitUnary(e *ast.UnaryExpr, scope *irScope) value.Value {
	operand := g.emitExprIn(e.Operand, scope)
	switch e.Operator {
	case "!":
		return g.curBlock.NewXor(operand, constant.NewInt(types.I1, 1))
	case "-":
		return g.curBlock.NewFSub(constant.NewFloat(types.Double, 0), operand)
	case "+":
		return operand
	default:
		panic("internal: unknown unary operator " + e.Operator)
	}
}

func (g *Generator) emitBinary(e *ast.BinaryExpr, scope *irScope) value.Value {
	switch e.Operator {
	case "&", "|":
		return g.emitLogical(e, scope)
	case "@":
		return g.emitConcat(e, scope)
	}

	left := g.emitExprIn(e.Left, scope)
	right := g.emitExprIn(e.Right, scope)

	switch e.Operator {
	case "+":
		return g.curBlock.NewFAdd(left, right)
	case "-":
		return g.curBlock.NewFSub(left, right)
	case "*":
		return g.curBlock.NewFMul(left, right)
	case "/":
		return g.curBlock.NewFDiv(left, right)
	case "%":
		return g.curBlock.NewFRem(left, right)
	case "^":
		return g.curBlock.NewCall(g.runtime.pow, left, right)
	case "<":
		return g.curBlock.NewFCmp(enum.FPredOLT, left, right)
	case "<=":
		return g.curBlock.NewFCmp(enum.FPredOLE, left, right)
	case ">":
		return g.curBlock.NewFCmp(enum.FPredOGT, left, right)
	case ">=":
		return g.curBlock.NewFCmp(enum.FPredOGE, left, right)
	case "==", "!=":
		return g.emitEquality(e, left, right)
	default:
		panic("internal: unknown binary operator " + e.Operator)
	}
}

// emitEquality compares two values of the same static type. Numbers
// compare with fcmp; booleans, strings, and user-type pointers compare
// with icmp — for strings and user types this is identity (pointer)
// equality, since the runtime helper ABI (spec §6) has no structural
// string-compare helper.
func (g *Generator) emitEquality(e *ast.BinaryExpr, left, right value.Value) value.Value {
	pred := enum.IPredEQ
	fpred := enum.FPredOEQ
	if e.Operator == "!=" {
		pred = enum.IPredNE
		fpred = enum.FPredONE
	}
	if e.Left.GetType() == hulktypes.Number {
		return g.curBlock.NewFCmp(fpred, left, right)
	}
	return g.curBlock.NewICmp(pred, left, right)
}

// emitLogical short-circuits `&`/`|`, producing an i1 via a real phi
// node joining the left-only path with the evaluated-right path (spec
// C5 explicitly requires phi here, unlike some simplified dispatchers
// that just return one branch's value).
func (g *Generator) emitLogical(e *ast.BinaryExpr, scope *irScope) value.Value {
	fn := g.curFunc
	left := g.emitExprIn(e.Left, scope)
	leftBlock := g.curBlock

	rhsBlock := fn.NewBlock(g.next("logic_rhs"))
	endBlock := fn.NewBlock(g.next("logic_end"))

	if e.Operator == "&" {
		g.curBlock.NewCondBr(left, rhsBlock, endBlock)
	} else {
		g.curBlock.NewCondBr(left, endBlock, rhsBlock)
	}

	g.curBlock = rhsBlock
	right := g.emitExprIn(e.Right, scope)
	rhsExit := g.curBlock
	rhsExit.NewBr(endBlock)

	g.curBlock = endBlock
	return endBlock.NewPhi(ir.NewIncoming(left, leftBlock), ir.NewIncoming(right, rhsExit))
}

// emitConcat stringifies non-string operands (numbers and booleans) via
// the runtime helpers, then calls @hulk_concat.
func (g *Generator) emitConcat(e *ast.BinaryExpr, scope *irScope) value.Value {
	left := g.stringify(g.emitExprIn(e.Left, scope), e.Left.GetType())
	right := g.stringify(g.emitExprIn(e.Right, scope), e.Right.GetType())
	return g.curBlock.NewCall(g.runtime.concat, left, right)
}

func (g *Generator) stringify(val value.Value, typ string) value.Value {
	switch typ {
	case hulktypes.String:
		return val
	case hulktypes.Number:
		return g.curBlock.NewCall(g.runtime.numToStr, val)
	case hulktypes.Boolean:
		return g.curBlock.NewCall(g.runtime.boolToStr, val)
	default:
		panic("internal: cannot stringify non-primitive type " + typ)
	}
}

func (g *Generator) emitCall(e *ast.CallExpr, scope *irScope) value.Value {
	fn := g.functions[e.Function]
	args := make([]value.Value, len(e.Args))
	for i, arg := range e.Args {
		args[i] = g.emitExprIn(arg, scope)
	}
	return g.curBlock.NewCall(fn, args...)
}

// emitMemberAccess loads a struct field. attr.Index is the same global
// position across the whole type hierarchy an attribute is declared or
// inherited in, so receiver's own struct type (whichever concrete type
// it is statically known as) always has that attribute at field index
// attr.Index+1 (field 0 is the vtable pointer).
func (g *Generator) emitMemberAccess(e *ast.MemberAccessExpr, scope *irScope) value.Value {
	recv := g.emitExprIn(e.Receiver, scope)
	recvType := e.Receiver.GetType()
	attr, _ := g.env.AttributeOf(recvType, e.Name)
	st := g.structTypes[recvType]
	field := g.curBlock.NewGetElementPtr(st, recv,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(attr.Index+1)))
	return g.curBlock.NewLoad(g.llvmType(attr.Type), field)
}

// emitMethodCall performs dynamic dispatch: load the vtable pointer from
// field 0, index into it at the statically-known slot, bitcast the
// loaded function pointer to the owning type's exact signature, and
// bitcast the receiver down to that owning type before calling (spec C5
// "Method lowering").
func (g *Generator) emitMethodCall(e *ast.MethodCallExpr, scope *irScope) value.Value {
	recv := g.emitExprIn(e.Receiver, scope)
	recvType := e.Receiver.GetType()
	m, _ := g.env.MethodOf(recvType, e.Method)

	recvSt := g.structTypes[recvType]
	vtableField := g.curBlock.NewGetElementPtr(recvSt, recv,
		constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
	vtablePtr := g.curBlock.NewLoad(types.NewPointer(types.I8), vtableField)

	vtableArr := g.curBlock.NewBitCast(vtablePtr, types.NewPointer(types.NewPointer(types.I8)))
	slotPtr := g.curBlock.NewGetElementPtr(types.NewPointer(types.I8), vtableArr, constant.NewInt(types.I64, int64(m.Slot)))
	funcPtr := g.curBlock.NewLoad(types.NewPointer(types.I8), slotPtr)

	ownerSt := g.structTypes[m.OwnerType]
	paramTypes := make([]types.Type, len(m.Params)+1)
	paramTypes[0] = types.NewPointer(ownerSt)
	for i, p := range m.Params {
		paramTypes[i+1] = g.llvmType(p.Type)
	}
	fnType := types.NewFunc(g.llvmType(m.ReturnType), paramTypes...)
	castedFn := g.curBlock.NewBitCast(funcPtr, types.NewPointer(fnType))

	selfCast := g.curBlock.NewBitCast(recv, types.NewPointer(ownerSt))
	args := make([]value.Value, len(e.Args)+1)
	args[0] = selfCast
	for i, arg := range e.Args {
		args[i+1] = g.emitExprIn(arg, scope)
	}
	return g.curBlock.NewCall(castedFn, args...)
}

func (g *Generator) emitNew(e *ast.NewExpr, scope *irScope) value.Value {
	ctor := g.ctors[e.TypeName]
	args := make([]value.Value, len(e.Args))
	for i, arg := range e.Args {
		args[i] = g.emitExprIn(arg, scope)
	}
	return g.curBlock.NewCall(ctor, args...)
}

// emitPrint dispatches on the argument's static type. Printing a
// user-type value has no helper in the runtime ABI (spec §6 only
// defines num/bool/str print helpers); such a value is printed as its
// opaque address via @hulk_print_str.
func (g *Generator) emitPrint(e *ast.PrintExpr, scope *irScope) value.Value {
	val := g.emitExprIn(e.Arg, scope)
	switch e.Arg.GetType() {
	case hulktypes.Number:
		g.curBlock.NewCall(g.runtime.printNum, val)
	case hulktypes.Boolean:
		g.curBlock.NewCall(g.runtime.printBool, val)
	case hulktypes.String:
		g.curBlock.NewCall(g.runtime.printStr, val)
	default:
		asStr := g.curBlock.NewBitCast(val, types.NewPointer(types.I8))
		g.curBlock.NewCall(g.runtime.printStr, asStr)
	}
	return val
}

func (g *Generator) emitAssign(e *ast.AssignExpr, scope *irScope) value.Value {
	switch target := e.Target.(type) {
	case *ast.Identifier:
		b, _ := scope.lookup(target.Name)
		val := g.emitExprIn(e.Value, scope)
		g.curBlock.NewStore(val, b.slot)
		return val
	case *ast.MemberAccessExpr:
		recv := g.emitExprIn(target.Receiver, scope)
		recvType := target.Receiver.GetType()
		attr, _ := g.env.AttributeOf(recvType, target.Name)
		st := g.structTypes[recvType]
		field := g.curBlock.NewGetElementPtr(st, recv,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(attr.Index+1)))
		val := g.emitExprIn(e.Value, scope)
		g.curBlock.NewStore(val, field)
		return val
	default:
		panic("internal: invalid assignment target in code generation")
	}
}

// emitIf lowers an if/elif/else cascade into conditional branches joined
// by a phi selecting the branch value, coerced to the analyzer's LCA
// (spec C5 explicitly requires a real phi, not a simplified "return the
// then value" shortcut).
func (g *Generator) emitIf(e *ast.IfExpr, scope *irScope) value.Value {
	resultType := e.GetType()
	fn := g.curFunc
	end := fn.NewBlock(g.next("if_end"))

	var incomings []*ir.Incoming
	cur := g.curBlock

	for i, clause := range e.Clauses {
		g.curBlock = cur
		cond := g.emitExprIn(clause.Condition, scope)
		thenBlock := fn.NewBlock(g.next("if_then"))
		isLast := i == len(e.Clauses)-1

		var falseBlock *ir.Block
		switch {
		case isLast && e.Else != nil:
			falseBlock = fn.NewBlock(g.next("if_else"))
		case isLast:
			falseBlock = end
		default:
			falseBlock = fn.NewBlock(g.next("if_cond"))
		}
		condExit := g.curBlock
		condExit.NewCondBr(cond, thenBlock, falseBlock)

		if isLast && e.Else == nil {
			incomings = append(incomings, ir.NewIncoming(g.zeroValue(resultType), condExit))
		}

		g.curBlock = thenBlock
		thenVal := g.emitExprIn(clause.Body, scope)
		thenVal = g.coerceTo(thenVal, clause.Body.GetType(), resultType)
		thenExit := g.curBlock
		thenExit.NewBr(end)
		incomings = append(incomings, ir.NewIncoming(thenVal, thenExit))

		cur = falseBlock
	}

	if e.Else != nil {
		g.curBlock = cur
		elseVal := g.emitExprIn(e.Else, scope)
		elseVal = g.coerceTo(elseVal, e.Else.GetType(), resultType)
		elseExit := g.curBlock
		elseExit.NewBr(end)
		incomings = append(incomings, ir.NewIncoming(elseVal, elseExit))
	}

	g.curBlock = end
	return end.NewPhi(incomings...)
}

// emitWhile lowers header/body/exit blocks; the loop's value is never
// meaningfully typed (spec resolves its static type as Object), so
// consuming it yields the Object zero default, a null i8*.
func (g *Generator) emitWhile(e *ast.WhileExpr, scope *irScope) value.Value {
	fn := g.curFunc
	header := fn.NewBlock(g.next("while_cond"))
	body := fn.NewBlock(g.next("while_body"))
	end := fn.NewBlock(g.next("while_end"))

	g.curBlock.NewBr(header)

	g.curBlock = header
	cond := g.emitExprIn(e.Condition, scope)
	g.curBlock.NewCondBr(cond, body, end)

	g.curBlock = body
	g.emitExprIn(e.Body, scope)
	g.curBlock.NewBr(header)

	g.curBlock = end
	return g.zeroValue(hulktypes.Object)
}

// emitFor lowers `for (i in range(start,end)) body` as
// `let i = start in while (i < end) { body; i := i + 1 }`, with i backed
// by a stack slot (spec C5 "for").
func (g *Generator) emitFor(e *ast.ForExpr, scope *irScope) value.Value {
	startVal := g.emitExprIn(e.Start, scope)
	slot := g.curBlock.NewAlloca(types.Double)
	slot.SetName(e.Var)
	g.curBlock.NewStore(startVal, slot)

	endVal := g.emitExprIn(e.End, scope)

	inner := newIRScope(scope)
	inner.define(e.Var, slot, hulktypes.Number)

	fn := g.curFunc
	header := fn.NewBlock(g.next("for_cond"))
	body := fn.NewBlock(g.next("for_body"))
	end := fn.NewBlock(g.next("for_end"))

	g.curBlock.NewBr(header)

	g.curBlock = header
	i := g.curBlock.NewLoad(types.Double, slot)
	cond := g.curBlock.NewFCmp(enum.FPredOLT, i, endVal)
	g.curBlock.NewCondBr(cond, body, end)

	g.curBlock = body
	g.emitExprIn(e.Body, inner)
	cur := g.curBlock.NewLoad(types.Double, slot)
	next := g.curBlock.NewFAdd(cur, constant.NewFloat(types.Double, 1))
	g.curBlock.NewStore(next, slot)
	g.curBlock.NewBr(header)

	g.curBlock = end
	return g.zeroValue(hulktypes.Object)
}

// emitLet allocates one stack slot per binding, in order, each one
// extending the scope the next binding and the body see.
func (g *Generator) emitLet(e *ast.LetExpr, scope *irScope) value.Value {
	cur := scope
	for i := range e.Bindings {
		b := &e.Bindings[i]
		val := g.emitExprIn(b.Init, cur)
		typ := b.Init.GetType()
		slot := g.curBlock.NewAlloca(g.llvmType(typ))
		slot.SetName(b.Name)
		g.curBlock.NewStore(val, slot)
		next := newIRScope(cur)
		next.define(b.Name, slot, typ)
		cur = next
	}
	return g.emitExprIn(e.Body, cur)
}

func (g *Generator) emitBlock(e *ast.BlockExpr, scope *irScope) value.Value {
	if len(e.Exprs) == 0 {
		return g.zeroValue(hulktypes.Object)
	}
	var last value.Value
	for _, sub := range e.Exprs {
		last = g.emitExprIn(sub, scope)
	}
	return last
}

// zeroValue returns the typed zero/undefined default for typ (spec §9
// resolved open question), used wherever a branch isn't taken or a
// while/block value is consumed without one being produced.
func (g *Generator) zeroValue(typ string) value.Value {
	switch typ {
	case hulktypes.Number:
		return constant.NewFloat(types.Double, 0)
	case hulktypes.Boolean:
		return constant.NewInt(types.I1, 0)
	case hulktypes.String:
		return constant.NewNull(types.NewPointer(types.I8))
	default:
		return constant.NewNull(types.NewPointer(types.I8))
	}
}

// coerceTo adapts val (of static type from) to the phi join's required
// type: an upcast between user-type pointers (or to Object) is a plain
// bitcast; a primitive value folded into an Object-typed join has no
// pointer representation, so its real bits are discarded in favor of
// the same zero default an untaken branch would have contributed —
// this happens when the if's result type is Object, either because no
// single concrete type covers every branch or because the if has no
// else (spec §9).
func (g *Generator) coerceTo(val value.Value, from, to string) value.Value {
	if from == to {
		return val
	}
	if to == hulktypes.Object {
		if hulktypes.IsPrimitive(from) {
			return g.zeroValue(hulktypes.Object)
		}
		return g.curBlock.NewBitCast(val, types.NewPointer(types.I8))
	}
	if st, ok := g.structTypes[to]; ok {
		return g.curBlock.NewBitCast(val, types.NewPointer(st))
	}
	return val
}
