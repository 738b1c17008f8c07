package semantic

import (
	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
	"github.com/hulklang/hulkc/internal/types"
)

// passB is body checking: attribute initializers first (parent types
// before children, so inherited attribute types are known), then every
// method body, every function body, and the top-level expression
// sequence.
func (a *Analyzer) passB(prog *ast.Program) {
	resolved := map[string]bool{}
	for _, td := range prog.Types {
		a.resolveAttributeTypes(td, resolved, map[string]bool{})
	}

	for _, td := range prog.Types {
		for _, name := range td.MethodOrder {
			a.checkMethodBody(td, td.Methods[name])
		}
	}

	for _, fn := range prog.Functions {
		a.checkFunctionBody(fn)
	}

	for _, expr := range prog.Exprs {
		a.checkExpr(expr, NewScope(nil))
	}
}

// resolveAttributeTypes infers and records each attribute's type from
// its initializer, evaluated in a scope containing only the
// constructor's parameters.
func (a *Analyzer) resolveAttributeTypes(td *ast.TypeDecl, resolved, visiting map[string]bool) {
	if resolved[td.Name] || visiting[td.Name] {
		return
	}
	visiting[td.Name] = true

	rec, ok := a.env.LookupType(td.Name)
	if !ok {
		resolved[td.Name] = true
		return
	}
	if parentTd, ok := a.typeDecls[rec.Parent]; ok {
		a.resolveAttributeTypes(parentTd, resolved, visiting)
	}

	scope := NewScope(nil)
	for _, p := range rec.CtorParams {
		scope.Define(p.Name, p.Type)
	}

	for _, attr := range td.Attributes {
		t := a.checkExpr(attr.Init, scope)
		if info, ok := rec.Attributes[attr.Name]; ok && info.Type == "" {
			info.Type = t
		}
	}

	resolved[td.Name] = true
}

func (a *Analyzer) checkMethodBody(td *ast.TypeDecl, m *ast.FunctionDecl) {
	scope := NewScope(nil)
	scope.Define(SelfParam, td.Name)
	for _, p := range m.Params {
		scope.Define(p.Name, p.Type)
	}
	bodyType := a.checkExpr(m.Body, scope)
	a.checkReturnType(bodyType, m.ReturnType, m.Pos())
}

func (a *Analyzer) checkFunctionBody(fn *ast.FunctionDecl) {
	scope := NewScope(nil)
	for _, p := range fn.Params {
		scope.Define(p.Name, p.Type)
	}
	bodyType := a.checkExpr(fn.Body, scope)
	a.checkReturnType(bodyType, fn.ReturnType, fn.Pos())
}

func (a *Analyzer) checkReturnType(bodyType, declared string, pos lexer.Position) {
	if bodyType == "" || declared == "" {
		return
	}
	if !a.env.Subtype(bodyType, declared) {
		a.errorf(errors.KindTypeMismatch, pos, "body produces %q, declared return type is %q", bodyType, declared)
	}
}

// checkExpr resolves expr's type under scope, records it on the node,
// and returns it ("" on failure, after recording a diagnostic).
func (a *Analyzer) checkExpr(expr ast.Expr, scope *Scope) string {
	if expr == nil {
		return ""
	}
	t := a.resolve(expr, scope)
	expr.SetType(t)
	return t
}

func (a *Analyzer) resolve(expr ast.Expr, scope *Scope) string {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return types.Number
	case *ast.BoolLiteral:
		return types.Boolean
	case *ast.StringLiteral:
		return types.String
	case *ast.Identifier:
		if t, ok := scope.Lookup(e.Name); ok {
			return t
		}
		a.errorf(errors.KindUnknownName, e.Pos(), "undefined identifier %q", e.Name)
		return ""
	case *ast.UnaryExpr:
		return a.resolveUnary(e, scope)
	case *ast.BinaryExpr:
		return a.resolveBinary(e, scope)
	case *ast.CallExpr:
		return a.resolveCall(e, scope)
	case *ast.MemberAccessExpr:
		return a.resolveMemberAccess(e, scope)
	case *ast.MethodCallExpr:
		return a.resolveMethodCall(e, scope)
	case *ast.NewExpr:
		return a.resolveNew(e, scope)
	case *ast.PrintExpr:
		return a.checkExpr(e.Arg, scope)
	case *ast.AssignExpr:
		return a.resolveAssign(e, scope)
	case *ast.IfExpr:
		return a.resolveIf(e, scope)
	case *ast.WhileExpr:
		a.checkExpr(e.Condition, scope)
		a.checkExpr(e.Body, scope)
		return types.Object
	case *ast.ForExpr:
		return a.resolveFor(e, scope)
	case *ast.LetExpr:
		return a.resolveLet(e, scope)
	case *ast.BlockExpr:
		return a.resolveBlock(e, scope)
	default:
		a.errorf(errors.KindTypeMismatch, expr.Pos(), "internal: unhandled expression node %T", expr)
		return ""
	}
}

func (a *Analyzer) resolveUnary(e *ast.UnaryExpr, scope *Scope) string {
	operandType := a.checkExpr(e.Operand, scope)
	switch e.Operator {
	case "!":
		if operandType != types.Boolean {
			a.errorf(errors.KindTypeMismatch, e.Pos(), "operator '!' requires a Boolean operand, got %q", operandType)
			return ""
		}
		return types.Boolean
	case "-", "+":
		if operandType != types.Number {
			a.errorf(errors.KindTypeMismatch, e.Pos(), "unary %q requires a Number operand, got %q", e.Operator, operandType)
			return ""
		}
		return types.Number
	default:
		a.errorf(errors.KindTypeMismatch, e.Pos(), "internal: unknown unary operator %q", e.Operator)
		return ""
	}
}

func (a *Analyzer) resolveBinary(e *ast.BinaryExpr, scope *Scope) string {
	lt := a.checkExpr(e.Left, scope)
	rt := a.checkExpr(e.Right, scope)
	if lt == "" || rt == "" {
		return ""
	}

	switch e.Operator {
	case "+", "-", "*", "/", "%", "^":
		if lt != types.Number || rt != types.Number {
			a.errorf(errors.KindTypeMismatch, e.Pos(), "operator %q requires Number operands, got %q and %q", e.Operator, lt, rt)
			return ""
		}
		return types.Number
	case "<", "<=", ">", ">=":
		if lt != types.Number || rt != types.Number {
			a.errorf(errors.KindTypeMismatch, e.Pos(), "operator %q requires Number operands, got %q and %q", e.Operator, lt, rt)
			return ""
		}
		return types.Boolean
	case "==", "!=":
		if lt != rt {
			a.errorf(errors.KindTypeMismatch, e.Pos(), "operator %q requires operands of the same type, got %q and %q", e.Operator, lt, rt)
			return ""
		}
		return types.Boolean
	case "&", "|":
		if lt != types.Boolean || rt != types.Boolean {
			a.errorf(errors.KindTypeMismatch, e.Pos(), "operator %q requires Boolean operands, got %q and %q", e.Operator, lt, rt)
			return ""
		}
		return types.Boolean
	case "@":
		// Resolved open question: numeric/boolean operands auto-stringify;
		// the result is always String (spec §9).
		if !stringifiable(lt) || !stringifiable(rt) {
			a.errorf(errors.KindTypeMismatch, e.Pos(), "operator '@' requires String, Number, or Boolean operands, got %q and %q", lt, rt)
			return ""
		}
		return types.String
	default:
		a.errorf(errors.KindTypeMismatch, e.Pos(), "internal: unknown binary operator %q", e.Operator)
		return ""
	}
}

func stringifiable(t string) bool {
	return t == types.String || t == types.Number || t == types.Boolean
}

func (a *Analyzer) resolveCall(e *ast.CallExpr, scope *Scope) string {
	fn, ok := a.env.LookupFunction(e.Function)
	if !ok {
		a.errorf(errors.KindUnknownName, e.Pos(), "undefined function %q", e.Function)
		for _, arg := range e.Args {
			a.checkExpr(arg, scope)
		}
		return ""
	}
	a.checkArgs(e.Pos(), e.Function, fn.Params, e.Args, scope)
	return fn.ReturnType
}

// checkArgs validates arity and per-argument subtyping against params.
func (a *Analyzer) checkArgs(pos lexer.Position, name string, params []types.Param, args []ast.Expr, scope *Scope) {
	if len(args) != len(params) {
		a.errorf(errors.KindArityMismatch, pos, "%q expects %d argument(s), got %d", name, len(params), len(args))
	}
	n := len(args)
	if len(params) < n {
		n = len(params)
	}
	for i := 0; i < n; i++ {
		argType := a.checkExpr(args[i], scope)
		if argType == "" {
			continue
		}
		if !a.env.Subtype(argType, params[i].Type) {
			a.errorf(errors.KindTypeMismatch, pos, "argument %d to %q: expected %q, got %q", i+1, name, params[i].Type, argType)
		}
	}
	for i := n; i < len(args); i++ {
		a.checkExpr(args[i], scope)
	}
}

func (a *Analyzer) resolveMemberAccess(e *ast.MemberAccessExpr, scope *Scope) string {
	recvType := a.checkExpr(e.Receiver, scope)
	if recvType == "" {
		return ""
	}
	if types.IsPrimitive(recvType) || recvType == types.Object {
		a.errorf(errors.KindTypeMismatch, e.Pos(), "cannot access attribute %q on non-user type %q", e.Name, recvType)
		return ""
	}
	attr, ok := a.env.AttributeOf(recvType, e.Name)
	if !ok {
		a.errorf(errors.KindUnknownName, e.Pos(), "type %q has no attribute %q", recvType, e.Name)
		return ""
	}
	return attr.Type
}

func (a *Analyzer) resolveMethodCall(e *ast.MethodCallExpr, scope *Scope) string {
	recvType := a.checkExpr(e.Receiver, scope)
	if recvType == "" {
		for _, arg := range e.Args {
			a.checkExpr(arg, scope)
		}
		return ""
	}
	if types.IsPrimitive(recvType) || recvType == types.Object {
		a.errorf(errors.KindTypeMismatch, e.Pos(), "cannot call method %q on non-user type %q", e.Method, recvType)
		for _, arg := range e.Args {
			a.checkExpr(arg, scope)
		}
		return ""
	}
	m, ok := a.env.MethodOf(recvType, e.Method)
	if !ok {
		a.errorf(errors.KindUnknownName, e.Pos(), "type %q has no method %q", recvType, e.Method)
		for _, arg := range e.Args {
			a.checkExpr(arg, scope)
		}
		return ""
	}
	a.checkArgs(e.Pos(), e.Method, m.Params, e.Args, scope)
	return m.ReturnType
}

func (a *Analyzer) resolveNew(e *ast.NewExpr, scope *Scope) string {
	rec, ok := a.env.LookupType(e.TypeName)
	if !ok {
		a.errorf(errors.KindUnknownName, e.Pos(), "unknown type %q", e.TypeName)
		for _, arg := range e.Args {
			a.checkExpr(arg, scope)
		}
		return ""
	}
	a.checkArgs(e.Pos(), e.TypeName, rec.CtorParams, e.Args, scope)
	return e.TypeName
}

func (a *Analyzer) resolveAssign(e *ast.AssignExpr, scope *Scope) string {
	var targetType string
	switch target := e.Target.(type) {
	case *ast.Identifier:
		t, ok := scope.Lookup(target.Name)
		if !ok {
			a.errorf(errors.KindUnknownName, target.Pos(), "undefined identifier %q", target.Name)
			a.checkExpr(e.Value, scope)
			return ""
		}
		targetType = t
		target.SetType(t)
	case *ast.MemberAccessExpr:
		targetType = a.checkExpr(target, scope)
	default:
		a.errorf(errors.KindTypeMismatch, e.Pos(), "invalid assignment target")
		a.checkExpr(e.Value, scope)
		return ""
	}

	valueType := a.checkExpr(e.Value, scope)
	if targetType == "" || valueType == "" {
		return ""
	}
	if !a.env.Subtype(valueType, targetType) {
		a.errorf(errors.KindTypeMismatch, e.Pos(), "cannot assign %q to target of type %q", valueType, targetType)
		return ""
	}
	return targetType
}

func (a *Analyzer) resolveIf(e *ast.IfExpr, scope *Scope) string {
	var branchTypes []string
	for _, c := range e.Clauses {
		condType := a.checkExpr(c.Condition, scope)
		if condType != "" && condType != types.Boolean {
			a.errorf(errors.KindTypeMismatch, c.Condition.Pos(), "if condition must be Boolean, got %q", condType)
		}
		branchTypes = append(branchTypes, a.checkExpr(c.Body, scope))
	}

	if e.Else == nil {
		return types.Object
	}
	branchTypes = append(branchTypes, a.checkExpr(e.Else, scope))

	result := ""
	for _, t := range branchTypes {
		if t == "" {
			continue
		}
		if result == "" {
			result = t
			continue
		}
		result = a.env.LCA(result, t)
	}
	if result == "" {
		return types.Object
	}
	return result
}

func (a *Analyzer) resolveFor(e *ast.ForExpr, scope *Scope) string {
	startType := a.checkExpr(e.Start, scope)
	endType := a.checkExpr(e.End, scope)
	if startType != "" && startType != types.Number {
		a.errorf(errors.KindTypeMismatch, e.Start.Pos(), "for range start must be Number, got %q", startType)
	}
	if endType != "" && endType != types.Number {
		a.errorf(errors.KindTypeMismatch, e.End.Pos(), "for range end must be Number, got %q", endType)
	}
	inner := NewScope(scope)
	inner.Define(e.Var, types.Number)
	a.checkExpr(e.Body, inner)
	return types.Object
}

func (a *Analyzer) resolveLet(e *ast.LetExpr, scope *Scope) string {
	current := scope
	for i := range e.Bindings {
		b := &e.Bindings[i]
		t := a.checkExpr(b.Init, current)
		next := NewScope(current)
		next.Define(b.Name, t)
		current = next
	}
	return a.checkExpr(e.Body, current)
}

func (a *Analyzer) resolveBlock(e *ast.BlockExpr, scope *Scope) string {
	if len(e.Exprs) == 0 {
		return types.Object
	}
	var last string
	for _, sub := range e.Exprs {
		last = a.checkExpr(sub, scope)
	}
	return last
}
