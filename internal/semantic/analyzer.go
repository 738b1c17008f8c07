// Package semantic implements the two-pass HULK semantic analyzer (spec
// C3): Pass A collects every type and function declaration into a
// types.Env, then Pass B walks every body under a lexical scope stack,
// resolving and recording each expression's type.
package semantic

import (
	"fmt"

	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
	"github.com/hulklang/hulkc/internal/types"
)

// SelfParam is the implicit receiver name prepended to every method.
const SelfParam = "self"

// Analyzer resolves names and types over a parsed Program and populates
// the shared types.Env that the code generator later reads.
type Analyzer struct {
	env    *types.Env
	source string
	file   string
	errs   []*errors.CompilerError

	typeDecls map[string]*ast.TypeDecl // by name, for Pass B method/attribute bodies
	fnDecls   map[string]*ast.FunctionDecl
}

// New creates an Analyzer. source/file are used only to render
// diagnostics with a caret under the offending column.
func New(source, file string) *Analyzer {
	return &Analyzer{
		env:       types.NewEnv(),
		source:    source,
		file:      file,
		typeDecls: map[string]*ast.TypeDecl{},
		fnDecls:   map[string]*ast.FunctionDecl{},
	}
}

// Env exposes the populated type environment, consulted by the code
// generator once analysis succeeds.
func (a *Analyzer) Env() *types.Env { return a.env }

// Errors returns every diagnostic accumulated across both passes.
func (a *Analyzer) Errors() []*errors.CompilerError { return a.errs }

// Analyze runs Pass A then Pass B over prog, mutating every expression
// node's resolved-type slot and returning whether analysis found zero
// errors.
func (a *Analyzer) Analyze(prog *ast.Program) bool {
	a.passA(prog)
	a.passB(prog)
	return len(a.errs) == 0
}

func (a *Analyzer) errorf(kind errors.Kind, pos lexer.Position, format string, args ...interface{}) {
	a.errs = append(a.errs, errors.New(kind, pos, fmt.Sprintf(format, args...), a.source, a.file))
}
