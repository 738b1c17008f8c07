// Package hulk is the public driver façade: lex, parse, analyze, and
// lower a HULK program to LLVM IR text in one call, grounded on the
// teacher's own pkg/dwscript driver shape (an engine.Compile entry
// point returning a structured, stage-tagged error on failure).
package hulk

import (
	"os"

	"github.com/hulklang/hulkc/internal/codegen/llvm"
	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
	"github.com/hulklang/hulkc/internal/parser"
	"github.com/hulklang/hulkc/internal/semantic"
)

// Diagnostics reports every structured error produced at whichever
// pipeline stage compilation stopped at (spec.md §6). It implements
// error so callers can treat a failed Compile as an ordinary error
// while still recovering the full diagnostic list.
type Diagnostics struct {
	Stage  string
	Errors []*errors.CompilerError
}

func (d *Diagnostics) Error() string {
	return errors.FormatAll(d.Errors, false)
}

// Compile lexes, parses, and semantically analyzes source, then lowers
// the typed AST to LLVM IR text and writes it to outputPath. On success
// it returns (nil, nil). If parsing or semantic analysis fails, the file
// is left untouched and both return values are the same *Diagnostics,
// naming the stage that failed and the errors produced there; a failure
// to write the file is returned as (nil, err).
func Compile(source, outputPath string) (*Diagnostics, error) {
	l := lexer.New(source)
	p := parser.New(l, source, outputPath)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		d := &Diagnostics{Stage: "parsing", Errors: errs}
		return d, d
	}

	analyzer := semantic.New(source, outputPath)
	if ok := analyzer.Analyze(prog); !ok {
		d := &Diagnostics{Stage: "semantic analysis", Errors: analyzer.Errors()}
		return d, d
	}

	module, err := llvm.Generate(prog, analyzer.Env())
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(outputPath, []byte(module.String()), 0o644); err != nil {
		return nil, err
	}

	return nil, nil
}
