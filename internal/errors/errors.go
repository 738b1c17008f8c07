// Package errors formats HULK compiler diagnostics with source context,
// line/column information, and a caret pointing at the offending token.
package errors

import (
	"fmt"
	"strings"

	"github.com/hulklang/hulkc/internal/lexer"
)

// Kind tags the category of a diagnostic, matching the catalog of
// compile-time failures the lexer, parser, and semantic analyzer can
// produce.
type Kind string

const (
	KindLexError           Kind = "lex-error"
	KindParseError         Kind = "parse-error"
	KindRedeclaration      Kind = "redeclaration"
	KindUnknownName        Kind = "unknown-name"
	KindArityMismatch      Kind = "arity-mismatch"
	KindTypeMismatch       Kind = "type-mismatch"
	KindInvalidOverride    Kind = "invalid-override"
	KindInheritanceCycle   Kind = "inheritance-cycle"
	KindInvalidForIterable Kind = "invalid-for-iterable"
)

// CompilerError is a single diagnostic with enough context to render a
// caret under the offending source position.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// New creates a CompilerError of the given kind.
func New(kind Kind, pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic with a source line and caret. When color
// is true, ANSI escapes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatAll renders a list of diagnostics for CLI output, numbering them
// when there is more than one.
func FormatAll(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
