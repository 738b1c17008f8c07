package hulk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompile_WritesLLVMIR(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.ll")

	diags, err := Compile("print(2 + 3 * 4);", out)
	if diags != nil || err != nil {
		t.Fatalf("unexpected failure: diags=%v err=%v", diags, err)
	}

	content, readErr := os.ReadFile(out)
	if readErr != nil {
		t.Fatalf("expected output file to exist: %v", readErr)
	}
	if !strings.Contains(string(content), "define i32 @main()") {
		t.Errorf("output IR missing @main definition:\n%s", content)
	}
}

func TestCompile_ParseErrorReturnsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.ll")

	diags, err := Compile("let x = in x;", out)
	if diags == nil {
		t.Fatalf("expected non-nil diagnostics for a parse error")
	}
	if err != diags {
		t.Errorf("expected err to be the same value as diags, got %v", err)
	}
	if diags.Stage != "parsing" {
		t.Errorf("Stage = %q, want %q", diags.Stage, "parsing")
	}
	if len(diags.Errors) == 0 {
		t.Errorf("expected at least one parse error")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Errorf("output file should not have been written on failure")
	}
}

func TestCompile_SemanticErrorReturnsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.ll")

	diags, err := Compile("print(1 + \"a\");", out)
	if diags == nil {
		t.Fatalf("expected non-nil diagnostics for a semantic error")
	}
	if err != diags {
		t.Errorf("expected err to be the same value as diags, got %v", err)
	}
	if diags.Stage != "semantic analysis" {
		t.Errorf("Stage = %q, want %q", diags.Stage, "semantic analysis")
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Errorf("output file should not have been written on failure")
	}
}

func TestDiagnostics_ErrorMessageNonEmpty(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.ll")

	diags, _ := Compile("print(x);", out)
	if diags == nil {
		t.Fatalf("expected diagnostics for an undefined identifier")
	}
	if diags.Error() == "" {
		t.Errorf("Diagnostics.Error() returned an empty string")
	}
}
