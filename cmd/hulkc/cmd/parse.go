package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
	"github.com/hulklang/hulkc/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseExpression bool
	parseDumpAST    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse HULK source code and display the AST",
	Long: `Parse HULK source code and display the Abstract Syntax Tree (AST).

If no file is provided, reads from stdin.
Use -e to parse a single expression from the command line.
Use --dump-ast to show the full AST structure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression from the command line")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	var input string
	filename := "<stdin>"

	// Determine input source
	if parseExpression {
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
		filename = "<expression>"
	} else if len(args) > 0 {
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	l := lexer.New(input)
	p := parser.New(l, input, filename)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(errs, false))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if parseDumpAST {
		fmt.Println("Abstract Syntax Tree:")
		fmt.Println("=====================")
		dumpProgram(program)
	} else {
		fmt.Print(program.String())
	}

	return nil
}

func dumpProgram(program *ast.Program) {
	for _, td := range program.Types {
		fmt.Printf("TypeDecl %s (parent %s)\n", td.Name, displayParent(td.Parent))
		for _, name := range td.MethodOrder {
			fmt.Printf("  method %s\n", name)
			dumpExpr(td.Methods[name].Body, 2)
		}
		for _, attr := range td.Attributes {
			fmt.Printf("  attribute %s\n", attr.Name)
			dumpExpr(attr.Init, 2)
		}
	}
	for _, fn := range program.Functions {
		fmt.Printf("FunctionDecl %s\n", fn.Name)
		dumpExpr(fn.Body, 1)
	}
	for _, expr := range program.Exprs {
		fmt.Println("TopLevelExpr")
		dumpExpr(expr, 1)
	}
}

func displayParent(name string) string {
	if name == "" {
		return "Object"
	}
	return name
}

// dumpExpr prints a structural, indented view of expr. Leaves print
// through their own String() method; compound nodes recurse into their
// sub-expressions so the tree's shape is visible at a glance.
func dumpExpr(expr ast.Expr, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := expr.(type) {
	case *ast.BlockExpr:
		fmt.Printf("%sBlock (%d exprs)\n", pad, len(n.Exprs))
		for _, sub := range n.Exprs {
			dumpExpr(sub, indent+1)
		}
	case *ast.LetExpr:
		fmt.Printf("%sLet\n", pad)
		for _, b := range n.Bindings {
			fmt.Printf("%s  %s =\n", pad, b.Name)
			dumpExpr(b.Init, indent+2)
		}
		fmt.Printf("%s  in\n", pad)
		dumpExpr(n.Body, indent+1)
	case *ast.IfExpr:
		fmt.Printf("%sIf\n", pad)
		for _, clause := range n.Clauses {
			fmt.Printf("%s  condition:\n", pad)
			dumpExpr(clause.Condition, indent+2)
			fmt.Printf("%s  then:\n", pad)
			dumpExpr(clause.Body, indent+2)
		}
		if n.Else != nil {
			fmt.Printf("%s  else:\n", pad)
			dumpExpr(n.Else, indent+2)
		}
	case *ast.WhileExpr:
		fmt.Printf("%sWhile\n", pad)
		dumpExpr(n.Condition, indent+1)
		dumpExpr(n.Body, indent+1)
	case *ast.ForExpr:
		fmt.Printf("%sFor %s\n", pad, n.Var)
		dumpExpr(n.Start, indent+1)
		dumpExpr(n.End, indent+1)
		dumpExpr(n.Body, indent+1)
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr (%s)\n", pad, n.Operator)
		dumpExpr(n.Left, indent+1)
		dumpExpr(n.Right, indent+1)
	case *ast.UnaryExpr:
		fmt.Printf("%sUnaryExpr (%s)\n", pad, n.Operator)
		dumpExpr(n.Operand, indent+1)
	case *ast.AssignExpr:
		fmt.Printf("%sAssign\n", pad)
		dumpExpr(n.Target, indent+1)
		dumpExpr(n.Value, indent+1)
	case *ast.CallExpr:
		fmt.Printf("%sCall %s\n", pad, n.Function)
		for _, arg := range n.Args {
			dumpExpr(arg, indent+1)
		}
	case *ast.MethodCallExpr:
		fmt.Printf("%sMethodCall .%s\n", pad, n.Method)
		dumpExpr(n.Receiver, indent+1)
		for _, arg := range n.Args {
			dumpExpr(arg, indent+1)
		}
	case *ast.NewExpr:
		fmt.Printf("%sNew %s\n", pad, n.TypeName)
		for _, arg := range n.Args {
			dumpExpr(arg, indent+1)
		}
	case *ast.MemberAccessExpr:
		fmt.Printf("%sMemberAccess .%s\n", pad, n.Name)
		dumpExpr(n.Receiver, indent+1)
	case *ast.PrintExpr:
		fmt.Printf("%sPrint\n", pad)
		dumpExpr(n.Arg, indent+1)
	default:
		fmt.Printf("%s%s\n", pad, expr.String())
	}
}
