package cmd

import (
	"fmt"
	"os"

	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval          string
	lexShowPositions bool
	lexShowKinds     bool
	lexErrorsOnly    bool
	lexShowComments  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Run the lexer over a HULK source and print its token stream",
	Long: `Scan a HULK program and print the tokens the lexer produces.

Illegal characters are reported as compiler diagnostics, the same way
"hulkc parse" and "hulkc compile" report theirs.

Examples:
  hulkc lex script.hulk
  hulkc lex -e "let x = 42 in print(x);"
  hulkc lex --kinds --positions script.hulk
  hulkc lex --comments script.hulk`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "scan inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowPositions, "positions", false, "print each token's line:column")
	lexCmd.Flags().BoolVar(&lexShowKinds, "kinds", false, "print each token's type name")
	lexCmd.Flags().BoolVar(&lexErrorsOnly, "errors-only", false, "print diagnostics only, suppress the token stream")
	lexCmd.Flags().BoolVar(&lexShowComments, "comments", false, "include comments in the token stream instead of discarding them")
}

func runLex(cmd *cobra.Command, args []string) error {
	var source, filename string

	switch {
	case lexEval != "":
		source, filename = lexEval, "<eval>"
	case len(args) == 1:
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		source = string(data)
	default:
		return fmt.Errorf("provide a file path or -e with inline source")
	}

	l := lexer.New(source, lexer.WithPreserveComments(lexShowComments))

	var tokens []lexer.Token
	var diags []*errors.CompilerError
	for {
		tok := l.NextToken()
		if tok.Type == lexer.ILLEGAL {
			diags = append(diags, errors.New(errors.KindLexError, tok.Pos,
				fmt.Sprintf("unexpected character %q", tok.Literal), source, filename))
		}
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	if !lexErrorsOnly {
		for _, tok := range tokens {
			fmt.Println(renderToken(tok))
		}
	}

	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(diags, false))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("lexing failed with %d error(s)", len(diags))
	}

	return nil
}

// renderToken formats a single token for the CLI's token-stream output,
// honoring --kinds and --positions.
func renderToken(tok lexer.Token) string {
	var line string
	switch tok.Type {
	case lexer.EOF:
		line = "<EOF>"
	case lexer.COMMENT:
		line = fmt.Sprintf("comment %q", tok.Literal)
	default:
		line = fmt.Sprintf("%q", tok.Literal)
	}

	if lexShowKinds {
		line = fmt.Sprintf("%-12s %s", tok.Type, line)
	}
	if lexShowPositions {
		line = fmt.Sprintf("%s  (%s)", line, tok.Pos)
	}
	return line
}
