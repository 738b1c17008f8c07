package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hulklang/hulkc/pkg/hulk"
	"github.com/spf13/cobra"
)

var (
	outputFile     string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a HULK file to LLVM IR",
	Long: `Compile a HULK program to LLVM IR and save it as a .ll file.

Examples:
  # Compile a script to LLVM IR
  hulkc compile script.hulk

  # Compile with a custom output file
  hulkc compile script.hulk -o output.ll`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.ll)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileScript(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".ll"
		} else {
			outFile = filename + ".ll"
		}
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	if diags, err := hulk.Compile(input, outFile); err != nil {
		if diags != nil {
			fmt.Fprint(os.Stderr, diags.Error())
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("%s failed with %d error(s)", diags.Stage, len(diags.Errors))
		}
		return err
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "LLVM IR written to %s\n", outFile)
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}

	return nil
}
