package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysyc/internal/diagfmt"
	"sysyc/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Dump the syntax tree of a SysY file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}
	result, err := driver.Parse(cmd.Context(), args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Builder != nil {
		if err := diagfmt.FormatASTTree(os.Stdout, result.Builder, result.FileID, result.FileSet); err != nil {
			return err
		}
	}
	if result.Bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
