package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysyc/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <mode> <input> [-o output]",
	Short: "Compile one SysY file",
	Long: `Compile translates a single SysY file. Mode is koopa or riscv, with or without a
leading dash; a dashed mode must follow "--". The output goes to stdout when -o
is missing or "-".`,
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output path (- for stdout)")
	compileCmd.Flags().Bool("werror", false, "treat warnings as errors")
}

// splitOutputArg removes a "-o path" pair that arrived as positional
// arguments after "--".
func splitOutputArg(args []string) (rest []string, output string, err error) {
	rest = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] != "-o" {
			rest = append(rest, args[i])
			continue
		}
		if i+1 >= len(args) {
			return nil, "", fmt.Errorf("-o needs a path")
		}
		output = args[i+1]
		i++
	}
	return rest, output, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	werror, err := cmd.Flags().GetBool("werror")
	if err != nil {
		return err
	}
	args, positionalOut, err := splitOutputArg(args)
	if err != nil {
		return err
	}
	if positionalOut != "" {
		output = positionalOut
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: sysyc compile <koopa|riscv> <input> [-o output]")
	}
	emit, err := driver.ParseEmit(args[0])
	if err != nil {
		return err
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}
	timings := boolFlag(cmd, "timings")

	res, err := driver.Compile(cmd.Context(), args[1], driver.Options{
		Emit:             emit,
		MaxDiagnostics:   maxDiagnostics,
		WarningsAsErrors: werror,
		EnableTimings:    timings,
	})
	if res != nil {
		if perr := printDiagnostics(cmd, res.Bag, res.FileSet); perr != nil {
			return perr
		}
	}
	if err != nil {
		return err
	}
	if res.Failed() {
		return exitError{code: 1}
	}
	if timings {
		fmt.Fprint(os.Stderr, res.TimingReport.Summary())
	}

	if output == "" || output == "-" {
		_, err = os.Stdout.Write(res.Output)
		return err
	}
	// #nosec G306 -- compiler output is not sensitive
	if err := os.WriteFile(output, res.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
