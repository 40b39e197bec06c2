package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysyc/internal/driver"
	"sysyc/internal/rvsim"
	"sysyc/internal/trace"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file>",
	Short: "Compile and execute a SysY program",
	Long: `Run compiles a SysY file to RISC-V, executes main in the built-in simulator,
prints the returned value and exits with it (truncated to a byte).`,
	Args: cobra.ExactArgs(1),
	RunE: runExecution,
}

func runExecution(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	res, err := driver.Compile(ctx, args[0], driver.Options{
		Emit:           driver.EmitRISCV,
		MaxDiagnostics: maxDiagnostics,
		EnableTimings:  boolFlag(cmd, "timings"),
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

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "simulate", trace.CurrentSpan(ctx))
	a0, err := rvsim.Run(res.Asm, "main")
	span.End(fmt.Sprintf("a0=%d", a0))
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if boolFlag(cmd, "timings") {
		fmt.Fprint(os.Stderr, res.TimingReport.Summary())
	}
	fmt.Fprintln(os.Stdout, a0)
	if code := int(uint8(a0)); code != 0 {
		return exitError{code: code}
	}
	return nil
}
