// Command sysyc compiles SysY sources to Koopa IR or RISC-V assembly.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"sysyc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sysyc",
	Short: "SysY compiler",
	Long:  `sysyc compiles SysY programs to Koopa IR or 32-bit RISC-V assembly`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupColor(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		atexit.Register(cleanup)
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		atexit.Register(stopProfiling)
		return nil
	},
}

// exitError ends the process with code once deferred cleanups ran. The
// message, if any, was already printed.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cleanCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("diagnostics-format", "pretty", "diagnostics format (pretty|json)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to this file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file at exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.SetArgs(rewriteLegacyArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			atexit.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "sysyc: %v\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// rewriteLegacyArgs maps the classic `sysyc -koopa in.c -o out` invocation
// onto the compile subcommand.
func rewriteLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	switch args[0] {
	case "-koopa", "-riscv":
		out := make([]string, 0, len(args)+1)
		out = append(out, "compile", args[0][1:])
		return append(out, args[1:]...)
	}
	return args
}

func setupColor(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch value {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	return nil
}

// useColorFor reports whether output to f should be colored.
func useColorFor(cmd *cobra.Command, f *os.File) bool {
	value, _ := cmd.Root().PersistentFlags().GetString("color")
	return value == "on" || (value == "auto" && isTerminal(f))
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
