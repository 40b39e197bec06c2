package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysyc/internal/diag"
	"sysyc/internal/diagfmt"
	"sysyc/internal/source"
)

// printDiagnostics renders bag to stderr in the format chosen by
// --diagnostics-format. Pretty output leaves timing records to
// printStageTimings.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	format, err := cmd.Root().PersistentFlags().GetString("diagnostics-format")
	if err != nil {
		return err
	}
	bag.Sort()

	switch format {
	case "json":
		return diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         source.PathRelative,
			IncludeNotes:     true,
		})
	case "pretty", "":
		shown := diag.NewBag(bag.Len())
		for _, d := range bag.Items() {
			if d.Code != diag.ObsTimings {
				shown.Add(d)
			}
		}
		if shown.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(os.Stderr, shown, fs, diagfmt.PrettyOpts{
			Color:     useColorFor(cmd, os.Stderr),
			Context:   1,
			PathMode:  source.PathRelative,
			ShowNotes: true,
		})
		return nil
	default:
		return fmt.Errorf("unknown diagnostics format %q (expected pretty|json)", format)
	}
}

func maxDiagnosticsFlag(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Root().PersistentFlags().GetBool(name)
	return err == nil && v
}
