package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysyc/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the sysyc output cache",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("sysyc")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", cache.Dir(), err)
	}
	if !boolFlag(cmd, "quiet") {
		fmt.Fprintf(os.Stdout, "removed %s\n", cache.Dir())
	}
	return nil
}
