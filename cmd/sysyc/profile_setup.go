package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysyc/internal/prof"
)

// setupProfiling starts the profilers requested on the command line and
// returns the function that stops them.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPUPath, err = flags.GetString("cpu-profile"); err != nil {
		return nil, err
	}
	if cfg.MemPath, err = flags.GetString("mem-profile"); err != nil {
		return nil, err
	}
	if cfg.TracePath, err = flags.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profile: %v\n", err)
		}
	}, nil
}
