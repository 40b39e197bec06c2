package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sysyc/internal/buildpipeline"
	"sysyc/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [files|dirs...]",
	Short: "Compile SysY sources",
	Long: `Build compiles every .sy/.c input to <name>.S (or <name>.koopa with --emit koopa).
Without arguments the sources listed in sysy.toml are built.`,
	RunE: buildExecution,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output path (single input only)")
	buildCmd.Flags().String("emit", "", "output form (riscv|koopa)")
	buildCmd.Flags().Int("jobs", 0, "max parallel compilations (0=auto)")
	buildCmd.Flags().String("out-dir", "", "directory for outputs (default: next to each source)")
	buildCmd.Flags().Bool("cache", false, "reuse outputs from the on-disk cache")
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	buildCmd.Flags().Bool("werror", false, "treat warnings as errors")
}

// buildSettings is the merge of manifest values and explicit flags; flags
// win when set.
type buildSettings struct {
	files   []string
	baseDir string
	outDir  string
	emit    driver.Emit
	jobs    int
	cache   bool
}

func resolveBuildSettings(cmd *cobra.Command, args []string) (buildSettings, error) {
	var s buildSettings
	flags := cmd.Flags()

	var inputs []string
	if len(args) > 0 {
		inputs = args
	} else {
		manifest, found, err := loadProjectManifest(".")
		if err != nil {
			return s, err
		}
		if !found {
			return s, errors.New(noManifestMessage)
		}
		inputs = manifest.sources()
		s.baseDir = manifest.Root
		s.outDir = manifest.outDir()
		s.jobs = manifest.Config.Build.Jobs
		s.cache = manifest.Config.Build.Cache
		if manifest.Config.Build.Emit != "" {
			// validated on load
			s.emit, _ = driver.ParseEmit(manifest.Config.Build.Emit)
		}
	}

	files, err := buildpipeline.CollectInputs(inputs)
	if err != nil {
		return s, err
	}
	s.files = files
	if s.baseDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			s.baseDir = cwd
		}
	}

	if flags.Changed("emit") {
		value, _ := flags.GetString("emit")
		if s.emit, err = driver.ParseEmit(value); err != nil {
			return s, err
		}
	}
	if flags.Changed("jobs") {
		s.jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("out-dir") {
		s.outDir, _ = flags.GetString("out-dir")
	}
	if flags.Changed("cache") {
		s.cache, _ = flags.GetBool("cache")
	}
	return s, nil
}

func buildExecution(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	werror, err := cmd.Flags().GetBool("werror")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	maxDiagnostics, err := maxDiagnosticsFlag(cmd)
	if err != nil {
		return err
	}
	quiet := boolFlag(cmd, "quiet")
	timings := boolFlag(cmd, "timings")

	settings, err := resolveBuildSettings(cmd, args)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if settings.cache {
		cache, err = driver.OpenDiskCache("sysyc")
		if err != nil {
			fmt.Fprintf(os.Stderr, "sysyc: cache disabled: %v\n", err)
			cache = nil
		}
	}

	req := buildpipeline.BuildRequest{
		Files:            settings.files,
		Output:           output,
		OutDir:           settings.outDir,
		BaseDir:          settings.baseDir,
		Emit:             settings.emit,
		Jobs:             settings.jobs,
		MaxDiagnostics:   maxDiagnostics,
		WarningsAsErrors: werror,
		EnableTimings:    timings,
		Cache:            cache,
	}

	displayFiles := make([]string, len(settings.files))
	for i, f := range settings.files {
		displayFiles[i] = buildpipeline.DisplayName(f, settings.baseDir)
	}

	var res buildpipeline.BuildResult
	if shouldUseTUI(uiModeValue, quiet) && len(displayFiles) > 0 {
		res, err = runBuildWithUI(cmd.Context(), "sysyc build", displayFiles, &req)
	} else {
		res, err = buildpipeline.Build(cmd.Context(), &req)
	}
	if res.FileSet == nil {
		// the request was rejected before any file was compiled
		return err
	}
	res.FileSet.SetBaseDir(settings.baseDir)

	for _, fr := range res.Files {
		if fr.Compile != nil {
			if perr := printDiagnostics(cmd, fr.Compile.Bag, res.FileSet); perr != nil {
				return perr
			}
			if fr.Compile.Bag.HasErrors() {
				continue
			}
		}
		if fr.Err != nil {
			fmt.Fprintf(os.Stderr, "sysyc: %s: %v\n", buildpipeline.DisplayName(fr.Source, settings.baseDir), fr.Err)
		}
	}

	if timings {
		printStageTimings(os.Stdout, res.Timings)
	}
	failed := res.Failed()
	if !quiet {
		built := len(res.Files) - failed
		line := fmt.Sprintf("built %d file(s)", built)
		if failed > 0 {
			line += fmt.Sprintf(", %d failed", failed)
		}
		if len(res.Files) == 1 && failed == 0 {
			line = "built " + formatPathForOutput(settings.baseDir, res.Files[0].OutputPath)
		}
		fmt.Fprintln(os.Stdout, line)
	}
	if failed > 0 || err != nil {
		return exitError{code: 1}
	}
	return nil
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
