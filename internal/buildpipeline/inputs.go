package buildpipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sysyc/internal/driver"
)

// SourceExts lists the extensions picked up when a directory is given.
var SourceExts = []string{".sy", ".c"}

func isSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SourceExts {
		if ext == e {
			return true
		}
	}
	return false
}

// CollectInputs expands args into a sorted, duplicate-free list of source
// files. Directories are walked recursively; hidden directories are skipped.
// Files named explicitly are kept whatever their extension.
func CollectInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{}, len(args))
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isSource(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
	}
	sort.Strings(out)
	return out, nil
}

// OutputPath places the output for src in outDir, or next to src when
// outDir is empty.
func OutputPath(src, outDir string, emit driver.Emit) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + emit.Ext()
	if outDir == "" {
		return filepath.Join(filepath.Dir(src), base)
	}
	return filepath.Join(outDir, base)
}

// DisplayName shortens path relative to baseDir for progress output.
func DisplayName(path, baseDir string) string {
	if path == "" {
		return path
	}
	p := filepath.Clean(path)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if rel, err := filepath.Rel(base, p); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return filepath.ToSlash(p)
}

// checkOutputCollisions rejects builds where two sources map onto one output.
func checkOutputCollisions(srcs, outs []string) error {
	owner := make(map[string]string, len(outs))
	for i, out := range outs {
		key := filepath.Clean(out)
		if prev, ok := owner[key]; ok {
			return fmt.Errorf("%s and %s both write %s", prev, srcs[i], out)
		}
		owner[key] = srcs[i]
	}
	return nil
}
