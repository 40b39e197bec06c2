package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sysyc/internal/driver"
)

const manifestName = "sysy.toml"

const noManifestMessage = "no inputs and no sysy.toml found\nplease name the sources explicitly, e.g.:\n  sysyc build main.sy"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type buildConfig struct {
	Sources []string `toml:"sources"`
	OutDir  string   `toml:"out_dir"`
	Emit    string   `toml:"emit"`
	Jobs    int      `toml:"jobs"`
	Cache   bool     `toml:"cache"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build", "sources") || len(cfg.Build.Sources) == 0 {
		return projectConfig{}, fmt.Errorf("%s: missing [build].sources", path)
	}
	if cfg.Build.Emit != "" {
		if _, err := driver.ParseEmit(cfg.Build.Emit); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [build].emit: %w", path, err)
		}
	}
	if cfg.Build.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	return cfg, nil
}

// sources resolves [build].sources against the manifest root.
func (m *projectManifest) sources() []string {
	out := make([]string, 0, len(m.Config.Build.Sources))
	for _, s := range m.Config.Build.Sources {
		out = append(out, m.resolve(s))
	}
	return out
}

func (m *projectManifest) outDir() string {
	if strings.TrimSpace(m.Config.Build.OutDir) == "" {
		return ""
	}
	return m.resolve(m.Config.Build.OutDir)
}

func (m *projectManifest) resolve(rel string) string {
	p := filepath.FromSlash(strings.TrimSpace(rel))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}
