package source

import (
	"os"
	"path/filepath"
)

// PathMode selects how a file path is shown to the user.
type PathMode uint8

const (
	PathAuto PathMode = iota // as given when short or relative, else the basename
	PathAbsolute
	PathRelative // relative to the FileSet base dir, or the working directory
	PathBasename
)

// SetBaseDir sets the directory PathRelative is computed against.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	fileSet.baseDir = dir
}

func (fileSet *FileSet) BaseDir() string {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.baseDir
}

// FormatPath renders f.Path according to mode. Failures fall back to the path as stored.
func (f *File) FormatPath(mode PathMode, baseDir string) string {
	switch mode {
	case PathAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathRelative:
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathBasename:
		return filepath.Base(f.Path)
	case PathAuto:
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
