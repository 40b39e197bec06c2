package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"sysyc/internal/buildpipeline"
)

const maxSeedBytes = 64 << 10

var builtinSeeds = []string{
	"",
	"int main() { return 0; }",
	"int main() {\n  return -!+2147483647;\n}\n",
	"int main() { int x = 1; x = x * 2 + 3 % 2; return x; }",
	"const int A = 4, B = A / 2;\nint main() { return A <= B || A != 0 && B >= 1; }",
	"int main() { int a; { int a = 2; return a; } }",
	"int main() { return 1; return 2; }",
	"int main() { /* block */ int x = 7; // tail\n return (x - 1) / (x - 6); }",
	"int main() { int x = 1 int y = 2; return x; }",
	"int main() { return ((((((1)))))); }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every SysY source under testdata/ at the module root.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	exts := make(map[string]bool, len(buildpipeline.SourceExts))
	for _, ext := range buildpipeline.SourceExts {
		exts[ext] = true
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !exts[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
