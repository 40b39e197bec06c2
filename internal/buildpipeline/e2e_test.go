package buildpipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"sysyc/internal/rvsim"
)

// buildAndRun builds src into assembly and executes main.
func buildAndRun(src string) (string, int32) {
	dir := GinkgoT().TempDir()
	path := writeFile(dir, "main.sy", src)
	res, err := Build(context.Background(), &BuildRequest{Files: []string{path}, MaxDiagnostics: 10})
	Expect(err).NotTo(HaveOccurred())

	data, err := os.ReadFile(filepath.Join(dir, "main.S"))
	Expect(err).NotTo(HaveOccurred())
	Expect(res.Files[0].OutputPath).To(Equal(filepath.Join(dir, "main.S")))

	asm := string(data)
	lines := strings.Split(strings.TrimSuffix(asm, "\n"), "\n")
	a0, err := rvsim.Run(lines, "main")
	Expect(err).NotTo(HaveOccurred())
	return asm, a0
}

var _ = Describe("End to end", func() {
	It("should emit the minimal program", func() {
		asm, a0 := buildAndRun("int main(){ return 42; }")
		Expect(asm).To(Equal("  .text\n  .global main\nmain:\n  li a0, 42\n  ret\n"))
		Expect(a0).To(Equal(int32(42)))
	})

	DescribeTable("final a0",
		func(src string, want int32, fragments ...string) {
			asm, a0 := buildAndRun(src)
			Expect(a0).To(Equal(want))
			for _, f := range fragments {
				Expect(asm).To(ContainSubstring(f))
			}
		},
		Entry("equality", "int main(){ return 1 == 1; }", int32(1), "xor", "seqz"),
		Entry("precedence", "int main(){ return 10 - 3 * 2; }", int32(4), "mul", "sub"),
		Entry("negated constant", "const int a = 3; int main(){ return -a; }", int32(-3), "sub t0, zero, t0"),
		Entry("eager and", "int main(){ return (1 < 2) && (3 > 4); }", int32(0), "slt", "sgt", "and"),
		Entry("nested blocks", "int main(){ int x = 1; { int x = 2; x = x + 1; } return x; }", int32(1)),
		Entry("rebinding", "int main(){ int x = 4; x = x * x; x = x - 6; return x; }", int32(10)),
		Entry("global const", "const int n = 7 % 4, m = n * 2; int main(){ return m + n; }", int32(9)),
		Entry("le and ge", "int main(){ return (3 <= 3) + (2 >= 5) * 2 + (4 >= 4) * 4; }", int32(5)),
	)

	It("should reuse the zero register instead of loading 0", func() {
		asm, a0 := buildAndRun("int main(){ return -7; }")
		Expect(a0).To(Equal(int32(-7)))
		Expect(asm).NotTo(ContainSubstring("li t0, 0\n"))
		Expect(asm).To(ContainSubstring("zero"))
	})
})
