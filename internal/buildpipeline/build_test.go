package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"sysyc/internal/diag"
	"sysyc/internal/driver"
	"sysyc/internal/irgen"
	"sysyc/internal/trace"
)

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.MkdirAll(filepath.Dir(path), 0o750)).To(Succeed())
	Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) last(file string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out Event
	for _, ev := range s.events {
		if ev.File == file {
			out = ev
		}
	}
	return out
}

func (s *recordingSink) count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Status == status {
			n++
		}
	}
	return n
}

var _ = Describe("Build", func() {
	var (
		srcDir string
		outDir string
	)

	BeforeEach(func() {
		srcDir = GinkgoT().TempDir()
		outDir = filepath.Join(GinkgoT().TempDir(), "out")
	})

	It("should compile every file into the output directory", func() {
		files := []string{
			writeFile(srcDir, "a.sy", "int main() { return 1; }"),
			writeFile(srcDir, "b.sy", "int main() { return 2; }"),
			writeFile(srcDir, "c.sy", "int main() { return 3; }"),
		}
		res, err := Build(context.Background(), &BuildRequest{
			Files: files, OutDir: outDir, Jobs: 2, MaxDiagnostics: 10,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Files).To(HaveLen(3))
		Expect(res.Failed()).To(Equal(0))
		for i, name := range []string{"a.S", "b.S", "c.S"} {
			Expect(res.Files[i].Source).To(Equal(files[i]))
			Expect(res.Files[i].OutputPath).To(Equal(filepath.Join(outDir, name)))
			data, err := os.ReadFile(res.Files[i].OutputPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("li a0, "))
		}
		Expect(res.Timings.Has(StageParse)).To(BeTrue())
		Expect(res.Timings.Has(StageWrite)).To(BeTrue())
	})

	It("should write koopa next to the source when no directory is given", func() {
		src := writeFile(srcDir, "m.c", "int main() { return 5; }")
		res, err := Build(context.Background(), &BuildRequest{Files: []string{src}, Emit: driver.EmitKoopa, MaxDiagnostics: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Files[0].OutputPath).To(Equal(filepath.Join(srcDir, "m.koopa")))
		data, err := os.ReadFile(res.Files[0].OutputPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("fun @main(): i32"))
	})

	It("should honour an explicit output path for a single file", func() {
		src := writeFile(srcDir, "m.sy", "int main() { return 5; }")
		target := filepath.Join(outDir, "nested", "prog.s")
		_, err := Build(context.Background(), &BuildRequest{Files: []string{src}, Output: target, MaxDiagnostics: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(target).To(BeARegularFile())
	})

	It("should reject an explicit output path for several files", func() {
		a := writeFile(srcDir, "a.sy", "int main() { return 1; }")
		b := writeFile(srcDir, "b.sy", "int main() { return 1; }")
		_, err := Build(context.Background(), &BuildRequest{Files: []string{a, b}, Output: "x.S"})
		Expect(err).To(HaveOccurred())
	})

	It("should reject two sources that map to one output", func() {
		a := writeFile(srcDir, "one/x.sy", "int main() { return 1; }")
		b := writeFile(srcDir, "two/x.sy", "int main() { return 1; }")
		_, err := Build(context.Background(), &BuildRequest{Files: []string{a, b}, OutDir: outDir})
		Expect(err).To(MatchError(ContainSubstring("both write")))
	})

	It("should report ErrNoInputs", func() {
		_, err := Build(context.Background(), &BuildRequest{})
		Expect(err).To(MatchError(ErrNoInputs))
	})

	It("should keep building after one file fails", func() {
		good := writeFile(srcDir, "good.sy", "int main() { return 0; }")
		bad := writeFile(srcDir, "bad.sy", "int main() { while (1) {} return 0; }")
		res, err := Build(context.Background(), &BuildRequest{
			Files: []string{bad, good}, OutDir: outDir, MaxDiagnostics: 10,
		})
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, irgen.ErrUnsupportedConstruct)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(bad))
		Expect(res.Failed()).To(Equal(1))
		Expect(res.Files[1].Err).NotTo(HaveOccurred())
		Expect(filepath.Join(outDir, "good.S")).To(BeARegularFile())
		Expect(filepath.Join(outDir, "bad.S")).NotTo(BeAnExistingFile())
	})

	It("should wrap write failures in ErrOutputIO", func() {
		src := writeFile(srcDir, "m.sy", "int main() { return 1; }")
		blocker := writeFile(srcDir, "blocker", "not a directory")
		res, err := Build(context.Background(), &BuildRequest{
			Files: []string{src}, Output: filepath.Join(blocker, "m.S"), MaxDiagnostics: 10,
		})
		Expect(errors.Is(err, ErrOutputIO)).To(BeTrue())
		var outErr *OutputError
		Expect(errors.As(res.Files[0].Err, &outErr)).To(BeTrue())
		Expect(outErr.Source).To(Equal(src))
		codes := []diag.Code{}
		for _, d := range res.Files[0].Compile.Bag.Items() {
			codes = append(codes, d.Code)
		}
		Expect(codes).To(ContainElement(diag.IOWriteError))
	})

	It("should not start files after the context is cancelled", func() {
		src := writeFile(srcDir, "m.sy", "int main() { return 1; }")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := Build(ctx, &BuildRequest{Files: []string{src}, OutDir: outDir})
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(errors.Is(res.Files[0].Err, context.Canceled)).To(BeTrue())
		Expect(filepath.Join(outDir, "m.S")).NotTo(BeAnExistingFile())
	})

	It("should report progress for every file", func() {
		files := []string{
			writeFile(srcDir, "a.sy", "int main() { return 1; }"),
			writeFile(srcDir, "b.sy", "int main() { return x; }"),
		}
		sink := &recordingSink{}
		_, _ = Build(context.Background(), &BuildRequest{
			Files: files, OutDir: outDir, BaseDir: srcDir, Progress: sink, MaxDiagnostics: 10,
		})
		Expect(sink.count(StatusQueued)).To(Equal(2))
		Expect(sink.last("a.sy").Status).To(Equal(StatusDone))
		Expect(sink.last("a.sy").Stage).To(Equal(StageWrite))
		failed := sink.last("b.sy")
		Expect(failed.Status).To(Equal(StatusError))
		Expect(failed.Stage).To(Equal(StageLower))
		Expect(failed.Err).To(HaveOccurred())
	})

	It("should mark cached outputs", func() {
		cache, err := driver.OpenDiskCacheAt(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		src := writeFile(srcDir, "m.sy", "int main() { return 9; }")
		req := &BuildRequest{Files: []string{src}, OutDir: outDir, BaseDir: srcDir, Cache: cache, MaxDiagnostics: 10}

		_, err = Build(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())

		sink := &recordingSink{}
		req.Progress = sink
		res, err := Build(context.Background(), req)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Files[0].Compile.Cached).To(BeTrue())
		Expect(sink.last("m.sy").Status).To(Equal(StatusCached))
	})

	It("should forward events through a ChannelSink", func() {
		src := writeFile(srcDir, "m.sy", "int main() { return 1; }")
		ch := make(chan Event, 64)
		_, err := Build(context.Background(), &BuildRequest{
			Files: []string{src}, OutDir: outDir, Progress: ChannelSink{Ch: ch},
		})
		Expect(err).NotTo(HaveOccurred())
		close(ch)
		var statuses []Status
		for ev := range ch {
			statuses = append(statuses, ev.Status)
		}
		Expect(statuses).To(HaveExactElements(
			StatusQueued, StatusWorking, StatusWorking, StatusWorking, StatusWorking, StatusDone,
		))
	})
})

var _ = Describe("Build tracing", func() {
	var (
		mockCtrl *gomock.Controller
		tracer   *MockTracer
		mu       sync.Mutex
		events   []trace.Event
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tracer = NewMockTracer(mockCtrl)
		events = nil
		tracer.EXPECT().Enabled().Return(true).AnyTimes()
		tracer.EXPECT().Level().Return(trace.LevelPhase).AnyTimes()
		tracer.EXPECT().Emit(gomock.Any()).Do(func(ev *trace.Event) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, *ev)
		}).AnyTimes()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should open driver and pass spans but no function spans at phase level", func() {
		src := writeFile(GinkgoT().TempDir(), "m.sy", "int main() { return 1 + 2; }")
		ctx := trace.WithTracer(context.Background(), tracer)
		_, err := Build(ctx, &BuildRequest{Files: []string{src}, OutDir: GinkgoT().TempDir()})
		Expect(err).NotTo(HaveOccurred())

		mu.Lock()
		defer mu.Unlock()
		begun := map[string]uint64{}
		for _, ev := range events {
			Expect(ev.Scope).NotTo(Equal(trace.ScopeModule))
			if ev.Kind == trace.KindSpanBegin {
				begun[ev.Name] = ev.SpanID
			}
		}
		Expect(begun).To(HaveKey("build"))
		Expect(begun).To(HaveKey("compile"))
		Expect(begun).To(HaveKey("parse"))
		Expect(begun).To(HaveKey("lower"))
		Expect(begun).To(HaveKey("codegen"))

		for _, ev := range events {
			if ev.Kind == trace.KindSpanBegin && ev.Name == "compile" {
				Expect(ev.ParentID).To(Equal(begun["build"]))
			}
			if ev.Kind == trace.KindSpanBegin && ev.Name == "lower" {
				Expect(ev.ParentID).To(Equal(begun["compile"]))
			}
		}
	})
})

var _ = Describe("Inputs", func() {
	It("should walk directories for sources and skip hidden ones", func() {
		dir := GinkgoT().TempDir()
		writeFile(dir, "b.sy", "")
		writeFile(dir, "a.c", "")
		writeFile(dir, "notes.txt", "")
		writeFile(dir, "sub/d.sy", "")
		writeFile(dir, ".git/e.sy", "")
		explicit := writeFile(dir, "x.txt", "")

		got, err := CollectInputs([]string{dir, explicit, filepath.Join(dir, "b.sy")})
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([]string{
			filepath.Join(dir, "a.c"),
			filepath.Join(dir, "b.sy"),
			filepath.Join(dir, "sub", "d.sy"),
			filepath.Join(dir, "x.txt"),
		}))
	})

	It("should fail on a missing path", func() {
		_, err := CollectInputs([]string{filepath.Join(GinkgoT().TempDir(), "missing")})
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	It("should name outputs after their sources", func() {
		Expect(OutputPath("src/main.sy", "", driver.EmitRISCV)).To(Equal(filepath.Join("src", "main.S")))
		Expect(OutputPath("src/main.sy", "out", driver.EmitKoopa)).To(Equal(filepath.Join("out", "main.koopa")))
	})

	It("should shorten display names under the base directory", func() {
		Expect(DisplayName("/p/src/a.sy", "/p")).To(Equal("src/a.sy"))
		Expect(DisplayName("/q/a.sy", "/p")).To(Equal("/q/a.sy"))
		Expect(DisplayName("a.sy", "")).To(Equal("a.sy"))
	})
})
