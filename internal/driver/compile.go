package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sysyc/internal/ast"
	"sysyc/internal/backend/riscv"
	"sysyc/internal/diag"
	"sysyc/internal/ir"
	"sysyc/internal/irgen"
	"sysyc/internal/observ"
	"sysyc/internal/source"
	"sysyc/internal/trace"
)

// Emit selects the output form of a compilation.
type Emit uint8

const (
	EmitRISCV Emit = iota
	EmitKoopa
)

func (e Emit) String() string {
	switch e {
	case EmitRISCV:
		return "riscv"
	case EmitKoopa:
		return "koopa"
	}
	return fmt.Sprintf("Emit(%d)", uint8(e))
}

// Ext is the output file extension for e.
func (e Emit) Ext() string {
	if e == EmitKoopa {
		return ".koopa"
	}
	return ".S"
}

// ParseEmit accepts "riscv"/"koopa" with or without a leading dash.
func ParseEmit(s string) (Emit, error) {
	switch strings.ToLower(strings.TrimLeft(strings.TrimSpace(s), "-")) {
	case "riscv", "asm", "s":
		return EmitRISCV, nil
	case "koopa", "ir":
		return EmitKoopa, nil
	}
	return EmitRISCV, fmt.Errorf("unknown emit mode %q (want riscv or koopa)", s)
}

// ErrInvalidIR means lowering produced IR that breaks define-before-use or
// block termination. It is always a compiler bug.
var ErrInvalidIR = errors.New("lowering produced invalid IR")

type Options struct {
	Emit             Emit
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	PhaseObserver    PhaseObserver
	// Cache, when set, is consulted before parsing and filled after a
	// clean compilation.
	Cache *DiskCache
}

type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	FileID  ast.FileID
	Builder *ast.Builder
	Bag     *diag.Bag
	Program *ir.Program
	Asm     []string
	Output  []byte
	// Err joins the user-facing errors of the compilation. It is nil when
	// Output is usable.
	Err          error
	Cached       bool
	TimingReport observ.Report
}

// Failed reports whether the compilation produced no usable output.
func (r *CompileResult) Failed() bool {
	return r == nil || r.Err != nil
}

// Compile loads path into a fresh FileSet and compiles it.
func Compile(ctx context.Context, path string, opts Options) (*CompileResult, error) {
	return CompileIn(ctx, source.NewFileSet(), path, opts)
}

// CompileIn compiles path, loading it into fs. Several goroutines may share
// fs; everything else is private to the call.
func CompileIn(ctx context.Context, fs *source.FileSet, path string, opts Options) (*CompileResult, error) {
	c := newCompilation(ctx, opts)
	idx := c.begin("load_file")
	fileID, err := fs.Load(path)
	c.end(idx, "")
	if err != nil {
		return nil, err
	}
	return c.run(fs, fileID)
}

// CompileSource compiles content as a virtual file called name.
func CompileSource(ctx context.Context, name string, content []byte, opts Options) (*CompileResult, error) {
	fs := source.NewFileSet()
	return newCompilation(ctx, opts).run(fs, fs.AddVirtual(name, content))
}

type compilation struct {
	ctx    context.Context
	opts   Options
	timer  *observ.Timer
	phases []phaseMark
}

type phaseMark struct {
	name     string
	start    time.Time
	timerIdx int
}

func newCompilation(ctx context.Context, opts Options) *compilation {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &compilation{ctx: ctx, opts: opts}
	if opts.EnableTimings {
		c.timer = observ.NewTimer()
	}
	return c
}

func (c *compilation) begin(name string) int {
	mark := phaseMark{name: name, start: time.Now(), timerIdx: -1}
	if c.timer != nil {
		mark.timerIdx = c.timer.Begin(name)
	}
	c.phases = append(c.phases, mark)
	if c.opts.PhaseObserver != nil {
		c.opts.PhaseObserver(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return len(c.phases) - 1
}

func (c *compilation) end(idx int, note string) {
	mark := c.phases[idx]
	if c.timer != nil {
		c.timer.End(mark.timerIdx, note)
	}
	if c.opts.PhaseObserver != nil {
		c.opts.PhaseObserver(PhaseEvent{Name: mark.name, Status: PhaseEnd, Elapsed: time.Since(mark.start)})
	}
}

func (c *compilation) run(fs *source.FileSet, fileID source.FileID) (*CompileResult, error) {
	file := fs.Get(fileID)
	res := &CompileResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(c.opts.MaxDiagnostics),
	}

	tracer := trace.FromContext(c.ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.CurrentSpan(c.ctx)).
		WithExtra("path", file.Path).
		WithExtra("emit", c.opts.Emit.String())
	defer span.End("")
	ctx := trace.WithSpan(c.ctx, span)

	key := CacheKey(file.Hash, c.opts.Emit)
	if c.opts.Cache != nil {
		var payload DiskPayload
		hit, err := c.opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeDriver, "cache_error", err.Error(), span.ID())
		}
		if hit && payload.Emit == c.opts.Emit && c.reusable(&payload) {
			span.WithExtra("cache", "hit")
			res.Output = payload.Output
			res.Cached = true
			res.TimingReport = payload.Timings
			return res, nil
		}
	}

	c.compile(ctx, res)
	warnings := countSeverity(res.Bag, diag.SevWarning)
	c.finish(res)

	if c.opts.Cache != nil && !res.Failed() {
		err := c.opts.Cache.Put(key, &DiskPayload{
			Path:     file.Path,
			Emit:     c.opts.Emit,
			Output:   res.Output,
			Warnings: warnings,
			Timings:  res.TimingReport,
		})
		if err != nil {
			trace.Point(tracer, trace.ScopeDriver, "cache_error", err.Error(), span.ID())
		}
	}
	if errors.Is(res.Err, ErrInvalidIR) {
		return res, res.Err
	}
	return res, nil
}

// reusable reports whether a cached payload can stand in for a compilation.
// Diagnostics are not stored, so an entry that had warnings is compiled
// again unless the caller drops warnings.
func (c *compilation) reusable(payload *DiskPayload) bool {
	return payload.Warnings == 0 || c.opts.IgnoreWarnings
}

// compile runs the passes in order and stops at the first one that fails.
func (c *compilation) compile(ctx context.Context, res *CompileResult) {
	reporter := diag.BagReporter{Bag: res.Bag}

	idx := c.begin("parse")
	builder, astFile, err := parseFile(ctx, res.File, res.Bag)
	c.end(idx, fmt.Sprintf("diags=%d", res.Bag.Len()))
	if err != nil {
		res.Err = err
		return
	}
	res.Builder, res.FileID = builder, astFile
	if res.Bag.HasErrors() {
		res.Err = res.Bag.Err()
		return
	}

	idx = c.begin("lower")
	prog, err := irgen.Lower(ctx, builder, astFile, irgen.Options{Reporter: reporter})
	note := ""
	if prog != nil {
		note = fmt.Sprintf("funcs=%d", len(prog.Funcs))
	}
	c.end(idx, note)
	res.Program = prog
	if err != nil {
		res.Err = err
		return
	}

	idx = c.begin("validate")
	err = ir.Validate(prog)
	c.end(idx, "")
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrInvalidIR, err)
		return
	}

	if c.opts.Emit == EmitKoopa {
		idx = c.begin("codegen")
		var buf bytes.Buffer
		err = ir.Dump(&buf, prog)
		c.end(idx, "koopa")
		if err != nil {
			res.Err = err
			return
		}
		res.Output = buf.Bytes()
		return
	}

	idx = c.begin("codegen")
	lines, err := riscv.GenerateContext(ctx, prog)
	c.end(idx, fmt.Sprintf("lines=%d", len(lines)))
	if err != nil {
		var gerr *riscv.Error
		if errors.As(err, &gerr) {
			diag.ReportError(reporter, gerr.Code, source.Span{File: res.File.ID}, gerr.Error()).Emit()
		}
		res.Err = err
		return
	}
	res.Asm = lines
	res.Output = []byte(strings.Join(lines, "\n") + "\n")
}

// finish applies the warning policy and attaches timings.
func (c *compilation) finish(res *CompileResult) {
	if c.opts.IgnoreWarnings {
		res.Bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity != diag.SevWarning && d.Severity != diag.SevInfo
		})
	}
	if c.opts.WarningsAsErrors {
		res.Bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
		res.Bag.Sort()
		if res.Err == nil && res.Bag.HasErrors() {
			res.Err = res.Bag.Err()
			res.Output = nil
		}
	}

	if c.timer != nil {
		report := c.timer.Report()
		res.TimingReport = report
		appendTimingDiagnostic(res.Bag, res.File.ID, timingPayload{
			Kind:    "file",
			Path:    res.File.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
}

func countSeverity(bag *diag.Bag, sev diag.Severity) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
