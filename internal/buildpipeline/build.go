// Package buildpipeline compiles a set of SysY files concurrently and writes
// one output per input.
package buildpipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sysyc/internal/diag"
	"sysyc/internal/driver"
	"sysyc/internal/source"
	"sysyc/internal/trace"
)

// BuildRequest configures a build.
type BuildRequest struct {
	Files []string
	// Output overrides the output path; only valid with a single file.
	Output string
	// OutDir receives outputs named after their sources. Empty means next
	// to each source.
	OutDir           string
	BaseDir          string
	Emit             driver.Emit
	Jobs             int
	MaxDiagnostics   int
	WarningsAsErrors bool
	EnableTimings    bool
	Cache            *driver.DiskCache
	Progress         ProgressSink
}

// FileResult is the outcome for one input.
type FileResult struct {
	Source     string
	OutputPath string
	Compile    *driver.CompileResult
	// Err is the compile or write failure for this file, nil on success.
	Err     error
	Elapsed time.Duration
}

// BuildResult captures per-file outcomes in input order and stage timings.
type BuildResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timings Timings
}

// Failed counts the files that did not produce output.
func (r BuildResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Build compiles every file in req. Failures in one file do not stop the
// others; the returned error joins them. Cancelling ctx stops files that
// have not started yet.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if len(req.Files) == 0 {
		return result, ErrNoInputs
	}
	if req.Output != "" && len(req.Files) > 1 {
		return result, fmt.Errorf("-o names a single output but %d inputs were given", len(req.Files))
	}

	outs := make([]string, len(req.Files))
	for i, src := range req.Files {
		if req.Output != "" {
			outs[i] = req.Output
			continue
		}
		outs[i] = OutputPath(src, req.OutDir, req.Emit)
	}
	if err := checkOutputCollisions(req.Files, outs); err != nil {
		return result, err
	}
	if req.OutDir != "" {
		if err := os.MkdirAll(req.OutDir, 0o750); err != nil {
			return result, &OutputError{Source: req.OutDir, Path: req.OutDir, Err: err}
		}
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "build", trace.CurrentSpan(ctx)).
		WithExtra("files", fmt.Sprint(len(req.Files))).
		WithExtra("emit", req.Emit.String())
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	names := make([]string, len(req.Files))
	for i, src := range req.Files {
		names[i] = DisplayName(src, req.BaseDir)
	}
	emitQueued(req.Progress, names)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	result.FileSet = source.NewFileSet()
	result.Files = make([]FileResult, len(req.Files))
	var timingsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, src := range req.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				result.Files[i] = FileResult{Source: src, OutputPath: outs[i], Err: err}
				emitFile(req.Progress, names[i], StageParse, StatusError, err, 0)
				return err
			}
			fr, stages := buildOne(gctx, req, result.FileSet, src, outs[i], names[i])
			result.Files[i] = fr
			timingsMu.Lock()
			for stage, dur := range stages.stages {
				result.Timings.Add(stage, dur)
			}
			timingsMu.Unlock()
			return nil
		})
	}
	waitErr := g.Wait()

	var errs []error
	for _, fr := range result.Files {
		if fr.Err != nil && !errors.Is(fr.Err, context.Canceled) && !errors.Is(fr.Err, context.DeadlineExceeded) {
			errs = append(errs, fmt.Errorf("%s: %w", fr.Source, fr.Err))
		}
	}
	if waitErr != nil {
		errs = append(errs, waitErr)
	}
	span.WithExtra("failed", fmt.Sprint(result.Failed()))
	return result, errors.Join(errs...)
}

// buildOne compiles and writes a single file. Everything it touches apart
// from fs is private to the call.
func buildOne(ctx context.Context, req *BuildRequest, fs *source.FileSet, src, out, name string) (fr FileResult, stages Timings) {
	fr = FileResult{Source: src, OutputPath: out}
	start := time.Now()
	defer func() { fr.Elapsed = time.Since(start) }()

	obs := &phaseObserver{sink: req.Progress, file: name, timings: &stages}
	res, err := driver.CompileIn(ctx, fs, src, driver.Options{
		Emit:             req.Emit,
		MaxDiagnostics:   req.MaxDiagnostics,
		WarningsAsErrors: req.WarningsAsErrors,
		EnableTimings:    req.EnableTimings,
		PhaseObserver:    obs.OnPhase,
		Cache:            req.Cache,
	})
	fr.Compile = res
	if err == nil && res.Failed() {
		err = res.Err
	}
	if err != nil {
		fr.Err = err
		emitFile(req.Progress, name, obs.current(), StatusError, err, time.Since(start))
		return fr, stages
	}

	writeStart := time.Now()
	emitFile(req.Progress, name, StageWrite, StatusWorking, nil, 0)
	if err := writeOutput(out, res.Output); err != nil {
		fr.Err = &OutputError{Source: src, Path: out, Err: err}
		diag.ReportError(diag.BagReporter{Bag: res.Bag}, diag.IOWriteError, source.Span{File: res.File.ID}, fr.Err.Error()).Emit()
		emitFile(req.Progress, name, StageWrite, StatusError, fr.Err, time.Since(start))
		return fr, stages
	}
	stages.Add(StageWrite, time.Since(writeStart))

	status := StatusDone
	if res.Cached {
		status = StatusCached
	}
	emitFile(req.Progress, name, StageWrite, status, nil, time.Since(start))
	return fr, stages
}

// writeOutput writes data to path through a buffered writer. The file is
// closed on every path and a close error is not lost.
func writeOutput(path string, data []byte) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	// #nosec G304 -- path is derived from build output configuration
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	w := bufio.NewWriter(f)
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Flush()
}

// phaseObserver turns driver phase events into progress events for one file.
type phaseObserver struct {
	sink    ProgressSink
	file    string
	stage   Stage
	timings *Timings
}

func stageOf(phase string) Stage {
	switch phase {
	case "load_file", "parse":
		return StageParse
	case "lower", "validate":
		return StageLower
	default:
		return StageCodegen
	}
}

func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	stage := stageOf(ev.Name)
	if ev.Status == driver.PhaseEnd {
		p.timings.Add(stage, ev.Elapsed)
		return
	}
	if stage == p.stage {
		return
	}
	p.stage = stage
	emitFile(p.sink, p.file, stage, StatusWorking, nil, 0)
}

func (p *phaseObserver) current() Stage {
	if p.stage == "" {
		return StageParse
	}
	return p.stage
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitFile(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
