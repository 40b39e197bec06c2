package irgen

import (
	"context"
	"errors"
	"fmt"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/ir"
	"sysyc/internal/source"
	"sysyc/internal/symbols"
	"sysyc/internal/trace"
)

type Options struct {
	// Reporter receives every lowering diagnostic. Nil drops them.
	Reporter diag.Reporter
}

// Lower translates one parsed file into IR. On failure the returned error
// joins every *Error found; the program is still returned so callers can
// inspect what was lowered.
func Lower(ctx context.Context, builder *ast.Builder, fileID ast.FileID, opts Options) (*ir.Program, error) {
	if builder == nil || !fileID.IsValid() {
		return nil, fmt.Errorf("irgen: no file to lower")
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "lower", trace.CurrentSpan(ctx))
	defer span.End("")

	l := &lowerer{
		ast:      builder,
		b:        ir.NewBuilder(nil),
		syms:     symbols.NewTable(symbols.Hints{Scopes: 16}, builder.Strings),
		reporter: reporter,
		tracer:   tracer,
		parent:   span.ID(),
		funcs:    make(map[string]bool),
	}
	l.lowerFile(fileID)

	span.WithExtra("funcs", fmt.Sprint(len(l.b.Program().Funcs)))
	return l.b.Program(), errors.Join(l.errs...)
}

// lowerer carries all lowering state; nothing in this package is global.
type lowerer struct {
	ast      *ast.Builder
	b        *ir.Builder
	syms     *symbols.Table
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64

	// folding is set while a const initializer is being evaluated.
	folding bool

	fn       *ast.FnItem
	returned bool
	warned   bool

	funcs map[string]bool
	errs  []error
}

// fail records err as a diagnostic and keeps it for the joined result.
func (l *lowerer) fail(err *Error) {
	b := diag.ReportError(l.reporter, err.Code, err.Span, err.Msg)
	if err.Note != (source.Span{}) {
		b.WithNote(err.Note, "declared here")
	}
	b.Emit()
	l.errs = append(l.errs, err)
}

func (l *lowerer) lowerFile(fileID ast.FileID) {
	file := l.ast.Files.Get(fileID)
	if file == nil {
		return
	}
	for _, itemID := range file.Items {
		l.lowerItem(itemID)
	}
}

func (l *lowerer) lowerItem(itemID ast.ItemID) {
	item := l.ast.Items.Get(itemID)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemFn:
		fn, _ := l.ast.Items.Fn(itemID)
		l.lowerFn(item, fn)
	case ast.ItemDecl:
		decl, _ := l.ast.Items.Decl(itemID)
		l.lowerGlobalDecl(item, decl)
	default:
		panic(fmt.Sprintf("irgen: unhandled item kind %s", item.Kind))
	}
}
