package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"sysyc/internal/ast"
	"sysyc/internal/diag"
	"sysyc/internal/lexer"
	"sysyc/internal/parser"
	"sysyc/internal/source"
	"sysyc/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

func Parse(ctx context.Context, filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	builder, astFile, err := parseFile(ctx, file, bag)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
	}, nil
}

// parseFile lexes and parses one loaded file into a fresh builder. Lexer and
// parser diagnostics share bag.
func parseFile(ctx context.Context, file *source.File, bag *diag.Bag) (*ast.Builder, ast.FileID, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse", trace.CurrentSpan(ctx))
	defer span.End("")

	maxErrors, err := safecast.Conv[uint](bag.Cap())
	if err != nil {
		return nil, 0, err
	}

	// parser recovery can re-report the same token; keep one copy
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})

	if fileNode := builder.Files.Get(res.File); fileNode != nil {
		span.WithExtra("items", fmt.Sprint(len(fileNode.Items)))
	}
	return builder, res.File, nil
}
