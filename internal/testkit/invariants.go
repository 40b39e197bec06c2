// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sysyc/internal/ast"
	"sysyc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within the file content and names the right file
// 2) every item span is non-empty and fully contained in file.Span
// 3) every function body span is contained in its item span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}
	if len(f.Items) > 0 && f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty but has %d items: %v", len(f.Items), f.Span)
	}

	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s item span: %v", item.Kind, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !contains(f.Span, sp) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		if fn, ok := b.Items.Fn(it); ok && fn.Body.IsValid() {
			body := b.Stmts.Get(fn.Body)
			if body == nil {
				return fmt.Errorf("fn %s: missing body stmt %d", b.Name(fn.Name), fn.Body)
			}
			if !contains(sp, body.Span) {
				return fmt.Errorf("fn %s: body span %v is outside item span %v", b.Name(fn.Name), body.Span, sp)
			}
		}
	}
	return nil
}

func contains(outer, inner source.Span) bool {
	return inner.File == outer.File && inner.Start >= outer.Start && inner.End <= outer.End
}
