package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sysyc/internal/diag"
	"sysyc/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
	gutterColor  = color.New(color.FgBlue)
	pathColor    = color.New(color.Bold)
)

type painter bool

func (p painter) paint(c *color.Color, s string) string {
	if !p {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	}
	return infoColor
}

// Pretty writes every diagnostic of bag as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   3 | int main() { return y; }
//	     |                     ^
//
// followed by its notes. Call bag.Sort first for stable output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := painter(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		loc := location(fs, d.Primary, opts.PathMode)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.paint(pathColor, loc),
			p.paint(severityColor(d.Severity), d.Severity.String()),
			d.Code.ID(),
			d.Message)
		snippet(w, fs, d.Primary, opts.Context, p)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s: %s: %s\n", p.paint(infoColor, "note"), location(fs, n.Span, opts.PathMode), n.Msg)
			snippet(w, fs, n.Span, 0, p)
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode source.PathMode) string {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath(mode, fs.BaseDir()), start.Line, start.Col)
}

// snippet prints the primary line with context and a ^~~~ underline.
// Spans crossing lines are underlined to the end of their first line.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, p painter) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)

	first := start.Line
	for i := 0; i < context && first > 1; i++ {
		first--
	}
	gw := len(strconv.FormatUint(uint64(start.Line), 10)) + 2
	for ln := first; ln <= start.Line; ln++ {
		num := fmt.Sprintf("%*d", gw, ln)
		fmt.Fprintf(w, "%s %s %s\n", p.paint(gutterColor, num), p.paint(gutterColor, "|"), f.GetLine(ln))
	}

	prefix := prefixBytes(line, start.Col)
	stop := len(line)
	if end.Line == start.Line {
		stop = min(len(line), prefix+int(end.Col-start.Col))
	}
	width := max(1, runewidth.StringWidth(line[prefix:stop]))

	var pad strings.Builder
	for _, r := range line[:prefix] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s %s%s\n",
		strings.Repeat(" ", gw), p.paint(gutterColor, "|"), pad.String(), p.paint(caretColor, underline))
}

// prefixBytes converts a 1-based byte column to a byte offset clamped to line.
func prefixBytes(line string, col uint32) int {
	if col == 0 {
		return 0
	}
	return min(int(col-1), len(line))
}
