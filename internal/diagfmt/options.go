package diagfmt

import "sysyc/internal/source"

// PrettyOpts configures human-readable diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int // source lines shown above the primary line
	PathMode  source.PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to every location
	PathMode         source.PathMode
	Max              int // 0 keeps everything
	IncludeNotes     bool
}
