package buildpipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrOutputIO wraps every failure to create, write or close an output file.
	ErrOutputIO = errors.New("output I/O error")
	// ErrNoInputs means the request named no source files.
	ErrNoInputs = errors.New("no input files")
)

// OutputError is returned when the output for Source could not be written.
type OutputError struct {
	Source string
	Path   string
	Err    error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%s: writing %s: %v", e.Source, e.Path, e.Err)
}

func (e *OutputError) Unwrap() []error { return []error{ErrOutputIO, e.Err} }
