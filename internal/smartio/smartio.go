// Package smartio opens named files or the standard streams behind a single
// call. The path "-" selects stdin for reading and stdout for writing.
package smartio

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Stdio is the path that selects a standard stream instead of a file.
const Stdio = "-"

// FileAccessError reports a path that could not be opened or created.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// Resolver maps paths to streams. The zero value is not usable; build one
// with New or fill every field.
type Resolver struct {
	Fs     afero.Fs
	Stdin  io.Reader
	Stdout io.Writer
}

// New returns a Resolver bound to the OS filesystem and the process streams.
func New() *Resolver {
	return &Resolver{
		Fs:     afero.NewOsFs(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

func noop() error { return nil }

// OpenInput returns a reader for path and the function that releases it.
// Release closes named files and does nothing for stdin.
func (r *Resolver) OpenInput(path string) (io.Reader, func() error, error) {
	if path == Stdio {
		return r.Stdin, noop, nil
	}
	f, err := r.Fs.Open(path)
	if err != nil {
		return nil, noop, &FileAccessError{Op: "open", Path: path, Err: err}
	}
	return f, f.Close, nil
}

// OpenOutput returns a writer for path, creating or truncating the file.
// Release closes named files and does nothing for stdout.
func (r *Resolver) OpenOutput(path string) (io.Writer, func() error, error) {
	if path == Stdio {
		return r.Stdout, noop, nil
	}
	f, err := r.Fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, noop, &FileAccessError{Op: "create", Path: path, Err: err}
	}
	return f, f.Close, nil
}
