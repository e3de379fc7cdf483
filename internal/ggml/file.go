package ggml

import (
	"errors"
	"fmt"
	"os"
)

// Header is everything the decoder learned about one file.
type Header struct {
	Path     string
	Prologue Prologue
	// Fields is nil unless extended decoding was requested and the format
	// carries a hyperparameter block.
	Fields *HeaderFields
}

// Options controls how much of the header CheckFile decodes.
type Options struct {
	Extended bool
}

// Decode classifies src and, when opts.Extended is set, reads the
// hyperparameter block. path is only recorded in the result.
func Decode(src ByteSource, path string, opts Options) (*Header, error) {
	p, err := ClassifyMagic(src)
	if err != nil {
		return nil, err
	}
	h := &Header{Path: path, Prologue: p}
	if !opts.Extended || !p.Format.HasHyperparameters() {
		return h, nil
	}
	fields, err := ReadHeaderFields(src)
	if err != nil {
		return nil, err
	}
	h.Fields = &fields
	return h, nil
}

// CheckFile opens path, decodes its header and closes it. The path must
// already be resolved; see package resolve. Errors do not name the path so
// callers can report the file the way the user named it.
func CheckFile(path string, opts Options) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("open: %w", pe.Err)
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Decode(NewReader(f), path, opts)
}
