package ggml

import (
	"errors"
	"fmt"
)

// Prologue is the classification of a file's leading bytes.
// Version is meaningful only when HasVersion is true, which happens exactly
// when Format.Versioned() is true.
type Prologue struct {
	Format     Format
	Version    int32
	HasVersion bool
}

// VersionPtr returns the version as an optional value.
func (p Prologue) VersionPtr() *int32 {
	if !p.HasVersion {
		return nil
	}
	v := p.Version
	return &v
}

// HeaderFields is the fixed hyperparameter block that follows the prologue.
type HeaderFields struct {
	NVocab   int32
	NEmbd    int32
	NMult    int32
	NHead    int32
	NLayer   int32
	NRot     int32
	FileType FileType
	// FileTypeName is FileType resolved against the known table.
	FileTypeName string
}

var unknown = Prologue{Format: FormatUnknown}

// ClassifyMagic reads the magic number and, for versioned formats, the
// version that follows it. Short input and unrecognized magics classify as
// FormatUnknown without an error; only I/O failures are returned.
func ClassifyMagic(src ByteSource) (Prologue, error) {
	magic, err := src.ReadN(4)
	if err != nil {
		if errors.Is(err, ErrTruncated) {
			return unknown, nil
		}
		return unknown, fmt.Errorf("read magic: %w", err)
	}

	format := LookupMagic(magic)
	switch {
	case format == FormatUnknown:
		return unknown, nil
	case !format.Versioned():
		return Prologue{Format: format}, nil
	}

	version, err := readI32(src)
	if err != nil {
		if errors.Is(err, ErrTruncated) {
			return unknown, nil
		}
		return unknown, fmt.Errorf("read version: %w", err)
	}
	return Prologue{Format: format, Version: version, HasVersion: true}, nil
}

// ReadHeaderFields decodes the hyperparameter block. src must be positioned
// directly after the prologue consumed by ClassifyMagic.
func ReadHeaderFields(src ByteSource) (HeaderFields, error) {
	var h HeaderFields
	var ftype int32
	fields := []struct {
		name string
		dst  *int32
	}{
		{"n_vocab", &h.NVocab},
		{"n_embd", &h.NEmbd},
		{"n_mult", &h.NMult},
		{"n_head", &h.NHead},
		{"n_layer", &h.NLayer},
		{"n_rot", &h.NRot},
		{"ftype", &ftype},
	}
	for _, f := range fields {
		v, err := readI32(src)
		if err != nil {
			return HeaderFields{}, &FieldError{Field: f.name, Err: err}
		}
		*f.dst = v
	}

	h.FileType = FileType(ftype)
	name, err := h.FileType.Name()
	if err != nil {
		return HeaderFields{}, &FieldError{Field: "ftype", Err: err}
	}
	h.FileTypeName = name
	return h, nil
}
