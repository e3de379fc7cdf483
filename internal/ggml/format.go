package ggml

import "fmt"

// Format identifies a legacy GGML container by its magic number.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatGGML           // unversioned
	FormatGGMF           // versioned, single release
	FormatGGJT           // versioned, current llama.cpp legacy format
	FormatGGLA           // versioned, LoRA adapter
)

// Magic numbers as they appear on disk at offset 0. The container writers emit
// the uint32 constant little-endian, so the ASCII spelling is reversed.
var magics = map[[4]byte]Format{
	{'l', 'm', 'g', 'g'}: FormatGGML,
	{'f', 'm', 'g', 'g'}: FormatGGMF,
	{'t', 'j', 'g', 'g'}: FormatGGJT,
	{'a', 'l', 'g', 'g'}: FormatGGLA,
}

// LookupMagic returns the format for the first four bytes of a file.
func LookupMagic(b []byte) Format {
	if len(b) < 4 {
		return FormatUnknown
	}
	return magics[[4]byte(b[:4])]
}

// Magic returns the on-disk magic bytes for f. ok is false for FormatUnknown.
func (f Format) Magic() (m [4]byte, ok bool) {
	for k, v := range magics {
		if v == f {
			return k, true
		}
	}
	return m, false
}

// Versioned reports whether the format stores an int32 version after the magic.
func (f Format) Versioned() bool {
	switch f {
	case FormatGGMF, FormatGGJT, FormatGGLA:
		return true
	default:
		return false
	}
}

// HasHyperparameters reports whether the format carries the llama hyperparameter
// block after its prologue. LoRA adapters store adapter parameters instead.
func (f Format) HasHyperparameters() bool {
	switch f {
	case FormatGGML, FormatGGMF, FormatGGJT:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	switch f {
	case FormatGGML:
		return "ggml"
	case FormatGGMF:
		return "ggmf"
	case FormatGGJT:
		return "ggjt"
	case FormatGGLA:
		return "ggla"
	case FormatUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}
