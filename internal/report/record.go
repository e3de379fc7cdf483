// Package report renders decoded headers for people and for tools.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samcharles93/ggmlcheck/internal/ggml"
)

// Record is the structured form of one decoded header. Optional values are
// nil when the file did not carry them.
type Record struct {
	Filename string `json:"filename" yaml:"filename"`
	Format   string `json:"format" yaml:"format"`
	Version  *int32 `json:"version,omitempty" yaml:"version,omitempty"`
	NVocab   *int32 `json:"n_vocab,omitempty" yaml:"n_vocab,omitempty"`
	NEmbd    *int32 `json:"n_embd,omitempty" yaml:"n_embd,omitempty"`
	NMult    *int32 `json:"n_mult,omitempty" yaml:"n_mult,omitempty"`
	NHead    *int32 `json:"n_head,omitempty" yaml:"n_head,omitempty"`
	NLayer   *int32 `json:"n_layer,omitempty" yaml:"n_layer,omitempty"`
	NRot     *int32 `json:"n_rot,omitempty" yaml:"n_rot,omitempty"`
	FileType string `json:"ftype,omitempty" yaml:"ftype,omitempty"`
}

func ptr[T any](v T) *T { return &v }

// FromHeader flattens a decoded header into a Record.
func FromHeader(h *ggml.Header) Record {
	r := Record{
		Filename: h.Path,
		Format:   h.Prologue.Format.String(),
		Version:  h.Prologue.VersionPtr(),
	}
	if f := h.Fields; f != nil {
		r.NVocab = ptr(f.NVocab)
		r.NEmbd = ptr(f.NEmbd)
		r.NMult = ptr(f.NMult)
		r.NHead = ptr(f.NHead)
		r.NLayer = ptr(f.NLayer)
		r.NRot = ptr(f.NRot)
		r.FileType = f.FileTypeName
	}
	return r
}

// HasFields reports whether the record carries the hyperparameter block.
func (r Record) HasFields() bool {
	return r.NVocab != nil
}

// Describe returns the format and version part of the compact line, e.g.
// "ggjt 3", "ggml (unversioned)" or "unknown".
func (r Record) Describe() string {
	switch {
	case r.Version != nil:
		return r.Format + " " + strconv.FormatInt(int64(*r.Version), 10)
	case r.Format == ggml.FormatGGML.String():
		return r.Format + " (unversioned)"
	default:
		return r.Format
	}
}

// Compact renders "<path>: <format> <version>" with the hyperparameters
// appended as key=value pairs when present.
func (r Record) Compact() string {
	var sb strings.Builder
	sb.WriteString(r.Filename)
	sb.WriteString(": ")
	sb.WriteString(r.Describe())
	if r.HasFields() {
		for _, kv := range r.fieldPairs() {
			fmt.Fprintf(&sb, " %s=%s", kv[0], kv[1])
		}
	}
	return sb.String()
}

func (r Record) fieldPairs() [][2]string {
	i := func(p *int32) string {
		if p == nil {
			return "-"
		}
		return strconv.FormatInt(int64(*p), 10)
	}
	return [][2]string{
		{"n_vocab", i(r.NVocab)},
		{"n_embd", i(r.NEmbd)},
		{"n_mult", i(r.NMult)},
		{"n_head", i(r.NHead)},
		{"n_layer", i(r.NLayer)},
		{"n_rot", i(r.NRot)},
		{"ftype", r.FileType},
	}
}
