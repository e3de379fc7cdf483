package ggml

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyMagicShortInput(t *testing.T) {
	t.Parallel()
	inputs := [][]byte{nil, {}, {'l'}, {'l', 'm'}, {'t', 'j', 'g'}}
	for _, in := range inputs {
		p, err := ClassifyMagic(NewBytesSource(in))
		if err != nil {
			t.Fatalf("ClassifyMagic(%q): unexpected error %v", in, err)
		}
		if p.Format != FormatUnknown || p.HasVersion {
			t.Fatalf("ClassifyMagic(%q): got %+v, want unknown without version", in, p)
		}
	}
}

func TestClassifyMagicUnversioned(t *testing.T) {
	t.Parallel()
	tails := [][]byte{nil, {0x01}, {0xff, 0xff, 0xff, 0xff, 0x00}}
	for _, tail := range tails {
		in := append([]byte{0x6c, 0x6d, 0x67, 0x67}, tail...)
		src := NewBytesSource(in)
		p, err := ClassifyMagic(src)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Format != FormatGGML || p.HasVersion || p.VersionPtr() != nil {
			t.Fatalf("got %+v, want ggml without version", p)
		}
		if src.off != 4 {
			t.Fatalf("unversioned classification consumed %d bytes, want 4", src.off)
		}
	}
}

func TestClassifyMagicVersioned(t *testing.T) {
	t.Parallel()
	versions := []int32{0, 1, 3, -1, math.MaxInt32, math.MinInt32}
	for _, f := range []Format{FormatGGMF, FormatGGJT, FormatGGLA} {
		for _, v := range versions {
			p, err := ClassifyMagic(NewBytesSource(encodeHeader(t, f, v, nil)))
			if err != nil {
				t.Fatalf("%v v%d: unexpected error %v", f, v, err)
			}
			want := Prologue{Format: f, Version: v, HasVersion: true}
			if p != want {
				t.Fatalf("%v v%d: got %+v, want %+v", f, v, p, want)
			}
		}
	}
}

func TestClassifyMagicUnrecognized(t *testing.T) {
	t.Parallel()
	inputs := [][]byte{
		[]byte("GGUF\x03\x00\x00\x00"),
		[]byte("ggml\x01\x00\x00\x00"), // byte-swapped spelling is not accepted
		{0, 0, 0, 0},
	}
	for _, in := range inputs {
		p, err := ClassifyMagic(NewBytesSource(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != unknown {
			t.Fatalf("ClassifyMagic(%q): got %+v, want unknown", in, p)
		}
	}
}

func TestClassifyMagicExamples(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   []byte
		want Prologue
	}{
		{"ggml bare magic", []byte{0x6c, 0x6d, 0x67, 0x67}, Prologue{Format: FormatGGML}},
		{"ggjt v3", []byte{'t', 'j', 'g', 'g', 0x03, 0x00, 0x00, 0x00}, Prologue{Format: FormatGGJT, Version: 3, HasVersion: true}},
		{"ggmf zero version", []byte{'f', 'm', 'g', 'g', 0, 0, 0, 0}, Prologue{Format: FormatGGMF, Version: 0, HasVersion: true}},
		{"ggjt truncated version", []byte{'t', 'j', 'g', 'g', 0x03, 0x00}, unknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyMagic(NewBytesSource(tc.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

type failingSource struct{ err error }

func (s failingSource) ReadN(int) ([]byte, error) { return nil, s.err }

func TestClassifyMagicIOError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	_, err := ClassifyMagic(failingSource{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped I/O error, got %v", err)
	}
}

func TestReadHeaderFieldsRoundTrip(t *testing.T) {
	t.Parallel()
	want := HeaderFields{
		NVocab:       32000,
		NEmbd:        4096,
		NMult:        256,
		NHead:        32,
		NLayer:       32,
		NRot:         128,
		FileType:     2,
		FileTypeName: "MOSTLY_Q4_0",
	}
	for _, f := range []Format{FormatGGML, FormatGGMF, FormatGGJT} {
		src := NewBytesSource(encodeHeader(t, f, 1, &want))
		p, err := ClassifyMagic(src)
		if err != nil {
			t.Fatalf("%v: classify: %v", f, err)
		}
		if p.Format != f {
			t.Fatalf("classified %v as %v", f, p.Format)
		}
		got, err := ReadHeaderFields(src)
		if err != nil {
			t.Fatalf("%v: read fields: %v", f, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%v: fields mismatch (-want +got):\n%s", f, diff)
		}
	}
}

func TestReadHeaderFieldsFileTypeBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		idx     int32
		wantErr error
		name    string
	}{
		{0, nil, "ALL_F32"},
		{int32(NumFileTypes - 1), nil, "MOSTLY_Q6_K"},
		{int32(NumFileTypes), ErrOutOfRange, ""},
		{-1, ErrOutOfRange, ""},
	}
	for _, tc := range tests {
		fields := &HeaderFields{FileType: FileType(tc.idx)}
		src := NewBytesSource(encodeHeader(t, FormatGGJT, 3, fields))
		if _, err := ClassifyMagic(src); err != nil {
			t.Fatalf("classify: %v", err)
		}
		got, err := ReadHeaderFields(src)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("idx %d: expected %v, got %v", tc.idx, tc.wantErr, err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != "ftype" {
				t.Fatalf("idx %d: expected ftype FieldError, got %v", tc.idx, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("idx %d: unexpected error %v", tc.idx, err)
		}
		if got.FileTypeName != tc.name {
			t.Fatalf("idx %d: got %q, want %q", tc.idx, got.FileTypeName, tc.name)
		}
	}
}

func TestReadHeaderFieldsTruncated(t *testing.T) {
	t.Parallel()
	full := encodeHeader(t, FormatGGML, 0, &HeaderFields{NVocab: 1, NEmbd: 2, NMult: 3, NHead: 4, NLayer: 5, NRot: 6})
	names := []string{"n_vocab", "n_embd", "n_mult", "n_head", "n_layer", "n_rot", "ftype"}
	for i, name := range names {
		// cut two bytes into field i
		cut := full[:4+i*4+2]
		src := NewBytesSource(cut)
		if _, err := ClassifyMagic(src); err != nil {
			t.Fatalf("classify: %v", err)
		}
		_, err := ReadHeaderFields(src)
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("cut in %s: expected ErrTruncated, got %v", name, err)
		}
		var fe *FieldError
		if !errors.As(err, &fe) || fe.Field != name {
			t.Fatalf("cut in %s: expected FieldError naming %s, got %v", name, name, err)
		}
	}
}

func TestReaderTruncation(t *testing.T) {
	t.Parallel()
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}))
	if _, err := r.ReadN(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Offset() != 2 {
		t.Fatalf("offset: got %d, want 2", r.Offset())
	}
	_, err := r.ReadN(4)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if errors.Is(err, io.EOF) {
		t.Fatalf("truncation should not leak io.EOF: %v", err)
	}
}

func TestDecodeSkipsFieldsForAdapters(t *testing.T) {
	t.Parallel()
	in := encodeHeader(t, FormatGGLA, 1, nil)
	h, err := Decode(NewBytesSource(in), "adapter.bin", Options{Extended: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Fields != nil {
		t.Fatalf("expected no hyperparameters for ggla, got %+v", h.Fields)
	}
	if h.Prologue.Format != FormatGGLA || h.Prologue.Version != 1 {
		t.Fatalf("unexpected prologue %+v", h.Prologue)
	}
}
