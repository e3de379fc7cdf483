package ggml

import (
	"encoding/binary"
	"testing"
)

// encodeHeader builds a header using the documented layout. It exists only to
// produce fixtures; the package never writes model files.
func encodeHeader(t *testing.T, f Format, version int32, fields *HeaderFields) []byte {
	t.Helper()
	magic, ok := f.Magic()
	if !ok {
		t.Fatalf("no magic for format %v", f)
	}
	b := append([]byte(nil), magic[:]...)
	if f.Versioned() {
		b = binary.LittleEndian.AppendUint32(b, uint32(version))
	}
	if fields != nil {
		for _, v := range []int32{
			fields.NVocab, fields.NEmbd, fields.NMult, fields.NHead,
			fields.NLayer, fields.NRot, int32(fields.FileType),
		} {
			b = binary.LittleEndian.AppendUint32(b, uint32(v))
		}
	}
	return b
}
