package ggml

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ByteSource is the only capability the decoder needs from its input.
// ReadN must return an error wrapping ErrTruncated when fewer than n bytes
// remain; any other error is treated as an I/O failure.
type ByteSource interface {
	ReadN(n int) ([]byte, error)
}

// Reader adapts an io.Reader to ByteSource and tracks the current offset.
type Reader struct {
	r   *bufio.Reader
	off int64
}

func NewReader(rd io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(rd)}
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.off
}

func (r *Reader) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d", n)
	}
	buf := make([]byte, n)
	got, err := io.ReadFull(r.r, buf)
	r.off += int64(got)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read %d bytes at offset %d, got %d: %w", n, r.off-int64(got), got, ErrTruncated)
		}
		return nil, err
	}
	return buf, nil
}

// BytesSource is a ByteSource over an in-memory buffer.
type BytesSource struct {
	b   []byte
	off int
}

func NewBytesSource(b []byte) *BytesSource {
	return &BytesSource{b: b}
}

func (s *BytesSource) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d", n)
	}
	if len(s.b)-s.off < n {
		got := len(s.b) - s.off
		s.off = len(s.b)
		return nil, fmt.Errorf("read %d bytes, %d available: %w", n, got, ErrTruncated)
	}
	out := s.b[s.off : s.off+n]
	s.off += n
	return out, nil
}

func readI32(src ByteSource) (int32, error) {
	b, err := src.ReadN(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}
