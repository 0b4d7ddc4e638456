package asf

import (
	"encoding/binary"
	"fmt"
)

// fieldReader is a bounds-checked little-endian cursor over an immutable
// buffer. base is the absolute offset of buf[0] in the input, used only for
// error messages.
type fieldReader struct {
	buf  []byte
	off  int
	base int
}

func newFieldReader(b []byte) *fieldReader {
	return &fieldReader{buf: b}
}

func (r *fieldReader) remaining() int { return len(r.buf) - r.off }

// pos returns the absolute input offset of the cursor.
func (r *fieldReader) pos() int { return r.base + r.off }

// take returns the next n bytes without copying and advances past them.
func (r *fieldReader) take(field string, n uint64) ([]byte, error) {
	if n > uint64(r.remaining()) {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, %d remain", ErrInsufficientData, field, n, r.pos(), r.remaining())
	}
	b := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return b, nil
}

func (r *fieldReader) u8(field string) (uint8, error) {
	b, err := r.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *fieldReader) u16(field string) (uint16, error) {
	b, err := r.take(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *fieldReader) u32(field string) (uint32, error) {
	b, err := r.take(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *fieldReader) u64(field string) (uint64, error) {
	b, err := r.take(field, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *fieldReader) guid(field string) (GUID, error) {
	var g GUID
	b, err := r.take(field, 16)
	if err != nil {
		return g, err
	}
	copy(g[:], b)
	return g, nil
}

// bytes returns an owned copy of the next n bytes.
func (r *fieldReader) bytes(field string, n uint64) ([]byte, error) {
	b, err := r.take(field, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (r *fieldReader) skip(field string, n uint64) error {
	_, err := r.take(field, n)
	return err
}

// sub splits off the next n bytes as an independent reader bounded to them.
func (r *fieldReader) sub(field string, n uint64) (*fieldReader, error) {
	start := r.pos()
	b, err := r.take(field, n)
	if err != nil {
		return nil, err
	}
	return &fieldReader{buf: b, base: start}, nil
}
