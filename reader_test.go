package asf

import (
	"errors"
	"testing"
)

func TestFieldReader_LittleEndianReads(t *testing.T) {
	r := newFieldReader([]byte{
		0x01,
		0x02, 0x01,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0xAA, 0xBB,
	})
	if v, err := r.u8("a"); err != nil || v != 0x01 {
		t.Fatalf("u8 = %#x, %v", v, err)
	}
	if v, err := r.u16("b"); err != nil || v != 0x0102 {
		t.Fatalf("u16 = %#x, %v", v, err)
	}
	if v, err := r.u32("c"); err != nil || v != 0x01020304 {
		t.Fatalf("u32 = %#x, %v", v, err)
	}
	if v, err := r.u64("d"); err != nil || v != 0x0102030405060708 {
		t.Fatalf("u64 = %#x, %v", v, err)
	}
	if r.remaining() != 2 || r.pos() != 15 {
		t.Fatalf("remaining %d pos %d", r.remaining(), r.pos())
	}
	if _, err := r.u32("e"); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if r.remaining() != 2 {
		t.Fatal("failed read must not advance")
	}
}

func TestFieldReader_BytesAreCopies(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	r := newFieldReader(buf)
	b, err := r.bytes("x", 3)
	if err != nil {
		t.Fatal(err)
	}
	buf[0] = 9
	if b[0] != 1 || len(b) != 3 || cap(b) != 3 {
		t.Fatalf("bytes = %v cap %d", b, cap(b))
	}
	if _, err := r.bytes("y", 2); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if err := r.skip("z", 1); err != nil || r.remaining() != 0 {
		t.Fatalf("skip: %v remaining %d", err, r.remaining())
	}
}

func TestFieldReader_SubIsBounded(t *testing.T) {
	r := newFieldReader([]byte{0, 0, 1, 2, 3, 4, 5})
	_ = r.skip("pad", 2)
	sub, err := r.sub("body", 3)
	if err != nil {
		t.Fatal(err)
	}
	if sub.pos() != 2 || sub.remaining() != 3 {
		t.Fatalf("sub pos %d remaining %d", sub.pos(), sub.remaining())
	}
	if _, err := sub.u32("wide"); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if r.remaining() != 2 {
		t.Fatalf("parent remaining %d", r.remaining())
	}
	if _, err := r.sub("huge", 1<<63); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}
