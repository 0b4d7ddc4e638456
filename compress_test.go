package asf

import (
	"archive/zip"
	"bytes"
	"errors"
	"io/fs"
	"reflect"
	"runtime"
	"testing"
)

func TestDecode_AllCompressions(t *testing.T) {
	data, want := sampleFile()
	comps := []Compression{CompNone, CompZIP, CompZSTD, CompLZ4, CompGzip}
	for _, comp := range comps {
		t.Run("comp="+comp.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := CompressCapture(&buf, comp, data); err != nil {
				t.Fatalf("CompressCapture: %v", err)
			}
			if got := DetectCompression(buf.Bytes()); got != comp {
				t.Fatalf("DetectCompression = %s", got)
			}
			got, rest, err := Decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(rest) != 0 {
				t.Fatalf("rest %d", len(rest))
			}
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("container mismatch\nwant: %#v\ngot:  %#v", want, got)
			}
		})
	}
}

func TestDecode_BrotliNeedsExplicitOption(t *testing.T) {
	data, want := sampleFile()
	var buf bytes.Buffer
	if err := CompressCapture(&buf, CompBR, data); err != nil {
		t.Fatal(err)
	}
	got, _, err := Decode(bytes.NewReader(buf.Bytes()), WithInputCompression(CompBR))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatal("container mismatch")
	}
}

func TestDecode_ForcedNoneSkipsDetection(t *testing.T) {
	data, _ := sampleFile()
	var buf bytes.Buffer
	if err := CompressCapture(&buf, CompZSTD, data); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Decode(bytes.NewReader(buf.Bytes()), WithInputCompression(CompNone)); err == nil {
		t.Fatal("expected raw zstd bytes to fail as ASF")
	}
}

func TestDecode_InputLimit(t *testing.T) {
	data, _ := sampleFile()
	_, _, err := Decode(bytes.NewReader(data), WithReadLimits(Limits{MaxInputLen: uint64(len(data) - 1)}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if _, _, err := Decode(bytes.NewReader(data), WithReadLimits(Limits{MaxInputLen: uint64(len(data))})); err != nil {
		t.Fatal(err)
	}
}

func TestDecompressionExpansionGuards(t *testing.T) {
	in := bytes.Repeat([]byte("asf"), 100)
	for _, comp := range []Compression{CompZIP, CompZSTD, CompLZ4, CompBR, CompGzip} {
		var buf bytes.Buffer
		if err := CompressCapture(&buf, comp, in); err != nil {
			t.Fatal(err)
		}
		if _, err := decompressCapture(comp, buf.Bytes(), 10); !errors.Is(err, ErrLimitExceeded) {
			t.Fatalf("%s: expected ErrLimitExceeded, got %v", comp, err)
		}
		out, err := decompressCapture(comp, buf.Bytes(), uint64(len(in)))
		if err != nil || !bytes.Equal(out, in) {
			t.Fatalf("%s: round trip failed: %v", comp, err)
		}
	}
}

func TestZstdExpansionStopsAtLimit(t *testing.T) {
	const expanded = 64 << 20
	var buf bytes.Buffer
	if err := CompressCapture(&buf, CompZSTD, make([]byte, expanded)); err != nil {
		t.Fatal(err)
	}
	archive := buf.Bytes()

	runtime.GC()
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, _, err := Decode(bytes.NewReader(archive), WithReadLimits(Limits{MaxDecompressedLen: 1024}))
	runtime.ReadMemStats(&after)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if alloc := after.TotalAlloc - before.TotalAlloc; alloc >= expanded/2 {
		t.Fatalf("allocated %d bytes decoding a %d byte archive", alloc, len(archive))
	}
}

func TestDecompressionCorruptStreams(t *testing.T) {
	corrupt := map[Compression][]byte{
		CompZIP:  []byte("notzip"),
		CompZSTD: []byte("notzstd"),
		CompLZ4:  []byte("notlz4"),
		CompBR:   []byte("notbr"),
		CompGzip: []byte("notgzip"),
	}
	for comp, in := range corrupt {
		if _, err := decompressCapture(comp, in, 100); err == nil {
			t.Fatalf("%s: expected error", comp)
		}
	}
	if _, err := decompressCapture(Compression(99), nil, 100); err == nil {
		t.Fatal("expected error")
	}
}

func TestZIPDecompressErrors(t *testing.T) {
	// Multi-entry
	{
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		_, _ = zw.Create("capture.asf")
		_, _ = zw.Create("extra")
		_ = zw.Close()
		if _, err := zipDecompress(buf.Bytes(), 100); err == nil {
			t.Fatal("expected error")
		}
	}
	// Entry is a directory
	{
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		h := &zip.FileHeader{Name: "capture.asf"}
		h.SetMode(fs.ModeDir | 0o755)
		_, _ = zw.CreateHeader(h)
		_ = zw.Close()
		if _, err := zipDecompress(buf.Bytes(), 100); err == nil {
			t.Fatal("expected error")
		}
	}
	// Any entry name is accepted
	{
		var buf bytes.Buffer
		if err := zipCompressNamed(&buf, "movie.wmv", []byte("abc")); err != nil {
			t.Fatal(err)
		}
		out, err := zipDecompress(buf.Bytes(), 3)
		if err != nil || string(out) != "abc" {
			t.Fatalf("zip: %q %v", out, err)
		}
	}
}

func TestDetectCompression_RawASF(t *testing.T) {
	data, _ := sampleFile()
	if got := DetectCompression(data); got != CompNone {
		t.Fatalf("DetectCompression = %s", got)
	}
	if got := DetectCompression(nil); got != CompNone {
		t.Fatalf("DetectCompression(nil) = %s", got)
	}
}

func TestCompressionName(t *testing.T) {
	if Compression(99).String() != "unknown" {
		t.Fatal("expected unknown")
	}
	if CompBR.String() != "brotli" {
		t.Fatal(CompBR.String())
	}
}
