package asf

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the archive format wrapping a stored capture.
type Compression uint16

const (
	CompNone Compression = iota
	CompZIP
	CompZSTD
	CompLZ4
	CompBR
	CompGzip
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	gzipMagic = []byte{0x1F, 0x8B}
	zipMagic  = []byte{'P', 'K', 0x03, 0x04}
)

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	zipCreate     = func(zw *zip.Writer, name string) (io.Writer, error) { return zw.Create(name) }
	zipClose      = func(zw *zip.Writer) error { return zw.Close() }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	gzipClose     = func(w *gzip.Writer) error { return w.Close() }
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "brotli"
	case CompGzip:
		return "gzip"
	}
	return "unknown"
}

// DetectCompression reports the archive format of b from its leading bytes.
// Raw ASF and anything unrecognized report CompNone.
func DetectCompression(b []byte) Compression {
	switch {
	case bytes.HasPrefix(b, zstdMagic):
		return CompZSTD
	case bytes.HasPrefix(b, lz4Magic):
		return CompLZ4
	case bytes.HasPrefix(b, gzipMagic):
		return CompGzip
	case bytes.HasPrefix(b, zipMagic):
		return CompZIP
	}
	return CompNone
}

// CompressCapture writes data to w wrapped in the comp archive format.
// ZIP archives hold a single entry named capture.asf.
func CompressCapture(w io.Writer, comp Compression, data []byte) error {
	switch comp {
	case CompNone:
		_, err := w.Write(data)
		return err
	case CompZIP:
		return zipCompressNamed(w, "capture.asf", data)
	case CompZSTD:
		enc, err := newZstdWriter()
		if err != nil {
			return err
		}
		defer enc.Close()
		_, err = w.Write(enc.EncodeAll(data, nil))
		return err
	case CompLZ4:
		return lz4CompressTo(w, data)
	case CompBR:
		return brotliCompressTo(w, data)
	case CompGzip:
		return gzipCompressTo(w, data)
	}
	return fmt.Errorf("asf: unknown compression %d", comp)
}

// decompressCapture unwraps in according to comp. Output longer than max is
// rejected with ErrLimitExceeded.
func decompressCapture(comp Compression, in []byte, max uint64) ([]byte, error) {
	switch comp {
	case CompNone:
		return in, nil
	case CompZIP:
		return zipDecompress(in, max)
	case CompZSTD:
		return zstdDecompress(in, max)
	case CompLZ4:
		return limitedRead("lz4", lz4.NewReader(bytes.NewReader(in)), max)
	case CompBR:
		return limitedRead("brotli", brotli.NewReader(bytes.NewReader(in)), max)
	case CompGzip:
		zr, err := gzip.NewReader(bytes.NewReader(in))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return limitedRead("gzip", zr, max)
	}
	return nil, fmt.Errorf("asf: unknown compression %d", comp)
}

// limitedRead reads r to the end, failing once more than max bytes appear.
func limitedRead(name string, r io.Reader, max uint64) ([]byte, error) {
	b, err := readAll(io.LimitReader(r, int64(min(max, 1<<62))+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > max {
		return nil, fmt.Errorf("%w: %s expanded beyond %d bytes", ErrLimitExceeded, name, max)
	}
	return b, nil
}

// zipCompressNamed creates a ZIP archive with a single entry.
func zipCompressNamed(w io.Writer, name string, in []byte) error {
	zw := zip.NewWriter(w)
	entry, err := zipCreate(zw, name)
	if err != nil {
		_ = zipClose(zw)
		return err
	}
	if _, err := entry.Write(in); err != nil {
		_ = zipClose(zw)
		return err
	}
	return zipClose(zw)
}

// zipDecompress extracts the only file of a ZIP archive.
func zipDecompress(zipBytes []byte, max uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("asf: zip capture must contain exactly one entry, found %d", len(zr.File))
	}
	zf := zr.File[0]
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("asf: zip entry %q is a directory", zf.Name)
	}
	if zf.UncompressedSize64 > max {
		return nil, fmt.Errorf("%w: zip entry %q is %d bytes", ErrLimitExceeded, zf.Name, zf.UncompressedSize64)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return limitedRead("zip", rc, max)
}

// zstdDecompress streams a Zstandard frame, stopping once max is exceeded.
func zstdDecompress(in []byte, max uint64) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	if err := dec.Reset(bytes.NewReader(in)); err != nil {
		return nil, err
	}
	return limitedRead("zstd", dec, max)
}

// lz4CompressTo writes LZ4-compressed data to w.
func lz4CompressTo(w io.Writer, in []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return err
	}
	return lz4Close(zw)
}

// brotliCompressTo writes Brotli-compressed data to w.
func brotliCompressTo(w io.Writer, in []byte) error {
	bw := brotli.NewWriter(w)
	if _, err := bw.Write(in); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}

func gzipCompressTo(w io.Writer, in []byte) error {
	gw := gzip.NewWriter(w)
	if _, err := gw.Write(in); err != nil {
		_ = gzipClose(gw)
		return err
	}
	return gzipClose(gw)
}
