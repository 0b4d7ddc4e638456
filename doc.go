// Package asf decodes the header of Advanced Systems Format (ASF) files,
// the container used by .asf, .wma and .wmv media.
//
// # Object Stream Overview
//
// An ASF file is a sequence of self-describing objects. Each object starts
// with:
//   - a 16-byte GUID naming the object type
//   - an 8-byte little-endian size covering the whole object, including
//     these 24 bytes
//
// The file begins with a header object whose fixed fields announce how many
// child objects follow it. This package decodes the children it knows:
//   - file properties
//   - stream properties (one per elementary stream, in declaration order)
//   - stream bitrate properties
//   - data
//
// Children with any other GUID are skipped by their declared size, so
// vendor and future object types never fail a parse. Codec payloads such as
// type-specific data and data packets are returned as opaque bytes.
//
// # Basic Usage
//
// To parse an in-memory file:
//
//	b, _ := os.ReadFile("input.wmv")
//	c, rest, err := asf.Parse(b)
//	if err != nil {
//		var oe *asf.ObjectError
//		if errors.As(err, &oe) {
//			log.Printf("child %d at offset %d", oe.Index, oe.Offset)
//		}
//		return err
//	}
//	for _, s := range c.StreamProperties {
//		fmt.Println(s.StreamNumber(), s.IsAudio(), s.IsVideo())
//	}
//	_ = rest // bytes after the last header child
//
// To read from a file, transparently unwrapping zstd, LZ4, gzip or ZIP
// archived captures:
//
//	f, _ := os.Open("capture.asf.zst")
//	defer f.Close()
//	c, _, err := asf.Decode(f)
//
// # Errors
//
// Truncated input fails with [ErrInsufficientData]; a declared size that
// contradicts an object's layout fails with [ErrMalformedObject]. Both are
// wrapped in an [*ObjectError] naming the child index and byte offset. A
// failed parse never returns a partial Container.
//
// Parsing keeps no shared state, so independent buffers may be parsed
// concurrently.
package asf
