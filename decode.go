package asf

import (
	"fmt"
	"io"
	"math"
)

// Parse decodes the ASF header object and its children from data.
//
// The root header object is read first; its child count then fixes how many
// objects follow. Each child is dispatched on its GUID:
//   - file properties, stream bitrate properties and data objects are stored
//     on the Container (the last one seen wins unless [WithStrictDuplicates])
//   - stream properties objects are appended in declaration order
//   - any other GUID is skipped by its declared size and recorded in
//     Container.Skipped
//
// On success Parse returns the Container and the bytes that follow the last
// child object. The rest slice aliases data; every slice inside the
// Container is an owned copy.
//
// The first failure aborts the parse and no Container is returned. Failures
// are *ObjectError values wrapping ErrInsufficientData when data ends before
// a field, ErrMalformedObject when a declared size contradicts the object
// layout, or ErrLimitExceeded.
func Parse(data []byte, opts ...ReadOption) (*Container, []byte, error) {
	cfg := newReadConfig(opts)
	return parse(data, &cfg)
}

// Decode reads all of r and parses it like [Parse]. Input wrapped in a
// zstd, LZ4, gzip or ZIP archive is unwrapped first; see
// [WithInputCompression] for brotli or to disable detection.
func Decode(r io.Reader, opts ...ReadOption) (*Container, []byte, error) {
	cfg := newReadConfig(opts)
	raw, err := readInput(r, cfg.limits.MaxInputLen)
	if err != nil {
		return nil, nil, err
	}
	comp := cfg.compression
	if !cfg.forceCompression {
		comp = DetectCompression(raw)
	}
	data, err := decompressCapture(comp, raw, cfg.limits.MaxDecompressedLen)
	if err != nil {
		return nil, nil, err
	}
	return parse(data, &cfg)
}

func readInput(r io.Reader, max uint64) ([]byte, error) {
	lim := int64(math.MaxInt64)
	if max < math.MaxInt64 {
		lim = int64(max) + 1
	}
	b, err := readAll(io.LimitReader(r, lim))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > max {
		return nil, fmt.Errorf("%w: input longer than %d bytes", ErrLimitExceeded, max)
	}
	return b, nil
}

func parse(data []byte, cfg *readConfig) (*Container, []byte, error) {
	r := newFieldReader(data)
	h, err := readHeaderObject(r)
	if err != nil {
		return nil, nil, &ObjectError{Index: -1, Kind: KindHeader, ID: HeaderObjectID, Err: err}
	}
	if max := cfg.limits.MaxChildObjects; max != 0 && h.NumHeaderObjects > max {
		return nil, nil, &ObjectError{Index: -1, Kind: KindHeader, ID: HeaderObjectID,
			Err: fmt.Errorf("%w: %d header objects", ErrLimitExceeded, h.NumHeaderObjects)}
	}

	c := &Container{Header: h}
	for i := 0; i < int(h.NumHeaderObjects); i++ {
		start := r.pos()
		id, err := r.guid("object id")
		if err != nil {
			return nil, nil, &ObjectError{Index: i, Offset: start, Err: err}
		}
		kind := LookupKind(id)
		if err := decodeChild(c, r, cfg, i, id, kind); err != nil {
			return nil, nil, &ObjectError{Index: i, Kind: kind, ID: id, Offset: start, Err: err}
		}
	}
	return c, r.buf[r.off:], nil
}

func decodeChild(c *Container, r *fieldReader, cfg *readConfig, index int, id GUID, kind ObjectKind) error {
	switch kind {
	case KindFileProperties:
		f, err := readFilePropertiesObject(r)
		if err != nil {
			return err
		}
		if c.FileProperties != nil && cfg.strictDuplicates {
			return duplicateErr(kind)
		}
		c.FileProperties = f
	case KindStreamProperties:
		s, err := readStreamPropertiesObject(r)
		if err != nil {
			return err
		}
		if max := cfg.limits.MaxStreams; max > 0 && len(c.StreamProperties) >= max {
			return fmt.Errorf("%w: more than %d streams", ErrLimitExceeded, cfg.limits.MaxStreams)
		}
		c.StreamProperties = append(c.StreamProperties, *s)
	case KindStreamBitrateProperties:
		s, err := readStreamBitratePropertiesObject(r)
		if err != nil {
			return err
		}
		if c.StreamBitrateProperties != nil && cfg.strictDuplicates {
			return duplicateErr(kind)
		}
		c.StreamBitrateProperties = s
	case KindData:
		d, err := readDataObject(r)
		if err != nil {
			return err
		}
		if c.Data != nil && cfg.strictDuplicates {
			return duplicateErr(kind)
		}
		c.Data = d
	default:
		size, err := skipObject(r)
		if err != nil {
			return err
		}
		cfg.logf("asf: skip object %s size=%d index=%d", id, size, index)
		c.Skipped = append(c.Skipped, SkippedObject{Index: index, ID: id, Size: size})
	}
	return nil
}

func duplicateErr(kind ObjectKind) error {
	return fmt.Errorf("%w: duplicate %s object", ErrMalformedObject, kind)
}
