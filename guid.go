package asf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GUID is a 16-byte ASF identifier in its on-disk layout: the first three
// fields are little-endian, the last eight bytes are stored as-is.
type GUID [16]byte

// Object type identifiers.
var (
	// 75B22630-668E-11CF-A6D9-00AA0062CE6C
	HeaderObjectID = GUID{0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11, 0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C}
	// 8CABDCA1-A947-11CF-8EE4-00C00C205365
	FilePropertiesObjectID = GUID{0xA1, 0xDC, 0xAB, 0x8C, 0x47, 0xA9, 0xCF, 0x11, 0x8E, 0xE4, 0x00, 0xC0, 0x0C, 0x20, 0x53, 0x65}
	// B7DC0791-A9B7-11CF-8EE6-00C00C205365
	StreamPropertiesObjectID = GUID{0x91, 0x07, 0xDC, 0xB7, 0xB7, 0xA9, 0xCF, 0x11, 0x8E, 0xE6, 0x00, 0xC0, 0x0C, 0x20, 0x53, 0x65}
	// 7BF875CE-468D-11D1-8D82-006097C9A2B2
	StreamBitratePropertiesObjectID = GUID{0xCE, 0x75, 0xF8, 0x7B, 0x8D, 0x46, 0xD1, 0x11, 0x8D, 0x82, 0x00, 0x60, 0x97, 0xC9, 0xA2, 0xB2}
	// 75B22636-668E-11CF-A6D9-00AA0062CE6C
	DataObjectID = GUID{0x36, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11, 0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C}
)

// Stream type and error correction identifiers found in stream properties.
var (
	// F8699E40-5B4D-11CF-A8FD-00805F5C442B
	StreamTypeAudioID = GUID{0x40, 0x9E, 0x69, 0xF8, 0x4D, 0x5B, 0xCF, 0x11, 0xA8, 0xFD, 0x00, 0x80, 0x5F, 0x5C, 0x44, 0x2B}
	// BC19EFC0-5B4D-11CF-A8FD-00805F5C442B
	StreamTypeVideoID = GUID{0xC0, 0xEF, 0x19, 0xBC, 0x4D, 0x5B, 0xCF, 0x11, 0xA8, 0xFD, 0x00, 0x80, 0x5F, 0x5C, 0x44, 0x2B}
	// 20FB5700-5B55-11CF-A8FD-00805F5C442B
	ErrorCorrectionNoneID = GUID{0x00, 0x57, 0xFB, 0x20, 0x55, 0x5B, 0xCF, 0x11, 0xA8, 0xFD, 0x00, 0x80, 0x5F, 0x5C, 0x44, 0x2B}
	// BFC3CD50-618F-11CF-8BB2-00AA00B4E220
	ErrorCorrectionAudioSpreadID = GUID{0x50, 0xCD, 0xC3, 0xBF, 0x8F, 0x61, 0xCF, 0x11, 0x8B, 0xB2, 0x00, 0xAA, 0x00, 0xB4, 0xE2, 0x20}
)

// ObjectKind is the decoded kind of an object, resolved from its GUID.
type ObjectKind uint8

const (
	KindUnknown ObjectKind = iota
	KindHeader
	KindFileProperties
	KindStreamProperties
	KindStreamBitrateProperties
	KindData
)

var kindNames = [...]string{
	KindUnknown:                 "unknown",
	KindHeader:                  "header",
	KindFileProperties:          "file properties",
	KindStreamProperties:        "stream properties",
	KindStreamBitrateProperties: "stream bitrate properties",
	KindData:                    "data",
}

func (k ObjectKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// LookupKind maps an object id to its kind. Ids that are not registered
// return KindUnknown; they are skipped by the decoder, not rejected.
func LookupKind(id GUID) ObjectKind {
	switch id {
	case HeaderObjectID:
		return KindHeader
	case FilePropertiesObjectID:
		return KindFileProperties
	case StreamPropertiesObjectID:
		return KindStreamProperties
	case StreamBitratePropertiesObjectID:
		return KindStreamBitrateProperties
	case DataObjectID:
		return KindData
	}
	return KindUnknown
}

// uuid returns g in RFC 4122 byte order.
func (g GUID) uuid() uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = g[3], g[2], g[1], g[0]
	u[4], u[5] = g[5], g[4]
	u[6], u[7] = g[7], g[6]
	copy(u[8:], g[8:])
	return u
}

// String formats g the way ASF documentation writes identifiers,
// e.g. 75B22630-668E-11CF-A6D9-00AA0062CE6C.
func (g GUID) String() string {
	return strings.ToUpper(g.uuid().String())
}

func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GUID) UnmarshalText(b []byte) error {
	parsed, err := ParseGUID(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGUID parses the textual form produced by [GUID.String]. Any form
// accepted by uuid.Parse is accepted; case is ignored.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("asf: parse guid %q: %w", s, err)
	}
	var g GUID
	g[0], g[1], g[2], g[3] = u[3], u[2], u[1], u[0]
	g[4], g[5] = u[5], u[4]
	g[6], g[7] = u[7], u[6]
	copy(g[8:], u[8:])
	return g, nil
}
