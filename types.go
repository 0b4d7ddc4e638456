package asf

import (
	"math"
	"time"
)

const (
	// objectPrefixSize is the type id plus the size field that every
	// declared object size includes.
	objectPrefixSize = 24

	headerObjectSize = 30

	filePropertiesPayloadSize   = 80
	streamPropertiesPrefixSize  = 54
	bitrateRecordSize           = 6
	streamBitratePrefixSize     = 2
	dataObjectFixedSize         = 44
	dataObjectPayloadPrefixSize = dataObjectFixedSize - objectPrefixSize
)

const (
	streamNumberMask    uint16 = 0x007F
	streamEncryptedFlag uint16 = 0x8000

	fileFlagBroadcast uint32 = 0x1
	fileFlagSeekable  uint32 = 0x2
)

// HeaderObject is the root object that announces the child count.
type HeaderObject struct {
	ObjectID         GUID
	ObjectSize       uint64
	NumHeaderObjects uint32
	Reserved1        uint8
	Reserved2        uint8
}

type FilePropertiesObject struct {
	ObjectID          GUID
	ObjectSize        uint64
	FileID            GUID
	FileSize          uint64
	CreationDate      uint64 // 100 ns ticks since 1601-01-01 UTC
	DataPacketsCount  uint64
	PlayDuration      uint64 // 100 ns ticks
	SendDuration      uint64 // 100 ns ticks
	Preroll           uint64 // milliseconds
	Flags             uint32
	MinDataPacketSize uint32
	MaxDataPacketSize uint32
	MaxBitrate        uint32
}

// fileTimeToUnix is the number of seconds from 1601-01-01 to 1970-01-01.
const fileTimeToUnix = 11644473600

func (f *FilePropertiesObject) Broadcast() bool { return f.Flags&fileFlagBroadcast != 0 }
func (f *FilePropertiesObject) Seekable() bool  { return f.Flags&fileFlagSeekable != 0 }

// CreationTime converts CreationDate to wall-clock time.
func (f *FilePropertiesObject) CreationTime() time.Time {
	const ticksPerSecond = 10_000_000
	sec := int64(f.CreationDate / ticksPerSecond)
	rem := int64(f.CreationDate % ticksPerSecond)
	return time.Unix(sec-fileTimeToUnix, rem*100).UTC()
}

func (f *FilePropertiesObject) PlayDurationTime() time.Duration { return ticks(f.PlayDuration) }
func (f *FilePropertiesObject) SendDurationTime() time.Duration { return ticks(f.SendDuration) }
func (f *FilePropertiesObject) PrerollDuration() time.Duration {
	return scaleDuration(f.Preroll, time.Millisecond)
}

func ticks(v uint64) time.Duration { return scaleDuration(v, 100) }

// scaleDuration returns v units, saturating at the largest Duration.
func scaleDuration(v uint64, unit time.Duration) time.Duration {
	if v > uint64(math.MaxInt64/unit) {
		return math.MaxInt64
	}
	return time.Duration(v) * unit
}

// StreamPropertiesObject describes one elementary stream. StreamType is
// kept verbatim even when it is neither audio nor video.
type StreamPropertiesObject struct {
	ObjectID                  GUID
	ObjectSize                uint64
	StreamType                GUID
	ErrorCorrectionType       GUID
	TimeOffset                uint64
	TypeSpecificDataLength    uint32
	ErrorCorrectionDataLength uint32
	Flags                     uint16
	Reserved                  uint32
	TypeSpecificData          []byte
	ErrorCorrectionData       []byte
}

// StreamNumber is the low 7 bits of Flags.
func (s *StreamPropertiesObject) StreamNumber() uint8 { return uint8(s.Flags & streamNumberMask) }
func (s *StreamPropertiesObject) Encrypted() bool     { return s.Flags&streamEncryptedFlag != 0 }
func (s *StreamPropertiesObject) IsAudio() bool       { return s.StreamType == StreamTypeAudioID }
func (s *StreamPropertiesObject) IsVideo() bool       { return s.StreamType == StreamTypeVideoID }

type BitrateRecord struct {
	Flags          uint16
	AverageBitrate uint32
}

func (b BitrateRecord) StreamNumber() uint8 { return uint8(b.Flags & streamNumberMask) }

type StreamBitratePropertiesObject struct {
	ObjectID            GUID
	ObjectSize          uint64
	BitrateRecordsCount uint16
	BitrateRecords      []BitrateRecord
}

// DataObject holds the packet area as raw bytes; packets are not parsed.
type DataObject struct {
	ObjectID         GUID
	ObjectSize       uint64
	FileID           GUID
	TotalDataPackets uint16
	Reserved         uint16
	DataPackets      []byte
}

// SkippedObject records an unrecognized child object that was discarded.
type SkippedObject struct {
	Index int
	ID    GUID
	Size  uint64
}

// Container is the decoded form of an ASF byte sequence.
//
// StreamProperties keeps the order in which streams were declared.
// Optional singletons are nil when absent. All byte slices are owned
// copies and do not alias the input.
type Container struct {
	Header                  HeaderObject
	FileProperties          *FilePropertiesObject
	StreamProperties        []StreamPropertiesObject
	StreamBitrateProperties *StreamBitratePropertiesObject
	Data                    *DataObject
	Skipped                 []SkippedObject
}

// StreamByNumber returns the first stream declared with stream number n.
func (c *Container) StreamByNumber(n uint8) (*StreamPropertiesObject, bool) {
	for i := range c.StreamProperties {
		if c.StreamProperties[i].StreamNumber() == n {
			return &c.StreamProperties[i], true
		}
	}
	return nil, false
}
