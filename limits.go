package asf

// Limits bounds the resources a decode may consume. Zero byte limits take
// the defaults from defaultLimits; zero count limits are unbounded.
type Limits struct {
	MaxInputLen        uint64 // bytes read from the source, archived or not
	MaxDecompressedLen uint64 // bytes produced when unwrapping an archived capture
	MaxChildObjects    uint32 // header child count, 0 for no limit
	MaxStreams         int    // stream properties objects per container, 0 for no limit
}

func defaultLimits() Limits {
	return Limits{
		MaxInputLen:        4 << 30, // 4 GiB
		MaxDecompressedLen: 4 << 30,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxInputLen == 0 {
		l.MaxInputLen = d.MaxInputLen
	}
	if l.MaxDecompressedLen == 0 {
		l.MaxDecompressedLen = d.MaxDecompressedLen
	}
	return l
}
