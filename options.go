package asf

import "log"

type readConfig struct {
	limits           Limits
	strictDuplicates bool
	compression      Compression
	forceCompression bool
	logger           *log.Logger
}

type ReadOption func(*readConfig)

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithStrictDuplicates rejects a second file properties, stream bitrate
// properties or data object with ErrMalformedObject. By default the last
// one seen wins.
func WithStrictDuplicates(v bool) ReadOption {
	return func(c *readConfig) { c.strictDuplicates = v }
}

// WithInputCompression makes Decode unwrap the input with comp instead of
// detecting the archive format from its leading bytes. Brotli streams have
// no magic number and are only recognized this way.
func WithInputCompression(comp Compression) ReadOption {
	return func(c *readConfig) {
		c.compression = comp
		c.forceCompression = true
	}
}

// WithLogger traces skipped objects to l.
func WithLogger(l *log.Logger) ReadOption {
	return func(c *readConfig) { c.logger = l }
}

func (c *readConfig) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
