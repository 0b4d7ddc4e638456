package asf

import "fmt"

// Validate checks the relations between decoded objects that the decoder
// itself does not enforce:
//   - the header declares at least its own 30 bytes
//   - a file properties object is present and its minimum and maximum data
//     packet sizes agree
//   - stream numbers are in 1..127 and not reused
//   - the bitrate record count matches the records, and every record names a
//     declared stream
func Validate(c *Container) error {
	if c == nil {
		return fmt.Errorf("%w: container is nil", ErrValidation)
	}
	if c.Header.ObjectSize < headerObjectSize {
		return fmt.Errorf("%w: header object size %d", ErrValidation, c.Header.ObjectSize)
	}
	fp := c.FileProperties
	if fp == nil {
		return fmt.Errorf("%w: file properties object missing", ErrValidation)
	}
	if fp.MinDataPacketSize != fp.MaxDataPacketSize {
		return fmt.Errorf("%w: data packet size min %d != max %d", ErrValidation, fp.MinDataPacketSize, fp.MaxDataPacketSize)
	}

	seen := make(map[uint8]struct{}, len(c.StreamProperties))
	for i := range c.StreamProperties {
		n := c.StreamProperties[i].StreamNumber()
		if n == 0 {
			return fmt.Errorf("%w: stream %d has stream number 0", ErrValidation, i)
		}
		if _, ok := seen[n]; ok {
			return fmt.Errorf("%w: duplicate stream number %d", ErrValidation, n)
		}
		seen[n] = struct{}{}
	}

	if sb := c.StreamBitrateProperties; sb != nil {
		if int(sb.BitrateRecordsCount) != len(sb.BitrateRecords) {
			return fmt.Errorf("%w: bitrate records count %d, have %d", ErrValidation, sb.BitrateRecordsCount, len(sb.BitrateRecords))
		}
		for i, rec := range sb.BitrateRecords {
			if _, ok := seen[rec.StreamNumber()]; !ok {
				return fmt.Errorf("%w: bitrate record %d names undeclared stream %d", ErrValidation, i, rec.StreamNumber())
			}
		}
	}
	return nil
}
