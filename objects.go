package asf

import "fmt"

// readHeaderObject decodes the root object, including its type id.
func readHeaderObject(r *fieldReader) (HeaderObject, error) {
	var h HeaderObject
	var err error
	if h.ObjectID, err = r.guid("header object id"); err != nil {
		return h, err
	}
	if h.ObjectSize, err = r.u64("header object size"); err != nil {
		return h, err
	}
	if h.NumHeaderObjects, err = r.u32("number of header objects"); err != nil {
		return h, err
	}
	if h.Reserved1, err = r.u8("reserved 1"); err != nil {
		return h, err
	}
	if h.Reserved2, err = r.u8("reserved 2"); err != nil {
		return h, err
	}
	if h.ObjectID != HeaderObjectID {
		return h, fmt.Errorf("%w: root object id %s is not a header object", ErrMalformedObject, h.ObjectID)
	}
	return h, nil
}

// objectBody reads the declared size that follows an already consumed type
// id and splits off the declared payload. minPayload is the fixed part of
// the payload the kind requires.
func objectBody(r *fieldReader, minPayload uint64) (uint64, *fieldReader, error) {
	size, err := r.u64("object size")
	if err != nil {
		return 0, nil, err
	}
	if size < objectPrefixSize || size-objectPrefixSize < minPayload {
		return 0, nil, fmt.Errorf("%w: declared size %d is smaller than the %d byte fixed layout", ErrMalformedObject, size, objectPrefixSize+minPayload)
	}
	body, err := r.sub("object payload", size-objectPrefixSize)
	if err != nil {
		return 0, nil, err
	}
	return size, body, nil
}

// finishBody rejects payload bytes the layout did not account for.
func finishBody(body *fieldReader, size uint64) error {
	if n := body.remaining(); n != 0 {
		return fmt.Errorf("%w: declared size %d leaves %d undecoded bytes", ErrMalformedObject, size, n)
	}
	return nil
}

func readFilePropertiesObject(r *fieldReader) (*FilePropertiesObject, error) {
	size, body, err := objectBody(r, filePropertiesPayloadSize)
	if err != nil {
		return nil, err
	}
	f := &FilePropertiesObject{ObjectID: FilePropertiesObjectID, ObjectSize: size}
	if f.FileID, err = body.guid("file id"); err != nil {
		return nil, err
	}
	for _, fld := range []struct {
		name string
		dst  *uint64
	}{
		{"file size", &f.FileSize},
		{"creation date", &f.CreationDate},
		{"data packets count", &f.DataPacketsCount},
		{"play duration", &f.PlayDuration},
		{"send duration", &f.SendDuration},
		{"preroll", &f.Preroll},
	} {
		if *fld.dst, err = body.u64(fld.name); err != nil {
			return nil, err
		}
	}
	for _, fld := range []struct {
		name string
		dst  *uint32
	}{
		{"flags", &f.Flags},
		{"minimum data packet size", &f.MinDataPacketSize},
		{"maximum data packet size", &f.MaxDataPacketSize},
		{"maximum bitrate", &f.MaxBitrate},
	} {
		if *fld.dst, err = body.u32(fld.name); err != nil {
			return nil, err
		}
	}
	if err := finishBody(body, size); err != nil {
		return nil, err
	}
	return f, nil
}

func readStreamPropertiesObject(r *fieldReader) (*StreamPropertiesObject, error) {
	size, body, err := objectBody(r, streamPropertiesPrefixSize)
	if err != nil {
		return nil, err
	}
	s := &StreamPropertiesObject{ObjectID: StreamPropertiesObjectID, ObjectSize: size}
	if s.StreamType, err = body.guid("stream type"); err != nil {
		return nil, err
	}
	if s.ErrorCorrectionType, err = body.guid("error correction type"); err != nil {
		return nil, err
	}
	if s.TimeOffset, err = body.u64("time offset"); err != nil {
		return nil, err
	}
	if s.TypeSpecificDataLength, err = body.u32("type-specific data length"); err != nil {
		return nil, err
	}
	if s.ErrorCorrectionDataLength, err = body.u32("error correction data length"); err != nil {
		return nil, err
	}
	if s.Flags, err = body.u16("flags"); err != nil {
		return nil, err
	}
	if s.Reserved, err = body.u32("reserved"); err != nil {
		return nil, err
	}
	if s.TypeSpecificData, err = body.bytes("type-specific data", uint64(s.TypeSpecificDataLength)); err != nil {
		return nil, err
	}
	if s.ErrorCorrectionData, err = body.bytes("error correction data", uint64(s.ErrorCorrectionDataLength)); err != nil {
		return nil, err
	}
	if err := finishBody(body, size); err != nil {
		return nil, err
	}
	return s, nil
}

func readBitrateRecord(r *fieldReader) (BitrateRecord, error) {
	var b BitrateRecord
	var err error
	if b.Flags, err = r.u16("bitrate record flags"); err != nil {
		return b, err
	}
	if b.AverageBitrate, err = r.u32("average bitrate"); err != nil {
		return b, err
	}
	return b, nil
}

func readStreamBitratePropertiesObject(r *fieldReader) (*StreamBitratePropertiesObject, error) {
	size, body, err := objectBody(r, streamBitratePrefixSize)
	if err != nil {
		return nil, err
	}
	s := &StreamBitratePropertiesObject{ObjectID: StreamBitratePropertiesObjectID, ObjectSize: size}
	if s.BitrateRecordsCount, err = body.u16("bitrate records count"); err != nil {
		return nil, err
	}
	// The count is producer controlled; size the slice by what can fit.
	capHint := min(int(s.BitrateRecordsCount), body.remaining()/bitrateRecordSize)
	s.BitrateRecords = make([]BitrateRecord, 0, capHint)
	for i := 0; i < int(s.BitrateRecordsCount); i++ {
		rec, err := readBitrateRecord(body)
		if err != nil {
			return nil, fmt.Errorf("bitrate record %d of %d: %w", i, s.BitrateRecordsCount, err)
		}
		s.BitrateRecords = append(s.BitrateRecords, rec)
	}
	if err := finishBody(body, size); err != nil {
		return nil, err
	}
	return s, nil
}

func readDataObject(r *fieldReader) (*DataObject, error) {
	size, body, err := objectBody(r, dataObjectPayloadPrefixSize)
	if err != nil {
		return nil, err
	}
	d := &DataObject{ObjectID: DataObjectID, ObjectSize: size}
	if d.FileID, err = body.guid("file id"); err != nil {
		return nil, err
	}
	if d.TotalDataPackets, err = body.u16("total data packets"); err != nil {
		return nil, err
	}
	if d.Reserved, err = body.u16("reserved"); err != nil {
		return nil, err
	}
	if d.DataPackets, err = body.bytes("data packets", size-dataObjectFixedSize); err != nil {
		return nil, err
	}
	if err := finishBody(body, size); err != nil {
		return nil, err
	}
	return d, nil
}

// skipObject discards an unrecognized object and returns its declared size.
func skipObject(r *fieldReader) (uint64, error) {
	size, err := r.u64("object size")
	if err != nil {
		return 0, err
	}
	if size < objectPrefixSize {
		return 0, fmt.Errorf("%w: declared size %d is smaller than the %d byte object prefix", ErrMalformedObject, size, objectPrefixSize)
	}
	if err := r.skip("object payload", size-objectPrefixSize); err != nil {
		return 0, err
	}
	return size, nil
}
