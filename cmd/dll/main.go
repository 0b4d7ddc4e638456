// Package main provides C-compatible exports for the asf library.
// Build with: go build -buildmode=c-shared -o asf.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} AsfResult;
*/
import "C"

import (
	"encoding/json"
	"fmt"
	"unsafe"

	asf "github.com/logicossoftware/go-asf"
)

func main() {}

// AsfFreeResult frees memory allocated by other Asf functions.
// Must be called to avoid memory leaks.
//
//export AsfFreeResult
func AsfFreeResult(result C.AsfResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// AsfFreeString frees a C string allocated by Go.
//
//export AsfFreeString
func AsfFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func makeResult(data []byte) C.AsfResult {
	var result C.AsfResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

func makeError(err error) C.AsfResult {
	var result C.AsfResult
	result.error = C.CString(err.Error())
	return result
}

func parse(data *C.char, dataLen C.int) (*asf.Container, error) {
	goData := C.GoBytes(unsafe.Pointer(data), dataLen)
	c, _, err := asf.Parse(goData)
	return c, err
}

// AsfDecode parses an ASF header and returns a JSON description of it.
// Parameters:
//   - data: pointer to the file bytes
//   - dataLen: length of the data
//
// Returns AsfResult with a JSON string or error. Call AsfFreeResult when done.
// Opaque payloads are reported by length only.
//
//export AsfDecode
func AsfDecode(data *C.char, dataLen C.int) C.AsfResult {
	c, err := parse(data, dataLen)
	if err != nil {
		return makeError(err)
	}

	streams := make([]map[string]any, len(c.StreamProperties))
	for i := range c.StreamProperties {
		s := &c.StreamProperties[i]
		streams[i] = map[string]any{
			"streamNumber":           s.StreamNumber(),
			"streamType":             s.StreamType,
			"errorCorrectionType":    s.ErrorCorrectionType,
			"audio":                  s.IsAudio(),
			"video":                  s.IsVideo(),
			"encrypted":              s.Encrypted(),
			"timeOffset":             s.TimeOffset,
			"typeSpecificDataLen":    len(s.TypeSpecificData),
			"errorCorrectionDataLen": len(s.ErrorCorrectionData),
		}
	}
	result := map[string]any{
		"header": map[string]any{
			"objectSize":       c.Header.ObjectSize,
			"numHeaderObjects": c.Header.NumHeaderObjects,
		},
		"streams": streams,
		"skipped": c.Skipped,
	}
	if fp := c.FileProperties; fp != nil {
		result["fileProperties"] = map[string]any{
			"fileID":       fp.FileID,
			"fileSize":     fp.FileSize,
			"creationTime": fp.CreationTime(),
			"packets":      fp.DataPacketsCount,
			"playDuration": fp.PlayDurationTime().String(),
			"preroll":      fp.PrerollDuration().String(),
			"broadcast":    fp.Broadcast(),
			"seekable":     fp.Seekable(),
			"maxBitrate":   fp.MaxBitrate,
		}
	}
	if sb := c.StreamBitrateProperties; sb != nil {
		records := make([]map[string]any, len(sb.BitrateRecords))
		for i, r := range sb.BitrateRecords {
			records[i] = map[string]any{"streamNumber": r.StreamNumber(), "averageBitrate": r.AverageBitrate}
		}
		result["bitrates"] = records
	}
	if d := c.Data; d != nil {
		result["data"] = map[string]any{
			"fileID":           d.FileID,
			"totalDataPackets": d.TotalDataPackets,
			"dataLen":          len(d.DataPackets),
		}
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return makeError(err)
	}
	return makeResult(jsonBytes)
}

// AsfGetTypeSpecificData retrieves the raw type-specific data of a stream.
// Parameters:
//   - data: pointer to the file bytes
//   - dataLen: length of the data
//   - streamNumber: stream number (1..127)
//
// Returns AsfResult with the bytes or error. Call AsfFreeResult when done.
//
//export AsfGetTypeSpecificData
func AsfGetTypeSpecificData(data *C.char, dataLen C.int, streamNumber C.int) C.AsfResult {
	n, err := streamNumberArg(int(streamNumber))
	if err != nil {
		return makeError(err)
	}
	c, err := parse(data, dataLen)
	if err != nil {
		return makeError(err)
	}
	s, ok := c.StreamByNumber(n)
	if !ok {
		return makeError(fmt.Errorf("stream %d not found", int(streamNumber)))
	}
	return makeResult(s.TypeSpecificData)
}

// streamNumberArg range checks a stream number passed across the C boundary.
func streamNumberArg(n int) (uint8, error) {
	if n < 1 || n > 127 {
		return 0, fmt.Errorf("stream number %d out of range 1..127", n)
	}
	return uint8(n), nil
}

// AsfValidate parses and validates an ASF header.
// Returns NULL on success, or an error message string on failure.
// Call AsfFreeString on the result if non-NULL.
//
//export AsfValidate
func AsfValidate(data *C.char, dataLen C.int) *C.char {
	c, err := parse(data, dataLen)
	if err != nil {
		return C.CString(err.Error())
	}
	if err := asf.Validate(c); err != nil {
		return C.CString(err.Error())
	}
	return nil
}

// AsfGetStreamCount returns the number of streams declared in the header.
// Returns -1 on error.
//
//export AsfGetStreamCount
func AsfGetStreamCount(data *C.char, dataLen C.int) C.int {
	c, err := parse(data, dataLen)
	if err != nil {
		return -1
	}
	return C.int(len(c.StreamProperties))
}
