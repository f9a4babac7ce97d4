// Package compression shrinks large journal values transparently. Small
// payloads are stored as-is; anything over the threshold is gzipped and
// tagged with a one-byte marker so readers can tell the two apart.
package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// Threshold below which payloads are not worth compressing.
const Threshold = 1024

const (
	markerRaw  byte = 0x00
	markerGzip byte = 0x01
)

// Pack returns data prefixed with a marker byte, gzip-compressed when it
// exceeds the threshold and the compressed form is actually smaller.
func Pack(data []byte) ([]byte, error) {
	if len(data) < Threshold {
		return append([]byte{markerRaw}, data...), nil
	}

	var buf bytes.Buffer
	buf.WriteByte(markerGzip)
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compressing payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compressing payload: %w", err)
	}

	if buf.Len() >= len(data)+1 {
		return append([]byte{markerRaw}, data...), nil
	}
	return buf.Bytes(), nil
}

// Unpack reverses Pack.
func Unpack(packed []byte) ([]byte, error) {
	if len(packed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	body := packed[1:]

	switch packed[0] {
	case markerRaw:
		return body, nil
	case markerGzip:
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("decompressing payload: %w", err)
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("decompressing payload: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown payload marker 0x%02x", packed[0])
	}
}
