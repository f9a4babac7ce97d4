package compression

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackSmallPayloadStaysRaw(t *testing.T) {
	data := []byte("short text")

	packed, err := Pack(data)
	require.NoError(t, err)
	assert.Equal(t, markerRaw, packed[0])
	assert.Equal(t, data, packed[1:])

	out, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestPackLargePayloadCompresses(t *testing.T) {
	data := []byte(strings.Repeat("the same selection over and over ", 200))

	packed, err := Pack(data)
	require.NoError(t, err)
	assert.Equal(t, markerGzip, packed[0])
	assert.Less(t, len(packed), len(data), "repetitive text should shrink")

	out, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestPackIncompressiblePayloadStaysRaw(t *testing.T) {
	// Pseudo-random bytes do not compress; Pack must not grow them.
	data := make([]byte, 4096)
	state := uint32(0x9e3779b9)
	for i := range data {
		state = state*1664525 + 1013904223
		data[i] = byte(state >> 24)
	}

	packed, err := Pack(data)
	require.NoError(t, err)
	assert.Equal(t, markerRaw, packed[0])
	assert.Equal(t, len(data)+1, len(packed))

	out, err := Unpack(packed)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, out))
}

func TestUnpackRejectsGarbage(t *testing.T) {
	_, err := Unpack(nil)
	assert.Error(t, err)

	_, err = Unpack([]byte{0x7f, 1, 2, 3})
	assert.Error(t, err)

	_, err = Unpack([]byte{markerGzip, 1, 2, 3})
	assert.Error(t, err)
}
