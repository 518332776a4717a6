package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeader(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32767, -32768}

	data, err := EncodeWAV(samples, 16000)
	require.NoError(t, err)
	require.Len(t, data, 44+len(samples)*2)

	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[20:22]), "PCM format")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[22:24]), "mono")
	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(data[34:36]))
	assert.Equal(t, uint32(len(samples)*2), binary.LittleEndian.Uint32(data[40:44]))
}

func TestEncodeWAVRejectsBadInput(t *testing.T) {
	_, err := EncodeWAV(nil, 16000)
	assert.Error(t, err)

	_, err = EncodeWAV([]int16{1}, 0)
	assert.Error(t, err)
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	samples := []int16{12, -34, 5600, -7800, 0}

	data, err := EncodeWAV(samples, 16000)
	require.NoError(t, err)

	decoded, rate, err := DecodeWAV(data)
	require.NoError(t, err)
	assert.Equal(t, 16000, rate)
	assert.Equal(t, samples, decoded)
}

func TestDecodeWAVSkipsExtraChunks(t *testing.T) {
	// ffmpeg inserts a LIST chunk between fmt and data.
	data, err := EncodeWAV([]int16{1, 2, 3}, 8000)
	require.NoError(t, err)

	list := make([]byte, 8+4)
	copy(list[0:4], "LIST")
	binary.LittleEndian.PutUint32(list[4:8], 4)
	copy(list[8:12], "INFO")

	withList := append([]byte(nil), data[:36]...)
	withList = append(withList, list...)
	withList = append(withList, data[36:]...)
	binary.LittleEndian.PutUint32(withList[4:8], uint32(len(withList)-8))

	decoded, rate, err := DecodeWAV(withList)
	require.NoError(t, err)
	assert.Equal(t, 8000, rate)
	assert.Equal(t, []int16{1, 2, 3}, decoded)
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("this is definitely not a wav file at all")},
		{"truncated header", []byte("RIFF\x00\x00\x00\x00WAVE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeWAV(tt.data)
			assert.Error(t, err)
		})
	}
}
