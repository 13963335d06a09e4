package audio

import (
	"encoding/binary"
	"fmt"
)

// WAV container constants for finalized recordings: 16-bit mono linear PCM.
const (
	wavHeaderSize = 44
	bitsPerSample = 16
	numChannels   = 1

	// MIMETypeWAV is the container type every finalized clip is tagged with.
	MIMETypeWAV = "audio/wav"
)

// EncodeWAV wraps raw PCM16 mono data in a WAV (RIFF) container.
// The payload is copied, so the returned slice is safe to retain after the
// caller reuses its chunk buffers.
func EncodeWAV(pcmData []byte, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if len(pcmData)%2 != 0 {
		return nil, fmt.Errorf("PCM data length must be even (16-bit samples)")
	}

	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	out := make([]byte, wavHeaderSize+len(pcmData))

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcmData)))
	copy(out[8:12], "WAVE")

	// fmt chunk
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // audio format: linear PCM
	binary.LittleEndian.PutUint16(out[22:24], numChannels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)

	// data chunk
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcmData)))
	copy(out[wavHeaderSize:], pcmData)

	return out, nil
}

// Duration returns the playback duration in seconds of raw PCM16 mono data
// at the given sample rate.
func Duration(pcmBytes int, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0.0
	}
	samples := pcmBytes / (numChannels * bitsPerSample / 8)
	return float64(samples) / float64(sampleRate)
}
