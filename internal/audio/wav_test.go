package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAV(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00, 0x04, 0x00}

	wav, err := EncodeWAV(pcm, 16000)
	if err != nil {
		t.Fatalf("EncodeWAV() failed: %v", err)
	}

	if len(wav) != wavHeaderSize+len(pcm) {
		t.Fatalf("Expected %d bytes, got %d", wavHeaderSize+len(pcm), len(wav))
	}

	if !bytes.Equal(wav[0:4], []byte("RIFF")) {
		t.Errorf("Expected RIFF magic, got %q", wav[0:4])
	}
	if !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Errorf("Expected WAVE format tag, got %q", wav[8:12])
	}

	sampleRate := binary.LittleEndian.Uint32(wav[24:28])
	if sampleRate != 16000 {
		t.Errorf("Expected sample rate 16000, got %d", sampleRate)
	}

	dataLen := binary.LittleEndian.Uint32(wav[40:44])
	if int(dataLen) != len(pcm) {
		t.Errorf("Expected data chunk length %d, got %d", len(pcm), dataLen)
	}

	// Payload must round-trip untouched
	if !bytes.Equal(wav[wavHeaderSize:], pcm) {
		t.Error("Expected PCM payload to be copied unmodified")
	}
}

func TestEncodeWAV_CopiesPayload(t *testing.T) {
	pcm := []byte{0x01, 0x00}

	wav, err := EncodeWAV(pcm, 16000)
	if err != nil {
		t.Fatalf("EncodeWAV() failed: %v", err)
	}

	// Mutating the source must not change the encoded clip
	pcm[0] = 0xFF
	if wav[wavHeaderSize] != 0x01 {
		t.Error("Expected encoded clip to be independent of the source buffer")
	}
}

func TestEncodeWAV_InvalidSampleRate(t *testing.T) {
	if _, err := EncodeWAV([]byte{0x01, 0x00}, 0); err == nil {
		t.Error("Expected error for zero sample rate")
	}
}

func TestEncodeWAV_OddLength(t *testing.T) {
	if _, err := EncodeWAV([]byte{0x01}, 16000); err == nil {
		t.Error("Expected error for odd-length PCM data")
	}
}

func TestDuration(t *testing.T) {
	// 32000 bytes of PCM16 mono at 16kHz = 1 second
	d := Duration(32000, 16000)
	if d != 1.0 {
		t.Errorf("Expected duration 1.0s, got %f", d)
	}

	if d := Duration(1000, 0); d != 0.0 {
		t.Errorf("Expected duration 0.0 for invalid rate, got %f", d)
	}
}
