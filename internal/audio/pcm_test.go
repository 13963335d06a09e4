package audio

import (
	"math"
	"testing"
)

func TestSamplesFromPCM16(t *testing.T) {
	// Two samples: 1 (0x0001) and -2 (0xFFFE), little-endian
	data := []byte{0x01, 0x00, 0xFE, 0xFF}

	samples, err := SamplesFromPCM16(data)
	if err != nil {
		t.Fatalf("SamplesFromPCM16() failed: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(samples))
	}
	if samples[0] != 1 {
		t.Errorf("Expected sample 1, got %d", samples[0])
	}
	if samples[1] != -2 {
		t.Errorf("Expected sample -2, got %d", samples[1])
	}
}

func TestSamplesFromPCM16_Empty(t *testing.T) {
	if _, err := SamplesFromPCM16(nil); err == nil {
		t.Error("Expected error for empty PCM data")
	}
}

func TestSamplesFromPCM16_OddLength(t *testing.T) {
	if _, err := SamplesFromPCM16([]byte{0x01}); err == nil {
		t.Error("Expected error for odd-length PCM data")
	}
}

func TestCalculateRMS(t *testing.T) {
	// RMS of constant amplitude equals that amplitude
	samples := []int16{100, 100, 100, 100}
	rms := CalculateRMS(samples)
	if math.Abs(rms-100.0) > 0.001 {
		t.Errorf("Expected RMS 100.0, got %f", rms)
	}
}

func TestCalculateRMS_Empty(t *testing.T) {
	if rms := CalculateRMS(nil); rms != 0.0 {
		t.Errorf("Expected RMS 0.0 for empty samples, got %f", rms)
	}
}

func TestCalculateRMS_Silence(t *testing.T) {
	samples := make([]int16, 160)
	if rms := CalculateRMS(samples); rms != 0.0 {
		t.Errorf("Expected RMS 0.0 for silence, got %f", rms)
	}
}

func TestLevel_MalformedData(t *testing.T) {
	if level := Level([]byte{0x01}); level != 0.0 {
		t.Errorf("Expected level 0.0 for malformed data, got %f", level)
	}
}
