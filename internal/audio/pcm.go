package audio

import (
	"fmt"
	"math"
)

// SamplesFromPCM16 converts raw PCM bytes to 16-bit signed samples
// Input: PCM audio data (16-bit signed integers, little-endian)
func SamplesFromPCM16(pcmData []byte) ([]int16, error) {
	if len(pcmData) == 0 {
		return nil, fmt.Errorf("empty PCM data")
	}

	if len(pcmData)%2 != 0 {
		return nil, fmt.Errorf("PCM data length must be even (16-bit samples)")
	}

	samples := make([]int16, len(pcmData)/2)
	for i := 0; i < len(samples); i++ {
		// Little-endian 16-bit signed integer
		samples[i] = int16(pcmData[i*2]) | int16(pcmData[i*2+1])<<8
	}

	return samples, nil
}

// CalculateRMS calculates the root mean square (RMS) of audio samples
// Useful for detecting audio levels and silence
func CalculateRMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, sample := range samples {
		sum += float64(sample) * float64(sample)
	}

	return math.Sqrt(sum / float64(len(samples)))
}

// Level returns the RMS level of a raw PCM16 chunk, or 0 for malformed data.
// Used for the input level readout while recording.
func Level(pcmData []byte) float64 {
	samples, err := SamplesFromPCM16(pcmData)
	if err != nil {
		return 0.0
	}
	return CalculateRMS(samples)
}
