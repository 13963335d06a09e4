package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("VOICE_API_BASE_URL")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
	}

	if cfg.VoiceAPIBaseURL != "https://api.elevenlabs.io" {
		t.Errorf("Expected default VoiceAPIBaseURL 'https://api.elevenlabs.io', got '%s'", cfg.VoiceAPIBaseURL)
	}

	if cfg.VoiceModelID != "eleven_monolingual_v1" {
		t.Errorf("Expected default VoiceModelID 'eleven_monolingual_v1', got '%s'", cfg.VoiceModelID)
	}

	if cfg.VoiceStability != 0.5 {
		t.Errorf("Expected default VoiceStability 0.5, got %f", cfg.VoiceStability)
	}

	if cfg.VoiceSimilarityBoost != 0.75 {
		t.Errorf("Expected default VoiceSimilarityBoost 0.75, got %f", cfg.VoiceSimilarityBoost)
	}

	if cfg.StateDir != "state" {
		t.Errorf("Expected default StateDir 'state', got '%s'", cfg.StateDir)
	}

	if cfg.CaptureSampleRate != 16000 {
		t.Errorf("Expected default CaptureSampleRate 16000, got %d", cfg.CaptureSampleRate)
	}

	if cfg.CaptureMaxBytes != 10485760 {
		t.Errorf("Expected default CaptureMaxBytes 10485760, got %d", cfg.CaptureMaxBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("VOICE_API_BASE_URL", "http://localhost:9999")
	os.Setenv("VOICE_MODEL_ID", "test-model")
	os.Setenv("CAPTURE_SAMPLE_RATE", "8000")
	defer os.Unsetenv("VOICE_API_BASE_URL")
	defer os.Unsetenv("VOICE_MODEL_ID")
	defer os.Unsetenv("CAPTURE_SAMPLE_RATE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.VoiceAPIBaseURL != "http://localhost:9999" {
		t.Errorf("Expected VoiceAPIBaseURL 'http://localhost:9999', got '%s'", cfg.VoiceAPIBaseURL)
	}

	if cfg.VoiceModelID != "test-model" {
		t.Errorf("Expected VoiceModelID 'test-model', got '%s'", cfg.VoiceModelID)
	}

	if cfg.CaptureSampleRate != 8000 {
		t.Errorf("Expected CaptureSampleRate 8000, got %d", cfg.CaptureSampleRate)
	}
}

func TestLoad_InvalidSampleRate(t *testing.T) {
	os.Setenv("CAPTURE_SAMPLE_RATE", "-1")
	defer os.Unsetenv("CAPTURE_SAMPLE_RATE")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for negative CAPTURE_SAMPLE_RATE")
	}
}

func TestLoad_InvalidMaxBytes(t *testing.T) {
	os.Setenv("CAPTURE_MAX_BYTES", "0")
	defer os.Unsetenv("CAPTURE_MAX_BYTES")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for zero CAPTURE_MAX_BYTES")
	}
}

func TestLoad_ObservabilityDefaults(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("LOG_PRETTY")
	os.Unsetenv("METRICS_ENABLED")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.LogPretty {
		t.Error("Expected default LogPretty false, got true")
	}

	if !cfg.MetricsEnabled {
		t.Error("Expected default MetricsEnabled true, got false")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_KEY", "test-value")
	defer os.Unsetenv("TEST_KEY")

	value := GetEnv("TEST_KEY", "default")
	if value != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", value)
	}

	value = GetEnv("NON_EXISTENT_KEY", "default")
	if value != "default" {
		t.Errorf("Expected 'default', got '%s'", value)
	}
}
