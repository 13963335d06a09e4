package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the voice clone client daemon
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"8080"`

	// Remote voice API configuration. The API key itself is NOT configured
	// here: it is saved at runtime through the credential endpoint and kept
	// in the local state store, so it can be rotated without a restart.
	VoiceAPIBaseURL string `envconfig:"VOICE_API_BASE_URL" default:"https://api.elevenlabs.io"`

	// Synthesis parameters sent with every text-to-speech request
	VoiceModelID         string  `envconfig:"VOICE_MODEL_ID" default:"eleven_monolingual_v1"`
	VoiceStability       float64 `envconfig:"VOICE_STABILITY" default:"0.5"`
	VoiceSimilarityBoost float64 `envconfig:"VOICE_SIMILARITY_BOOST" default:"0.75"`

	// Metadata attached to uploaded voice samples
	CloneVoiceName        string `envconfig:"CLONE_VOICE_NAME" default:"My Cloned Voice"`
	CloneVoiceDescription string `envconfig:"CLONE_VOICE_DESCRIPTION" default:"Voice cloned from microphone sample"`

	// Local state store configuration
	StateDir string `envconfig:"STATE_DIR" default:"state"`

	// Capture configuration
	CaptureSampleRate int `envconfig:"CAPTURE_SAMPLE_RATE" default:"16000"`  // Hz, mono PCM16
	CaptureMaxBytes   int `envconfig:"CAPTURE_MAX_BYTES" default:"10485760"` // Cap per recording in bytes

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.VoiceAPIBaseURL == "" {
		return nil, fmt.Errorf("VOICE_API_BASE_URL must not be empty")
	}
	if cfg.CaptureSampleRate <= 0 {
		return nil, fmt.Errorf("CAPTURE_SAMPLE_RATE must be positive, got %d", cfg.CaptureSampleRate)
	}
	if cfg.CaptureMaxBytes <= 0 {
		return nil, fmt.Errorf("CAPTURE_MAX_BYTES must be positive, got %d", cfg.CaptureMaxBytes)
	}

	return &cfg, nil
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
