// Package client implements the voice clone workflow controller: credential
// storage, microphone capture, sample upload and speech synthesis against
// the remote voice API. Every operation checks its preconditions locally
// and short-circuits before any network request when they are unmet.
package client

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/voiceforge/clone-client/internal/capture"
	"github.com/voiceforge/clone-client/internal/config"
	"github.com/voiceforge/clone-client/internal/observability"
	"github.com/voiceforge/clone-client/internal/store"
	"github.com/voiceforge/clone-client/internal/voiceapi"
)

// Keys in the persisted state store
const (
	storeKeyAPIKey  = "apiKey"
	storeKeyVoiceID = "clonedVoiceId"
)

// VoiceAPI is the remote service surface the controller depends on,
// satisfied by *voiceapi.Client and mocked in tests.
type VoiceAPI interface {
	AddVoice(ctx context.Context, apiKey, name, description string, sample voiceapi.Sample) (string, error)
	Synthesize(ctx context.Context, apiKey, voiceID, text string) ([]byte, error)
	ListVoices(ctx context.Context, apiKey string) ([]voiceapi.Voice, error)
}

// Status is a snapshot of the controller state for the status surface
type Status struct {
	Phase          string  `json:"phase"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
	InputLevel     float64 `json:"input_level"`
	HasCredential  bool    `json:"has_credential"`
	HasRecording   bool    `json:"has_recording"`
	HasVoiceHandle bool    `json:"has_voice_handle"`
	VoiceID        string  `json:"voice_id,omitempty"`
}

// Client is the voice clone workflow controller
type Client struct {
	cfg      *config.Config
	store    *store.Store
	recorder *capture.Recorder
	api      VoiceAPI
	logger   zerolog.Logger
}

// New creates a controller over the given store, recorder and API client
func New(cfg *config.Config, st *store.Store, rec *capture.Recorder, api VoiceAPI, logger zerolog.Logger) *Client {
	return &Client{
		cfg:      cfg,
		store:    st,
		recorder: rec,
		api:      api,
		logger:   logger,
	}
}

// SaveCredential trims and persists the API key verbatim. No remote
// validation happens here; a bad key only surfaces when an operation using
// it fails.
func (c *Client) SaveCredential(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyInput
	}
	if err := c.store.Set(storeKeyAPIKey, key); err != nil {
		return err
	}

	c.logger.Info().Msg("API credential saved")
	return nil
}

// Credential returns the persisted API key, if configured
func (c *Client) Credential() (string, bool) {
	return c.store.Get(storeKeyAPIKey)
}

// VoiceHandle returns the persisted cloned voice identifier, if any
func (c *Client) VoiceHandle() (string, bool) {
	return c.store.Get(storeKeyVoiceID)
}

// StartCapture begins a recording cycle on the given device
func (c *Client) StartCapture(ctx context.Context, device capture.Device) error {
	return c.recorder.Start(ctx, device)
}

// StopCapture finalizes the current recording into a clip
func (c *Client) StopCapture() (*capture.Clip, error) {
	return c.recorder.Stop()
}

// StopCaptureDevice finalizes the recording only if device still owns it,
// so a superseded audio feed cannot finalize a newer session
func (c *Client) StopCaptureDevice(device capture.Device) (*capture.Clip, error) {
	return c.recorder.StopDevice(device)
}

// CloneVoice uploads the finalized recording with fixed metadata and
// persists the returned voice handle, overwriting any prior one. Requires
// a credential and a captured clip; a single attempt, never retried.
func (c *Client) CloneVoice(ctx context.Context) (string, error) {
	key, ok := c.Credential()
	if !ok {
		observability.RecordGuardRejection("clone", "missing_credential")
		return "", ErrMissingCredential
	}

	clip, ok := c.recorder.Clip()
	if !ok {
		observability.RecordGuardRejection("clone", "missing_recording")
		return "", ErrMissingRecording
	}

	start := time.Now()
	voiceID, err := c.api.AddVoice(ctx, key, c.cfg.CloneVoiceName, c.cfg.CloneVoiceDescription, voiceapi.Sample{
		FileName: "recording.wav",
		MIMEType: clip.MIMEType,
		Data:     clip.Data,
	})
	observability.RecordCloneRequest(err == nil, time.Since(start))
	if err != nil {
		observability.RecordError("remote_request", "clone")
		c.logger.Error().Err(err).Str("clip_id", clip.ID).Msg("Voice clone upload failed")
		return "", err
	}

	if err := c.store.Set(storeKeyVoiceID, voiceID); err != nil {
		return "", err
	}

	c.logger.Info().Str("voice_id", voiceID).Str("clip_id", clip.ID).Msg("Voice cloned")
	return voiceID, nil
}

// Speak synthesizes text in the cloned voice and returns the audio bytes
// exactly as the service produced them. Requires a credential, a voice
// handle and non-empty text; a single attempt, never retried.
func (c *Client) Speak(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		observability.RecordGuardRejection("speak", "empty_input")
		return nil, ErrEmptyInput
	}

	key, ok := c.Credential()
	if !ok {
		observability.RecordGuardRejection("speak", "missing_credential")
		return nil, ErrMissingCredential
	}

	voiceID, ok := c.VoiceHandle()
	if !ok {
		observability.RecordGuardRejection("speak", "missing_voice_handle")
		return nil, ErrMissingVoiceHandle
	}

	start := time.Now()
	audio, err := c.api.Synthesize(ctx, key, voiceID, text)
	observability.RecordSynthesisRequest(err == nil, time.Since(start))
	if err != nil {
		observability.RecordError("remote_request", "synthesis")
		c.logger.Error().Err(err).Str("voice_id", voiceID).Msg("Speech synthesis failed")
		return nil, err
	}

	observability.RecordSynthesizedBytes(len(audio))
	c.logger.Info().Str("voice_id", voiceID).Int("bytes", len(audio)).Msg("Speech synthesized")
	return audio, nil
}

// Voices lists the voices available under the stored credential
func (c *Client) Voices(ctx context.Context) ([]voiceapi.Voice, error) {
	key, ok := c.Credential()
	if !ok {
		observability.RecordGuardRejection("voices", "missing_credential")
		return nil, ErrMissingCredential
	}
	return c.api.ListVoices(ctx, key)
}

// State reports the current workflow snapshot
func (c *Client) State() Status {
	_, hasKey := c.Credential()
	voiceID, hasVoice := c.VoiceHandle()
	_, hasClip := c.recorder.Clip()

	return Status{
		Phase:          c.recorder.Phase().String(),
		ElapsedSeconds: c.recorder.ElapsedSeconds(),
		InputLevel:     c.recorder.Level(),
		HasCredential:  hasKey,
		HasRecording:   hasClip,
		HasVoiceHandle: hasVoice,
		VoiceID:        voiceID,
	}
}
