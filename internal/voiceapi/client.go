package voiceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/voiceforge/clone-client/internal/config"
)

// API paths of the remote voice-cloning service
const (
	addVoicePath    = "/v1/voices/add"
	synthesizePath  = "/v1/text-to-speech/%s"
	listVoicesPath  = "/v1/voices"
	apiKeyHeader    = "xi-api-key"
	fallbackMessage = "voice service returned an error"
)

// Client talks to the remote voice-cloning API. Every call is a single
// attempt: no retry, no explicit timeout beyond the transport default. The
// API key is passed per call because it lives in the runtime state store,
// not in configuration.
type Client struct {
	baseURL         string
	modelID         string
	stability       float64
	similarityBoost float64
	httpClient      *http.Client
}

// NewClient creates a voice API client from configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:         strings.TrimRight(cfg.VoiceAPIBaseURL, "/"),
		modelID:         cfg.VoiceModelID,
		stability:       cfg.VoiceStability,
		similarityBoost: cfg.VoiceSimilarityBoost,
		httpClient:      &http.Client{},
	}
}

// AddVoice uploads a recorded sample and returns the new voice handle.
// The request is multipart: name, description and a single files part
// carrying the audio.
func (c *Client) AddVoice(ctx context.Context, apiKey, name, description string, sample Sample) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("name", name); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("description", description); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="files"; filename="%s"`, sample.FileName))
	header.Set("Content-Type", sample.MIMEType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(sample.Data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+addVoicePath, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach voice service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeError(resp)
	}

	var result struct {
		VoiceID string `json:"voice_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse clone response: %w", err)
	}
	if result.VoiceID == "" {
		return "", fmt.Errorf("clone response contained no voice_id")
	}

	return result.VoiceID, nil
}

// Synthesize requests speech for text in the given voice and returns the
// response body unmodified as raw audio bytes.
func (c *Client) Synthesize(ctx context.Context, apiKey, voiceID, text string) ([]byte, error) {
	payload := synthesizeRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: VoiceSettings{
			Stability:       c.stability,
			SimilarityBoost: c.similarityBoost,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + fmt.Sprintf(synthesizePath, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach voice service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("voice service returned empty audio")
	}

	return audio, nil
}

// ListVoices returns the voices available under the given credential
func (c *Client) ListVoices(ctx context.Context, apiKey string) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listVoicesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach voice service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var result struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse voices response: %w", err)
	}

	return result.Voices, nil
}

// decodeError turns a non-success response into a *RequestError. The
// service reports failures as {"detail": {"message": "..."}} where detail
// may also be a bare string; anything unparseable falls back to a generic
// message.
func decodeError(resp *http.Response) error {
	reqErr := &RequestError{
		StatusCode: resp.StatusCode,
		Message:    fallbackMessage,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return reqErr
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return reqErr
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Detail, &nested); err == nil && nested.Message != "" {
		reqErr.Message = nested.Message
		return reqErr
	}

	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil && plain != "" {
		reqErr.Message = plain
	}

	return reqErr
}
