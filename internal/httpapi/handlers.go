// Package httpapi exposes the voice clone workflow over a local HTTP
// surface: credential management, capture control (including a WebSocket
// audio ingest), clone upload and speech synthesis.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/voiceforge/clone-client/internal/capture"
	"github.com/voiceforge/clone-client/internal/client"
	"github.com/voiceforge/clone-client/internal/observability"
	"github.com/voiceforge/clone-client/internal/voiceapi"
)

// Handler wires the controller to HTTP routes
type Handler struct {
	client *client.Client
	logger zerolog.Logger
}

// NewHandler creates the HTTP surface over a workflow controller
func NewHandler(c *client.Client, logger zerolog.Logger) *Handler {
	return &Handler{client: c, logger: logger}
}

// Register attaches all API routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/credential", h.handleCredential)
	mux.HandleFunc("/api/state", h.requireMethod(http.MethodGet, h.handleState))
	mux.HandleFunc("/api/capture/stream", h.handleCaptureStream)
	mux.HandleFunc("/api/capture/stop", h.requireMethod(http.MethodPost, h.handleCaptureStop))
	mux.HandleFunc("/api/clone", h.requireMethod(http.MethodPost, h.handleClone))
	mux.HandleFunc("/api/speak", h.requireMethod(http.MethodPost, h.handleSpeak))
	mux.HandleFunc("/api/voices", h.requireMethod(http.MethodGet, h.handleVoices))
}

func (h *Handler) requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

func (h *Handler) handleCredential(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut, http.MethodPost:
		var req struct {
			APIKey string `json:"api_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := h.client.SaveCredential(req.APIKey); err != nil {
			h.writeFailure(w, "credential", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"saved": true})

	case http.MethodGet:
		// Returns the stored key so a UI can pre-fill its input
		key, ok := h.client.Credential()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"configured": ok,
			"api_key":    key,
		})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.client.State())
}

func (h *Handler) handleCaptureStop(w http.ResponseWriter, r *http.Request) {
	clip, err := h.client.StopCapture()
	if err != nil {
		h.writeFailure(w, "capture_stop", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"clip_id":          clip.ID,
		"bytes":            len(clip.Data),
		"duration_seconds": clip.Duration.Seconds(),
	})
}

func (h *Handler) handleClone(w http.ResponseWriter, r *http.Request) {
	voiceID, err := h.client.CloneVoice(r.Context())
	if err != nil {
		h.writeFailure(w, "clone", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"voice_id": voiceID})
}

func (h *Handler) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	audio, err := h.client.Speak(r.Context(), req.Text)
	if err != nil {
		h.writeFailure(w, "speak", err)
		return
	}

	// Raw audio bytes, exactly as the service produced them
	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

func (h *Handler) handleVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.client.Voices(r.Context())
	if err != nil {
		h.writeFailure(w, "voices", err)
		return
	}
	if voices == nil {
		voices = []voiceapi.Voice{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"voices": voices})
}

// writeFailure maps controller errors to HTTP statuses: empty input is a
// bad request, unmet workflow preconditions are conflicts, device failures
// are 503, and remote API failures surface the upstream status.
func (h *Handler) writeFailure(w http.ResponseWriter, operation string, err error) {
	logger := h.logger.With().Str("operation", operation).Logger()

	var reqErr *voiceapi.RequestError
	var devErr *capture.DeviceAccessError

	switch {
	case errors.Is(err, client.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, client.ErrMissingCredential),
		errors.Is(err, client.ErrMissingRecording),
		errors.Is(err, client.ErrMissingVoiceHandle),
		errors.Is(err, capture.ErrNotRecording):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &devErr):
		logger.Error().Err(err).Msg("Device access failed")
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &reqErr):
		logger.Error().Int("upstream_status", reqErr.StatusCode).Str("message", reqErr.Message).
			Msg("Remote voice API request failed")
		writeError(w, reqErr.StatusCode, reqErr.Message)
	default:
		logger.Error().Err(err).Msg("Operation failed")
		writeError(w, http.StatusBadGateway, err.Error())
	}

	observability.RecordError("request", operation)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
