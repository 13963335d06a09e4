package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/voiceforge/clone-client/internal/capture"
	"github.com/voiceforge/clone-client/internal/observability"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The daemon binds locally and serves a trusted UI; no origin list
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// wsDevice adapts a WebSocket feed to the capture.Device interface. The
// connection itself is the acquired input: binary frames carry PCM16
// chunks, and Stop simply detaches the chunk callback so frames arriving
// after finalization are dropped.
type wsDevice struct {
	mu      sync.Mutex
	onChunk func([]byte)
}

func (d *wsDevice) Start(ctx context.Context, onChunk func([]byte)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChunk = onChunk
	return nil
}

func (d *wsDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onChunk = nil
	return nil
}

func (d *wsDevice) deliver(chunk []byte) {
	d.mu.Lock()
	cb := d.onChunk
	d.mu.Unlock()

	if cb != nil {
		cb(chunk)
	}
}

// handleCaptureStream runs one capture session over a WebSocket: the
// upgrade starts a recording cycle, binary messages append audio chunks,
// and a "stop" text frame or connection close finalizes the clip. The
// device is released on every exit path.
func (h *Handler) handleCaptureStream(w http.ResponseWriter, r *http.Request) {
	logger := observability.WithCorrelationID("")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to upgrade capture stream connection")
		return
	}
	defer conn.Close()

	// Connecting restarts the capture cycle: any recording in progress is
	// discarded along with its partial buffer, mirroring a fresh press of
	// the record control
	device := &wsDevice{}
	if err := h.client.StartCapture(r.Context(), device); err != nil {
		logger.Warn().Err(err).Msg("Capture stream rejected")
		_ = conn.WriteJSON(map[string]string{"error": err.Error(), "code": "device_access_error"})
		return
	}

	logger.Info().Msg("Capture stream started")
	defer h.finishCaptureStream(conn, device, logger)

	// Confirm the session before the feed begins so the sender knows its
	// chunks will land in this recording cycle
	if err := conn.WriteJSON(map[string]string{"status": "recording"}); err != nil {
		return
	}

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			// Normal closes finalize the recording like an explicit stop
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn().Err(err).Msg("Capture stream closed unexpectedly")
			}
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			device.deliver(payload)
		case websocket.TextMessage:
			if strings.TrimSpace(string(payload)) == "stop" {
				return
			}
			logger.Debug().Str("message", string(payload)).Msg("Ignoring unknown capture control frame")
		}
	}
}

// finishCaptureStream finalizes the recording when the feed ends. A feed
// superseded by a newer stream, or a stop racing with the REST stop
// endpoint, gets ErrNotRecording and leaves the clip alone.
func (h *Handler) finishCaptureStream(conn *websocket.Conn, device capture.Device, logger zerolog.Logger) {
	clip, err := h.client.StopCaptureDevice(device)
	if err != nil {
		if !errors.Is(err, capture.ErrNotRecording) {
			logger.Warn().Err(err).Msg("Capture finalization failed")
			_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		}
		return
	}

	logger.Info().Str("clip_id", clip.ID).Int("bytes", len(clip.Data)).Msg("Capture stream finalized")
	_ = conn.WriteJSON(map[string]interface{}{
		"clip_id":          clip.ID,
		"bytes":            len(clip.Data),
		"duration_seconds": clip.Duration.Seconds(),
	})
}
