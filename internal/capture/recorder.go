package capture

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voiceforge/clone-client/internal/audio"
	"github.com/voiceforge/clone-client/internal/observability"
)

// Phase is the recorder lifecycle state
type Phase int

const (
	// PhaseIdle means no capture has started or the last one was discarded
	PhaseIdle Phase = iota
	// PhaseRecording means a device is acquired and chunks are accumulating
	PhaseRecording
	// PhaseCaptured means a finalized clip is available for upload
	PhaseCaptured
)

// String returns the phase name for status displays and logs
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRecording:
		return "recording"
	case PhaseCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// Device is a platform audio input. Start begins delivering raw PCM16 mono
// chunks to onChunk and returns once the device is acquired; Stop halts
// delivery and releases the underlying input. Stop must be safe to call
// more than once.
type Device interface {
	Start(ctx context.Context, onChunk func(chunk []byte)) error
	Stop() error
}

// Clip is an immutable finalized recording, ready for upload
type Clip struct {
	ID         string
	Data       []byte // complete WAV container bytes
	MIMEType   string
	SampleRate int
	Duration   time.Duration
}

// Recorder sequences a single capture cycle: Idle -> Recording -> Captured.
// Starting again from Captured discards the previous clip and begins a new
// cycle. All methods are safe for concurrent use.
type Recorder struct {
	sampleRate int
	maxBytes   int
	logger     zerolog.Logger

	mu      sync.Mutex
	phase   Phase
	device  Device
	gen     uint64
	pcm     []byte
	clip    *Clip
	level   float64
	elapsed atomic.Int64
	ticker  chan struct{}
}

// NewRecorder creates a recorder producing WAV clips at the given sample
// rate. maxBytes caps the raw PCM accumulated per recording; chunks past
// the cap are dropped.
func NewRecorder(sampleRate, maxBytes int, logger zerolog.Logger) *Recorder {
	return &Recorder{
		sampleRate: sampleRate,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// Start acquires the device and transitions to Recording. A failed
// acquisition leaves the recorder Idle and returns *DeviceAccessError.
// Starting from Captured discards the prior clip; starting from Recording
// releases the current device and discards the partial buffer before the
// new cycle begins.
func (r *Recorder) Start(ctx context.Context, device Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseRecording {
		close(r.ticker)
		r.ticker = nil
		if err := r.device.Stop(); err != nil {
			r.logger.Warn().Err(err).Msg("Device release reported an error")
		}
		r.device = nil
		r.logger.Debug().Int("discarded_bytes", len(r.pcm)).Msg("Discarding partial buffer on capture restart")
	}

	if r.clip != nil || len(r.pcm) > 0 {
		observability.RecordRecordingDiscarded()
		r.clip = nil
	}

	r.pcm = r.pcm[:0]
	r.level = 0
	r.phase = PhaseIdle

	// Chunks are bound to this cycle so a superseded device that keeps
	// delivering cannot leak audio into a later recording
	r.gen++
	gen := r.gen
	if err := device.Start(ctx, func(chunk []byte) { r.appendChunk(gen, chunk) }); err != nil {
		return &DeviceAccessError{Err: err}
	}

	r.device = device
	r.phase = PhaseRecording
	r.elapsed.Store(0)
	r.ticker = make(chan struct{})
	go r.runTicker(r.ticker)

	observability.RecordRecordingStarted()
	r.logger.Info().Int("sample_rate", r.sampleRate).Msg("Capture started")

	return nil
}

// Stop finalizes the buffered audio into an immutable clip, releases the
// device and transitions to Captured. The device is released even when
// finalization fails.
func (r *Recorder) Stop() (*Clip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopLocked()
}

// StopDevice finalizes the recording only if device is still the active
// input. A feed that was superseded by a capture restart gets
// ErrNotRecording instead of finalizing someone else's session.
func (r *Recorder) StopDevice(device Device) (*Clip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseRecording && r.device != device {
		return nil, ErrNotRecording
	}
	return r.stopLocked()
}

func (r *Recorder) stopLocked() (*Clip, error) {
	if r.phase != PhaseRecording {
		return nil, ErrNotRecording
	}

	close(r.ticker)
	r.ticker = nil

	// Release the device on every exit path
	if err := r.device.Stop(); err != nil {
		r.logger.Warn().Err(err).Msg("Device release reported an error")
	}
	r.device = nil

	if len(r.pcm) == 0 {
		r.phase = PhaseIdle
		return nil, fmt.Errorf("capture produced no audio")
	}

	wav, err := audio.EncodeWAV(r.pcm, r.sampleRate)
	if err != nil {
		r.phase = PhaseIdle
		return nil, fmt.Errorf("failed to finalize recording: %w", err)
	}

	duration := time.Duration(audio.Duration(len(r.pcm), r.sampleRate) * float64(time.Second))
	r.clip = &Clip{
		ID:         uuid.New().String(),
		Data:       wav,
		MIMEType:   audio.MIMETypeWAV,
		SampleRate: r.sampleRate,
		Duration:   duration,
	}
	r.phase = PhaseCaptured

	observability.RecordRecordingCompleted(duration)
	r.logger.Info().
		Str("clip_id", r.clip.ID).
		Int("bytes", len(r.clip.Data)).
		Dur("duration", duration).
		Msg("Capture finalized")

	return r.clip, nil
}

// Clip returns the current finalized clip, if any
func (r *Recorder) Clip() (*Clip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clip == nil {
		return nil, false
	}
	return r.clip, true
}

// Phase returns the current lifecycle phase
func (r *Recorder) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// ElapsedSeconds returns whole seconds since the current recording started.
// It is zero outside of Recording and resets on every start.
func (r *Recorder) ElapsedSeconds() int64 {
	return r.elapsed.Load()
}

// Level returns the RMS level of the most recent chunk, for display
func (r *Recorder) Level() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// appendChunk receives one PCM chunk from the device. Chunks arriving
// outside of Recording, from a superseded cycle, or past the size cap are
// dropped.
func (r *Recorder) appendChunk(gen uint64, chunk []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRecording || gen != r.gen || len(chunk) == 0 {
		return
	}
	if len(r.pcm)+len(chunk) > r.maxBytes {
		r.logger.Warn().
			Int("buffered", len(r.pcm)).
			Int("max_bytes", r.maxBytes).
			Msg("Recording size cap reached, dropping chunk")
		return
	}

	r.pcm = append(r.pcm, chunk...)
	r.level = audio.Level(chunk)
	observability.RecordCapturedBytes(len(chunk))
}

// runTicker increments the elapsed-seconds counter once per second until
// the recording stops. Presentation only; the counter carries no contract
// beyond monotonic growth from zero.
func (r *Recorder) runTicker(done chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.elapsed.Add(1)
		case <-done:
			return
		}
	}
}
