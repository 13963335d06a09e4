package voiceapi

import "fmt"

// Sample is a finalized audio recording handed to the clone upload
type Sample struct {
	FileName string
	MIMEType string
	Data     []byte
}

// Voice is one entry of the remote voice listing
type Voice struct {
	ID   string `json:"voice_id"`
	Name string `json:"name"`
}

// VoiceSettings are the fixed voice-shaping parameters sent with every
// synthesis request
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// synthesizeRequest is the JSON payload for the text-to-speech endpoint
type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// RequestError is a non-success response from the remote voice API. Message
// carries the service-supplied detail when the body was parseable, or a
// generic fallback otherwise. The request is never retried.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("voice api request failed: status %d: %s", e.StatusCode, e.Message)
}
