package client

import "errors"

// Precondition errors, detected locally before any network request
var (
	ErrMissingCredential  = errors.New("no API key configured, save a credential first")
	ErrMissingRecording   = errors.New("no recording available, capture a voice sample first")
	ErrMissingVoiceHandle = errors.New("no cloned voice available, upload a recording first")
	ErrEmptyInput         = errors.New("input text must not be empty")
)
