package transcription

import (
	"context"
	"fmt"
	"os"

	"github.com/Surya-sourav/glass/provider"
)

// Provider is the interface transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
}

// LoadAudio returns the request's audio bytes, reading AudioPath when Audio
// is empty.
func LoadAudio(req TranscriptionRequest) ([]byte, error) {
	if len(req.Audio) > 0 {
		return req.Audio, nil
	}
	if req.AudioPath == "" {
		return nil, fmt.Errorf("transcription: audio or audio_path is required")
	}
	data, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	return data, nil
}
