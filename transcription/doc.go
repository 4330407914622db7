// Package transcription defines the speech-to-text contract and common
// types shared by the STT backends.
//
// # Backends
//
//   - backend/openai: OpenAI audio transcriptions
//   - backend/gemini: Gemini audio understanding
//   - backend/deepgram: Deepgram prerecorded listen API
//   - backend/whisper: local faster-whisper sidecar
//
// # Usage
//
//	stt, err := factory.CreateSTT("whisper", map[string]any{"model": "whisper-base"})
//	result, err := stt.Transcribe(ctx, transcription.TranscriptionRequest{AudioPath: "clip.wav"})
package transcription
