package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/transcription"
)

func TestSidecarModel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"whisper-tiny", "tiny"},
		{"whisper-medium", "medium"},
		{"large-v3", "large-v3"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SidecarModel(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewProvider_Defaults(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model() != defaultWhisperModel {
		t.Errorf("expected %s, got %s", defaultWhisperModel, p.Model())
	}
	if p.Name() != ProviderName {
		t.Errorf("expected %s, got %s", ProviderName, p.Name())
	}
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("expected /transcribe, got %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if got := r.FormValue("model"); got != "small" {
			t.Errorf("expected small, got %q", got)
		}
		if got := r.FormValue("language"); got != "de" {
			t.Errorf("expected de, got %q", got)
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("expected audio part: %v", err)
		}
		_ = json.NewEncoder(w).Encode(whisperResponse{
			Text:     "hallo welt",
			Language: "de",
			Segments: []whisperSegment{{Text: "hallo", Start: 0, End: 0.5}, {Text: "welt", Start: 0.5, End: 1.2}},
		})
	}))
	defer srv.Close()

	stt, err := Module{URL: srv.URL}.CreateSTT(map[string]any{"model": "whisper-small", "language": "de"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := stt.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: []byte("RIFF")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hallo welt" {
		t.Errorf("expected 'hallo welt', got %q", resp.Text)
	}
	if len(resp.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(resp.Segments))
	}
	if resp.Duration != 1.2 {
		t.Errorf("expected duration 1.2, got %v", resp.Duration)
	}
}

func TestTranscribe_SidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, _ := NewProvider(Config{URL: srv.URL})
	if _, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: []byte("x")}); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p, _ := NewProvider(Config{URL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected available")
	}
}

func TestRendererStub(t *testing.T) {
	var stub RendererStub
	_, err := stub.CreateSTT(map[string]any{"model": "whisper-tiny"})
	if !errors.HasCode(err, errors.ErrCodeWrongProcess) {
		t.Fatalf("expected WRONG_PROCESS, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.Message != "Whisper STT is only available in main process" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	if err := stub.ValidateAPIKey(context.Background(), ""); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
