package deepgram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/transcription"
)

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listen" {
			t.Errorf("expected /listen, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token dg-test" {
			t.Errorf("expected token auth, got %q", got)
		}
		if got := r.URL.Query().Get("model"); got != "nova-3" {
			t.Errorf("expected nova-3, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "audio/wav" {
			t.Errorf("expected audio/wav, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "wavdata" {
			t.Errorf("unexpected body %q", body)
		}
		fmt.Fprint(w, `{
			"metadata": {"duration": 2.5},
			"results": {
				"channels": [{"alternatives": [{"transcript": "hello world", "confidence": 0.98}]}],
				"utterances": [{"start": 0.1, "end": 2.4, "transcript": "hello world", "speaker": 0}]
			}
		}`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "clip.wav")
	if err := os.WriteFile(path, []byte("wavdata"), 0o600); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	p, err := NewProvider(Config{APIKey: "dg-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{AudioPath: path, Language: "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello world" {
		t.Errorf("expected hello world, got %q", resp.Text)
	}
	if resp.Duration != 2.5 {
		t.Errorf("expected 2.5, got %v", resp.Duration)
	}
	if len(resp.Segments) != 1 || resp.Segments[0].Speaker != "speaker_0" {
		t.Errorf("expected one speaker_0 segment, got %+v", resp.Segments)
	}
	if resp.Language != "en" {
		t.Errorf("expected en, got %q", resp.Language)
	}
}

func TestTranscribe_NoAudio(t *testing.T) {
	p, _ := NewProvider(Config{APIKey: "k"})
	if _, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{}); err == nil {
		t.Error("expected error for missing audio")
	}
}

func TestValidateAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects" {
			t.Errorf("expected /projects, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Token good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"projects":[]}`)
	}))
	defer srv.Close()

	m := Module{BaseURL: srv.URL}
	if err := m.ValidateAPIKey(context.Background(), "good"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := m.ValidateAPIKey(context.Background(), "bad"); !errors.HasCode(err, errors.ErrCodeInvalidAPIKey) {
		t.Errorf("expected INVALID_API_KEY, got %v", err)
	}
}

func TestModule_CreateSTT(t *testing.T) {
	stt, err := Module{}.CreateSTT(map[string]any{"api_key": "k", "model": "nova-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stt.Name() != ProviderName {
		t.Errorf("expected %s, got %s", ProviderName, stt.Name())
	}
	if got := stt.(*Provider).Model(); got != "nova-3" {
		t.Errorf("expected nova-3, got %q", got)
	}
}
