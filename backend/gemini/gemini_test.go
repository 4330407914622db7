package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/transcription"
)

func newTestProvider(t *testing.T, model string, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p, err := NewProvider(Config{APIKey: "g-test", BaseURL: srv.URL, Model: model})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestComplete(t *testing.T) {
	p := newTestProvider(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "g-test" {
			t.Errorf("expected api key header, got %q", got)
		}
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.SystemInstruction == nil || req.SystemInstruction.Parts[0].Text != "be brief" {
			t.Errorf("expected system instruction, got %+v", req.SystemInstruction)
		}
		if len(req.Contents) != 2 || req.Contents[1].Role != "model" {
			t.Errorf("expected user + model contents, got %+v", req.Contents)
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"fine"}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":4,"candidatesTokenCount":1,"totalTokenCount":5}}`)
	})

	resp, err := p.Complete(context.Background(), llm.CompletionRequest{
		SystemPrompt: "be brief",
		Messages:     []llm.Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "fine" {
		t.Errorf("expected fine, got %q", resp.Content)
	}
	if resp.Model != "gemini-2.5-flash" {
		t.Errorf("expected gemini-2.5-flash, got %q", resp.Model)
	}
	if resp.Usage.TotalTokens != 5 {
		t.Errorf("expected 5 tokens, got %d", resp.Usage.TotalTokens)
	}
}

func TestStream(t *testing.T) {
	p := newTestProvider(t, "gemini-2.5-flash", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:streamGenerateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("alt") != "sse" {
			t.Errorf("expected alt=sse, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"Hel\"}]}}]}\r\n\r\n")
		fmt.Fprint(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"lo\"}]},\"finishReason\":\"STOP\"}]}\r\n\r\n")
	})

	ch, err := p.Stream(context.Background(), llm.CompletionRequest{Messages: []llm.Message{{Role: "user", Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := llm.Collect(ch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Hello" {
		t.Errorf("expected Hello, got %q", text)
	}
}

func TestTranscribe_LiveModelFallsBack(t *testing.T) {
	p := newTestProvider(t, "gemini-live-2.5-flash-preview", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		parts := req.Contents[0].Parts
		if len(parts) != 2 || parts[1].InlineData == nil {
			t.Errorf("expected prompt + inline audio, got %+v", parts)
			return
		}
		if parts[1].InlineData.MimeType != "audio/webm" {
			t.Errorf("expected audio/webm, got %s", parts[1].InlineData.MimeType)
		}
		if parts[1].InlineData.Data != base64.StdEncoding.EncodeToString([]byte("pcm")) {
			t.Errorf("unexpected audio data %q", parts[1].InlineData.Data)
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":" hello there \n"}]}}]}`)
	})

	resp, err := p.Transcribe(context.Background(), transcription.TranscriptionRequest{Audio: []byte("pcm"), MimeType: "audio/webm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello there" {
		t.Errorf("expected 'hello there', got %q", resp.Text)
	}
}

func TestValidateAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "good" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"models":[]}`)
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
