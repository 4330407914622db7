package factory

import (
	"slices"
	"testing"

	"github.com/Surya-sourav/glass/errors"
)

func TestProviders_Order(t *testing.T) {
	want := []string{"openai", "openai-glass", "gemini", "anthropic", "deepgram", "ollama", "whisper"}
	if got := DefaultRegistry().IDs(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestProviders_GlassModelsSanitizeToBase(t *testing.T) {
	base, _ := DefaultRegistry().Lookup("openai")
	glass, _ := DefaultRegistry().Lookup("openai-glass")

	pairs := [][2][]ModelOption{{base.LLMModels, glass.LLMModels}, {base.STTModels, glass.STTModels}}
	for _, p := range pairs {
		if len(p[0]) != len(p[1]) {
			t.Fatalf("expected matching catalogs, got %v and %v", p[0], p[1])
		}
		for i := range p[0] {
			if got := SanitizeModelID(p[1][i].ID); got != p[0][i].ID {
				t.Errorf("expected %s, got %v", p[0][i].ID, got)
			}
		}
	}
}

func TestAvailableProviders(t *testing.T) {
	got := AvailableProviders()

	wantSTT := []string{"openai", "openai-glass", "gemini", "deepgram", "whisper"}
	wantLLM := []string{"openai", "openai-glass", "gemini", "anthropic"}
	if !slices.Equal(got.STT, wantSTT) {
		t.Errorf("expected STT %v, got %v", wantSTT, got.STT)
	}
	if !slices.Equal(got.LLM, wantLLM) {
		t.Errorf("expected LLM %v, got %v", wantLLM, got.LLM)
	}

	for _, list := range [][]string{got.STT, got.LLM} {
		seen := map[string]bool{}
		for _, id := range list {
			if seen[id] {
				t.Errorf("expected %s once, got duplicate", id)
			}
			seen[id] = true
		}
	}
}

func TestCreateSTT_AnthropicUnsupported(t *testing.T) {
	_, err := CreateSTT("anthropic", map[string]any{})
	if !errors.HasCode(err, errors.ErrCodeUnsupportedProvider) {
		t.Errorf("expected UNSUPPORTED_PROVIDER, got %v", err)
	}
}

func TestCreateLLM_UnknownProvider(t *testing.T) {
	_, err := CreateLLM("not-a-real-provider", map[string]any{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if want := "Unsupported LLM provider: not-a-real-provider"; appErr.Message != want {
		t.Errorf("expected %q, got %q", want, appErr.Message)
	}
}

func TestProviderClass_Default(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"openai", "OpenAIProvider"},
		{"openai-glass", "OpenAIProvider"},
		{"anthropic", "AnthropicProvider"},
		{"gemini", "GeminiProvider"},
		{"deepgram", "DeepgramProvider"},
		{"ollama", "OllamaProvider"},
		{"whisper", "WhisperProvider"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cls, ok := ProviderClass(tt.id)
			if !ok {
				t.Fatal("expected class")
			}
			if cls.Name != tt.want {
				t.Errorf("expected %s, got %s", tt.want, cls.Name)
			}
			if cls.New == nil {
				t.Error("expected constructor")
			}
		})
	}

	if _, ok := ProviderClass("unknown"); ok {
		t.Error("expected absent class for unknown id")
	}
}

func TestWhisper_RendererStub(t *testing.T) {
	d := NewDispatcher(DefaultRegistry(), WithExecContext(ContextRenderer))

	_, err := d.CreateSTT("whisper", map[string]any{"model": "whisper-tiny"})
	if !errors.HasCode(err, errors.ErrCodeWrongProcess) {
		t.Fatalf("expected WRONG_PROCESS, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if want := "Whisper STT is only available in main process"; appErr.Message != want {
		t.Errorf("expected %q, got %q", want, appErr.Message)
	}

	main := NewDispatcher(DefaultRegistry())
	stt, err := main.CreateSTT("whisper", map[string]any{"model": "whisper-tiny"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stt.Name() != "whisper" {
		t.Errorf("expected whisper, got %s", stt.Name())
	}
}

func TestParseExecContext(t *testing.T) {
	tests := []struct {
		in   string
		want ExecContext
		ok   bool
	}{
		{"main", ContextMain, true},
		{"", ContextMain, true},
		{"renderer", ContextRenderer, true},
		{"worker", ContextMain, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseExecContext(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}
