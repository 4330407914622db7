package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Surya-sourav/glass/logger"
	"github.com/Surya-sourav/glass/observability"
	"go.opentelemetry.io/otel/metric/noop"
)

// stubProvider is a canned llm.Provider.
type stubProvider struct {
	content string
	err     error
	lastReq CompletionRequest
}

func (s *stubProvider) Name() string                         { return "stub" }
func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }
func (s *stubProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &CompletionResponse{Content: s.content, Model: req.Model, Usage: Usage{TotalTokens: 3}}, nil
}

func TestComplete(t *testing.T) {
	p := &stubProvider{content: "hi there"}
	got, err := Complete(context.Background(), p, "be brief", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi there" {
		t.Errorf("expected 'hi there', got %q", got)
	}
	if p.lastReq.SystemPrompt != "be brief" {
		t.Errorf("expected system prompt to be forwarded, got %q", p.lastReq.SystemPrompt)
	}
	if len(p.lastReq.Messages) != 1 || p.lastReq.Messages[0].Role != "user" {
		t.Errorf("expected one user message, got %+v", p.lastReq.Messages)
	}
}

func TestCompleteStructured_WithMarkdownFence(t *testing.T) {
	p := &stubProvider{content: "```json\n{\"name\": \"glass\"}\n```"}
	var out struct {
		Name string `json:"name"`
	}
	if err := CompleteStructured(context.Background(), p, "sys", "user", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "glass" {
		t.Errorf("expected name 'glass', got %q", out.Name)
	}
	if !strings.Contains(p.lastReq.SystemPrompt, "ONLY the JSON object") {
		t.Error("expected JSON instructions appended to system prompt")
	}
}

func TestCompleteStructured_BadJSON(t *testing.T) {
	p := &stubProvider{content: "not json"}
	var out map[string]any
	if err := CompleteStructured(context.Background(), p, "", "", &out); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"key": "value"}`, `{"key": "value"}`},
		{"with whitespace", `  {"key": "value"}  `, `{"key": "value"}`},
		{"markdown fence", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"with prefix text", `Here is the result: {"key": "value"}`, `{"key": "value"}`},
		{"no json", "just text", "just text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func parseTestChunk(data []byte) (string, bool, error) {
	if string(data) == "[DONE]" {
		return "", true, nil
	}
	var c struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return "", false, err
	}
	return c.Text, false, nil
}

func TestPumpSSE(t *testing.T) {
	body := io.NopCloser(strings.NewReader(
		"data: {\"text\":\"Hel\"}\n\n" +
			": keep-alive\n\n" +
			"data: {\"text\":\"lo\"}\n\n" +
			"data: [DONE]\n\n",
	))
	got, err := Collect(PumpSSE(context.Background(), body, parseTestChunk))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello" {
		t.Errorf("expected 'Hello', got %q", got)
	}
}

func TestPumpSSE_ParseError(t *testing.T) {
	body := io.NopCloser(strings.NewReader("data: {broken\n\n"))
	_, err := Collect(PumpSSE(context.Background(), body, parseTestChunk))
	if err == nil {
		t.Fatal("expected parse error to surface")
	}
}

func TestPumpNDJSON(t *testing.T) {
	body := io.NopCloser(bytes.NewBufferString("{\"text\":\"a\"}\n\n{\"text\":\"b\"}\n"))
	got, err := Collect(PumpNDJSON(context.Background(), body, parseTestChunk))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ab" {
		t.Errorf("expected 'ab', got %q", got)
	}
}

func TestPumpNilBody(t *testing.T) {
	_, err := Collect(PumpNDJSON(context.Background(), nil, parseTestChunk))
	if !errors.Is(err, ErrNoStreamBody) {
		t.Errorf("expected ErrNoStreamBody, got %v", err)
	}
}

func TestPumpNilBodyCanceled(t *testing.T) {
	pumps := map[string]func(context.Context) <-chan StreamChunk{
		"sse":    func(ctx context.Context) <-chan StreamChunk { return PumpSSE(ctx, nil, parseTestChunk) },
		"ndjson": func(ctx context.Context) <-chan StreamChunk { return PumpNDJSON(ctx, nil, parseTestChunk) },
	}
	for name, pump := range pumps {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			ch := pump(ctx)

			deadline := time.After(2 * time.Second)
			for {
				select {
				case chunk, ok := <-ch:
					if ok {
						t.Fatalf("expected channel closed without a reader, got %+v", chunk)
					}
					return
				case <-deadline:
					t.Fatal("expected pump to exit after cancel")
				default:
					time.Sleep(5 * time.Millisecond)
				}
			}
		})
	}
}

func TestPumpStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pr, pw := io.Pipe()
	ch := PumpNDJSON(ctx, pr, parseTestChunk)

	go func() { _, _ = pw.Write([]byte("{\"text\":\"a\"}\n{\"text\":\"b\"}\n")) }()
	if first := <-ch; first.Content != "a" {
		t.Fatalf("expected first chunk 'a', got %+v", first)
	}
	cancel()
	_ = pw.Close()
	for range ch {
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(inner Provider) Provider {
			order = append(order, name)
			return inner
		}
	}
	Chain(mark("a"), mark("b"), mark("c"))(&stubProvider{})
	if strings.Join(order, ",") != "c,b,a" {
		t.Errorf("expected wrapping order c,b,a, got %v", order)
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)

	p := WithLogging(log)(&stubProvider{content: "ok"})
	if _, err := p.Complete(context.Background(), CompletionRequest{Model: "m"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "llm complete ok") {
		t.Errorf("expected success log line, got %q", buf.String())
	}

	buf.Reset()
	boom := errors.New("boom")
	p = WithLogging(log)(&stubProvider{err: boom})
	if _, err := p.Complete(context.Background(), CompletionRequest{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom to propagate, got %v", err)
	}
	if !strings.Contains(buf.String(), "llm complete failed") {
		t.Errorf("expected failure log line, got %q", buf.String())
	}
}

func TestWithTracingPassesThrough(t *testing.T) {
	p := WithTracing("glass")(&stubProvider{content: "traced"})
	resp, err := p.Complete(context.Background(), CompletionRequest{Model: "m"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "traced" {
		t.Errorf("expected 'traced', got %q", resp.Content)
	}
	if p.Name() != "stub" {
		t.Errorf("expected wrapped name 'stub', got %q", p.Name())
	}
}

func TestWithMetricsPassesThrough(t *testing.T) {
	metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	boom := errors.New("boom")
	p := WithMetrics(metrics)(&stubProvider{err: boom})
	if _, err := p.Complete(context.Background(), CompletionRequest{}); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestCompletionRequest_Resolve(t *testing.T) {
	d := Defaults{Model: "m-default", Temperature: 0.3, MaxTokens: 256}

	got := CompletionRequest{}.Resolve(d)
	if got.Model != "m-default" || got.Temperature != 0.3 || got.MaxTokens != 256 {
		t.Errorf("expected defaults applied, got %+v", got)
	}

	got = CompletionRequest{Model: "m-req", Temperature: 1.1, MaxTokens: 10}.Resolve(d)
	if got.Model != "m-req" || got.Temperature != 1.1 || got.MaxTokens != 10 {
		t.Errorf("expected request values kept, got %+v", got)
	}
}

func TestCompletionRequest_ChatMessages(t *testing.T) {
	req := CompletionRequest{SystemPrompt: "be brief", Messages: []Message{UserMessage("hi")}}
	got := req.ChatMessages()
	if len(got) != 2 || got[0].Role != RoleSystem || got[0].Content != "be brief" || got[1].Role != RoleUser {
		t.Errorf("expected system then user, got %+v", got)
	}

	got = CompletionRequest{Messages: []Message{UserMessage("hi")}}.ChatMessages()
	if len(got) != 1 {
		t.Errorf("expected no system turn, got %+v", got)
	}
}

func TestCompletionRequest_SplitSystem(t *testing.T) {
	tests := []struct {
		name       string
		req        CompletionRequest
		wantSystem string
		wantTurns  int
	}{
		{"prompt wins", CompletionRequest{SystemPrompt: "p", Messages: []Message{{Role: RoleSystem, Content: "m"}, UserMessage("hi")}}, "p", 1},
		{"first system turn", CompletionRequest{Messages: []Message{{Role: RoleSystem, Content: "a"}, {Role: RoleSystem, Content: "b"}, UserMessage("hi")}}, "a", 1},
		{"none", CompletionRequest{Messages: []Message{UserMessage("hi"), {Role: RoleAssistant, Content: "yo"}}}, "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, turns := tt.req.SplitSystem()
			if system != tt.wantSystem {
				t.Errorf("expected system %q, got %q", tt.wantSystem, system)
			}
			if len(turns) != tt.wantTurns {
				t.Errorf("expected %d turns, got %d", tt.wantTurns, len(turns))
			}
			for _, m := range turns {
				if m.Role == RoleSystem {
					t.Errorf("expected no system turns, got %+v", turns)
				}
			}
		})
	}
}
