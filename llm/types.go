package llm

// Chat roles understood by every backend. Backends translate them to the
// vendor's names (Gemini calls the assistant "model").
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// UserMessage returns a user turn holding text.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// CompletionRequest is what callers hand to any LLM client. Zero values
// defer to the client's configured defaults.
type CompletionRequest struct {
	Model        string    `json:"model,omitempty" yaml:"model"`
	Messages     []Message `json:"messages" yaml:"messages"`
	SystemPrompt string    `json:"system_prompt,omitempty" yaml:"system_prompt"`
	Temperature  float64   `json:"temperature,omitempty" yaml:"temperature"`
	MaxTokens    int       `json:"max_tokens,omitempty" yaml:"max_tokens"`
}

// Defaults are a client's configured generation settings.
type Defaults struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Resolve returns req with its zero Model, Temperature and MaxTokens taken
// from d.
func (req CompletionRequest) Resolve(d Defaults) CompletionRequest {
	if req.Model == "" {
		req.Model = d.Model
	}
	if req.Temperature == 0 {
		req.Temperature = d.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = d.MaxTokens
	}
	return req
}

// ChatMessages returns Messages with SystemPrompt, when set, prepended as a
// system turn. It suits APIs that carry the system prompt in the message
// list (OpenAI, Ollama).
func (req CompletionRequest) ChatMessages() []Message {
	out := make([]Message, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		out = append(out, Message{Role: RoleSystem, Content: req.SystemPrompt})
	}
	return append(out, req.Messages...)
}

// SplitSystem separates the system prompt from the conversation for APIs
// that take it as a top-level field (Anthropic, Gemini). SystemPrompt wins;
// otherwise the first system turn is used. System turns are never returned
// in the conversation.
func (req CompletionRequest) SplitSystem() (string, []Message) {
	system := req.SystemPrompt
	out := make([]Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			if system == "" {
				system = m.Content
			}
			continue
		}
		out = append(out, m)
	}
	return system, out
}

// CompletionResponse is a finished completion.
type CompletionResponse struct {
	Content string `json:"content"`
	// Model is the model that produced the response.
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// StreamChunk is one piece of a streamed completion. Err ends the stream.
type StreamChunk struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
	Err     error  `json:"-"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
