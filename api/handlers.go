package api

import (
	"io"
	"maps"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Surya-sourav/glass/errors"
	"github.com/Surya-sourav/glass/factory"
	"github.com/Surya-sourav/glass/httpclient"
	"github.com/Surya-sourav/glass/llm"
	"github.com/Surya-sourav/glass/provider"
	"github.com/Surya-sourav/glass/transcription"
	"github.com/Surya-sourav/glass/validation"
	"github.com/Surya-sourav/glass/version"
)

// ProviderInfo is one registry entry as served by GET /v1/providers.
type ProviderInfo struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	LLMModels []factory.ModelOption `json:"llmModels"`
	STTModels []factory.ModelOption `json:"sttModels"`
}

// ValidateRequest is the body of POST /v1/providers/:id/validate.
type ValidateRequest struct {
	APIKey string `json:"api_key" validate:"max=512"`
}

// CompleteRequest is the body of POST /v1/providers/:id/complete.
type CompleteRequest struct {
	Model        string        `json:"model"`
	Messages     []llm.Message `json:"messages" validate:"required,min=1,dive"`
	SystemPrompt string        `json:"system_prompt"`
	Temperature  float64       `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    int           `json:"max_tokens" validate:"gte=0"`
	Stream       bool          `json:"stream"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   s.serviceName,
		"version":   version.Short(),
		"runtime":   s.dispatcher.ExecContext().String(),
		"providers": s.dispatcher.Registry().Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) listProviders(c *gin.Context) {
	entries := s.dispatcher.Registry().Entries()
	out := make([]ProviderInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, ProviderInfo{
			ID:        e.ID,
			Name:      e.Provider.Name,
			LLMModels: e.Provider.LLMModels,
			STTModels: e.Provider.STTModels,
		})
	}
	RespondOK(c, out)
}

func (s *Server) availableProviders(c *gin.Context) {
	RespondOK(c, s.dispatcher.AvailableProviders())
}

// providerID reads and checks the :id path parameter.
func (s *Server) providerID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := validation.New().ProviderID("id", id).Err(); err != nil {
		RespondWithError(c, err)
		return "", false
	}
	return id, true
}

// options merges configured backend options with per-request overrides.
func (s *Server) options(id string, overrides map[string]any) map[string]any {
	opts := maps.Clone(s.providerOpts(id))
	if opts == nil {
		opts = make(map[string]any, len(overrides))
	}
	for k, v := range overrides {
		if v != "" {
			opts[k] = v
		}
	}
	return opts
}

func (s *Server) validateKey(c *gin.Context) {
	id, ok := s.providerID(c)
	if !ok {
		return
	}
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		RespondWithError(c, errors.InvalidInput("body", err.Error()))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	key := req.APIKey
	if key == "" {
		key, _ = s.providerOpts(id)["api_key"].(string)
	}
	if err := s.dispatcher.ValidateAPIKey(c.Request.Context(), id, key); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, gin.H{"provider": id, "valid": true})
}

func (s *Server) complete(c *gin.Context) {
	id, ok := s.providerID(c)
	if !ok {
		return
	}
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, errors.InvalidInput("body", err.Error()))
		return
	}
	if err := validation.Validate(req); err != nil {
		RespondWithError(c, err)
		return
	}

	opts := s.options(id, map[string]any{"model": req.Model})
	creq := llm.CompletionRequest{
		Messages:     req.Messages,
		SystemPrompt: req.SystemPrompt,
		Temperature:  req.Temperature,
		MaxTokens:    req.MaxTokens,
	}

	if req.Stream {
		s.stream(c, id, opts, creq)
		return
	}

	client, err := s.dispatcher.CreateLLM(id, opts)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	defer provider.CloseIfCloseable(c.Request.Context(), client)
	if s.llmMiddleware != nil {
		client = s.llmMiddleware(client)
	}
	resp, err := client.Complete(c.Request.Context(), creq)
	if err != nil {
		RespondWithError(c, httpclient.ToAppError(id, err))
		return
	}
	RespondOK(c, resp)
}

// stream relays chunks as Server-Sent Events: "chunk" for content, then
// "done" or "error".
func (s *Server) stream(c *gin.Context, id string, opts map[string]any, req llm.CompletionRequest) {
	client, err := s.dispatcher.CreateStreamingLLM(id, opts)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	defer provider.CloseIfCloseable(c.Request.Context(), client)
	chunks, err := client.Stream(c.Request.Context(), req)
	if err != nil {
		RespondWithError(c, httpclient.ToAppError(id, err))
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Content-Type", "text/event-stream")
	for chunk := range chunks {
		if chunk.Err != nil {
			_, body := errors.ResponseFor(httpclient.ToAppError(id, chunk.Err), c.GetString(ctxKeyRequestID))
			c.SSEvent("error", body)
			return
		}
		if chunk.Content != "" {
			c.SSEvent("chunk", gin.H{"content": chunk.Content})
			c.Writer.Flush()
		}
		if chunk.Done {
			break
		}
	}
	c.SSEvent("done", gin.H{"done": true})
}

func (s *Server) transcribe(c *gin.Context) {
	id, ok := s.providerID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("audio")
	if err != nil {
		RespondWithError(c, errors.MissingField("audio"))
		return
	}
	f, err := file.Open()
	if err != nil {
		RespondWithError(c, errors.InvalidInput("audio", err.Error()))
		return
	}
	defer f.Close()
	audio, err := io.ReadAll(f)
	if err != nil {
		RespondWithError(c, errors.InvalidInput("audio", err.Error()))
		return
	}

	client, err := s.dispatcher.CreateSTT(id, s.options(id, map[string]any{"model": c.PostForm("model")}))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	defer provider.CloseIfCloseable(c.Request.Context(), client)
	resp, err := client.Transcribe(c.Request.Context(), transcription.TranscriptionRequest{
		Audio:    audio,
		Language: c.PostForm("language"),
		MimeType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		RespondWithError(c, httpclient.ToAppError(id, err))
		return
	}
	RespondOK(c, resp)
}
