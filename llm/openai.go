package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dsalens/dsalens/prompts"
	"github.com/dsalens/dsalens/schema"
	"github.com/dsalens/dsalens/types"
)

const (
	openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

	// DefaultModel is the model identifier sent with every analysis.
	DefaultModel = "gpt-4"
	// analysisTemperature is fixed low to bias the model toward
	// deterministic structured output.
	analysisTemperature = 0.1
	// DefaultMaxTokens is the output-length ceiling for one analysis.
	DefaultMaxTokens = 2000

	defaultTimeout = 60 * time.Second
)

// OpenAIProvider implements the Provider interface against an
// OpenAI-compatible chat-completions endpoint.
type OpenAIProvider struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	debug     bool
	client    *http.Client
}

// NewOpenAIProvider creates a new OpenAIProvider with options.
func NewOpenAIProvider(apiKey string, timeout time.Duration, debug bool) *OpenAIProvider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenAIProvider{
		apiKey:    apiKey,
		model:     DefaultModel,
		baseURL:   openAIChatCompletionsURL,
		maxTokens: DefaultMaxTokens,
		debug:     debug,
		client:    &http.Client{Timeout: timeout},
	}
}

// OpenAIRequestPayload defines the structure for the chat-completions request.
type OpenAIRequestPayload struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

// OpenAIMessage defines a message in the conversation.
type OpenAIMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// OpenAIResponsePayload defines the structure for the chat-completions response.
type OpenAIResponsePayload struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
}

// OpenAIChoice defines a choice in the response.
type OpenAIChoice struct {
	Index        int           `json:"index"`
	Message      OpenAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// openAIErrorPayload carries the server-provided message on failures.
type openAIErrorPayload struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// AnalyzeComplexity implements Provider. It issues exactly one outbound
// request per invocation; a transport or semantic failure is surfaced
// as-is and re-invocation is the caller's responsibility.
func (p *OpenAIProvider) AnalyzeComplexity(ctx context.Context, systemPrompt string, req types.AnalysisRequest, apiKey string) (types.AnalysisResult, error) {
	if apiKey == "" {
		apiKey = p.apiKey // Use provider's key if per-call key is not given
	}
	if strings.TrimSpace(apiKey) == "" {
		return types.AnalysisResult{}, types.NewMissingCredential()
	}

	pair, err := prompts.BuildPrompts(req)
	if err != nil {
		return types.AnalysisResult{}, err
	}
	if systemPrompt == "" {
		systemPrompt = pair.System
	}

	payload := OpenAIRequestPayload{
		Model: p.model,
		Messages: []OpenAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: pair.User},
		},
		Temperature: analysisTemperature,
		MaxTokens:   p.maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return types.AnalysisResult{}, fmt.Errorf("failed to create analysis request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		if strings.Contains(err.Error(), "context deadline exceeded") || strings.Contains(err.Error(), "Client.Timeout exceeded") {
			return types.AnalysisResult{}, types.NewTransportError(0, fmt.Sprintf("analysis request timed out after %v", p.client.Timeout))
		}
		return types.AnalysisResult{}, types.NewTransportError(0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.AnalysisResult{}, types.NewTransportError(resp.StatusCode, fmt.Sprintf("failed to read response body: %v", err))
	}
	if p.debug {
		fmt.Printf("[LLM] %s %s in %v (status %s, bytes %d)\n", p.model, p.baseURL, time.Since(start), resp.Status, len(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return types.AnalysisResult{}, types.NewTransportError(resp.StatusCode, serverMessage(resp.Status, raw))
	}

	var completion OpenAIResponsePayload
	if err := json.Unmarshal(raw, &completion); err != nil {
		return types.AnalysisResult{}, types.NewEmptyResponse()
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return types.AnalysisResult{}, types.NewEmptyResponse()
	}

	return schema.Parse(completion.Choices[0].Message.Content)
}

// serverMessage extracts the error message from an OpenAI-style error
// body, falling back to the HTTP status line.
func serverMessage(status string, raw []byte) string {
	var payload openAIErrorPayload
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" && len(msg) < 512 {
		return fmt.Sprintf("%s: %s", status, msg)
	}
	return status
}
