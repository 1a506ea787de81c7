package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/dsalens/dsalens/types"
)

// NewProvider is a factory function that returns an instance of a
// Provider based on the given LLM configuration. A missing API key is
// not an error here; the gateway reports MISSING_CREDENTIAL at call
// time so callers can supply a per-call key.
func NewProvider(config *types.LLMConfig) (Provider, error) {
	if config == nil {
		return nil, fmt.Errorf("LLM configuration cannot be nil")
	}

	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	switch provider {
	case "openai", "":
		timeout := defaultTimeout
		if config.RequestTimeoutSeconds > 0 {
			timeout = time.Duration(config.RequestTimeoutSeconds) * time.Second
		}
		p := NewOpenAIProvider(config.APIKey, timeout, config.Debug)
		if config.ModelName != "" {
			p.model = config.ModelName
		}
		if config.BaseURL != "" {
			p.baseURL = config.BaseURL
		}
		if config.MaxOutputTokens > 0 {
			p.maxTokens = config.MaxOutputTokens
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}
