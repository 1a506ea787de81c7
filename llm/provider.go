package llm

import (
	"context"

	"github.com/dsalens/dsalens/types"
)

// Provider defines the interface for the analysis gateway that sends a
// code sample to an external model and returns the structured result.
type Provider interface {
	// AnalyzeComplexity renders the prompt pair for the request, issues
	// exactly one call to the external inference endpoint, and validates
	// the response text into an AnalysisResult. systemPrompt overrides
	// the default system template when non-empty. apiKey overrides the
	// provider's configured key when non-empty. Failures are typed
	// *types.AnalysisError values; nothing is retried automatically.
	AnalyzeComplexity(ctx context.Context, systemPrompt string, req types.AnalysisRequest, apiKey string) (types.AnalysisResult, error)
}
