package prompts

import (
	"fmt"
	"strings"

	"github.com/dsalens/dsalens/types"
)

// Pair holds the two rendered prompt messages for one analysis
// exchange: the system message first, then the user message.
type Pair struct {
	System string
	User   string
}

// BuildPrompts renders the prompt pair for the given request. It is a
// pure function with no I/O. An empty or whitespace-only code field is
// rejected with INVALID_REQUEST before any construction happens.
func BuildPrompts(req types.AnalysisRequest) (Pair, error) {
	if strings.TrimSpace(req.Code) == "" {
		return Pair{}, types.NewInvalidRequest("code must not be empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this %s code for %s complexity:\n\n", req.Language, describeAnalysisType(req.AnalysisType))
	b.WriteString("Code:\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n", req.Language, req.Code)
	if ctx := strings.TrimSpace(req.ProblemContext); ctx != "" {
		fmt.Fprintf(&b, "\nProblem Context: %s\n", ctx)
	}
	b.WriteString("\nProvide detailed complexity analysis with explanations.")

	return Pair{System: AnalyzeSystemPrompt, User: b.String()}, nil
}

func describeAnalysisType(t types.AnalysisType) string {
	switch t {
	case types.AnalysisTime:
		return "time"
	case types.AnalysisSpace:
		return "space"
	default:
		return "time and space"
	}
}
