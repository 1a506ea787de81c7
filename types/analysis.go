package types

import "time"

// AnalysisType selects which complexity dimensions an analysis covers.
type AnalysisType string

const (
	AnalysisTime  AnalysisType = "time"
	AnalysisSpace AnalysisType = "space"
	AnalysisBoth  AnalysisType = "both"
)

// Valid reports whether t is one of the supported analysis types.
func (t AnalysisType) Valid() bool {
	switch t {
	case AnalysisTime, AnalysisSpace, AnalysisBoth:
		return true
	}
	return false
}

// Algorithm type labels the model is instructed to choose from. Labels
// outside this set are kept verbatim and grouped under "other" at render
// time; they are never a reason to reject a result.
const (
	AlgorithmSorting       = "sorting"
	AlgorithmSearching     = "searching"
	AlgorithmGraph         = "graph"
	AlgorithmDynamic       = "dynamic-programming"
	AlgorithmGreedy        = "greedy"
	AlgorithmDivideConquer = "divide-conquer"
	AlgorithmRecursion     = "recursion"
	AlgorithmIteration     = "iteration"
	AlgorithmOther         = "other"
)

var knownAlgorithmTypes = map[string]bool{
	AlgorithmSorting:       true,
	AlgorithmSearching:     true,
	AlgorithmGraph:         true,
	AlgorithmDynamic:       true,
	AlgorithmGreedy:        true,
	AlgorithmDivideConquer: true,
	AlgorithmRecursion:     true,
	AlgorithmIteration:     true,
	AlgorithmOther:         true,
}

// KnownAlgorithmType reports whether label is one of the documented
// algorithm type labels.
func KnownAlgorithmType(label string) bool {
	return knownAlgorithmTypes[label]
}

// CodeHighlight annotates a sub-range of the submitted source that
// contributes to the reported complexity. Line numbers are 1-based and
// inclusive. The wire field for Kind is "type", matching the JSON the
// model is asked to produce.
type CodeHighlight struct {
	StartLine    int    `json:"startLine"`
	EndLine      int    `json:"endLine"`
	Kind         string `json:"type"` // e.g. "loop", "recursion", "data-structure", "condition"
	Contribution string `json:"contribution"`
	Complexity   string `json:"complexity"`
}

// ComplexityEstimate is one dimension (time or space) of an analysis.
// Confidence is an integer in [0, 100]; values outside that range fail
// schema validation.
type ComplexityEstimate struct {
	BigO           string          `json:"bigO"`
	BestCase       string          `json:"bestCase"`
	AverageCase    string          `json:"averageCase"`
	WorstCase      string          `json:"worstCase"`
	Explanation    string          `json:"explanation"`
	CodeHighlights []CodeHighlight `json:"codeHighlights"`
	Confidence     int             `json:"confidence"`
}

// AnalysisResult is the full structured outcome of one analysis, exactly
// as the model is instructed to return it.
type AnalysisResult struct {
	TimeComplexity  ComplexityEstimate `json:"timeComplexity"`
	SpaceComplexity ComplexityEstimate `json:"spaceComplexity"`
	Explanation     string             `json:"explanation"`
	Suggestions     []string           `json:"suggestions"`
	AlgorithmType   string             `json:"algorithmType"`
}

// AnalysisRequest is the input to the analysis gateway.
type AnalysisRequest struct {
	Code           string       `json:"code"`
	Language       string       `json:"language"`
	ProblemContext string       `json:"problemContext,omitempty"`
	AnalysisType   AnalysisType `json:"analysisType"`
}

// HistoryEntry is one persisted analysis record. Platform and URL are
// set when the analysis originated from a detected coding platform page
// and are empty for direct CLI or API submissions.
type HistoryEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Code      string         `json:"code"`
	Language  string         `json:"language"`
	Result    AnalysisResult `json:"result"`
	Platform  string         `json:"platform,omitempty"`
	URL       string         `json:"url,omitempty"`
}
