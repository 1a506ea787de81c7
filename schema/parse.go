// Package schema validates and normalizes the raw text a model returns
// into a structured AnalysisResult. It is pure and deterministic: the
// same input text always yields the same result or the same failure.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dsalens/dsalens/types"
)

// Models occasionally wrap the JSON object in a markdown code fence
// despite being told not to. Stripping the fence is a formatting
// tolerance, not an error-recovery path; no other repair is attempted.
var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z0-9_+-]*[ \t]*\r?\n?(.*?)```")

// ExtractPayload returns the inner text of the first fenced code block
// in raw, or raw verbatim when no fence is present.
func ExtractPayload(raw string) string {
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// Intermediate shapes with pointer fields so missing keys can be told
// apart from zero values.

type rawHighlight struct {
	StartLine    *int    `json:"startLine"`
	EndLine      *int    `json:"endLine"`
	Kind         *string `json:"type"`
	Contribution *string `json:"contribution"`
	Complexity   *string `json:"complexity"`
}

type rawEstimate struct {
	BigO           *string         `json:"bigO"`
	BestCase       *string         `json:"bestCase"`
	AverageCase    *string         `json:"averageCase"`
	WorstCase      *string         `json:"worstCase"`
	Explanation    *string         `json:"explanation"`
	CodeHighlights *[]rawHighlight `json:"codeHighlights"`
	Confidence     *int            `json:"confidence"`
}

type rawResult struct {
	TimeComplexity  *rawEstimate `json:"timeComplexity"`
	SpaceComplexity *rawEstimate `json:"spaceComplexity"`
	Explanation     *string      `json:"explanation"`
	Suggestions     *[]string    `json:"suggestions"`
	AlgorithmType   *string      `json:"algorithmType"`
}

// Parse validates rawText against the AnalysisResult contract.
//
// The result is all-or-nothing: a single missing field, out-of-range
// confidence, or inverted line range fails the whole parse with a
// SCHEMA_ERROR. Out-of-range confidence values are rejected rather than
// clamped; confidence drives UI affordances, so contract correctness
// matters more than leniency here. Unrecognized algorithmType labels
// are passed through verbatim, never rejected.
func Parse(rawText string) (types.AnalysisResult, error) {
	payload := ExtractPayload(rawText)

	var raw rawResult
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return types.AnalysisResult{}, types.NewSchemaError("expected a JSON object")
			}
			return types.AnalysisResult{}, types.NewSchemaError(fmt.Sprintf("invalid value for field %s", typeErr.Field))
		}
		return types.AnalysisResult{}, types.NewSchemaError("malformed JSON")
	}

	if raw.TimeComplexity == nil {
		return types.AnalysisResult{}, missingField("timeComplexity")
	}
	if raw.SpaceComplexity == nil {
		return types.AnalysisResult{}, missingField("spaceComplexity")
	}
	if raw.Explanation == nil {
		return types.AnalysisResult{}, missingField("explanation")
	}
	if raw.Suggestions == nil {
		return types.AnalysisResult{}, missingField("suggestions")
	}
	if raw.AlgorithmType == nil {
		return types.AnalysisResult{}, missingField("algorithmType")
	}

	timeEst, err := validateEstimate(raw.TimeComplexity, "timeComplexity")
	if err != nil {
		return types.AnalysisResult{}, err
	}
	spaceEst, err := validateEstimate(raw.SpaceComplexity, "spaceComplexity")
	if err != nil {
		return types.AnalysisResult{}, err
	}

	return types.AnalysisResult{
		TimeComplexity:  timeEst,
		SpaceComplexity: spaceEst,
		Explanation:     *raw.Explanation,
		Suggestions:     *raw.Suggestions,
		AlgorithmType:   *raw.AlgorithmType,
	}, nil
}

func validateEstimate(raw *rawEstimate, path string) (types.ComplexityEstimate, error) {
	var zero types.ComplexityEstimate
	if raw.BigO == nil {
		return zero, missingField(path + ".bigO")
	}
	if raw.BestCase == nil {
		return zero, missingField(path + ".bestCase")
	}
	if raw.AverageCase == nil {
		return zero, missingField(path + ".averageCase")
	}
	if raw.WorstCase == nil {
		return zero, missingField(path + ".worstCase")
	}
	if raw.Explanation == nil {
		return zero, missingField(path + ".explanation")
	}
	if raw.CodeHighlights == nil {
		return zero, missingField(path + ".codeHighlights")
	}
	if raw.Confidence == nil {
		return zero, missingField(path + ".confidence")
	}
	if *raw.Confidence < 0 || *raw.Confidence > 100 {
		return zero, types.NewSchemaError("confidence out of range")
	}

	highlights := make([]types.CodeHighlight, 0, len(*raw.CodeHighlights))
	for _, h := range *raw.CodeHighlights {
		if h.StartLine == nil {
			return zero, missingField(path + ".codeHighlights.startLine")
		}
		if h.EndLine == nil {
			return zero, missingField(path + ".codeHighlights.endLine")
		}
		if *h.StartLine < 1 || *h.StartLine > *h.EndLine {
			return zero, types.NewSchemaError("invalid line range")
		}
		highlights = append(highlights, types.CodeHighlight{
			StartLine:    *h.StartLine,
			EndLine:      *h.EndLine,
			Kind:         strOrEmpty(h.Kind),
			Contribution: strOrEmpty(h.Contribution),
			Complexity:   strOrEmpty(h.Complexity),
		})
	}

	return types.ComplexityEstimate{
		BigO:           *raw.BigO,
		BestCase:       *raw.BestCase,
		AverageCase:    *raw.AverageCase,
		WorstCase:      *raw.WorstCase,
		Explanation:    *raw.Explanation,
		CodeHighlights: highlights,
		Confidence:     *raw.Confidence,
	}, nil
}

func missingField(path string) error {
	return types.NewSchemaError("missing field " + path)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
