package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dsalens/dsalens/types"
)

func validResultJSON() string {
	return `{
  "timeComplexity": {
    "bigO": "O(n)",
    "bestCase": "O(1)",
    "averageCase": "O(n)",
    "worstCase": "O(n)",
    "explanation": "Single pass over the input",
    "codeHighlights": [
      {"startLine": 1, "endLine": 3, "type": "loop", "contribution": "Linear iteration", "complexity": "O(n)"}
    ],
    "confidence": 95
  },
  "spaceComplexity": {
    "bigO": "O(1)",
    "bestCase": "O(1)",
    "averageCase": "O(1)",
    "worstCase": "O(1)",
    "explanation": "Constant extra storage",
    "codeHighlights": [],
    "confidence": 98
  },
  "explanation": "Linear scan with constant memory",
  "suggestions": ["Use early exit when the target is found"],
  "algorithmType": "searching"
}`
}

func TestParse_ValidResult(t *testing.T) {
	result, err := Parse(validResultJSON())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.TimeComplexity.BigO != "O(n)" {
		t.Errorf("time bigO mismatch: got %q, want %q", result.TimeComplexity.BigO, "O(n)")
	}
	if result.SpaceComplexity.BigO != "O(1)" {
		t.Errorf("space bigO mismatch: got %q, want %q", result.SpaceComplexity.BigO, "O(1)")
	}
	if result.AlgorithmType != "searching" {
		t.Errorf("algorithmType mismatch: got %q", result.AlgorithmType)
	}
	if len(result.TimeComplexity.CodeHighlights) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(result.TimeComplexity.CodeHighlights))
	}
	h := result.TimeComplexity.CodeHighlights[0]
	if h.StartLine != 1 || h.EndLine != 3 || h.Kind != "loop" {
		t.Errorf("highlight mismatch: %+v", h)
	}
}

func TestParse_FencedAndBareAreEquivalent(t *testing.T) {
	bare := validResultJSON()

	fenced := []string{
		"```json\n" + bare + "\n```",
		"```\n" + bare + "\n```",
		"Here is the analysis:\n```json\n" + bare + "\n```\nLet me know if you need more.",
	}

	want, err := Parse(bare)
	if err != nil {
		t.Fatalf("Parse(bare) failed: %v", err)
	}

	for i, text := range fenced {
		got, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(fenced[%d]) failed: %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("fenced[%d] parsed differently from bare JSON", i)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	first, err := Parse(validResultJSON())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	serialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	second, err := Parse(string(serialized))
	if err != nil {
		t.Fatalf("Parse of serialized result failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parse(serialize(result)) != result\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	inputs := []string{
		"",
		"not json at all",
		`{"timeComplexity": `,
		"```json\n{broken\n```",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		if !types.HasCode(err, types.CodeSchemaError) {
			t.Errorf("Parse(%q): expected SCHEMA_ERROR, got %v", in, err)
		}
	}
}

func TestParse_MissingFields(t *testing.T) {
	topLevel := []string{"timeComplexity", "spaceComplexity", "explanation", "suggestions", "algorithmType"}
	for _, field := range topLevel {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal([]byte(validResultJSON()), &doc); err != nil {
			t.Fatalf("fixture unmarshal failed: %v", err)
		}
		delete(doc, field)
		data, _ := json.Marshal(doc)

		_, err := Parse(string(data))
		if !types.HasCode(err, types.CodeSchemaError) {
			t.Fatalf("missing %s: expected SCHEMA_ERROR, got %v", field, err)
		}
		if !strings.Contains(err.Error(), "missing field "+field) {
			t.Errorf("missing %s: unexpected message %q", field, err.Error())
		}
	}
}

func TestParse_MissingNestedEstimateField(t *testing.T) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(validResultJSON()), &doc); err != nil {
		t.Fatalf("fixture unmarshal failed: %v", err)
	}
	var est map[string]json.RawMessage
	if err := json.Unmarshal(doc["spaceComplexity"], &est); err != nil {
		t.Fatalf("fixture unmarshal failed: %v", err)
	}
	delete(est, "confidence")
	doc["spaceComplexity"], _ = json.Marshal(est)
	data, _ := json.Marshal(doc)

	_, err := Parse(string(data))
	if err == nil || !strings.Contains(err.Error(), "missing field spaceComplexity.confidence") {
		t.Errorf("expected missing field spaceComplexity.confidence, got %v", err)
	}
}

func TestParse_ConfidenceBounds(t *testing.T) {
	cases := []struct {
		confidence int
		ok         bool
	}{
		{0, true},
		{50, true},
		{100, true},
		{101, false},
		{-1, false},
	}

	for _, tc := range cases {
		text := strings.Replace(validResultJSON(), `"confidence": 95`, fmt.Sprintf(`"confidence": %d`, tc.confidence), 1)
		_, err := Parse(text)
		if tc.ok && err != nil {
			t.Errorf("confidence %d: unexpected error %v", tc.confidence, err)
		}
		if !tc.ok {
			if !types.HasCode(err, types.CodeSchemaError) {
				t.Errorf("confidence %d: expected SCHEMA_ERROR, got %v", tc.confidence, err)
			} else if !strings.Contains(err.Error(), "confidence out of range") {
				t.Errorf("confidence %d: unexpected message %q", tc.confidence, err.Error())
			}
		}
	}
}

func TestParse_InvalidLineRange(t *testing.T) {
	text := strings.Replace(validResultJSON(), `"startLine": 1, "endLine": 3`, `"startLine": 5, "endLine": 3`, 1)
	_, err := Parse(text)
	if !types.HasCode(err, types.CodeSchemaError) {
		t.Fatalf("expected SCHEMA_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid line range") {
		t.Errorf("unexpected message %q", err.Error())
	}

	// Equal start and end lines are a valid single-line highlight.
	text = strings.Replace(validResultJSON(), `"startLine": 1, "endLine": 3`, `"startLine": 3, "endLine": 3`, 1)
	if _, err := Parse(text); err != nil {
		t.Errorf("single-line highlight rejected: %v", err)
	}

	// Line numbers are 1-based.
	text = strings.Replace(validResultJSON(), `"startLine": 1, "endLine": 3`, `"startLine": 0, "endLine": 3`, 1)
	if _, err := Parse(text); !types.HasCode(err, types.CodeSchemaError) {
		t.Errorf("zero startLine accepted: %v", err)
	}
}

func TestParse_UnknownAlgorithmTypePassesThrough(t *testing.T) {
	text := strings.Replace(validResultJSON(), `"algorithmType": "searching"`, `"algorithmType": "two-pointer sliding window"`, 1)
	result, err := Parse(text)
	if err != nil {
		t.Fatalf("unknown algorithmType rejected: %v", err)
	}
	if result.AlgorithmType != "two-pointer sliding window" {
		t.Errorf("algorithmType not passed through: got %q", result.AlgorithmType)
	}
	if types.KnownAlgorithmType(result.AlgorithmType) {
		t.Errorf("label unexpectedly recognized")
	}
}

func TestParse_Deterministic(t *testing.T) {
	text := "```json\n" + validResultJSON() + "\n```"
	first, err1 := Parse(text)
	second, err2 := Parse(text)
	if (err1 == nil) != (err2 == nil) {
		t.Fatalf("nondeterministic outcome: %v vs %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("nondeterministic result")
	}
}
