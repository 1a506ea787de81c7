package server

import "github.com/dsalens/dsalens/types"

// AnalyzeRequest is the payload for /api/analyze. A per-request API key
// overrides the server's stored credential.
type AnalyzeRequest struct {
	Code           string             `json:"code"`
	Language       string             `json:"language"`
	ProblemContext string             `json:"problemContext,omitempty"`
	AnalysisType   types.AnalysisType `json:"analysisType,omitempty"`
	APIKey         string             `json:"apiKey,omitempty"`
	Platform       string             `json:"platform,omitempty"`
	URL            string             `json:"url,omitempty"`
	NoSave         bool               `json:"noSave,omitempty"`
}

// ErrorResponse is the body for every non-2xx API response.
type ErrorResponse struct {
	Error string          `json:"error"`
	Code  types.ErrorCode `json:"code,omitempty"`
}
