package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dsalens/dsalens/types"
)

// handleAnalyze runs one analysis and, unless noSave is set, records it
// in the history.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		stored, err := s.creds.APIKey()
		if err != nil {
			writeAPIError(w, http.StatusInternalServerError, err.Error(), "")
			return
		}
		apiKey = stored
	}
	if apiKey == "" {
		writeAPIError(w, http.StatusBadRequest, "API key is required", types.CodeMissingCredential)
		return
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Language) == "" {
		writeAPIError(w, http.StatusBadRequest, "Code and language are required", types.CodeInvalidRequest)
		return
	}

	analysisType := req.AnalysisType
	if analysisType == "" {
		analysisType = types.AnalysisBoth
	}
	if !analysisType.Valid() {
		writeAPIError(w, http.StatusBadRequest, fmt.Sprintf("unsupported analysis type: %s", analysisType), types.CodeInvalidRequest)
		return
	}

	result, err := s.provider.AnalyzeComplexity(r.Context(), "", types.AnalysisRequest{
		Code:           req.Code,
		Language:       req.Language,
		ProblemContext: req.ProblemContext,
		AnalysisType:   analysisType,
	}, apiKey)
	if err != nil {
		status, code := statusForError(err)
		writeAPIError(w, status, err.Error(), code)
		return
	}

	if !req.NoSave {
		// History is best effort here; the analysis already succeeded.
		if _, err := s.history.Append(types.HistoryEntry{
			Code:     req.Code,
			Language: req.Language,
			Result:   result,
			Platform: req.Platform,
			URL:      req.URL,
		}); err != nil {
			fmt.Printf("[API] failed to record history: %v\n", err)
		}
	}

	writeAPIJSON(w, result)
}

// handleListHistory returns recent entries, newest first.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 0 {
			writeAPIError(w, http.StatusBadRequest, "limit must be a non-negative integer", "")
			return
		}
		limit = l
	}

	entries, err := s.history.List(limit)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	writeAPIJSON(w, entries)
}

// handleGetHistory returns one entry by id.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeAPIError(w, http.StatusBadRequest, "missing id", "")
		return
	}

	entry, found, err := s.history.FindByID(id)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if !found {
		writeAPIError(w, http.StatusNotFound, "entry not found", "")
		return
	}
	writeAPIJSON(w, entry)
}

// handleClearHistory empties the history.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(); err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	writeAPIJSON(w, map[string]bool{"success": true})
}

// statusForError maps analysis failure codes to HTTP statuses. Upstream
// failures come back as 502 so clients can tell a provider outage from
// a bad request.
func statusForError(err error) (int, types.ErrorCode) {
	var ae *types.AnalysisError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, ""
	}
	switch ae.Code {
	case types.CodeInvalidRequest, types.CodeMissingCredential:
		return http.StatusBadRequest, ae.Code
	case types.CodeTransportError, types.CodeEmptyResponse, types.CodeSchemaError:
		return http.StatusBadGateway, ae.Code
	default:
		return http.StatusInternalServerError, ae.Code
	}
}

func writeAPIError(w http.ResponseWriter, status int, message string, code types.ErrorCode) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code})
}

func writeAPIJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
