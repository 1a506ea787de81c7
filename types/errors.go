package types

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a terminal analysis failure. Every code is
// surfaced to the caller as-is; nothing is retried automatically.
type ErrorCode string

const (
	// CodeInvalidRequest indicates malformed or empty input, e.g. an
	// empty code field.
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// CodeMissingCredential indicates no API key was supplied.
	CodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	// CodeTransportError indicates the external call failed at the
	// network or HTTP layer.
	CodeTransportError ErrorCode = "TRANSPORT_ERROR"
	// CodeEmptyResponse indicates a successful call that yielded no
	// usable text.
	CodeEmptyResponse ErrorCode = "EMPTY_RESPONSE"
	// CodeSchemaError indicates the response text failed JSON parsing
	// or schema/range validation.
	CodeSchemaError ErrorCode = "SCHEMA_ERROR"
)

// AnalysisError provides structured error information for analysis
// failures so front-end surfaces can render the kind and message
// directly.
type AnalysisError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Status carries the upstream HTTP status for TRANSPORT_ERROR and
	// is zero for every other code.
	Status int `json:"status,omitempty"`
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates an INVALID_REQUEST error.
func NewInvalidRequest(message string) *AnalysisError {
	return &AnalysisError{Code: CodeInvalidRequest, Message: message}
}

// NewMissingCredential creates a MISSING_CREDENTIAL error.
func NewMissingCredential() *AnalysisError {
	return &AnalysisError{Code: CodeMissingCredential, Message: "API key is not configured"}
}

// NewTransportError creates a TRANSPORT_ERROR carrying the upstream
// status and any server-provided message.
func NewTransportError(status int, message string) *AnalysisError {
	return &AnalysisError{Code: CodeTransportError, Message: message, Status: status}
}

// NewEmptyResponse creates an EMPTY_RESPONSE error.
func NewEmptyResponse() *AnalysisError {
	return &AnalysisError{Code: CodeEmptyResponse, Message: "no content in API response"}
}

// NewSchemaError creates a SCHEMA_ERROR with a human-readable reason.
func NewSchemaError(reason string) *AnalysisError {
	return &AnalysisError{Code: CodeSchemaError, Message: reason}
}

// HasCode reports whether err is (or wraps) an AnalysisError with the
// given code.
func HasCode(err error, code ErrorCode) bool {
	var ae *AnalysisError
	return errors.As(err, &ae) && ae.Code == code
}
