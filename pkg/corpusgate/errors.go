package corpusgate

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for common API error conditions.
var (
	// ErrInvalidRequest is returned when the server responds with 400 Bad Request.
	ErrInvalidRequest = errors.New("corpusgate: invalid request")
	// ErrUnauthorized is returned when the server responds with 401 Unauthorized.
	ErrUnauthorized = errors.New("corpusgate: unauthorized")
	// ErrNotFound is returned when the server responds with 404 Not Found.
	ErrNotFound = errors.New("corpusgate: not found")
)

// APIError represents an error returned by the corpusgate API.
// It implements the error interface and supports errors.Is() via Unwrap().
type APIError struct {
	// StatusCode is the HTTP status code returned by the server.
	StatusCode int
	// Code is the structured error code, e.g. "INVALID_REQUEST". Empty for
	// responses without a structured body.
	Code string
	// Message is the error message from the server.
	Message string
	// Operation is the operation tag attached to validation errors.
	Operation string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("corpusgate: API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("corpusgate: API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the matching sentinel error for the status code,
// enabling errors.Is() checks against ErrInvalidRequest, ErrUnauthorized, etc.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrInvalidRequest
	case 401:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	default:
		return nil
	}
}

// serverErrorResponse parses both error body shapes the server produces:
// {"error": "..."} for auth and internal errors, and
// {"code": "...", "message": "...", "operation": "..."} for validation errors.
type serverErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Operation string `json:"operation"`
}

// newAPIError parses the server error response body and returns a wrapped *APIError.
func newAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
	var resp serverErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		switch {
		case resp.Message != "":
			apiErr.Code = resp.Code
			apiErr.Message = resp.Message
			apiErr.Operation = resp.Operation
		case resp.Error != "":
			apiErr.Message = resp.Error
		}
	}
	return apiErr
}
