package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in structured error responses.
const (
	// CodeInvalidRequest — the caller supplied a missing or malformed parameter.
	CodeInvalidRequest = "INVALID_REQUEST"
)

// apiError is the structured error body for request validation failures.
// Operation tags the endpoint that rejected the request, for diagnostics.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Operation string `json:"operation"`
}

// jsonError writes a plain {"error": message} response with the given status.
func jsonError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// invalidRequest writes a 400 response with a structured INVALID_REQUEST body
// tagged with the given operation.
func invalidRequest(c *gin.Context, operation, message string) {
	c.JSON(http.StatusBadRequest, apiError{
		Code:      CodeInvalidRequest,
		Message:   message,
		Operation: operation,
	})
}
