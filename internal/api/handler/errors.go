package handler

import (
	"net/http"

	"github.com/mcoot/shellgame-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest         = apierr.CodeInvalidRequest
	CodeInvalidPhaseTransition = apierr.CodeInvalidPhaseTransition
	CodeInvalidGuess           = apierr.CodeInvalidGuess
	CodeInvalidMaxRounds       = apierr.CodeInvalidMaxRounds
	CodeGameNotFound           = apierr.CodeGameNotFound
	CodeUnauthorized           = apierr.CodeUnauthorized
	CodeInternalError          = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
