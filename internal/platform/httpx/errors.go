// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	// ErrNotFound indicates an operation on a missing record. Catalog and
	// directory updates swallow it (documented no-op); the ledger surfaces it.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates the operation is not allowed in the current state.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable indicates an external collaborator could not be reached.
	ErrUnavailable = errors.New("service unavailable")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrUnavailable):
		Problem(w, http.StatusServiceUnavailable, "Service Unavailable", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
