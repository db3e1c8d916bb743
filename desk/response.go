package desk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/etnz/invest"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // the client is gone if this fails
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string           `json:"error"`
	Message string           `json:"message"`
	Draft   *invest.Snapshot `json:"draft,omitempty"`
}

// WriteError writes a standard error response.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorResponse{Error: code, Message: message})
}

// maxBodyBytes bounds request bodies, every route takes a few short fields.
const maxBodyBytes = 4 << 10

// ParseJSON decodes the request body as JSON into v.
func ParseJSON(w http.ResponseWriter, r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("request body must be JSON with Content-Type: application/json")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// errorCode maps draft and validation errors to stable API codes.
func errorCode(err error) string {
	switch {
	case errors.Is(err, invest.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, invest.ErrInvalidShares):
		return "invalid_shares"
	case errors.Is(err, invest.ErrBelowMinimum):
		return "below_minimum"
	case errors.Is(err, invest.ErrFractionalShares):
		return "fractional_shares"
	case errors.Is(err, invest.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, invest.ErrSharesNotSupported):
		return "shares_not_supported"
	case errors.Is(err, invest.ErrWrongMode):
		return "wrong_mode"
	default:
		return "internal_error"
	}
}
