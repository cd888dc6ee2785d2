package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/matside/pkg/adapter"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/utils/logging"
)

const retryAfterSeconds = 60

const (
	msgInvalidType  = "Invalid data type"
	msgInvalidBody  = "Invalid request body"
	msgRateLimited  = "Rate limit exceeded. Please try again in a few minutes."
	msgTimeout      = "Request timed out while waiting for analysis"
	msgHistoryError = "Failed to fetch historical data"
	msgAnalysisFail = "Failed to generate analysis"
	msgAlertsFail   = "Failed to evaluate alerts"
)

type errorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeUseCaseError maps err to a status code. fallback is the message of
// a 500 response.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := logging.From(r.Context())

	switch {
	case errors.Is(err, model.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, msgInvalidType)

	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("request deadline exceeded", "error", err)
		writeError(w, http.StatusGatewayTimeout, msgTimeout)

	case adapter.IsRateLimited(err):
		logger.Warn("provider rate limited", "error", err)
		w.Header().Set("Retry-After", "60")
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:      msgRateLimited,
			RetryAfter: retryAfterSeconds,
		})

	default:
		logger.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
