package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kasikotas/order/internal/service/models/apperr"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// Error maps a business error to a status code and writes it as JSON. Errors
// without a recognized kind become 500 with a generic message so internals
// never leak to clients.
func Error(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		slog.Error("Unclassified error", "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})

		return
	}

	JSON(w, statusOf(appErr.Kind()), errorResponse{Message: err.Error()})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindAdmissionDenied:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindGone:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
