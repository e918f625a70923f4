package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"order-desk/internal/middleware"
	"order-desk/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("request_id", correlationID).
		Str("code", code).
		Int("status", status).
		Msg(message)

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// writeServiceError maps a service error onto an HTTP response. Validation
// failures echo the submitted request so the caller can re-populate its form.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, submitted *model.OrderRequest, logger zerolog.Logger) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		logger.Debug().Strs("errors", verr.Errors).Msg("validation failed")
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:         model.ErrCodeValidation,
			Message:       "Order could not be saved",
			Errors:        verr.Errors,
			Submitted:     submitted,
			CorrelationID: middleware.RequestIDFromContext(r.Context()),
		})
		return
	}

	var derr *model.DomainError
	if errors.As(err, &derr) && derr.Code == model.ErrCodeOrderNotFound {
		writeError(w, r, http.StatusNotFound, derr.Code, derr.Message, logger)
		return
	}

	logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg("request failed")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// orderID reads the {id} path parameter.
func orderID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid order id %q", raw)
	}
	return id, nil
}
