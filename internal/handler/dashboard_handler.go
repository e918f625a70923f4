package handler

import (
	"net/http"

	"order-desk/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the aggregate order figures.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Get handles GET /api/dashboard requests.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Compute(r.Context())
	if err != nil {
		writeServiceError(w, r, err, nil, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
