package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"order-desk/internal/export"
	"order-desk/internal/model"
	"order-desk/internal/pagination"
	"order-desk/internal/service"

	"github.com/rs/zerolog"
)

// imageField is the multipart field holding the optional order image.
const imageField = "image"

const defaultMaxMemory = 32 << 20

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service        service.OrderService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewOrderHandler creates a new order handler. Request bodies larger than
// maxUploadBytes are refused.
func NewOrderHandler(service service.OrderService, maxUploadBytes int64, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders?search=&page= requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := pagination.ParsePage(query.Get("page"))

	result, err := h.service.List(r.Context(), query.Get("search"), page)
	if err != nil {
		writeServiceError(w, r, err, nil, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, nil, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Create handles POST /api/orders requests, as JSON or multipart form.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, image, ok := h.decode(w, r)
	if !ok {
		return
	}

	order, err := h.service.Create(r.Context(), req, image)
	if err != nil {
		writeServiceError(w, r, err, req, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Update handles PUT /api/orders/{id} requests, as JSON or multipart form.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order ID format", h.logger)
		return
	}

	req, image, ok := h.decode(w, r)
	if !ok {
		return
	}

	order, err := h.service.Update(r.Context(), id, req, image)
	if err != nil {
		writeServiceError(w, r, err, req, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/orders/{id} requests.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "invalid order ID format", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, nil, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/orders/export.csv requests.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, nil, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))
	w.WriteHeader(http.StatusOK)

	if err := export.WriteCSV(w, orders); err != nil {
		// Headers are already sent; the client sees a truncated file.
		h.logger.Error().Err(err).Int("order_count", len(orders)).Msg("failed to write csv export")
	}
}

// decode reads the order request and optional image from the body. On
// failure it writes the error response and returns ok=false.
func (h *OrderHandler) decode(w http.ResponseWriter, r *http.Request) (*model.OrderRequest, *model.ImageUpload, bool) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" || mediaType == "application/x-www-form-urlencoded" {
		req, image, err := h.decodeForm(r, mediaType == "multipart/form-data")
		if err != nil {
			h.writeDecodeError(w, r, err, model.ErrCodeInvalidForm, "invalid form body")
			return nil, nil, false
		}
		return req, image, true
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeDecodeError(w, r, err, model.ErrCodeInvalidJSON, "invalid request body")
		return nil, nil, false
	}
	return &req, nil, true
}

func (h *OrderHandler) decodeForm(r *http.Request, multipart bool) (*model.OrderRequest, *model.ImageUpload, error) {
	var err error
	if multipart {
		maxMemory := h.maxUploadBytes
		if maxMemory <= 0 {
			maxMemory = defaultMaxMemory
		}
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return nil, nil, err
	}

	req := &model.OrderRequest{
		CustomerName:    r.FormValue("customerName"),
		ContactMethod:   r.FormValue("contactMethod"),
		ContactDetail:   r.FormValue("contactDetail"),
		DeliveryAddress: r.FormValue("deliveryAddress"),
		Product:         r.FormValue("product"),
		Details:         r.FormValue("details"),
		Price:           r.FormValue("price"),
		Deposit:         r.FormValue("deposit"),
		OrderStatus:     r.FormValue("orderStatus"),
	}

	if r.MultipartForm == nil {
		return req, nil, nil
	}

	file, header, err := r.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	// A file input left empty arrives as a part without a filename.
	if header.Filename == "" {
		return req, nil, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image: %w", err)
	}

	return req, &model.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *OrderHandler) writeDecodeError(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, r, http.StatusRequestEntityTooLarge, model.ErrCodeRequestTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), h.logger)
		return
	}
	h.logger.Debug().Err(err).Msg("failed to decode order request")
	writeError(w, r, http.StatusBadRequest, code, message, h.logger)
}
