package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScreenHandler struct {
	service usecase.ScreenService
	log     *zap.Logger
}

func NewScreenHandler(service usecase.ScreenService, log *zap.Logger) *ScreenHandler {
	return &ScreenHandler{
		service: service,
		log:     log.With(zap.String("handler", "screen")),
	}
}

// GetScreens handles GET /api/screens
func (h *ScreenHandler) GetScreens(w http.ResponseWriter, r *http.Request) {
	screens, err := h.service.GetScreens(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get screens")
		return
	}

	utils.ResponseSuccess(w, "success", screens)
}

// GetScreenByID handles GET /api/screens/{id}
func (h *ScreenHandler) GetScreenByID(w http.ResponseWriter, r *http.Request) {
	screen, err := h.service.GetScreenByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get screen")
		return
	}

	utils.ResponseSuccess(w, "success", screen)
}

// GetScreenSeats handles GET /api/screens/{id}/seats
func (h *ScreenHandler) GetScreenSeats(w http.ResponseWriter, r *http.Request) {
	screen, err := h.service.GetScreenSeats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get screen seats")
		return
	}

	utils.ResponseSuccess(w, "success", screen)
}

// CreateScreen handles POST /api/admin/screens
func (h *ScreenHandler) CreateScreen(w http.ResponseWriter, r *http.Request) {
	var req request.ScreenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	screen, err := h.service.CreateScreen(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create screen")
		return
	}

	utils.ResponseCreated(w, "Screen created", screen)
}

// UpdateScreen handles PUT /api/admin/screens/{id}
func (h *ScreenHandler) UpdateScreen(w http.ResponseWriter, r *http.Request) {
	var req request.ScreenUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	screen, err := h.service.UpdateScreen(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update screen")
		return
	}

	utils.ResponseSuccess(w, "Screen updated", screen)
}

// DeleteScreen handles DELETE /api/admin/screens/{id}
func (h *ScreenHandler) DeleteScreen(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteScreen(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete screen")
		return
	}

	utils.ResponseSuccess(w, "Screen deleted", nil)
}

// SetSeatAvailability handles PATCH /api/admin/seats/{id}/availability
func (h *ScreenHandler) SetSeatAvailability(w http.ResponseWriter, r *http.Request) {
	var req request.SeatAvailabilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	seat, err := h.service.SetSeatAvailability(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "set seat availability")
		return
	}

	utils.ResponseSuccess(w, "Seat updated", seat)
}
