package adaptor

import (
	"net/http"

	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PromotionHandler struct {
	service usecase.PromotionService
	log     *zap.Logger
}

func NewPromotionHandler(service usecase.PromotionService, log *zap.Logger) *PromotionHandler {
	return &PromotionHandler{
		service: service,
		log:     log.With(zap.String("handler", "promotion")),
	}
}

// GetActivePromotions handles GET /api/promotions
func (h *PromotionHandler) GetActivePromotions(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.GetActivePromotions(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get promotions")
		return
	}

	utils.ResponseSuccess(w, "success", promos)
}

// ValidatePromotion handles POST /api/promotions/validate
func (h *PromotionHandler) ValidatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.ValidatePromotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.service.ValidatePromotion(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "validate promotion")
		return
	}

	utils.ResponseSuccess(w, "Promotion applied", quote)
}

// ==================== ADMIN ====================

// GetAllPromotions handles GET /api/admin/promotions
func (h *PromotionHandler) GetAllPromotions(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.GetAllPromotions(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all promotions")
		return
	}

	utils.ResponseSuccess(w, "success", promos)
}

// GetPromotionByID handles GET /api/admin/promotions/{id}
func (h *PromotionHandler) GetPromotionByID(w http.ResponseWriter, r *http.Request) {
	promo, err := h.service.GetPromotionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get promotion")
		return
	}

	utils.ResponseSuccess(w, "success", promo)
}

// CreatePromotion handles POST /api/admin/promotions
func (h *PromotionHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.PromotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	promo, err := h.service.CreatePromotion(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create promotion")
		return
	}

	utils.ResponseCreated(w, "Promotion created", promo)
}

// UpdatePromotion handles PUT /api/admin/promotions/{id}
func (h *PromotionHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.PromotionUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	promo, err := h.service.UpdatePromotion(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update promotion")
		return
	}

	utils.ResponseSuccess(w, "Promotion updated", promo)
}

// DeletePromotion handles DELETE /api/admin/promotions/{id}
func (h *PromotionHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePromotion(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete promotion")
		return
	}

	utils.ResponseSuccess(w, "Promotion deleted", nil)
}
