package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type PromotionResponse struct {
	ID          string               `json:"id"`
	Code        string               `json:"code"`
	Title       string               `json:"title"`
	Description *string              `json:"description,omitempty"`
	PromoType   entity.PromotionType `json:"promo_type"`
	Value       float64              `json:"value"`
	StartDate   time.Time            `json:"start_date"`
	ExpiryDate  time.Time            `json:"expiry_date"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
}

type PromotionQuoteResponse struct {
	Valid      bool              `json:"valid"`
	Discount   float64           `json:"discount"`
	FinalPrice float64           `json:"final_price"`
	Promotion  PromotionResponse `json:"promotion"`
}

func PromotionToResponse(p *entity.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Title:       p.Title,
		Description: p.Description,
		PromoType:   p.PromoType,
		Value:       p.Value,
		StartDate:   p.StartDate,
		ExpiryDate:  p.ExpiryDate,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func PromotionsToResponse(list []*entity.Promotion) []PromotionResponse {
	out := make([]PromotionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, PromotionToResponse(p))
	}
	return out
}
