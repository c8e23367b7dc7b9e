package request

type PromotionRequest struct {
	Code        string  `json:"code" validate:"required,min=2,max=40"`
	Title       string  `json:"title" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
	PromoType   string  `json:"promo_type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT BUY_ONE_GET_ONE"`
	Value       float64 `json:"value" validate:"gte=0"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ExpiryDate  string  `json:"expiry_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type PromotionUpdateRequest struct {
	Code        *string  `json:"code,omitempty" validate:"omitempty,min=2,max=40"`
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string  `json:"description,omitempty"`
	PromoType   *string  `json:"promo_type,omitempty" validate:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT BUY_ONE_GET_ONE"`
	Value       *float64 `json:"value,omitempty" validate:"omitempty,gte=0"`
	StartDate   *string  `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ExpiryDate  *string  `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type ValidatePromotionRequest struct {
	Code       string  `json:"code" validate:"required"`
	TotalPrice float64 `json:"total_price" validate:"gte=0"`
}
