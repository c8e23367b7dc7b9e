package entity

import "time"

type PromotionType string

const (
	PromotionPercentage   PromotionType = "PERCENTAGE"
	PromotionFixedAmount  PromotionType = "FIXED_AMOUNT"
	PromotionBuyOneGetOne PromotionType = "BUY_ONE_GET_ONE"
)

type Promotion struct {
	Base
	Code        string        `db:"code"`
	Title       string        `db:"title"`
	Description *string       `db:"description"`
	PromoType   PromotionType `db:"promo_type"`
	Value       float64       `db:"value"`
	StartDate   time.Time     `db:"start_date"`
	ExpiryDate  time.Time     `db:"expiry_date"`
	IsActive    bool          `db:"is_active"`
}

// Usable reports whether the promotion is active and now falls inside its window.
func (p *Promotion) Usable(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartDate) && !now.After(p.ExpiryDate)
}
