package request

type CreateTicketRequest struct {
	ShowtimeID string   `json:"showtime_id" validate:"required,uuid"`
	SeatID     string   `json:"seat_id" validate:"required,uuid"`
	Price      *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reserved paid used deleted"`
}

type CreateReceiptRequest struct {
	MovieID       string   `json:"movie_id" validate:"required,uuid"`
	TicketIDs     []string `json:"ticket_ids" validate:"required,min=1,max=20,dive,uuid"`
	TotalPrice    *float64 `json:"total_price,omitempty" validate:"omitempty,gte=0"`
	PaymentMethod string   `json:"payment_method" validate:"required,oneof=cash credit_card debit_card e_wallet bank_transfer"`
	PromotionCode *string  `json:"promotion_code,omitempty" validate:"omitempty,min=2,max=40"`
}
