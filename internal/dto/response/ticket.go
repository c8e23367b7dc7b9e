package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type TicketResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	ShowtimeID   string              `json:"showtime_id"`
	SeatID       string              `json:"seat_id"`
	ReceiptID    *string             `json:"receipt_id,omitempty"`
	Price        float64             `json:"price"`
	Status       entity.TicketStatus `json:"status"`
	PurchaseDate time.Time           `json:"purchase_date"`
}

type TicketDetailResponse struct {
	TicketResponse
	MovieID    string `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	ScreenName string `json:"screen_name"`
	SeatNumber string `json:"seat_number"`
	ShowDate   string `json:"show_date"`
	ShowTime   string `json:"show_time"`
}

type ReceiptResponse struct {
	ID            string    `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	UserID        string    `json:"user_id"`
	MovieID       string    `json:"movie_id"`
	PromotionID   *string   `json:"promotion_id,omitempty"`
	Subtotal      float64   `json:"subtotal"`
	Discount      float64   `json:"discount"`
	TotalPrice    float64   `json:"total_price"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReceiptDetailResponse struct {
	ReceiptResponse
	Tickets []TicketDetailResponse `json:"tickets"`
}

// Helper converters
func TicketToResponse(t *entity.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           t.ID.String(),
		UserID:       t.UserID.String(),
		ShowtimeID:   t.ShowtimeID.String(),
		SeatID:       t.SeatID.String(),
		Price:        t.Price,
		Status:       t.Status,
		PurchaseDate: t.PurchaseDate,
	}
	if t.ReceiptID != nil {
		id := t.ReceiptID.String()
		resp.ReceiptID = &id
	}
	return resp
}

func TicketDetailToResponse(t *entity.TicketDetail) TicketDetailResponse {
	return TicketDetailResponse{
		TicketResponse: TicketToResponse(&t.Ticket),
		MovieID:        t.MovieID.String(),
		MovieTitle:     t.MovieTitle,
		ScreenName:     t.ScreenName,
		SeatNumber:     t.SeatNumber,
		ShowDate:       t.ShowDate.Format("2006-01-02"),
		ShowTime:       t.ShowTime,
	}
}

func TicketDetailsToResponse(list []*entity.TicketDetail) []TicketDetailResponse {
	out := make([]TicketDetailResponse, 0, len(list))
	for _, t := range list {
		out = append(out, TicketDetailToResponse(t))
	}
	return out
}

func ReceiptToResponse(r *entity.Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:            r.ID.String(),
		ReceiptNumber: r.ReceiptNumber,
		UserID:        r.UserID.String(),
		MovieID:       r.MovieID.String(),
		Subtotal:      r.Subtotal,
		Discount:      r.Discount,
		TotalPrice:    r.TotalPrice,
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt,
	}
	if r.PromotionID != nil {
		id := r.PromotionID.String()
		resp.PromotionID = &id
	}
	return resp
}

func ReceiptsToResponse(list []*entity.Receipt) []ReceiptResponse {
	out := make([]ReceiptResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ReceiptToResponse(r))
	}
	return out
}

func ReceiptToDetailResponse(r *entity.Receipt, tickets []*entity.TicketDetail) ReceiptDetailResponse {
	return ReceiptDetailResponse{
		ReceiptResponse: ReceiptToResponse(r),
		Tickets:         TicketDetailsToResponse(tickets),
	}
}
