package events

import "time"

type TicketEvent struct {
	TicketID   string    `json:"ticket_id"`
	UserID     string    `json:"user_id"`
	ShowtimeID string    `json:"showtime_id"`
	SeatID     string    `json:"seat_id"`
	Status     string    `json:"status"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ReceiptEvent struct {
	ReceiptID     string    `json:"receipt_id"`
	ReceiptNumber string    `json:"receipt_number"`
	UserID        string    `json:"user_id"`
	MovieID       string    `json:"movie_id"`
	TicketIDs     []string  `json:"ticket_ids"`
	TotalPrice    float64   `json:"total_price"`
	OccurredAt    time.Time `json:"occurred_at"`
}
