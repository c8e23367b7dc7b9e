package entity

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "reserved"
	TicketStatusPaid     TicketStatus = "paid"
	TicketStatusUsed     TicketStatus = "used"
	TicketStatusDeleted  TicketStatus = "deleted"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusReserved, TicketStatusPaid, TicketStatusUsed, TicketStatusDeleted:
		return true
	}
	return false
}

// Active tickets hold their seat.
func (s TicketStatus) Active() bool {
	return s == TicketStatusReserved || s == TicketStatusPaid
}

// CanBecome reports whether staff may move a ticket from s to next.
// Paid and reserved are only entered through receipts and bookings.
func (s TicketStatus) CanBecome(next TicketStatus, onReceipt bool) bool {
	switch {
	case s == TicketStatusPaid && next == TicketStatusUsed:
		return true
	case s == TicketStatusReserved && next == TicketStatusDeleted:
		return !onReceipt
	default:
		return false
	}
}

type Ticket struct {
	Base
	UserID       uuid.UUID    `db:"user_id"`
	ShowtimeID   uuid.UUID    `db:"showtime_id"`
	SeatID       uuid.UUID    `db:"seat_id"`
	ReceiptID    *uuid.UUID   `db:"receipt_id"`
	Price        float64      `db:"price"`
	Status       TicketStatus `db:"status"`
	PurchaseDate time.Time    `db:"purchase_date"`
}

// TicketDetail carries the display fields joined from showtime, movie, screen and seat.
type TicketDetail struct {
	Ticket
	MovieID    uuid.UUID
	MovieTitle string
	ScreenName string
	SeatNumber string
	ShowDate   time.Time
	ShowTime   string
}

type TicketFilter struct {
	Status     *string
	ShowtimeID *uuid.UUID
}

type Receipt struct {
	Base
	ReceiptNumber string     `db:"receipt_number"`
	UserID        uuid.UUID  `db:"user_id"`
	MovieID       uuid.UUID  `db:"movie_id"`
	PromotionID   *uuid.UUID `db:"promotion_id"`
	Subtotal      float64    `db:"subtotal"`
	Discount      float64    `db:"discount"`
	TotalPrice    float64    `db:"total_price"`
	PaymentMethod string     `db:"payment_method"`
}
