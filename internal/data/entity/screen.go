package entity

import "github.com/google/uuid"

type Screen struct {
	Base
	Name       string `db:"name"`
	ScreenType string `db:"screen_type"`
	Capacity   int    `db:"capacity"`
	Rows       int    `db:"rows"`
	Cols       int    `db:"cols"`
}

type Seat struct {
	Base
	ScreenID    uuid.UUID `db:"screen_id"`
	SeatRow     string    `db:"seat_row"`
	SeatCol     int       `db:"seat_col"`
	SeatNumber  string    `db:"seat_number"`
	SeatType    string    `db:"seat_type"`
	IsAvailable bool      `db:"is_available"`
}

// SeatWithStatus is a seat together with its booking state for one showtime.
type SeatWithStatus struct {
	Seat
	IsBooked bool
}
