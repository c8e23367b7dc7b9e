package entity

import (
	"time"

	"github.com/google/uuid"
)

type Showtime struct {
	Base
	MovieID  uuid.UUID `db:"movie_id"`
	ScreenID uuid.UUID `db:"screen_id"`
	ShowDate time.Time `db:"show_date"`
	ShowTime string    `db:"show_time"`
	Format   string    `db:"format"`
	Price    float64   `db:"price"`
}

// ShowtimeSlot is a showtime on a screen joined with its movie's running time.
type ShowtimeSlot struct {
	ID              uuid.UUID
	ShowTime        string
	DurationMinutes int

	// OffsetMinutes shifts slots loaded from an adjacent day onto the checked day's clock
	OffsetMinutes int
}

type ShowtimeFilter struct {
	MovieID  *uuid.UUID
	ScreenID *uuid.UUID
	Date     *time.Time
}
