package entity

import (
	"time"

	"github.com/google/uuid"
)

type MovieStatus string

const (
	MovieStatusNowShowing MovieStatus = "now_showing"
	MovieStatusComingSoon MovieStatus = "coming_soon"
)

type Movie struct {
	Base
	Title           string      `db:"title"`
	Description     *string     `db:"description"`
	Year            int         `db:"year"`
	Genres          []string    `db:"genres"`
	Rating          float64     `db:"rating"`
	DurationMinutes int         `db:"duration_minutes"`
	Status          MovieStatus `db:"status"`
	Hidden          bool        `db:"hidden"`
	PosterURL       *string     `db:"poster_url"`
	TrailerURL      *string     `db:"trailer_url"`
	DirectorID      *uuid.UUID  `db:"director_id"`
}

// MovieFilter narrows catalog listings; nil fields are ignored.
type MovieFilter struct {
	Genre         *string
	Status        *string
	Year          *int
	DirectorID    *uuid.UUID
	Search        *string
	IncludeHidden bool
}

type Director struct {
	Base
	Name        string     `db:"name"`
	Bio         *string    `db:"bio"`
	BirthDate   *time.Time `db:"birth_date"`
	Nationality *string    `db:"nationality"`
	PhotoURL    *string    `db:"photo_url"`
}

type CastMember struct {
	Base
	Name      string     `db:"name"`
	Bio       *string    `db:"bio"`
	BirthDate *time.Time `db:"birth_date"`
	PhotoURL  *string    `db:"photo_url"`
}

// MovieCast links a cast member to a movie with the role they played.
type MovieCast struct {
	MovieID      uuid.UUID `db:"movie_id"`
	CastMemberID uuid.UUID `db:"cast_member_id"`
	Character    *string   `db:"character"`
	BillingOrder int       `db:"billing_order"`
}

// CastCredit is a cast link joined with the cast member's name.
type CastCredit struct {
	MovieCast
	Name     string
	PhotoURL *string
}

// Filmography is a cast link joined with the movie's title and year.
type Filmography struct {
	MovieCast
	Title string
	Year  int
}
