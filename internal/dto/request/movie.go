package request

type MovieRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Description     *string  `json:"description,omitempty"`
	Year            int      `json:"year" validate:"required,min=1888,max=2100"`
	Genres          []string `json:"genres,omitempty" validate:"omitempty,dive,min=1,max=40"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,min=1,max=999"`
	Status          string   `json:"status" validate:"required,oneof=now_showing coming_soon"`
	Hidden          bool     `json:"hidden"`
	PosterURL       *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	TrailerURL      *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
	DirectorID      *string  `json:"director_id,omitempty" validate:"omitempty,uuid"`
}

type MovieUpdateRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"description,omitempty"`
	Year            *int     `json:"year,omitempty" validate:"omitempty,min=1888,max=2100"`
	Genres          []string `json:"genres,omitempty" validate:"omitempty,dive,min=1,max=40"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=999"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=now_showing coming_soon"`
	PosterURL       *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
	TrailerURL      *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
	DirectorID      *string  `json:"director_id,omitempty" validate:"omitempty,uuid"`
}

type CastEntry struct {
	CastMemberID string  `json:"cast_member_id" validate:"required,uuid"`
	Character    *string `json:"character,omitempty" validate:"omitempty,max=100"`
}

type MovieCastRequest struct {
	Cast []CastEntry `json:"cast" validate:"dive"`
}

type VisibilityRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}
