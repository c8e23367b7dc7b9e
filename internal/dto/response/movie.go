package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type MovieResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     *string            `json:"description,omitempty"`
	Year            int                `json:"year"`
	Genres          []string           `json:"genres"`
	Rating          float64            `json:"rating"`
	DurationMinutes int                `json:"duration_minutes"`
	Status          entity.MovieStatus `json:"status"`
	Hidden          bool               `json:"hidden"`
	PosterURL       *string            `json:"poster_url,omitempty"`
	TrailerURL      *string            `json:"trailer_url,omitempty"`
	DirectorID      *string            `json:"director_id,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type MovieDetailResponse struct {
	MovieResponse
	Director    *DirectorResponse    `json:"director,omitempty"`
	Cast        []CastCreditResponse `json:"cast"`
	ReviewStats MovieReviewStats     `json:"review_stats"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type CastCreditResponse struct {
	CastMemberID string  `json:"cast_member_id"`
	Name         string  `json:"name"`
	PhotoURL     *string `json:"photo_url,omitempty"`
	Character    *string `json:"character,omitempty"`
	BillingOrder int     `json:"billing_order"`
}

type DirectorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Bio         *string   `json:"bio,omitempty"`
	BirthDate   *string   `json:"birth_date,omitempty"`
	Nationality *string   `json:"nationality,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CastMemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio,omitempty"`
	BirthDate *string   `json:"birth_date,omitempty"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FilmographyResponse struct {
	MovieID      string  `json:"movie_id"`
	Title        string  `json:"title"`
	Year         int     `json:"year"`
	Character    *string `json:"character,omitempty"`
	BillingOrder int     `json:"billing_order"`
}

type CastMemberDetailResponse struct {
	CastMemberResponse
	Filmography []FilmographyResponse `json:"filmography"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}
	resp := MovieResponse{
		ID:              movie.ID.String(),
		Title:           movie.Title,
		Description:     movie.Description,
		Year:            movie.Year,
		Genres:          genres,
		Rating:          movie.Rating,
		DurationMinutes: movie.DurationMinutes,
		Status:          movie.Status,
		Hidden:          movie.Hidden,
		PosterURL:       movie.PosterURL,
		TrailerURL:      movie.TrailerURL,
		CreatedAt:       movie.CreatedAt,
	}
	if movie.DirectorID != nil {
		id := movie.DirectorID.String()
		resp.DirectorID = &id
	}
	return resp
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieToResponse(m))
	}
	return out
}

func MovieToDetailResponse(movie *entity.Movie, director *entity.Director, cast []*entity.CastCredit, stats *entity.ReviewStats) MovieDetailResponse {
	resp := MovieDetailResponse{
		MovieResponse: MovieToResponse(movie),
		Cast:          make([]CastCreditResponse, 0, len(cast)),
		ReviewStats:   ReviewStatsToResponse(stats),
		UpdatedAt:     movie.UpdatedAt,
	}
	if director != nil {
		d := DirectorToResponse(director)
		resp.Director = &d
	}
	for _, c := range cast {
		resp.Cast = append(resp.Cast, CastCreditResponse{
			CastMemberID: c.CastMemberID.String(),
			Name:         c.Name,
			PhotoURL:     c.PhotoURL,
			Character:    c.Character,
			BillingOrder: c.BillingOrder,
		})
	}
	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func DirectorToResponse(d *entity.Director) DirectorResponse {
	return DirectorResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Bio:         d.Bio,
		BirthDate:   formatDate(d.BirthDate),
		Nationality: d.Nationality,
		PhotoURL:    d.PhotoURL,
		CreatedAt:   d.CreatedAt,
	}
}

func DirectorsToResponse(ds []*entity.Director) []DirectorResponse {
	out := make([]DirectorResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, DirectorToResponse(d))
	}
	return out
}

func CastMemberToResponse(c *entity.CastMember) CastMemberResponse {
	return CastMemberResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Bio:       c.Bio,
		BirthDate: formatDate(c.BirthDate),
		PhotoURL:  c.PhotoURL,
		CreatedAt: c.CreatedAt,
	}
}

func CastMembersToResponse(cs []*entity.CastMember) []CastMemberResponse {
	out := make([]CastMemberResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, CastMemberToResponse(c))
	}
	return out
}

func CastMemberToDetailResponse(c *entity.CastMember, films []*entity.Filmography) CastMemberDetailResponse {
	resp := CastMemberDetailResponse{
		CastMemberResponse: CastMemberToResponse(c),
		Filmography:        make([]FilmographyResponse, 0, len(films)),
	}
	for _, f := range films {
		resp.Filmography = append(resp.Filmography, FilmographyResponse{
			MovieID:      f.MovieID.String(),
			Title:        f.Title,
			Year:         f.Year,
			Character:    f.Character,
			BillingOrder: f.BillingOrder,
		})
	}
	return resp
}

type DirectorDetailResponse struct {
	DirectorResponse
	Movies []MovieResponse `json:"movies"`
}

func DirectorToDetailResponse(d *entity.Director, movies []*entity.Movie) DirectorDetailResponse {
	return DirectorDetailResponse{
		DirectorResponse: DirectorToResponse(d),
		Movies:           MoviesToResponse(movies),
	}
}
