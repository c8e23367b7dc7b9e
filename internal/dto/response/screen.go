package response

import (
	"time"

	"cinema-ticketing/internal/data/entity"
)

type ScreenResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ScreenType string    `json:"screen_type"`
	Capacity   int       `json:"capacity"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	CreatedAt  time.Time `json:"created_at"`
}

type SeatResponse struct {
	ID          string `json:"id"`
	ScreenID    string `json:"screen_id"`
	SeatRow     string `json:"seat_row"`
	SeatCol     int    `json:"seat_col"`
	SeatNumber  string `json:"seat_number"`
	SeatType    string `json:"seat_type"`
	IsAvailable bool   `json:"is_available"`
	IsBooked    *bool  `json:"is_booked,omitempty"`
}

type ScreenDetailResponse struct {
	ScreenResponse
	Seats []SeatResponse `json:"seats"`
}

type ShowtimeResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	ScreenID  string    `json:"screen_id"`
	ShowDate  string    `json:"show_date"`
	ShowTime  string    `json:"show_time"`
	Format    string    `json:"format"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type ShowtimeSeatsResponse struct {
	Showtime       ShowtimeResponse `json:"showtime"`
	TotalSeats     int              `json:"total_seats"`
	AvailableSeats int              `json:"available_seats"`
	Seats          []SeatResponse   `json:"seats"`
}

// Helper converters
func ScreenToResponse(s *entity.Screen) ScreenResponse {
	return ScreenResponse{
		ID:         s.ID.String(),
		Name:       s.Name,
		ScreenType: s.ScreenType,
		Capacity:   s.Capacity,
		Rows:       s.Rows,
		Cols:       s.Cols,
		CreatedAt:  s.CreatedAt,
	}
}

func ScreensToResponse(screens []*entity.Screen) []ScreenResponse {
	out := make([]ScreenResponse, 0, len(screens))
	for _, s := range screens {
		out = append(out, ScreenToResponse(s))
	}
	return out
}

func SeatToResponse(s *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:          s.ID.String(),
		ScreenID:    s.ScreenID.String(),
		SeatRow:     s.SeatRow,
		SeatCol:     s.SeatCol,
		SeatNumber:  s.SeatNumber,
		SeatType:    s.SeatType,
		IsAvailable: s.IsAvailable,
	}
}

func ScreenToDetailResponse(s *entity.Screen, seats []*entity.Seat) ScreenDetailResponse {
	resp := ScreenDetailResponse{
		ScreenResponse: ScreenToResponse(s),
		Seats:          make([]SeatResponse, 0, len(seats)),
	}
	for _, seat := range seats {
		resp.Seats = append(resp.Seats, SeatToResponse(seat))
	}
	return resp
}

func ShowtimeToResponse(s *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        s.ID.String(),
		MovieID:   s.MovieID.String(),
		ScreenID:  s.ScreenID.String(),
		ShowDate:  s.ShowDate.Format("2006-01-02"),
		ShowTime:  s.ShowTime,
		Format:    s.Format,
		Price:     s.Price,
		CreatedAt: s.CreatedAt,
	}
}

func ShowtimesToResponse(list []*entity.Showtime) []ShowtimeResponse {
	out := make([]ShowtimeResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ShowtimeToResponse(s))
	}
	return out
}

func ShowtimeSeatsToResponse(st *entity.Showtime, seats []*entity.SeatWithStatus) ShowtimeSeatsResponse {
	resp := ShowtimeSeatsResponse{
		Showtime:   ShowtimeToResponse(st),
		TotalSeats: len(seats),
		Seats:      make([]SeatResponse, 0, len(seats)),
	}
	for _, s := range seats {
		item := SeatToResponse(&s.Seat)
		booked := s.IsBooked
		item.IsBooked = &booked
		if s.IsAvailable && !s.IsBooked {
			resp.AvailableSeats++
		}
		resp.Seats = append(resp.Seats, item)
	}
	return resp
}
