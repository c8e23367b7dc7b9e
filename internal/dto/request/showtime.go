package request

type ShowtimeRequest struct {
	MovieID  string  `json:"movie_id" validate:"required,uuid"`
	ScreenID string  `json:"screen_id" validate:"required,uuid"`
	ShowDate string  `json:"show_date" validate:"required,datetime=2006-01-02"`
	ShowTime string  `json:"show_time" validate:"required,datetime=15:04"`
	Format   string  `json:"format" validate:"omitempty,oneof=2D 3D IMAX 4DX"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

type ShowtimeUpdateRequest struct {
	MovieID  *string  `json:"movie_id,omitempty" validate:"omitempty,uuid"`
	ScreenID *string  `json:"screen_id,omitempty" validate:"omitempty,uuid"`
	ShowDate *string  `json:"show_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ShowTime *string  `json:"show_time,omitempty" validate:"omitempty,datetime=15:04"`
	Format   *string  `json:"format,omitempty" validate:"omitempty,oneof=2D 3D IMAX 4DX"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}
