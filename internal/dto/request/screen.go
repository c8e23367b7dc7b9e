package request

type ScreenRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=50"`
	ScreenType string `json:"screen_type" validate:"required,oneof=standard imax 3d 4dx vip"`
	Rows       int    `json:"rows" validate:"required,min=1,max=26"`
	Cols       int    `json:"cols" validate:"required,min=1,max=40"`
}

type ScreenUpdateRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	ScreenType *string `json:"screen_type,omitempty" validate:"omitempty,oneof=standard imax 3d 4dx vip"`
}

type SeatAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}
