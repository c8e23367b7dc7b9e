package request

// DirectorRequest is used for both create and partial update; Name is required on create only.
type DirectorRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio,omitempty"`
	BirthDate   *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Nationality *string `json:"nationality,omitempty" validate:"omitempty,max=60"`
	PhotoURL    *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

type CastMemberRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Bio       *string `json:"bio,omitempty"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PhotoURL  *string `json:"photo_url,omitempty" validate:"omitempty,url"`
}
