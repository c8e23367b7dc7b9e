package request

type CreateReviewRequest struct {
	MovieID string  `json:"movie_id" validate:"required,uuid"`
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type ReplyRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=500"`
}

type CreateReportRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=review reply"`
	ContentID   string `json:"content_id" validate:"required,uuid"`
	Reason      string `json:"reason" validate:"required,min=3,max=500"`
}
