package entity

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	Base
	UserID  uuid.UUID `db:"user_id"`
	MovieID uuid.UUID `db:"movie_id"`
	Rating  int       `db:"rating"`
	Comment *string   `db:"comment"`
}

// ReviewWithAuthor is a review joined with its author's username and like count.
type ReviewWithAuthor struct {
	Review
	Username   string
	LikeCount  int
	ReplyCount int
}

type ReviewStats struct {
	AverageRating float64
	TotalReviews  int64
	Distribution  map[int]int64
}

type ReviewLike struct {
	ReviewID  uuid.UUID `db:"review_id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Reply struct {
	Base
	ReviewID uuid.UUID `db:"review_id"`
	UserID   uuid.UUID `db:"user_id"`
	Comment  string    `db:"comment"`
}

type ReplyWithAuthor struct {
	Reply
	Username string
}
