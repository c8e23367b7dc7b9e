package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentTypeReview ContentType = "review"
	ContentTypeReply  ContentType = "reply"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusDismissed ReportStatus = "DISMISSED"
	ReportStatusResolved  ReportStatus = "RESOLVED"
)

type ReportedContent struct {
	Base
	ContentType ContentType  `db:"content_type"`
	ReviewID    *uuid.UUID   `db:"review_id"`
	ReplyID     *uuid.UUID   `db:"reply_id"`
	ReporterID  uuid.UUID    `db:"reporter_id"`
	Reason      string       `db:"reason"`
	Status      ReportStatus `db:"status"`
	ResolvedBy  *uuid.UUID   `db:"resolved_by"`
	ResolvedAt  *time.Time   `db:"resolved_at"`
}

// ContentID returns whichever of review/reply id the report targets.
func (r *ReportedContent) ContentID() uuid.UUID {
	if r.ContentType == ContentTypeReply && r.ReplyID != nil {
		return *r.ReplyID
	}
	if r.ReviewID != nil {
		return *r.ReviewID
	}
	return uuid.Nil
}

type ReportFilter struct {
	Status      *string
	ContentType *string
}
