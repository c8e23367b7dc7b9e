package repository

import (
	"context"
	"fmt"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.ReportedContent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ReportedContent, error)
	FindPending(ctx context.Context, reporterID uuid.UUID, contentType entity.ContentType, contentID uuid.UUID) (*entity.ReportedContent, error)
	FindAll(ctx context.Context, filter entity.ReportFilter, limit, offset int) ([]*entity.ReportedContent, error)
	CountAll(ctx context.Context, filter entity.ReportFilter) (int64, error)

	// Withdraw deletes a pending report; false when it is no longer pending
	Withdraw(ctx context.Context, id uuid.UUID) (bool, error)
	Dismiss(ctx context.Context, id, moderatorID uuid.UUID) (bool, error)

	// ResolveContent deletes the reported review or reply with its cascade and
	// marks every pending report on it resolved, in one transaction
	ResolveContent(ctx context.Context, report *entity.ReportedContent, moderatorID uuid.UUID) (int64, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

const reportColumns = `id, content_type, review_id, reply_id, reporter_id, reason, status,
		       resolved_by, resolved_at, created_at, updated_at`

func scanReport(row pgx.Row) (*entity.ReportedContent, error) {
	var rc entity.ReportedContent
	err := row.Scan(
		&rc.ID,
		&rc.ContentType,
		&rc.ReviewID,
		&rc.ReplyID,
		&rc.ReporterID,
		&rc.Reason,
		&rc.Status,
		&rc.ResolvedBy,
		&rc.ResolvedAt,
		&rc.CreatedAt,
		&rc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *reportRepository) Create(ctx context.Context, report *entity.ReportedContent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reported_contents (id, content_type, review_id, reply_id, reporter_id, reason,
		                               status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		report.ID,
		report.ContentType,
		report.ReviewID,
		report.ReplyID,
		report.ReporterID,
		report.Reason,
		report.Status,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create report",
			zap.Error(err),
			zap.String("content_type", string(report.ContentType)),
		)
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ReportedContent, error) {
	report, err := scanReport(r.db.QueryRow(ctx, `SELECT `+reportColumns+` FROM reported_contents WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find report", zap.Error(err), zap.String("report_id", id.String()))
		return nil, fmt.Errorf("find report: %w", err)
	}
	return report, nil
}

func contentColumn(contentType entity.ContentType) string {
	if contentType == entity.ContentTypeReply {
		return "reply_id"
	}
	return "review_id"
}

func (r *reportRepository) FindPending(ctx context.Context, reporterID uuid.UUID, contentType entity.ContentType, contentID uuid.UUID) (*entity.ReportedContent, error) {
	query := `SELECT ` + reportColumns + ` FROM reported_contents
		WHERE reporter_id = $1 AND status = 'PENDING' AND ` + contentColumn(contentType) + ` = $2
		LIMIT 1`

	report, err := scanReport(r.db.QueryRow(ctx, query, reporterID, contentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending report", zap.Error(err))
		return nil, fmt.Errorf("find pending report: %w", err)
	}
	return report, nil
}

func buildReportFilter(filter entity.ReportFilter) (string, []any) {
	var conditions []string
	args := []any{}

	if filter.Status != nil && *filter.Status != "" {
		args = append(args, strings.ToUpper(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ContentType != nil && *filter.ContentType != "" {
		args = append(args, strings.ToLower(*filter.ContentType))
		conditions = append(conditions, fmt.Sprintf("content_type = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *reportRepository) FindAll(ctx context.Context, filter entity.ReportFilter, limit, offset int) ([]*entity.ReportedContent, error) {
	where, args := buildReportFilter(filter)
	query := `SELECT ` + reportColumns + ` FROM reported_contents` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reports", zap.Error(err))
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*entity.ReportedContent
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *reportRepository) CountAll(ctx context.Context, filter entity.ReportFilter) (int64, error) {
	where, args := buildReportFilter(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reported_contents`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count reports", zap.Error(err))
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return total, nil
}

func (r *reportRepository) Withdraw(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reported_contents WHERE id = $1 AND status = 'PENDING'`, id)
	if err != nil {
		r.log.Error("Failed to withdraw report", zap.Error(err), zap.String("report_id", id.String()))
		return false, fmt.Errorf("withdraw report: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *reportRepository) Dismiss(ctx context.Context, id, moderatorID uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `
		UPDATE reported_contents
		SET status = 'DISMISSED', resolved_by = $2, resolved_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
	`, id, moderatorID)
	if err != nil {
		r.log.Error("Failed to dismiss report", zap.Error(err), zap.String("report_id", id.String()))
		return false, fmt.Errorf("dismiss report: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *reportRepository) ResolveContent(ctx context.Context, report *entity.ReportedContent, moderatorID uuid.UUID) (int64, error) {
	contentID := report.ContentID()
	var resolved int64

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var replyIDs []uuid.UUID
		var err error

		if report.ContentType == entity.ContentTypeReply {
			replyIDs = []uuid.UUID{contentID}
		} else {
			replyIDs, err = collectIDs(ctx, tx, `SELECT id FROM replies WHERE review_id = $1`, contentID)
			if err != nil {
				return fmt.Errorf("collect replies: %w", err)
			}
		}

		// Pending reports survive the content as resolved, detached records.
		var reviewID *uuid.UUID
		if report.ContentType == entity.ContentTypeReview {
			reviewID = &contentID
		}
		result, err := tx.Exec(ctx, `
			UPDATE reported_contents
			SET status = 'RESOLVED', resolved_by = $3, resolved_at = NOW(), updated_at = NOW(),
			    review_id = NULL, reply_id = NULL
			WHERE status = 'PENDING' AND (review_id = $1 OR reply_id = ANY($2))
		`, reviewID, replyIDs, moderatorID)
		if err != nil {
			return fmt.Errorf("resolve reports: %w", err)
		}
		resolved = result.RowsAffected()

		if report.ContentType == entity.ContentTypeReply {
			return deleteRepliesTx(ctx, tx, replyIDs)
		}
		return deleteReviewsTx(ctx, tx, []uuid.UUID{contentID})
	})

	if err != nil {
		r.log.Error("Failed to resolve reported content",
			zap.Error(err),
			zap.String("report_id", report.ID.String()),
			zap.String("content_id", contentID.String()),
		)
		return 0, fmt.Errorf("resolve content: %w", err)
	}

	r.log.Info("Reported content removed",
		zap.String("content_type", string(report.ContentType)),
		zap.String("content_id", contentID.String()),
		zap.Int64("resolved_reports", resolved),
	)
	return resolved, nil
}
