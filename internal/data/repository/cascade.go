package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Manual cascades shared by every delete that removes dependent rows.
// Each helper expects to run inside the caller's transaction.

func collectIDs(ctx context.Context, q database.Querier, query string, args ...any) ([]uuid.UUID, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func execAll(ctx context.Context, q database.Querier, arg any, queries ...string) error {
	for _, query := range queries {
		if _, err := q.Exec(ctx, query, arg); err != nil {
			return err
		}
	}
	return nil
}

// deleteRepliesTx removes replies together with reports filed against them.
func deleteRepliesTx(ctx context.Context, q database.Querier, replyIDs []uuid.UUID) error {
	if len(replyIDs) == 0 {
		return nil
	}
	err := execAll(ctx, q, replyIDs,
		`DELETE FROM reported_contents WHERE reply_id = ANY($1)`,
		`DELETE FROM replies WHERE id = ANY($1)`,
	)
	if err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}
	return nil
}

// deleteReviewsTx removes reviews with their replies, likes and reports.
func deleteReviewsTx(ctx context.Context, q database.Querier, reviewIDs []uuid.UUID) error {
	if len(reviewIDs) == 0 {
		return nil
	}
	err := execAll(ctx, q, reviewIDs,
		`DELETE FROM reported_contents WHERE reply_id IN (SELECT id FROM replies WHERE review_id = ANY($1))`,
		`DELETE FROM reported_contents WHERE review_id = ANY($1)`,
		`DELETE FROM replies WHERE review_id = ANY($1)`,
		`DELETE FROM review_likes WHERE review_id = ANY($1)`,
		`DELETE FROM reviews WHERE id = ANY($1)`,
	)
	if err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}

// deleteShowtimesTx removes showtimes, their tickets and any receipt left without tickets.
func deleteShowtimesTx(ctx context.Context, q database.Querier, showtimeIDs []uuid.UUID) error {
	if len(showtimeIDs) == 0 {
		return nil
	}

	receiptIDs, err := collectIDs(ctx, q,
		`SELECT DISTINCT receipt_id FROM tickets WHERE showtime_id = ANY($1) AND receipt_id IS NOT NULL`,
		showtimeIDs,
	)
	if err != nil {
		return fmt.Errorf("collect receipts of showtimes: %w", err)
	}

	if _, err := q.Exec(ctx, `DELETE FROM tickets WHERE showtime_id = ANY($1)`, showtimeIDs); err != nil {
		return fmt.Errorf("delete tickets of showtimes: %w", err)
	}

	if len(receiptIDs) > 0 {
		_, err := q.Exec(ctx, `
			DELETE FROM receipts r
			WHERE r.id = ANY($1)
			  AND NOT EXISTS (SELECT 1 FROM tickets t WHERE t.receipt_id = r.id)
		`, receiptIDs)
		if err != nil {
			return fmt.Errorf("delete emptied receipts: %w", err)
		}
	}

	if _, err := q.Exec(ctx, `DELETE FROM showtimes WHERE id = ANY($1)`, showtimeIDs); err != nil {
		return fmt.Errorf("delete showtimes: %w", err)
	}
	return nil
}
