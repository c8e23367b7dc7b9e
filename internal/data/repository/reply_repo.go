package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *entity.Reply) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reply, error)
	FindByReviewID(ctx context.Context, reviewID uuid.UUID) ([]*entity.ReplyWithAuthor, error)
	Update(ctx context.Context, reply *entity.Reply) error

	// DeleteCascade removes the reply and the reports filed against it
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type replyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReplyRepository(db database.PgxIface, log *zap.Logger) ReplyRepository {
	return &replyRepository{
		db:  db,
		log: log.With(zap.String("repository", "reply")),
	}
}

func (r *replyRepository) Create(ctx context.Context, reply *entity.Reply) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO replies (id, review_id, user_id, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, reply.ID, reply.ReviewID, reply.UserID, reply.Comment, reply.CreatedAt, reply.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create reply",
			zap.Error(err),
			zap.String("review_id", reply.ReviewID.String()),
		)
		return fmt.Errorf("create reply: %w", err)
	}
	return nil
}

func (r *replyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reply, error) {
	var reply entity.Reply
	err := r.db.QueryRow(ctx, `
		SELECT id, review_id, user_id, comment, created_at, updated_at
		FROM replies WHERE id = $1
	`, id).Scan(&reply.ID, &reply.ReviewID, &reply.UserID, &reply.Comment, &reply.CreatedAt, &reply.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reply", zap.Error(err), zap.String("reply_id", id.String()))
		return nil, fmt.Errorf("find reply: %w", err)
	}
	return &reply, nil
}

func (r *replyRepository) FindByReviewID(ctx context.Context, reviewID uuid.UUID) ([]*entity.ReplyWithAuthor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.review_id, p.user_id, p.comment, p.created_at, p.updated_at, u.username
		FROM replies p
		JOIN users u ON u.id = p.user_id
		WHERE p.review_id = $1
		ORDER BY p.created_at ASC
	`, reviewID)
	if err != nil {
		r.log.Error("Failed to find replies", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("find replies: %w", err)
	}
	defer rows.Close()

	var replies []*entity.ReplyWithAuthor
	for rows.Next() {
		var reply entity.ReplyWithAuthor
		if err := rows.Scan(
			&reply.ID,
			&reply.ReviewID,
			&reply.UserID,
			&reply.Comment,
			&reply.CreatedAt,
			&reply.UpdatedAt,
			&reply.Username,
		); err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		replies = append(replies, &reply)
	}
	return replies, rows.Err()
}

func (r *replyRepository) Update(ctx context.Context, reply *entity.Reply) error {
	result, err := r.db.Exec(ctx,
		`UPDATE replies SET comment = $2, updated_at = $3 WHERE id = $1`,
		reply.ID, reply.Comment, reply.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update reply", zap.Error(err), zap.String("reply_id", reply.ID.String()))
		return fmt.Errorf("update reply: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("reply not found")
	}
	return nil
}

func (r *replyRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return deleteRepliesTx(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		r.log.Error("Failed to delete reply", zap.Error(err), zap.String("reply_id", id.String()))
		return fmt.Errorf("delete reply: %w", err)
	}
	return nil
}
