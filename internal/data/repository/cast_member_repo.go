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

type CastMemberRepository interface {
	Create(ctx context.Context, member *entity.CastMember) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CastMember, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.CastMember, error)
	FindAll(ctx context.Context, search *string, limit, offset int) ([]*entity.CastMember, error)
	CountAll(ctx context.Context, search *string) (int64, error)
	Update(ctx context.Context, member *entity.CastMember) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindFilmography(ctx context.Context, id uuid.UUID) ([]*entity.Filmography, error)
}

type castMemberRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCastMemberRepository(db database.PgxIface, log *zap.Logger) CastMemberRepository {
	return &castMemberRepository{
		db:  db,
		log: log.With(zap.String("repository", "cast_member")),
	}
}

const castMemberColumns = `id, name, bio, birth_date, photo_url, created_at, updated_at`

func scanCastMember(row pgx.Row) (*entity.CastMember, error) {
	var m entity.CastMember
	if err := row.Scan(&m.ID, &m.Name, &m.Bio, &m.BirthDate, &m.PhotoURL, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func collectCastMembers(rows pgx.Rows) ([]*entity.CastMember, error) {
	defer rows.Close()

	var members []*entity.CastMember
	for rows.Next() {
		member, err := scanCastMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cast member: %w", err)
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *castMemberRepository) Create(ctx context.Context, member *entity.CastMember) error {
	query := `
		INSERT INTO cast_members (id, name, bio, birth_date, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		member.ID,
		member.Name,
		member.Bio,
		member.BirthDate,
		member.PhotoURL,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create cast member",
			zap.Error(err),
			zap.String("name", member.Name),
		)
		return fmt.Errorf("create cast member: %w", err)
	}
	return nil
}

func (r *castMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CastMember, error) {
	member, err := scanCastMember(r.db.QueryRow(ctx,
		`SELECT `+castMemberColumns+` FROM cast_members WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cast member",
			zap.Error(err),
			zap.String("cast_member_id", id.String()),
		)
		return nil, fmt.Errorf("find cast member: %w", err)
	}
	return member, nil
}

func (r *castMemberRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.CastMember, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+castMemberColumns+` FROM cast_members WHERE id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to find cast members by ids", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find cast members: %w", err)
	}
	return collectCastMembers(rows)
}

func (r *castMemberRepository) FindAll(ctx context.Context, search *string, limit, offset int) ([]*entity.CastMember, error) {
	query := `
		SELECT ` + castMemberColumns + `
		FROM cast_members
		WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to list cast members", zap.Error(err))
		return nil, fmt.Errorf("list cast members: %w", err)
	}
	return collectCastMembers(rows)
}

func (r *castMemberRepository) CountAll(ctx context.Context, search *string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM cast_members WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%')`,
		search,
	).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count cast members", zap.Error(err))
		return 0, fmt.Errorf("count cast members: %w", err)
	}
	return total, nil
}

func (r *castMemberRepository) Update(ctx context.Context, member *entity.CastMember) error {
	result, err := r.db.Exec(ctx, `
		UPDATE cast_members
		SET name = $2, bio = $3, birth_date = $4, photo_url = $5, updated_at = $6
		WHERE id = $1
	`, member.ID, member.Name, member.Bio, member.BirthDate, member.PhotoURL, member.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update cast member",
			zap.Error(err),
			zap.String("cast_member_id", member.ID.String()),
		)
		return fmt.Errorf("update cast member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("cast member not found")
	}
	return nil
}

// Delete removes the member together with its movie links.
func (r *castMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM movie_cast WHERE cast_member_id = $1`, id); err != nil {
			return fmt.Errorf("delete cast links: %w", err)
		}
		result, err := tx.Exec(ctx, `DELETE FROM cast_members WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("cast member not found")
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to delete cast member",
			zap.Error(err),
			zap.String("cast_member_id", id.String()),
		)
		return fmt.Errorf("delete cast member: %w", err)
	}
	return nil
}

func (r *castMemberRepository) FindFilmography(ctx context.Context, id uuid.UUID) ([]*entity.Filmography, error) {
	query := `
		SELECT mc.movie_id, mc.cast_member_id, mc.character, mc.billing_order, m.title, m.year
		FROM movie_cast mc
		JOIN movies m ON m.id = mc.movie_id
		WHERE mc.cast_member_id = $1 AND m.hidden = FALSE
		ORDER BY m.year DESC
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to find filmography",
			zap.Error(err),
			zap.String("cast_member_id", id.String()),
		)
		return nil, fmt.Errorf("find filmography: %w", err)
	}
	defer rows.Close()

	var films []*entity.Filmography
	for rows.Next() {
		var f entity.Filmography
		if err := rows.Scan(&f.MovieID, &f.CastMemberID, &f.Character, &f.BillingOrder, &f.Title, &f.Year); err != nil {
			return nil, fmt.Errorf("scan filmography: %w", err)
		}
		films = append(films, &f)
	}
	return films, rows.Err()
}
