package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"youapp-client/internal/domain"
)

// ProfileRepository guarda un único perfil por cuenta.
type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) error
	Update(ctx context.Context, profile domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Create(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO profiles (user_id, name, birthday, horoscope, zodiac, height, weight, interests, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Birthday,
		profile.Horoscope,
		profile.Zodiac,
		profile.Height,
		profile.Weight,
		nonNil(profile.Interests),
		profile.UpdatedAt,
	)
	return mapPgError(err)
}

func (r *PgProfileRepository) Update(ctx context.Context, profile domain.Profile) error {
	const query = `
		UPDATE profiles
		SET name = $2, birthday = $3, horoscope = $4, zodiac = $5, height = $6, weight = $7, interests = $8, updated_at = $9
		WHERE user_id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Birthday,
		profile.Horoscope,
		profile.Zodiac,
		profile.Height,
		profile.Weight,
		nonNil(profile.Interests),
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgProfileRepository) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	const query = `
		SELECT user_id, name, birthday, horoscope, zodiac, height, weight, interests, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Name,
		&p.Birthday,
		&p.Horoscope,
		&p.Zodiac,
		&p.Height,
		&p.Weight,
		&p.Interests,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}
	p.Interests = nonNil(p.Interests)
	return p, err
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
