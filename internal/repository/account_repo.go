package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"youapp-client/internal/domain"
)

// ErrDuplicate indica que se violó una restricción única.
var ErrDuplicate = errors.New("duplicate record")

const pgUniqueViolation = "23505"

// AccountRepository define el contrato de persistencia para cuentas.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// PgAccountRepository implementa AccountRepository usando pgxpool.
type PgAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPgAccountRepository(pool *pgxpool.Pool) *PgAccountRepository {
	return &PgAccountRepository{pool: pool}
}

func (r *PgAccountRepository) Create(ctx context.Context, account domain.Account) error {
	const query = `
		INSERT INTO accounts (id, email, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Username,
		account.PasswordHash,
		account.CreatedAt,
	)
	return mapPgError(err)
}

func (r *PgAccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PgAccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.getBy(ctx, "email", email)
}

func (r *PgAccountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.getBy(ctx, "username", username)
}

// getBy recibe siempre una columna fija del propio paquete, nunca input del usuario.
func (r *PgAccountRepository) getBy(ctx context.Context, column, value string) (domain.Account, error) {
	query := `
		SELECT id, email, username, password_hash, created_at
		FROM accounts
		WHERE ` + column + ` = $1
	`
	var a domain.Account
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&a.ID,
		&a.Email,
		&a.Username,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, err
	}
	return a, err
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}
