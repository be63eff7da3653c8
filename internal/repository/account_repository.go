package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"voyago/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already exists")
)

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts the account. The unique index on email makes the
// check-and-insert atomic; concurrent signups for the same address
// resolve to exactly one row.
func (r *AccountRepository) Create(ctx context.Context, account models.Account) error {
	const query = `
		INSERT INTO accounts (
			id, email, password_hash, first_name, last_name, phone, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		NormalizeEmail(account.Email),
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.Phone,
		account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	const query = `
		SELECT id, email, password_hash, first_name, last_name, phone, created_at, last_login_at
		FROM accounts WHERE email = $1
	`

	row := r.pool.QueryRow(ctx, query, NormalizeEmail(email))
	return scanAccount(row)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (models.Account, error) {
	const query = `
		SELECT id, email, password_hash, first_name, last_name, phone, created_at, last_login_at
		FROM accounts WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	return scanAccount(row)
}

// UpdateLastLogin is best-effort; callers treat failure as non-fatal.
func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	const query = `
		UPDATE accounts SET last_login_at = $2 WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var account models.Account
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&account.Phone,
		&account.CreatedAt,
		&account.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		return models.Account{}, err
	}
	return account, nil
}
