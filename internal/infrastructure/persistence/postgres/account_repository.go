package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/domain"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
)

const uniqueViolation = "23505"

const accountColumns = `id, username, email, secret_digest, profile_picture, verified,
	verification_token, verification_token_expiry, reset_token, reset_token_expiry,
	created_at, updated_at`

const (
	createAccountSQL = `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	getByIDSQL       = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	getByUsernameSQL = `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	getByEmailSQL    = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	getByEitherSQL   = `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1 OR email = $2 LIMIT 1`

	// Consumption is a single conditional update matching token and
	// liveness, so two racing requests cannot both succeed.
	consumeVerificationSQL = `UPDATE accounts
		SET verified = TRUE, verification_token = NULL, verification_token_expiry = NULL, updated_at = NOW()
		WHERE verification_token = $1 AND verification_token_expiry > NOW()
		RETURNING ` + accountColumns

	getByResetTokenSQL = `SELECT ` + accountColumns + ` FROM accounts
		WHERE reset_token = $1 AND reset_token_expiry > NOW()`

	setResetTokenSQL = `UPDATE accounts
		SET reset_token = $2, reset_token_expiry = $3, updated_at = NOW()
		WHERE id = $1`

	consumeResetSQL = `UPDATE accounts
		SET secret_digest = $4, reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW()
		WHERE id = $1 AND reset_token = $2 AND reset_token_expiry > $3`

	updateDigestSQL = `UPDATE accounts SET secret_digest = $2, updated_at = NOW() WHERE id = $1`
)

// AccountRepository implements ports.AccountRepository on pgx.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, createAccountSQL,
		account.ID.UUID, account.Username, account.Email, account.SecretDigest,
		account.ProfilePicture, account.Verified,
		account.VerificationToken, account.VerificationTokenExpiry,
		account.ResetToken, account.ResetTokenExpiry,
		account.CreatedAt, account.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domerrors.ErrDuplicateAccount
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	return r.getOne(ctx, getByIDSQL, id.UUID)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.getOne(ctx, getByUsernameSQL, username)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, getByEmailSQL, email)
}

func (r *AccountRepository) GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.Account, error) {
	return r.getOne(ctx, getByEitherSQL, username, email)
}

func (r *AccountRepository) ConsumeVerificationToken(ctx context.Context, token string) (*domain.Account, error) {
	account, err := r.getOne(ctx, consumeVerificationSQL, token)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domerrors.ErrTokenInvalidOrExpired
	}
	return account, nil
}

func (r *AccountRepository) GetByResetToken(ctx context.Context, token string) (*domain.Account, error) {
	return r.getOne(ctx, getByResetTokenSQL, token)
}

func (r *AccountRepository) SetResetToken(ctx context.Context, id domain.AccountID, token string, expiry time.Time) error {
	tag, err := r.pool.Exec(ctx, setResetTokenSQL, id.UUID, token, expiry)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ConsumeResetToken(ctx context.Context, id domain.AccountID, token, newDigest string) error {
	tag, err := r.pool.Exec(ctx, consumeResetSQL, id.UUID, token, time.Now(), newDigest)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateSecretDigest(ctx context.Context, id domain.AccountID, newDigest string) error {
	tag, err := r.pool.Exec(ctx, updateDigestSQL, id.UUID, newDigest)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) getOne(ctx context.Context, sql string, args ...interface{}) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, sql, args...)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var id uuid.UUID
	err := row.Scan(&id, &a.Username, &a.Email, &a.SecretDigest, &a.ProfilePicture,
		&a.Verified, &a.VerificationToken, &a.VerificationTokenExpiry,
		&a.ResetToken, &a.ResetTokenExpiry, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ID = domain.NewAccountID(id)
	return &a, nil
}

var _ ports.AccountRepository = (*AccountRepository)(nil)
