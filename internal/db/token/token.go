package token

import (
	"context"
	"errors"
	"passreset/internal/core/domain/common"
	"passreset/internal/core/domain/token"
	"passreset/internal/db"
	"time"

	e "passreset/internal/core/domain/errors"

	"github.com/jackc/pgx/v4"
)

const upsertQuery = `
INSERT INTO tokens (email, token, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
RETURNING email, token, expires_at
`

const getByTokenQuery = `SELECT email, token, expires_at FROM tokens WHERE token = $1`

const deleteQuery = `DELETE FROM tokens WHERE token = $1`

const deleteExpiredQuery = `DELETE FROM tokens WHERE expires_at <= $1`

type PgxTokenRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxTokenRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxTokenRepository{db: db}
}

// Upsert replaces any existing token for the same email in a single
// statement, the per-email single-active-token invariant relies on it.
func (r *PgxTokenRepository) Upsert(
	ctx context.Context,
	input token.UpsertInput,
) (t token.ResetToken, err error) {
	row := r.db.QueryRow(ctx, upsertQuery, string(input.Email), string(input.Token), input.ExpiresAt)
	return decodeResetToken(row)
}

func (r *PgxTokenRepository) GetByToken(ctx context.Context, tok token.Token) (t token.ResetToken, err error) {
	row := r.db.QueryRow(ctx, getByTokenQuery, string(tok))
	t, err = decodeResetToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, token.ErrTokenDoesNotExist
	}
	return t, err
}

func (r *PgxTokenRepository) Delete(ctx context.Context, tok token.Token) error {
	_, err := r.db.Exec(ctx, deleteQuery, string(tok))
	return err
}

func (r *PgxTokenRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.Exec(ctx, deleteExpiredQuery, now)
	return err
}

func decodeResetToken(row pgx.Row) (t token.ResetToken, err error) {
	var email, tok string
	var expiresAt time.Time
	if err := row.Scan(&email, &tok, &expiresAt); err != nil {
		return t, err
	}
	t.Email = common.Email(email)
	t.Token = token.Token(tok)
	t.ExpiresAt = expiresAt
	return t, nil
}
