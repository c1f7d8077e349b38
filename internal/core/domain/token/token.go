package token

import (
	"context"
	"errors"
	"passreset/internal/core/domain/common"
	"time"
)

var ErrTokenDoesNotExist = errors.New("reset token does not exist")

// Token is an opaque capability string granting one-time authority to reset
// the password of the account it was issued for.
type Token string

type ResetToken struct {
	Email     common.Email
	Token     Token
	ExpiresAt time.Time
}

func (t ResetToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

type UpsertInput struct {
	Email     common.Email
	Token     Token
	ExpiresAt time.Time
}

// Repository persists at most one live reset token per email. Upsert must
// replace an existing row for the same email in a single atomic statement.
type Repository interface {
	Upsert(ctx context.Context, input UpsertInput) (ResetToken, error)
	// GetByToken returns the row whether or not it has expired,
	// or ErrTokenDoesNotExist.
	GetByToken(ctx context.Context, t Token) (ResetToken, error)
	// Delete is idempotent, deleting an unknown token is not an error.
	Delete(ctx context.Context, t Token) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

type Generator interface {
	GenerateResetToken() Token
}
