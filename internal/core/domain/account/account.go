package account

import (
	"context"
	"errors"
	"fmt"
	"passreset/internal/core/domain/common"
)

type RawPassword string

// RejectedError means the provider processed the request but refused to set
// the password (e.g. the email is not a customer of the product). This is a
// normal negative outcome, not an infrastructure fault.
type RejectedError struct {
	StatusCode int
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("account provider rejected password change, status=%d", e.StatusCode)
}

func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}

// Provider is the external system of record for account passwords.
type Provider interface {
	SetPassword(ctx context.Context, email common.Email, password RawPassword) error
}
