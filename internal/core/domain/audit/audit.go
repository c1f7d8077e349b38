package audit

import (
	"context"
	"passreset/internal/core/domain/common"
	"time"
)

type Kind int16

const (
	KindRequest  Kind = 1
	KindValidate Kind = 2
	KindConfirm  Kind = 3
)

// Record describes one reset-flow event. Email may be empty when the event
// could not be attributed to an account (e.g. an unknown token).
type Record struct {
	Kind       Kind
	RemoteAddr string
	Email      common.Email
	Message    string
	CreatedAt  time.Time
}

// Log is append-only, records are never mutated or deleted.
type Log interface {
	Append(ctx context.Context, record Record) error
}
