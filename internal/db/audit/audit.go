package audit

import (
	"context"
	"passreset/internal/core/domain/audit"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/db"
)

const appendQuery = `
INSERT INTO logs (kind, remote_addr, email, message, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type PgxAuditLog struct {
	db db.DBTX
}

func NewPgxAuditLog(db db.DBTX) *PgxAuditLog {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxAuditLog{db: db}
}

func (l *PgxAuditLog) Append(ctx context.Context, record audit.Record) error {
	_, err := l.db.Exec(
		ctx,
		appendQuery,
		int16(record.Kind),
		record.RemoteAddr,
		string(record.Email),
		record.Message,
		record.CreatedAt,
	)
	return err
}
