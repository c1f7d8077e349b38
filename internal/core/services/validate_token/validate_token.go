package validatetoken

import (
	"context"
	"errors"
	"passreset/internal/core/domain/audit"
	"passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/token"
	"passreset/internal/core/services"
	"time"
)

type Input struct {
	Token      token.Token
	RemoteAddr string
}

type Result struct {
	Valid bool
	Email common.Email
}

type service struct {
	log             logging.Logger
	tokenRepository token.Repository
	auditLog        audit.Log
	now             func() time.Time
}

func New(
	log logging.Logger,
	tokenRepository token.Repository,
	auditLog audit.Log,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if auditLog == nil {
		panic(e.NewNilArgumentError("auditLog"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		tokenRepository: tokenRepository,
		auditLog:        auditLog,
		now:             now,
	}
}

// Run checks the token without consuming it, the link may be revisited any
// number of times before the confirm stage.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()

	t, err := s.tokenRepository.GetByToken(ctx, input.Token)
	if errors.Is(err, token.ErrTokenDoesNotExist) || (err == nil && t.IsExpired(now)) {
		s.appendAudit(ctx, audit.Record{
			Kind:       audit.KindValidate,
			RemoteAddr: input.RemoteAddr,
			Email:      t.Email,
			Message:    "invalid token",
			CreatedAt:  now,
		})
		s.log.Info(ctx, "Invalid reset token.", logging.Entry("token", input.Token))
		return Result{Valid: false}, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not look up reset token.",
			logging.Entry("token", input.Token),
			logging.Entry("err", err),
		)
		return result, err
	}

	return Result{Valid: true, Email: t.Email}, nil
}

func (s *service) appendAudit(ctx context.Context, record audit.Record) {
	if err := s.auditLog.Append(ctx, record); err != nil {
		s.log.Error(ctx, "Could not append audit record.", logging.Entry("err", err))
	}
}
