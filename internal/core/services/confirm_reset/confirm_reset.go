package confirmreset

import (
	"context"
	"errors"
	"fmt"
	"passreset/internal/core/domain/account"
	"passreset/internal/core/domain/audit"
	"passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/token"
	"passreset/internal/core/services"
	"time"
)

type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeInvalidToken Outcome = "invalid_token"
	OutcomeRejected     Outcome = "rejected"
)

type Input struct {
	Token       token.Token
	NewPassword account.RawPassword
	RemoteAddr  string
}

type Result struct {
	Outcome Outcome
	Email   common.Email
}

type service struct {
	log             logging.Logger
	tokenRepository token.Repository
	auditLog        audit.Log
	provider        account.Provider
	now             func() time.Time
}

func New(
	log logging.Logger,
	tokenRepository token.Repository,
	auditLog audit.Log,
	provider account.Provider,
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
	if provider == nil {
		panic(e.NewNilArgumentError("provider"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		tokenRepository: tokenRepository,
		auditLog:        auditLog,
		provider:        provider,
		now:             now,
	}
}

// Run consumes the token on every attempt that found it, whether or not the
// provider accepted the new password. A provider transport fault leaves the
// token in place so the user can retry the same link.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()

	t, err := s.tokenRepository.GetByToken(ctx, input.Token)
	if errors.Is(err, token.ErrTokenDoesNotExist) || (err == nil && t.IsExpired(now)) {
		s.appendAudit(ctx, audit.Record{
			Kind:       audit.KindConfirm,
			RemoteAddr: input.RemoteAddr,
			Email:      t.Email,
			Message:    "invalid token",
			CreatedAt:  now,
		})
		s.log.Info(ctx, "Invalid reset token.", logging.Entry("token", input.Token))
		return Result{Outcome: OutcomeInvalidToken}, nil
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

	outcome := OutcomeSuccess
	message := "success"

	err = s.provider.SetPassword(ctx, t.Email, input.NewPassword)
	var rejected *account.RejectedError
	switch {
	case err == nil:
		s.log.Info(ctx, "Password has been reset.", logging.Entry("email", t.Email))
	case errors.As(err, &rejected):
		outcome = OutcomeRejected
		message = fmt.Sprintf("failed status=%d", rejected.StatusCode)
		s.log.Info(
			ctx,
			"Account provider rejected password change.",
			logging.Entry("email", t.Email),
			logging.Entry("status", rejected.StatusCode),
		)
	default:
		s.log.Error(
			ctx,
			"Could not change password via account provider.",
			logging.Entry("email", t.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.appendAudit(ctx, audit.Record{
		Kind:       audit.KindConfirm,
		RemoteAddr: input.RemoteAddr,
		Email:      t.Email,
		Message:    message,
		CreatedAt:  now,
	})

	if err := s.tokenRepository.Delete(ctx, input.Token); err != nil {
		s.log.Error(
			ctx,
			"Could not consume reset token.",
			logging.Entry("token", input.Token),
			logging.Entry("err", err),
		)
		return result, err
	}

	return Result{Outcome: outcome, Email: t.Email}, nil
}

func (s *service) appendAudit(ctx context.Context, record audit.Record) {
	if err := s.auditLog.Append(ctx, record); err != nil {
		s.log.Error(ctx, "Could not append audit record.", logging.Entry("err", err))
	}
}
