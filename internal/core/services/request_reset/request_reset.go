package requestreset

import (
	"context"
	"net/url"
	"passreset/internal/core/domain/audit"
	"passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/mailer"
	"passreset/internal/core/domain/token"
	"passreset/internal/core/services"
	"path"
	"time"
)

type Input struct {
	Email      common.Email
	RemoteAddr string
}

type Result struct {
	Token token.Token
}

type service struct {
	log             logging.Logger
	tokenRepository token.Repository
	tokenGenerator  token.Generator
	auditLog        audit.Log
	sender          mailer.ResetLinkSender
	baseURL         url.URL
	tokenTTL        time.Duration
	now             func() time.Time
}

func New(
	log logging.Logger,
	tokenRepository token.Repository,
	tokenGenerator token.Generator,
	auditLog audit.Log,
	sender mailer.ResetLinkSender,
	baseURL url.URL,
	tokenTTL time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if auditLog == nil {
		panic(e.NewNilArgumentError("auditLog"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		tokenRepository: tokenRepository,
		tokenGenerator:  tokenGenerator,
		auditLog:        auditLog,
		sender:          sender,
		baseURL:         baseURL,
		tokenTTL:        tokenTTL,
		now:             now,
	}
}

// Run never reveals whether the email belongs to an account. It issues a new
// token unconditionally, superseding any previous one for the same email.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()

	if err := s.tokenRepository.DeleteExpired(ctx, now); err != nil {
		s.log.Error(ctx, "Could not purge expired reset tokens.", logging.Entry("err", err))
		return result, err
	}

	t, err := s.tokenRepository.Upsert(ctx, token.UpsertInput{
		Email:     input.Email,
		Token:     s.tokenGenerator.GenerateResetToken(),
		ExpiresAt: now.Add(s.tokenTTL),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue reset token.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	accepted, err := s.sender.SendResetLink(ctx, t.Email, s.resetLink(t.Token))
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send reset link.",
			logging.Entry("email", t.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	message := "email rejected"
	if accepted {
		message = "email accepted"
	}
	s.appendAudit(ctx, audit.Record{
		Kind:       audit.KindRequest,
		RemoteAddr: input.RemoteAddr,
		Email:      t.Email,
		Message:    message,
		CreatedAt:  now,
	})

	s.log.Info(
		ctx,
		"Password reset link has been issued.",
		logging.Entry("email", t.Email),
		logging.Entry("accepted", accepted),
		logging.Entry("expiresAt", t.ExpiresAt),
	)
	return Result{Token: t.Token}, nil
}

func (s *service) resetLink(t token.Token) string {
	u := s.baseURL
	u.Path = path.Join(u.Path, "validate")
	q := u.Query()
	q.Set("token", string(t))
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *service) appendAudit(ctx context.Context, record audit.Record) {
	if err := s.auditLog.Append(ctx, record); err != nil {
		s.log.Error(ctx, "Could not append audit record.", logging.Entry("err", err))
	}
}
