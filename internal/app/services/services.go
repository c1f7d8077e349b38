package services

import (
	"passreset/internal/app/deps"
	"passreset/internal/core/services"
	confirmreset "passreset/internal/core/services/confirm_reset"
	requestreset "passreset/internal/core/services/request_reset"
	validatetoken "passreset/internal/core/services/validate_token"
)

type Services struct {
	RequestReset  services.Service[requestreset.Input, requestreset.Result]
	ValidateToken services.Service[validatetoken.Input, validatetoken.Result]
	ConfirmReset  services.Service[confirmreset.Input, confirmreset.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RequestReset = requestreset.New(
		deps.Logger,
		deps.TokenRepository,
		deps.TokenGenerator,
		deps.AuditLog,
		deps.ResetLinkSender,
		deps.Config.PublicBaseURL,
		deps.Config.TokenTTL(),
		deps.Now,
	)
	s.ValidateToken = validatetoken.New(
		deps.Logger,
		deps.TokenRepository,
		deps.AuditLog,
		deps.Now,
	)
	s.ConfirmReset = confirmreset.New(
		deps.Logger,
		deps.TokenRepository,
		deps.AuditLog,
		deps.AccountProvider,
		deps.Now,
	)

	return s
}
