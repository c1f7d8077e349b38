package confirm

import (
	"net/http"
	"passreset/internal/core/domain/account"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/token"
	"passreset/internal/core/services"
	confirmreset "passreset/internal/core/services/confirm_reset"
	"passreset/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[confirmreset.Input, confirmreset.Result]
}

func New(service services.Service[confirmreset.Input, confirmreset.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token    string
	Password string
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.RenderBadRequest(rw)
		return
	}
	input := Input{
		Token:    r.PostFormValue("token"),
		Password: r.PostFormValue("password"),
	}
	if err := input.Validate(); err != nil {
		response.RenderBadRequest(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		confirmreset.Input{
			Token:       token.Token(input.Token),
			NewPassword: account.RawPassword(input.Password),
			RemoteAddr:  r.RemoteAddr,
		},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	status := response.StatusInvalidToken
	switch result.Outcome {
	case confirmreset.OutcomeSuccess:
		status = response.StatusSuccess
	case confirmreset.OutcomeRejected:
		status = response.StatusRejected
	}
	response.RenderPage(rw, response.PageStatus, response.StatusData{Status: status})
}
