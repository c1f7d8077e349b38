package request

import (
	"net/http"
	"passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/services"
	requestreset "passreset/internal/core/services/request_reset"
	"passreset/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service    services.Service[requestreset.Input, requestreset.Result]
	isTestMode bool
}

func New(
	service services.Service[requestreset.Input, requestreset.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{Email: r.URL.Query().Get("email")}
	if err := input.Validate(); err != nil {
		response.RenderBadRequest(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		requestreset.Input{
			Email:      common.NewEmail(input.Email),
			RemoteAddr: r.RemoteAddr,
		},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	// The page is identical whether or not the email has an account and
	// whether or not the message was accepted, to prevent enumeration.
	if h.isTestMode {
		rw.Header().Set("X-Reset-Token", string(result.Token))
	}
	response.RenderPage(rw, response.PageCheckEmail, nil)
}
