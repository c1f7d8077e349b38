package validate

import (
	"net/http"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/token"
	"passreset/internal/core/services"
	validatetoken "passreset/internal/core/services/validate_token"
	"passreset/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[validatetoken.Input, validatetoken.Result]
}

func New(service services.Service[validatetoken.Input, validatetoken.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token string
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{Token: r.URL.Query().Get("token")}
	if err := input.Validate(); err != nil {
		response.RenderBadRequest(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		validatetoken.Input{
			Token:      token.Token(input.Token),
			RemoteAddr: r.RemoteAddr,
		},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	if !result.Valid {
		response.RenderPage(rw, response.PageStatus, response.StatusData{Status: response.StatusInvalidToken})
		return
	}
	response.RenderPage(rw, response.PageResetForm, response.ResetFormData{Token: input.Token})
}
