package index

import (
	"net/http"
	"passreset/internal/http/handlers/response"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.RenderPage(rw, response.PageIndex, nil)
}
