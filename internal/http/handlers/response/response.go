package response

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

const PageIndex = "index.html.tmpl"
const PageCheckEmail = "check_email.html.tmpl"
const PageResetForm = "reset_form.html.tmpl"
const PageStatus = "status.html.tmpl"

// User-facing outcome texts. The invalid-token text deliberately does not
// distinguish expired, consumed, superseded and unknown tokens.
const StatusInvalidToken = "Unable to reset password. The request link may have expired or has already been used."
const StatusSuccess = "Your password has been reset!"
const StatusRejected = "Unable to reset password. Your account email may not be valid for this product."

type ResetFormData struct {
	Token string
}

type StatusData struct {
	Status string
}

func RenderBadRequest(rw http.ResponseWriter) {
	http.Error(rw, "invalid request", http.StatusBadRequest)
}

func RenderInternalError(rw http.ResponseWriter) {
	http.Error(rw, "request failed", http.StatusInternalServerError)
}

// RenderPage always writes status 200, negative business outcomes are shown
// as regular pages.
func RenderPage(rw http.ResponseWriter, page string, data interface{}) {
	var content bytes.Buffer
	if err := pages.ExecuteTemplate(&content, page, data); err != nil {
		RenderInternalError(rw)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	rw.Write(content.Bytes())
}
