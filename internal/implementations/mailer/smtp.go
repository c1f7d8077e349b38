package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"passreset/internal/core/domain/common"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const emailSubject = "Password reset request"

type emailTemplateParams struct {
	Link string
}

type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	useTLS   bool
	from     string

	htmlTemplate *template.Template
	textTemplate *texttemplate.Template
}

func NewSMTPSender(
	host string,
	port int,
	username string,
	password string,
	useTLS bool,
	from string,
) *SMTPSender {
	return &SMTPSender{
		host:         host,
		port:         port,
		username:     username,
		password:     password,
		useTLS:       useTLS,
		from:         from,
		htmlTemplate: template.Must(template.ParseFS(templatesFS, "templates/reset_email.html.tmpl")),
		textTemplate: texttemplate.Must(texttemplate.ParseFS(templatesFS, "templates/reset_email.txt.tmpl")),
	}
}

// SendResetLink reports accepted=false without an error when the server
// refuses the recipient, any other SMTP failure is a transport error.
func (s *SMTPSender) SendResetLink(
	ctx context.Context,
	email common.Email,
	link string,
) (accepted bool, err error) {
	message, err := s.buildMessage(string(email), link)
	if err != nil {
		return false, err
	}

	client, err := s.connect(ctx)
	if err != nil {
		return false, err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return false, err
	}
	if err := client.Mail(s.from); err != nil {
		return false, err
	}
	if err := client.Rcpt(string(email)); err != nil {
		return false, nil
	}
	w, err := client.Data()
	if err != nil {
		return false, err
	}
	if _, err := w.Write(message); err != nil {
		w.Close()
		return false, err
	}
	if err := w.Close(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SMTPSender) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))

	var conn net.Conn
	var err error
	if s.useTLS {
		dialer := tls.Dialer{Config: &tls.Config{ServerName: s.host}}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	} else {
		var dialer net.Dialer
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	// Port 587 servers expect the connection to be upgraded via STARTTLS
	// before AUTH.
	if !s.useTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
				client.Close()
				return nil, err
			}
		}
	}
	return client, nil
}

func (s *SMTPSender) buildMessage(to string, link string) ([]byte, error) {
	params := emailTemplateParams{Link: link}

	var textBody bytes.Buffer
	if err := s.textTemplate.Execute(&textBody, params); err != nil {
		return nil, err
	}
	var htmlBody bytes.Buffer
	if err := s.htmlTemplate.Execute(&htmlBody, params); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	alternative := multipart.NewWriter(&msg)

	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", emailSubject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n", alternative.Boundary())
	fmt.Fprintf(&msg, "\r\n")

	part, err := alternative.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=\"utf-8\""},
	})
	if err != nil {
		return nil, err
	}
	part.Write(textBody.Bytes())

	part, err = alternative.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=\"utf-8\""},
	})
	if err != nil {
		return nil, err
	}
	part.Write(htmlBody.Bytes())

	if err := alternative.Close(); err != nil {
		return nil, err
	}
	return msg.Bytes(), nil
}
