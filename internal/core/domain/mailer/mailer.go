package mailer

import (
	"context"
	"passreset/internal/core/domain/common"
)

// ResetLinkSender delivers the reset-link email. The accepted flag reports
// whether the outbound transport accepted the message for the recipient;
// a non-nil error means the transport itself failed.
type ResetLinkSender interface {
	SendResetLink(ctx context.Context, email common.Email, link string) (accepted bool, err error)
}
