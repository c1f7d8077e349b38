package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"passreset/internal/core/domain/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender   string
	template string
}

func NewSESSender(awsConfig aws.Config, sender string, template string) *SESSender {
	return &SESSender{
		ses:      ses.NewFromConfig(awsConfig),
		sender:   sender,
		template: template,
	}
}

type resetLinkTemplateParams struct {
	PasswordResetUrl string `json:"passwordResetUrl"`
}

func (s *SESSender) SendResetLink(
	ctx context.Context,
	email common.Email,
	link string,
) (accepted bool, err error) {
	templateParamsBytes, err := json.Marshal(resetLinkTemplateParams{PasswordResetUrl: link})
	if err != nil {
		return false, err
	}
	templateParams := string(templateParamsBytes)

	to := string(email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{to},
			},
			Template:     &s.template,
			TemplateData: &templateParams,
		},
	)
	var rejected *types.MessageRejected
	if errors.As(err, &rejected) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
