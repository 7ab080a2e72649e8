package mailer

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer - внешний клиент уведомлений; приложение его только потребляет.
type Mailer interface {
	SendBuyerInvite(ctx context.Context, emailAddress, inviteLink string) error
}

// SESMailer отправляет письма-приглашения через AWS SES.
type SESMailer struct {
	client *ses.Client
	from   string
}

// NewSESMailer создаёт новый экземпляр SESMailer.
func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

// SendBuyerInvite отправляет ссылку для создания аккаунта покупателя.
func (m *SESMailer) SendBuyerInvite(ctx context.Context, emailAddress, inviteLink string) error {
	subject := "Create your Digital Marketplace account"
	body := fmt.Sprintf(
		"Follow this link to create your account:\r\n\r\n%s\r\n\r\n"+
			"If you did not request this email you can ignore it.", inviteLink)

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      &m.from,
		Destination: &types.Destination{ToAddresses: []string{emailAddress}},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body:    &types.Body{Text: &types.Content{Data: &body}},
		},
	})
	if err != nil {
		return fmt.Errorf("send buyer invite: %w", err)
	}
	return nil
}
