package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/jwalitptl/caresync-api/internal/config"
)

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridService struct {
	client   sendgridClient
	from     string
	fromName string
}

func NewSendGridService(cfg config.EmailConfig) *SendGridService {
	return &SendGridService{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:     cfg.Address,
		fromName: cfg.FromName,
	}
}

func (s *SendGridService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if to == "" {
		to = s.from
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		content,
		RenderReminder(subject, content),
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: sendgrid returned status %d", response.StatusCode)
	}
	return nil
}
