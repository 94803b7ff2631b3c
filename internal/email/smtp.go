package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/caresync-api/internal/config"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPService sends through an authenticated SMTP relay. gomail upgrades the
// connection with STARTTLS when the server offers it.
type SMTPService struct {
	dialer   dialer
	from     string
	fromName string
}

func NewSMTPService(cfg config.EmailConfig) *SMTPService {
	return &SMTPService{
		dialer:   gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.Address, cfg.Password),
		from:     cfg.Address,
		fromName: cfg.FromName,
	}
}

func (s *SMTPService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		to = s.from
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)
	m.AddAlternative("text/html", RenderReminder(subject, content))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
