package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/caresync-api/internal/config"
)

// Service delivers a plain message wrapped in the reminder template.
type Service interface {
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

var ErrNotConfigured = errors.New("email is not configured")

// NewService builds the provider named in cfg. It fails when the provider's
// credentials are missing so the caller can keep the channel disabled.
func NewService(cfg config.EmailConfig) (Service, error) {
	switch cfg.Provider {
	case "", "smtp":
		if cfg.Address == "" || cfg.Password == "" {
			return nil, fmt.Errorf("smtp: %w", ErrNotConfigured)
		}
		return NewSMTPService(cfg), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" || cfg.Address == "" {
			return nil, fmt.Errorf("sendgrid: %w", ErrNotConfigured)
		}
		return NewSendGridService(cfg), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
