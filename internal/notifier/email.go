package notifier

import (
	"context"
	"errors"

	"github.com/jwalitptl/caresync-api/internal/email"
	"github.com/jwalitptl/caresync-api/internal/model"
)

var ErrEmailNotConfigured = errors.New("email channel has no provider configured")

type EmailNotifier struct {
	svc       email.Service
	recipient string
}

// NewEmailNotifier sends to recipient, or to the sender address when empty.
// svc may be nil, in which case every send fails.
func NewEmailNotifier(svc email.Service, recipient string) *EmailNotifier {
	return &EmailNotifier{svc: svc, recipient: recipient}
}

func (n *EmailNotifier) Channel() model.Channel { return model.ChannelEmail }

func (n *EmailNotifier) Notify(ctx context.Context, title, message string) error {
	if n.svc == nil {
		return ErrEmailNotConfigured
	}
	return n.svc.SendCustom(ctx, n.recipient, title, message)
}
