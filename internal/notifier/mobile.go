package notifier

import (
	"context"

	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/pkg/logger"
)

// MobileNotifier has no push provider behind it. It records the intent and
// reports success.
type MobileNotifier struct {
	log *logger.Logger
}

func NewMobileNotifier(log *logger.Logger) *MobileNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &MobileNotifier{log: log}
}

func (n *MobileNotifier) Channel() model.Channel { return model.ChannelMobile }

func (n *MobileNotifier) Notify(ctx context.Context, title, message string) error {
	n.log.Info("📱 Mobile notification would be sent", "title", title, "message", message)
	return nil
}
