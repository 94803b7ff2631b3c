package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwalitptl/caresync-api/internal/model"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
	"github.com/jwalitptl/caresync-api/pkg/logger"
)

type NotificationServicer interface {
	Settings() model.ChannelSettings
	Update(req *model.UpdateChannelSettingsRequest) model.ChannelSettings
	Test(ctx context.Context, channel string) (*model.ChannelResult, error)
}

// Tester sends one test message on a channel.
type Tester interface {
	Test(ctx context.Context, ch model.Channel) model.ChannelResult
}

// Service owns the channel toggles for the process. They start from
// configuration and live in memory only.
type Service struct {
	mu       sync.RWMutex
	settings model.ChannelSettings
	tester   Tester
	log      *logger.Logger
}

func NewService(initial model.ChannelSettings, tester Tester, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{settings: initial, tester: tester, log: log}
}

func (s *Service) Settings() model.ChannelSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Service) Update(req *model.UpdateChannelSettingsRequest) model.ChannelSettings {
	s.mu.Lock()
	s.settings = req.Apply(s.settings)
	updated := s.settings
	s.mu.Unlock()

	s.log.Info("notification settings updated",
		"email", updated.Email,
		"desktop", updated.Desktop,
		"mobile", updated.Mobile,
	)
	return updated
}

// Test sends a test message whether or not the channel is enabled.
func (s *Service) Test(ctx context.Context, channel string) (*model.ChannelResult, error) {
	ch, ok := model.ParseChannel(channel)
	if !ok {
		return nil, apperrors.NewValidation(fmt.Sprintf("unknown channel %q", channel), nil)
	}
	res := s.tester.Test(ctx, ch)
	return &res, nil
}
