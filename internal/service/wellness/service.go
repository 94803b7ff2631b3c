package wellness

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/internal/repository"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
	"github.com/jwalitptl/caresync-api/pkg/logger"
	"github.com/jwalitptl/caresync-api/pkg/validator"
)

const (
	DefaultListLimit = 30
	MaxListLimit     = 365
)

type WellnessServicer interface {
	LogMood(ctx context.Context, now time.Time, req *model.LogMoodRequest) (*model.MoodEntry, error)
	Moods(ctx context.Context, limit int) ([]*model.MoodEntry, error)
	TodayMood(ctx context.Context, now time.Time) (*model.MoodEntry, error)
	Trend(ctx context.Context, limit int) ([]*model.MoodEntry, error)
	AddJournal(ctx context.Context, now time.Time, req *model.CreateJournalRequest) (*model.JournalEntry, error)
	Journals(ctx context.Context, limit int) ([]*model.JournalEntry, error)
}

type Service struct {
	moods     repository.MoodRepository
	journals  repository.JournalRepository
	validator validator.Validator
	log       *logger.Logger
}

func NewService(moods repository.MoodRepository, journals repository.JournalRepository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		moods:     moods,
		journals:  journals,
		validator: validator.New(),
		log:       log,
	}
}

// LogMood records a check-in on now's date. Several check-ins per day are kept.
func (s *Service) LogMood(ctx context.Context, now time.Time, req *model.LogMoodRequest) (*model.MoodEntry, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	opt, _ := model.MoodOptionFor(req.Score)

	mood := &model.MoodEntry{Score: opt.Score, Emoji: opt.Emoji, Date: model.DateOf(now)}
	if _, err := s.moods.Create(ctx, mood); err != nil {
		return nil, apperrors.NewStoreUnavailable("save mood", err)
	}
	s.log.Info("mood logged", "score", mood.Score, "date", mood.Date)
	return mood, nil
}

// Moods returns the most recent check-ins first.
func (s *Service) Moods(ctx context.Context, limit int) ([]*model.MoodEntry, error) {
	moods, err := s.moods.Recent(ctx, clampLimit(limit))
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("load moods", err)
	}
	return moods, nil
}

// TodayMood returns the latest check-in on now's date.
func (s *Service) TodayMood(ctx context.Context, now time.Time) (*model.MoodEntry, error) {
	moods, err := s.moods.Recent(ctx, 1)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("load moods", err)
	}
	if len(moods) == 0 || moods[0].Date != model.DateOf(now) {
		return nil, apperrors.NewNotFound("mood for today", nil)
	}
	return moods[0], nil
}

// Trend returns the recent check-ins oldest first, ready for plotting.
func (s *Service) Trend(ctx context.Context, limit int) ([]*model.MoodEntry, error) {
	moods, err := s.Moods(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(moods)-1; i < j; i, j = i+1, j-1 {
		moods[i], moods[j] = moods[j], moods[i]
	}
	return moods, nil
}

func (s *Service) AddJournal(ctx context.Context, now time.Time, req *model.CreateJournalRequest) (*model.JournalEntry, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Kind == "" {
		req.Kind = model.JournalFull
	}
	if req.Kind == model.JournalQuick && utf8.RuneCountInString(req.Text) > model.QuickJournalMaxChars {
		return nil, apperrors.NewValidation(fmt.Sprintf("quick journal entries are limited to %d characters", model.QuickJournalMaxChars), nil)
	}

	entry := &model.JournalEntry{Text: req.Text, Kind: req.Kind, Date: model.DateOf(now)}
	if _, err := s.journals.Create(ctx, entry); err != nil {
		return nil, apperrors.NewStoreUnavailable("save journal entry", err)
	}
	s.log.Info("journal entry saved", "kind", entry.Kind, "date", entry.Date)
	return entry, nil
}

func (s *Service) Journals(ctx context.Context, limit int) ([]*model.JournalEntry, error) {
	entries, err := s.journals.Recent(ctx, clampLimit(limit))
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("load journal entries", err)
	}
	return entries, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
