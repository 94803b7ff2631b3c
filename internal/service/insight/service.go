// Package insight builds prompts from the user's data and asks a generator
// for a response. A fallback generator answers whenever the primary fails.
package insight

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/caresync-api/internal/ai"
	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/internal/repository"
	"github.com/jwalitptl/caresync-api/internal/service/schedule"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
	"github.com/jwalitptl/caresync-api/pkg/logger"
	"github.com/jwalitptl/caresync-api/pkg/metrics"
	"github.com/jwalitptl/caresync-api/pkg/validator"
)

// RecentLimit is how many moods and journal entries feed a summary.
const RecentLimit = 30

const defaultSummaryTTL = 10 * time.Minute

type InsightServicer interface {
	Summary(ctx context.Context, now time.Time) (*model.Insight, error)
	Reflection(ctx context.Context) (*model.Insight, error)
	SideEffects(ctx context.Context, req *model.SideEffectRequest) (*model.Insight, error)
}

type Service struct {
	moods     repository.MoodRepository
	journals  repository.JournalRepository
	meds      repository.MedicationRepository
	primary   ai.Generator
	fallback  ai.Generator
	summaries *cache.Cache
	validator validator.Validator
	metrics   *metrics.Metrics
	log       *logger.Logger
}

type Options struct {
	// Primary is the real generator. Nil means every answer comes from Fallback.
	Primary  ai.Generator
	Fallback ai.Generator
	// SummaryTTL defaults to ten minutes.
	SummaryTTL time.Duration
	Metrics    *metrics.Metrics
	Log        *logger.Logger
}

func NewService(moods repository.MoodRepository, journals repository.JournalRepository, meds repository.MedicationRepository, opts Options) *Service {
	if opts.Fallback == nil {
		opts.Fallback = ai.NewFallbackGenerator()
	}
	if opts.SummaryTTL <= 0 {
		opts.SummaryTTL = defaultSummaryTTL
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	return &Service{
		moods:     moods,
		journals:  journals,
		meds:      meds,
		primary:   opts.Primary,
		fallback:  opts.Fallback,
		summaries: cache.New(opts.SummaryTTL, 2*opts.SummaryTTL),
		validator: validator.New(),
		metrics:   opts.Metrics,
		log:       opts.Log,
	}
}

// Summary summarizes the most recent moods and journal entries, plus the
// adherence of now's date when medications exist.
func (s *Service) Summary(ctx context.Context, now time.Time) (*model.Insight, error) {
	moods, err := s.moods.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("load moods", err)
	}
	journals, err := s.journals.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("load journal entries", err)
	}
	if len(moods) == 0 && len(journals) == 0 {
		return nil, apperrors.NewNotEnoughData("not enough data for insights")
	}

	var adherence []model.ScheduleEntry
	if s.meds != nil {
		meds, logs, err := s.meds.ListForDay(ctx, model.DateOf(now))
		if err != nil {
			return nil, apperrors.NewStoreUnavailable("load medications", err)
		}
		adherence = schedule.Evaluate(now, meds, logs).Entries
	}

	prompt := SummaryPrompt(moods, journals, adherence)
	key := prompt + "\x00" + SummarySystem
	if cached, ok := s.summaries.Get(key); ok {
		insight := cached.(model.Insight)
		return &insight, nil
	}

	insight := s.generate(ctx, model.InsightSummary, prompt, SummarySystem)
	s.summaries.SetDefault(key, *insight)
	return insight, nil
}

// Reflection reflects on the latest journal entry.
func (s *Service) Reflection(ctx context.Context) (*model.Insight, error) {
	journals, err := s.journals.Recent(ctx, 1)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("load journal entries", err)
	}
	if len(journals) == 0 {
		return nil, apperrors.NewNotEnoughData("write a journal entry first")
	}
	return s.generate(ctx, model.InsightReflection, journals[0].Text, ReflectionSystem), nil
}

func (s *Service) SideEffects(ctx context.Context, req *model.SideEffectRequest) (*model.Insight, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.generate(ctx, model.InsightSideEffects, req.Reaction, SideEffectsSystem(req.Medication, req.Reaction)), nil
}

func (s *Service) generate(ctx context.Context, kind model.InsightKind, prompt, system string) *model.Insight {
	if s.primary != nil {
		text, err := s.primary.Generate(ctx, prompt, system)
		if err == nil {
			s.metrics.ObserveInsight(string(kind), false)
			return &model.Insight{Kind: kind, Text: text, Source: model.SourceAI}
		}
		s.log.Warn(err, "AI API error, using fallback response", "kind", kind)
	}
	s.metrics.ObserveInsight(string(kind), true)

	// the fallback never fails
	text, _ := s.fallback.Generate(ctx, prompt, system)
	return &model.Insight{Kind: kind, Text: text, Source: model.SourceFallback}
}
