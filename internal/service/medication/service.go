package medication

import (
	"context"
	"strings"
	"time"

	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/internal/repository"
	"github.com/jwalitptl/caresync-api/internal/service/schedule"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
	"github.com/jwalitptl/caresync-api/pkg/logger"
	"github.com/jwalitptl/caresync-api/pkg/metrics"
	"github.com/jwalitptl/caresync-api/pkg/validator"
)

const (
	DefaultAdherenceDays = 7
	MaxAdherenceDays     = 90
)

type MedicationServicer interface {
	Add(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error)
	List(ctx context.Context) ([]*model.Medication, error)
	Evaluate(ctx context.Context, now time.Time) (*model.Evaluation, error)
	Today(ctx context.Context, now time.Time) (*model.TodayView, error)
	ReminderStatus(ctx context.Context, now time.Time) ([]model.ReminderStatus, error)
	Log(ctx context.Context, id int64, now time.Time, status model.AdherenceStatus) error
	Adherence(ctx context.Context, now time.Time, days int) ([]model.AdherenceDay, error)
}

// Dispatcher sends reminders for due-soon entries.
type Dispatcher interface {
	Dispatch(ctx context.Context, dueSoon []model.ScheduleEntry, settings model.ChannelSettings) model.DispatchResult
}

// SettingsSource supplies the current channel toggles.
type SettingsSource interface {
	Settings() model.ChannelSettings
}

type Service struct {
	repo       repository.MedicationRepository
	dispatcher Dispatcher
	settings   SettingsSource
	validator  validator.Validator
	metrics    *metrics.Metrics
	log        *logger.Logger
}

func NewService(repo repository.MedicationRepository, dispatcher Dispatcher, settings SettingsSource, m *metrics.Metrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		dispatcher: dispatcher,
		settings:   settings,
		validator:  validator.New(),
		metrics:    m,
		log:        log,
	}
}

func (s *Service) Add(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Dose = strings.TrimSpace(req.Dose)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	med := &model.Medication{
		Name:            req.Name,
		Dose:            req.Dose,
		Frequency:       strings.TrimSpace(req.Frequency),
		Time:            NormalizeTime(req.Time),
		ReminderEnabled: true,
		ReminderChannel: req.ReminderChannel,
	}
	if med.Frequency == "" {
		med.Frequency = string(model.FrequencyOnceDaily)
	}
	if req.ReminderEnabled != nil {
		med.ReminderEnabled = *req.ReminderEnabled
	}
	if med.ReminderChannel == "" {
		med.ReminderChannel = model.ReminderChannelAll
	}

	if _, err := s.repo.Create(ctx, med); err != nil {
		return nil, apperrors.NewStoreUnavailable("add medication", err)
	}

	s.log.Info("medication added", "id", med.ID, "name", med.Name, "time", med.Time)
	return med, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Medication, error) {
	meds, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("list medications", err)
	}
	return meds, nil
}

// Evaluate classifies today's medications at now without sending anything.
func (s *Service) Evaluate(ctx context.Context, now time.Time) (*model.Evaluation, error) {
	meds, logs, err := s.repo.ListForDay(ctx, model.DateOf(now))
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("load today's medications", err)
	}

	ev := schedule.Evaluate(now, meds, logs)
	s.metrics.SetOverdue(len(ev.Overdue))
	for _, med := range ev.Skipped {
		s.log.Debug("skipping medication with malformed time", "id", med.ID, "time", med.Time)
	}
	return &ev, nil
}

// Today evaluates and dispatches reminders for the due-soon medications. Every
// call dispatches again; repeat suppression is up to the dispatcher.
func (s *Service) Today(ctx context.Context, now time.Time) (*model.TodayView, error) {
	ev, err := s.Evaluate(ctx, now)
	if err != nil {
		return nil, err
	}

	view := &model.TodayView{
		Evaluation: *ev,
		Reminders: model.DispatchResult{
			Fired:    []model.FiredReminder{},
			Attempts: []model.ReminderAttempt{},
		},
	}
	if s.dispatcher != nil && s.settings != nil && len(ev.DueSoon) > 0 {
		view.Reminders = s.dispatcher.Dispatch(ctx, ev.DueSoon, s.settings.Settings())
		if view.Reminders.Sent > 0 {
			s.log.Info("medication reminders sent", "count", view.Reminders.Sent)
		}
	}
	return view, nil
}

func (s *Service) ReminderStatus(ctx context.Context, now time.Time) ([]model.ReminderStatus, error) {
	ev, err := s.Evaluate(ctx, now)
	if err != nil {
		return nil, err
	}
	return schedule.Status(*ev), nil
}

// Log records status for id on now's date, replacing any earlier status.
// Unknown ids are stored as given.
func (s *Service) Log(ctx context.Context, id int64, now time.Time, status model.AdherenceStatus) error {
	if !status.Valid() {
		return apperrors.NewValidation("status must be taken or missed", nil)
	}
	if err := s.repo.Log(ctx, id, model.DateOf(now), status); err != nil {
		return apperrors.NewStoreUnavailable("log medication", err)
	}
	s.log.Info("medication logged", "id", id, "status", status)
	return nil
}

// Adherence returns one row per calendar day, oldest first, for the days
// ending on now's date.
func (s *Service) Adherence(ctx context.Context, now time.Time, days int) ([]model.AdherenceDay, error) {
	if days <= 0 {
		days = DefaultAdherenceDays
	}
	if days > MaxAdherenceDays {
		return nil, apperrors.NewValidation("days must be at most 90", nil)
	}

	from := now.AddDate(0, 0, -(days - 1))
	logs, err := s.repo.History(ctx, model.DateOf(from), model.DateOf(now))
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("load adherence history", err)
	}

	byDay := make(map[string]*model.AdherenceDay, days)
	out := make([]model.AdherenceDay, days)
	for i := 0; i < days; i++ {
		out[i].Date = model.DateOf(from.AddDate(0, 0, i))
		byDay[out[i].Date] = &out[i]
	}
	for _, l := range logs {
		day, ok := byDay[l.LogDate]
		if !ok {
			continue
		}
		switch l.Status {
		case model.AdherenceTaken:
			day.Taken++
		case model.AdherenceMissed:
			day.Missed++
		}
	}
	for i := range out {
		if total := out[i].Taken + out[i].Missed; total > 0 {
			out[i].Rate = float64(out[i].Taken) / float64(total)
		}
	}
	return out, nil
}

// NormalizeTime turns H:MM, HH:MM:SS or a 12-hour "9:00 PM" into HH:MM:SS. Anything else is
// returned trimmed and unchanged; the evaluator skips such medications.
func NormalizeTime(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{model.TimeLayout, "15:04", "3:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(model.TimeLayout)
		}
	}
	return s
}
