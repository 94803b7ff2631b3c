package medication

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/caresync-api/internal/model"
	apperrors "github.com/jwalitptl/caresync-api/pkg/errors"
	"github.com/jwalitptl/caresync-api/pkg/metrics"
)

type logKey struct {
	id  int64
	day string
}

type memRepo struct {
	meds []*model.Medication
	logs map[logKey]model.AdherenceStatus
	err  error
}

func newMemRepo() *memRepo {
	return &memRepo{logs: map[logKey]model.AdherenceStatus{}}
}

func (r *memRepo) Create(_ context.Context, med *model.Medication) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	med.ID = int64(len(r.meds) + 1)
	r.meds = append(r.meds, med)
	return med.ID, nil
}

func (r *memRepo) List(context.Context) ([]*model.Medication, error) {
	return r.meds, r.err
}

func (r *memRepo) ListForDay(_ context.Context, day string) ([]*model.Medication, map[int64]model.AdherenceStatus, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	logs := map[int64]model.AdherenceStatus{}
	for k, v := range r.logs {
		if k.day == day {
			logs[k.id] = v
		}
	}
	return r.meds, logs, nil
}

func (r *memRepo) Log(_ context.Context, id int64, day string, status model.AdherenceStatus) error {
	if r.err != nil {
		return r.err
	}
	r.logs[logKey{id, day}] = status
	return nil
}

func (r *memRepo) History(_ context.Context, from, to string) ([]*model.MedicationLog, error) {
	var out []*model.MedicationLog
	for k, v := range r.logs {
		if k.day >= from && k.day <= to {
			out = append(out, &model.MedicationLog{MedicationID: k.id, LogDate: k.day, Status: v})
		}
	}
	return out, r.err
}

type fakeDispatcher struct {
	calls    int
	dueSoon  []model.ScheduleEntry
	settings model.ChannelSettings
}

func (d *fakeDispatcher) Dispatch(_ context.Context, dueSoon []model.ScheduleEntry, settings model.ChannelSettings) model.DispatchResult {
	d.calls++
	d.dueSoon = dueSoon
	d.settings = settings
	res := model.DispatchResult{}
	for _, e := range dueSoon {
		res.Sent++
		res.Fired = append(res.Fired, model.FiredReminder{Name: e.Medication.Name, Time: e.Medication.Time})
	}
	return res
}

type staticSettings model.ChannelSettings

func (s staticSettings) Settings() model.ChannelSettings { return model.ChannelSettings(s) }

func at(day, hour, min int) time.Time {
	return time.Date(2026, 3, day, hour, min, 0, 0, time.Local)
}

func newTestService(repo *memRepo, d *fakeDispatcher) *Service {
	return NewService(repo, d, staticSettings{Mobile: true}, metrics.New("test"), nil)
}

func TestAdd(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	med, err := svc.Add(context.Background(), &model.CreateMedicationRequest{Name: " Aspirin ", Dose: "100mg", Time: "9:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), med.ID)
	assert.Equal(t, "Aspirin", med.Name)
	assert.Equal(t, "09:00:00", med.Time)
	assert.Equal(t, "Once daily", med.Frequency)
	assert.True(t, med.ReminderEnabled)
	assert.Equal(t, model.ReminderChannelAll, med.ReminderChannel)

	off := false
	med, err = svc.Add(context.Background(), &model.CreateMedicationRequest{
		Name: "Aspirin", Dose: "100mg", Frequency: "Twice daily", Time: "21:30:15",
		ReminderEnabled: &off, ReminderChannel: model.ReminderChannelEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), med.ID, "duplicates are allowed")
	assert.False(t, med.ReminderEnabled)
	assert.Equal(t, "21:30:15", med.Time)
	assert.Equal(t, model.ReminderChannelEmail, med.ReminderChannel)
}

func TestAdd_Validation(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	for _, req := range []*model.CreateMedicationRequest{
		{Name: "", Dose: "100mg", Time: "09:00"},
		{Name: "Aspirin", Dose: "   ", Time: "09:00"},
		{Name: "Aspirin", Dose: "100mg", ReminderChannel: "pager"},
	} {
		_, err := svc.Add(context.Background(), req)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrValidation), "%+v", req)
	}
	assert.Empty(t, repo.meds)
}

func TestAdd_StoreUnavailable(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("database is locked")
	svc := newTestService(repo, &fakeDispatcher{})

	_, err := svc.Add(context.Background(), &model.CreateMedicationRequest{Name: "Aspirin", Dose: "100mg"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrStoreUnavailable))
	assert.Contains(t, err.Error(), "could not add medication")
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "09:00:00", NormalizeTime("09:00"))
	assert.Equal(t, "09:05:00", NormalizeTime("9:05"))
	assert.Equal(t, "21:15:30", NormalizeTime(" 21:15:30 "))
	assert.Equal(t, "21:15:00", NormalizeTime("9:15 PM"))
	assert.Equal(t, "later", NormalizeTime("later"))
}

func TestToday_DispatchesDueSoon(t *testing.T) {
	repo := newMemRepo()
	d := &fakeDispatcher{}
	svc := newTestService(repo, d)
	ctx := context.Background()

	_, err := svc.Add(ctx, &model.CreateMedicationRequest{Name: "Aspirin", Dose: "100mg", Time: "09:00"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, &model.CreateMedicationRequest{Name: "Statin", Dose: "20mg", Time: "21:00"})
	require.NoError(t, err)

	view, err := svc.Today(ctx, at(1, 9, 10))
	require.NoError(t, err)
	assert.Len(t, view.Overdue, 1)
	assert.Len(t, view.Upcoming, 1)
	assert.Equal(t, 1, view.Reminders.Sent)
	assert.Equal(t, []model.FiredReminder{{Name: "Aspirin", Time: "09:00:00"}}, view.Reminders.Fired)
	assert.Equal(t, model.ChannelSettings{Mobile: true}, d.settings)

	// a second load fires again
	_, err = svc.Today(ctx, at(1, 9, 12))
	require.NoError(t, err)
	assert.Equal(t, 2, d.calls)
}

func TestToday_NothingDue(t *testing.T) {
	repo := newMemRepo()
	d := &fakeDispatcher{}
	svc := newTestService(repo, d)

	_, err := svc.Add(context.Background(), &model.CreateMedicationRequest{Name: "Aspirin", Dose: "100mg", Time: "09:00"})
	require.NoError(t, err)

	view, err := svc.Today(context.Background(), at(1, 8, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, d.calls)
	assert.Equal(t, 0, view.Reminders.Sent)
	assert.NotNil(t, view.Reminders.Fired)
}

func TestLog_PerDayAndLastWriteWins(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	ctx := context.Background()

	_, err := svc.Add(ctx, &model.CreateMedicationRequest{Name: "Aspirin", Dose: "100mg", Time: "09:00"})
	require.NoError(t, err)

	require.NoError(t, svc.Log(ctx, 1, at(1, 9, 5), model.AdherenceTaken))
	ev, err := svc.Evaluate(ctx, at(1, 9, 10))
	require.NoError(t, err)
	assert.Len(t, ev.Taken, 1)
	assert.Empty(t, ev.DueSoon)

	require.NoError(t, svc.Log(ctx, 1, at(1, 9, 6), model.AdherenceMissed))
	ev, err = svc.Evaluate(ctx, at(1, 9, 10))
	require.NoError(t, err)
	assert.Empty(t, ev.Taken)
	assert.Len(t, ev.Missed, 1)

	ev, err = svc.Evaluate(ctx, at(2, 9, 10))
	require.NoError(t, err)
	assert.Len(t, ev.Overdue, 1)
}

func TestLog_Errors(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	err := svc.Log(context.Background(), 1, at(1, 9, 0), "skipped")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrValidation))

	// unknown medication ids are accepted
	require.NoError(t, svc.Log(context.Background(), 42, at(1, 9, 0), model.AdherenceTaken))

	repo.err = errors.New("disk full")
	err = svc.Log(context.Background(), 1, at(1, 9, 0), model.AdherenceTaken)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrStoreUnavailable))
}

func TestReminderStatus(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	ctx := context.Background()

	for _, tm := range []string{"09:00", "09:35", "10:00"} {
		_, err := svc.Add(ctx, &model.CreateMedicationRequest{Name: "Med " + tm, Dose: "1", Time: tm})
		require.NoError(t, err)
	}

	statuses, err := svc.ReminderStatus(ctx, at(1, 9, 10))
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "Overdue", statuses[0].Label)
	assert.Equal(t, "Due in 25 minutes", statuses[1].Label)
}

func TestAdherence(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, 1, at(1, 9, 0), model.AdherenceTaken))
	require.NoError(t, svc.Log(ctx, 2, at(1, 9, 0), model.AdherenceMissed))
	require.NoError(t, svc.Log(ctx, 1, at(3, 9, 0), model.AdherenceTaken))
	// outside the window
	require.NoError(t, svc.Log(ctx, 1, time.Date(2026, 2, 20, 9, 0, 0, 0, time.Local), model.AdherenceTaken))

	days, err := svc.Adherence(ctx, at(3, 12, 0), 3)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, model.AdherenceDay{Date: "2026-03-01", Taken: 1, Missed: 1, Rate: 0.5}, days[0])
	assert.Equal(t, model.AdherenceDay{Date: "2026-03-02"}, days[1])
	assert.Equal(t, model.AdherenceDay{Date: "2026-03-03", Taken: 1, Rate: 1}, days[2])

	days, err = svc.Adherence(ctx, at(3, 12, 0), 0)
	require.NoError(t, err)
	assert.Len(t, days, DefaultAdherenceDays)

	_, err = svc.Adherence(ctx, at(3, 12, 0), 365)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrValidation))
}
