package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/caresync-api/internal/model"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 3, 1, hour, min, sec, 0, time.Local)
}

func aspirin() *model.Medication {
	return &model.Medication{ID: 1, Name: "Aspirin", Dose: "100mg", Time: "09:00:00", ReminderEnabled: true}
}

func names(entries []model.ScheduleEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Medication.Name)
	}
	return out
}

func TestEvaluate_Aspirin(t *testing.T) {
	tests := []struct {
		name           string
		now            time.Time
		classification model.Classification
		dueSoon        bool
		delta          float64
	}{
		{"ten minutes late", at(9, 10, 0), model.ClassificationOverdue, true, -10},
		{"ten minutes early", at(8, 50, 0), model.ClassificationUpcoming, true, 10},
		{"an hour early", at(8, 0, 0), model.ClassificationUpcoming, false, 60},
		{"exactly on time", at(9, 0, 0), model.ClassificationOverdue, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(tt.now, []*model.Medication{aspirin()}, nil)
			require.Len(t, ev.Entries, 1)
			entry := ev.Entries[0]
			assert.Equal(t, tt.classification, entry.Classification)
			assert.Equal(t, tt.dueSoon, entry.DueSoon)
			assert.InDelta(t, tt.delta, entry.DeltaMinutes, 1e-9)
			assert.Equal(t, at(9, 0, 0), entry.DueAt)
			if tt.dueSoon {
				assert.Equal(t, []string{"Aspirin"}, names(ev.DueSoon))
			} else {
				assert.Empty(t, ev.DueSoon)
			}
		})
	}
}

func TestEvaluate_DueSoonBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		dueSoon bool
	}{
		{"thirty minutes late", at(9, 30, 0), true},
		{"thirty one minutes late", at(9, 31, 0), false},
		{"fifteen minutes early", at(8, 45, 0), true},
		{"sixteen minutes early", at(8, 44, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(tt.now, []*model.Medication{aspirin()}, nil)
			assert.Equal(t, tt.dueSoon, len(ev.DueSoon) == 1)
		})
	}
}

func TestEvaluate_LoggedIsStable(t *testing.T) {
	meds := []*model.Medication{aspirin()}

	for _, now := range []time.Time{at(6, 0, 0), at(9, 0, 0), at(9, 5, 0), at(23, 59, 59)} {
		ev := Evaluate(now, meds, map[int64]model.AdherenceStatus{1: model.AdherenceTaken})
		assert.Equal(t, []string{"Aspirin"}, names(ev.Taken))
		assert.Empty(t, ev.Overdue)
		assert.Empty(t, ev.Upcoming)
		assert.Empty(t, ev.DueSoon)

		ev = Evaluate(now, meds, map[int64]model.AdherenceStatus{1: model.AdherenceMissed})
		assert.Equal(t, []string{"Aspirin"}, names(ev.Missed))
		assert.Empty(t, ev.DueSoon)
	}
}

func TestEvaluate_PartitionKeepsInputOrder(t *testing.T) {
	meds := []*model.Medication{
		{ID: 1, Name: "Metformin", Time: "08:00:00"},
		{ID: 2, Name: "Aspirin", Time: "09:00:00"},
		{ID: 3, Name: "Vitamin D", Time: "07:00:00"},
		{ID: 4, Name: "Melatonin", Time: "22:00:00"},
		{ID: 5, Name: "Statin", Time: "21:00:00"},
		{ID: 6, Name: "Iron", Time: "12:00:00"},
	}
	logs := map[int64]model.AdherenceStatus{
		3: model.AdherenceTaken,
		6: model.AdherenceMissed,
	}

	ev := Evaluate(at(12, 30, 0), meds, logs)

	assert.Equal(t, "2026-03-01", ev.Date)
	assert.Equal(t, []string{"Metformin", "Aspirin"}, names(ev.Overdue))
	assert.Equal(t, []string{"Melatonin", "Statin"}, names(ev.Upcoming))
	assert.Equal(t, []string{"Vitamin D"}, names(ev.Taken))
	assert.Equal(t, []string{"Iron"}, names(ev.Missed))
	assert.Len(t, ev.Entries, 6)
	assert.Empty(t, ev.DueSoon)
}

func TestEvaluate_SkipsMalformedTimes(t *testing.T) {
	meds := []*model.Medication{
		{ID: 1, Name: "Broken", Time: "9am"},
		{ID: 2, Name: "Empty", Time: ""},
		aspirin(),
	}

	ev := Evaluate(at(9, 10, 0), meds, nil)

	assert.Equal(t, []string{"Aspirin"}, names(ev.Entries))
	assert.Equal(t, []string{"Aspirin"}, names(ev.Overdue))
	require.Len(t, ev.Skipped, 2)
	assert.Equal(t, "Broken", ev.Skipped[0].Name)
}

func TestEvaluate_NextDayIsPendingAgain(t *testing.T) {
	meds := []*model.Medication{aspirin()}

	ev := Evaluate(at(9, 10, 0), meds, map[int64]model.AdherenceStatus{1: model.AdherenceTaken})
	assert.Len(t, ev.Taken, 1)

	// a new day has no logs yet
	nextDay := at(9, 10, 0).AddDate(0, 0, 1)
	ev = Evaluate(nextDay, meds, nil)
	assert.Equal(t, "2026-03-02", ev.Date)
	assert.Equal(t, []string{"Aspirin"}, names(ev.Overdue))
}

func TestEvaluate_Empty(t *testing.T) {
	ev := Evaluate(at(9, 0, 0), nil, nil)
	assert.Empty(t, ev.Entries)
	assert.NotNil(t, ev.DueSoon)
}

func TestStatus(t *testing.T) {
	meds := []*model.Medication{
		{ID: 1, Name: "Aspirin", Time: "09:00:00"},
		{ID: 2, Name: "Metformin", Time: "09:25:00"},
		{ID: 3, Name: "Statin", Time: "09:45:00"},
		{ID: 4, Name: "Iron", Time: "09:05:00"},
	}
	logs := map[int64]model.AdherenceStatus{4: model.AdherenceTaken}

	statuses := Status(Evaluate(at(9, 10, 0), meds, logs))

	require.Len(t, statuses, 2)
	assert.Equal(t, "Aspirin", statuses[0].Medication.Name)
	assert.Equal(t, "Overdue", statuses[0].Label)
	assert.Equal(t, "Metformin", statuses[1].Medication.Name)
	assert.Equal(t, "Due in 15 minutes", statuses[1].Label)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Overdue", StatusLabel(-0.5))
	assert.Equal(t, "Due in 0 minutes", StatusLabel(0))
	assert.Equal(t, "Due in 29 minutes", StatusLabel(29.9))
}
