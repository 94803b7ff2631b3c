package repository

import (
	"context"

	"github.com/jwalitptl/caresync-api/internal/model"
)

// All repository interfaces in one file. Dates are model.DateLayout strings
// chosen by the caller; no repository reads the clock.
type (
	// MedicationRepository owns medication definitions and daily adherence logs
	MedicationRepository interface {
		Create(ctx context.Context, med *model.Medication) (int64, error)
		List(ctx context.Context) ([]*model.Medication, error)
		// ListForDay returns every medication plus the statuses logged on day.
		ListForDay(ctx context.Context, day string) ([]*model.Medication, map[int64]model.AdherenceStatus, error)
		// Log upserts the (id, day) status. Unknown ids are not rejected.
		Log(ctx context.Context, id int64, day string, status model.AdherenceStatus) error
		History(ctx context.Context, from, to string) ([]*model.MedicationLog, error)
	}

	MoodRepository interface {
		Create(ctx context.Context, mood *model.MoodEntry) (int64, error)
		// Recent returns at most limit entries, most recent date first.
		Recent(ctx context.Context, limit int) ([]*model.MoodEntry, error)
	}

	JournalRepository interface {
		Create(ctx context.Context, entry *model.JournalEntry) (int64, error)
		Recent(ctx context.Context, limit int) ([]*model.JournalEntry, error)
	}
)
