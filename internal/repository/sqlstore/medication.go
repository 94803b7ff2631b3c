package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/internal/repository"
)

type medicationRepository struct {
	*BaseRepository
}

func NewMedicationRepository(base *BaseRepository) repository.MedicationRepository {
	return &medicationRepository{BaseRepository: base}
}

func (r *medicationRepository) Create(ctx context.Context, med *model.Medication) (id int64, err error) {
	defer r.observe("medication_create", time.Now(), &err)

	query := r.q(`
		INSERT INTO medications (name, dose, frequency, time, reminder_enabled, reminder_channel)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err = r.db.GetContext(ctx, &id, query,
		med.Name,
		med.Dose,
		med.Frequency,
		med.Time,
		med.ReminderEnabled,
		med.ReminderChannel,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create medication: %w", err)
	}
	med.ID = id
	return id, nil
}

func (r *medicationRepository) List(ctx context.Context) (meds []*model.Medication, err error) {
	defer r.observe("medication_list", time.Now(), &err)

	query := `
		SELECT id, name, dose, frequency, time, reminder_enabled, reminder_channel
		FROM medications
		ORDER BY id ASC
	`
	if err = r.db.SelectContext(ctx, &meds, query); err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return meds, nil
}

func (r *medicationRepository) ListForDay(ctx context.Context, day string) ([]*model.Medication, map[int64]model.AdherenceStatus, error) {
	meds, err := r.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	var rows []model.MedicationLog
	query := r.q(`
		SELECT id, medication_id, log_date, status
		FROM medication_logs
		WHERE log_date = ?
	`)
	err = r.db.SelectContext(ctx, &rows, query, day)
	r.observe("medication_logs_day", start, &err)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get medication logs: %w", err)
	}

	logs := make(map[int64]model.AdherenceStatus, len(rows))
	for _, row := range rows {
		logs[row.MedicationID] = row.Status
	}
	return meds, logs, nil
}

func (r *medicationRepository) Log(ctx context.Context, id int64, day string, status model.AdherenceStatus) (err error) {
	defer r.observe("medication_log", time.Now(), &err)

	query := r.q(`
		INSERT INTO medication_logs (medication_id, log_date, status)
		VALUES (?, ?, ?)
		ON CONFLICT (medication_id, log_date) DO UPDATE SET status = excluded.status
	`)
	if _, err = r.db.ExecContext(ctx, query, id, day, status); err != nil {
		return fmt.Errorf("failed to log medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) History(ctx context.Context, from, to string) (logs []*model.MedicationLog, err error) {
	defer r.observe("medication_history", time.Now(), &err)

	query := r.q(`
		SELECT id, medication_id, log_date, status
		FROM medication_logs
		WHERE log_date >= ? AND log_date <= ?
		ORDER BY log_date ASC, medication_id ASC
	`)
	if err = r.db.SelectContext(ctx, &logs, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get medication history: %w", err)
	}
	return logs, nil
}
